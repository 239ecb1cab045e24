package codec

import (
	"reflect"
	"strconv"
	"unsafe"

	"github.com/wippyai/bytestruct/errors"
	"github.com/wippyai/bytestruct/field"
	"github.com/wippyai/bytestruct/internal/layout"
)

var (
	defaultCompiler = NewCompiler()
	defaultEncoder  = NewEncoderWithCompiler(defaultCompiler)
	defaultDecoder  = NewDecoderWithCompiler(defaultCompiler)
)

// Read decodes the front of b into v, which must be a non-nil pointer.
func Read(b []byte, order field.Order, v any) error {
	return defaultDecoder.Decode(b, order, v)
}

// Write encodes v, a value or a pointer to one, at the front of b.
func Write(b []byte, order field.Order, v any) error {
	return defaultEncoder.Encode(v, order, b)
}

// Size returns the encoded length of v's type.
func Size(v any, order field.Order) (int, error) {
	if v == nil {
		return 0, errors.NilPointer(errors.PhaseCompile, nil, "nil")
	}
	ct, err := defaultCompiler.Compile(reflect.TypeOf(v), order)
	if err != nil {
		return 0, err
	}
	return ct.ByteLen, nil
}

// Marshal encodes v into a new buffer of exactly its encoded length.
func Marshal(v any, order field.Order) ([]byte, error) {
	n, err := Size(v, order)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if err := Write(b, order, v); err != nil {
		return nil, err
	}
	return b, nil
}

// Codec is the typed front end for one compiled layout. It is immutable and
// safe for concurrent use.
type Codec[T any] struct {
	ct  *CompiledType
	enc *Encoder
}

// New compiles the layout of T with order as the root byte order.
func New[T any](order field.Order) (*Codec[T], error) {
	goType := reflect.TypeFor[T]()
	if goType.Kind() == reflect.Ptr {
		return nil, errors.Unsupported(errors.PhaseCompile, nil, "Codec type parameter must not be a pointer, got "+goType.String())
	}
	ct, err := defaultCompiler.Compile(goType, order)
	if err != nil {
		return nil, err
	}
	return &Codec[T]{ct: ct, enc: defaultEncoder}, nil
}

// MustNew is like New but panics on an invalid layout. Intended for
// package-level codec declarations.
func MustNew[T any](order field.Order) *Codec[T] {
	c, err := New[T](order)
	if err != nil {
		panic(err)
	}
	return c
}

// Strict returns a copy of c whose writes reject bitfield values wider than
// their field.
func (c *Codec[T]) Strict() *Codec[T] {
	return &Codec[T]{ct: c.ct, enc: c.enc.StrictBits()}
}

func (c *Codec[T]) ByteLen() int {
	return c.ct.ByteLen
}

func (c *Codec[T]) Layout() *CompiledType {
	return c.ct
}

// Read decodes a T from the front of b.
func (c *Codec[T]) Read(b []byte) (T, error) {
	var v T
	if len(b) < c.ct.ByteLen {
		return v, errors.ShortBuffer(errors.PhaseDecode, nil, c.ct.ByteLen, len(b))
	}
	decode(c.ct, b, unsafe.Pointer(&v))
	return v, nil
}

// ReadInto decodes the front of b into v. On a short buffer v is untouched.
func (c *Codec[T]) ReadInto(b []byte, v *T) error {
	if v == nil {
		return errors.NilPointer(errors.PhaseDecode, nil, c.ct.GoType.String())
	}
	if len(b) < c.ct.ByteLen {
		return errors.ShortBuffer(errors.PhaseDecode, nil, c.ct.ByteLen, len(b))
	}
	decode(c.ct, b, unsafe.Pointer(v))
	return nil
}

// Write encodes v at the front of b.
func (c *Codec[T]) Write(v *T, b []byte) error {
	if v == nil {
		return errors.NilPointer(errors.PhaseEncode, nil, c.ct.GoType.String())
	}
	return c.enc.EncodeCompiled(c.ct, unsafe.Pointer(v), b)
}

// Append encodes v after the end of dst, growing it as needed. Bitfield
// overflow in strict mode leaves dst unchanged.
func (c *Codec[T]) Append(dst []byte, v *T) ([]byte, error) {
	n := len(dst)
	dst = append(dst, make([]byte, c.ct.ByteLen)...)
	if err := c.Write(v, dst[n:]); err != nil {
		return dst[:n], err
	}
	return dst, nil
}

// Marshal encodes v into a new buffer of exactly ByteLen bytes.
func (c *Codec[T]) Marshal(v *T) ([]byte, error) {
	return c.Append(make([]byte, 0, c.ct.ByteLen), v)
}

// ReadSlice decodes n records stored back to back at the front of b.
func (c *Codec[T]) ReadSlice(b []byte, n int) ([]T, error) {
	if n < 0 {
		return nil, errors.InvalidInput(errors.PhaseDecode, "negative record count")
	}
	need, ok := layout.SafeMul(c.ct.ByteLen, n)
	if !ok {
		return nil, errors.New(errors.PhaseDecode, errors.KindOverflow).
			Value(n).
			Detail("%d records of %d bytes exceed the maximum layout size", n, c.ct.ByteLen).
			Build()
	}
	if len(b) < need {
		return nil, errors.ShortBuffer(errors.PhaseDecode, nil, need, len(b))
	}

	out := make([]T, n)
	for i := range out {
		decode(c.ct, b[i*c.ct.ByteLen:], unsafe.Pointer(&out[i]))
	}
	return out, nil
}

// WriteSlice encodes vs back to back at the front of b.
func (c *Codec[T]) WriteSlice(vs []T, b []byte) error {
	need, ok := layout.SafeMul(c.ct.ByteLen, len(vs))
	if !ok {
		return errors.New(errors.PhaseEncode, errors.KindOverflow).
			Value(len(vs)).
			Detail("%d records of %d bytes exceed the maximum layout size", len(vs), c.ct.ByteLen).
			Build()
	}
	if len(b) < need {
		return errors.ShortBuffer(errors.PhaseEncode, nil, need, len(b))
	}
	for i := range vs {
		if err := c.enc.encode(c.ct, unsafe.Pointer(&vs[i]), b[i*c.ct.ByteLen:]); err != nil {
			return errors.AtPath(err, "["+strconv.Itoa(i)+"]")
		}
	}
	return nil
}
