package field

import (
	"encoding/binary"
	"math"
	"reflect"

	"github.com/wippyai/bytestruct/errors"
)

// Number is the set of Go types with a primitive encoding.
type Number interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 | ~uint64 | ~int64 | ~float32 | ~float64
}

// Bits decodes the k.Size() leading bytes of b as an unsigned word. Signed
// and float kinds come back as their raw bit pattern. b must hold at least
// k.Size() bytes.
func Bits(k Kind, o Order, b []byte) uint64 {
	switch k.Size() {
	case 1:
		return uint64(b[0])
	case 2:
		if o == BigEndian {
			return uint64(binary.BigEndian.Uint16(b))
		}
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		if o == BigEndian {
			return uint64(binary.BigEndian.Uint32(b))
		}
		return uint64(binary.LittleEndian.Uint32(b))
	case 8:
		if o == BigEndian {
			return binary.BigEndian.Uint64(b)
		}
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

// PutBits encodes the low k.Bits() bits of v into the k.Size() leading
// bytes of b. b must hold at least k.Size() bytes.
func PutBits(k Kind, o Order, b []byte, v uint64) {
	switch k.Size() {
	case 1:
		b[0] = uint8(v)
	case 2:
		if o == BigEndian {
			binary.BigEndian.PutUint16(b, uint16(v))
		} else {
			binary.LittleEndian.PutUint16(b, uint16(v))
		}
	case 4:
		if o == BigEndian {
			binary.BigEndian.PutUint32(b, uint32(v))
		} else {
			binary.LittleEndian.PutUint32(b, uint32(v))
		}
	case 8:
		if o == BigEndian {
			binary.BigEndian.PutUint64(b, v)
		} else {
			binary.LittleEndian.PutUint64(b, v)
		}
	}
}

// KindOf returns the kind matching the underlying type of T.
func KindOf[T Number]() Kind {
	k, _ := KindFor(reflect.TypeFor[T]())
	return k
}

// KindFor maps a reflect type to its primitive kind. int, uint, uintptr and
// bool have no fixed encoding and are rejected.
func KindFor(t reflect.Type) (Kind, bool) {
	switch t.Kind() {
	case reflect.Uint8:
		return U8, true
	case reflect.Int8:
		return I8, true
	case reflect.Uint16:
		return U16, true
	case reflect.Int16:
		return I16, true
	case reflect.Uint32:
		return U32, true
	case reflect.Int32:
		return I32, true
	case reflect.Uint64:
		return U64, true
	case reflect.Int64:
		return I64, true
	case reflect.Float32:
		return F32, true
	case reflect.Float64:
		return F64, true
	}
	return 0, false
}

// Get decodes a T from the leading bytes of b.
func Get[T Number](o Order, b []byte) T {
	k := KindOf[T]()
	return fromBits[T](k, Bits(k, o, b))
}

// Put encodes v into the leading bytes of b.
func Put[T Number](o Order, b []byte, v T) {
	k := KindOf[T]()
	PutBits(k, o, b, toBits(k, v))
}

func toBits[T Number](k Kind, v T) uint64 {
	switch k {
	case F32:
		return uint64(math.Float32bits(float32(v)))
	case F64:
		return math.Float64bits(float64(v))
	default:
		return uint64(v)
	}
}

func fromBits[T Number](k Kind, bits uint64) T {
	switch k {
	case I8:
		return T(int8(bits))
	case I16:
		return T(int16(bits))
	case I32:
		return T(int32(bits))
	case I64:
		return T(int64(bits))
	case F32:
		return T(math.Float32frombits(uint32(bits)))
	case F64:
		return T(math.Float64frombits(bits))
	default:
		return T(bits)
	}
}

// Box converts a raw bit pattern into the Go value of kind k.
func Box(k Kind, bits uint64) any {
	switch k {
	case U8:
		return uint8(bits)
	case I8:
		return int8(bits)
	case U16:
		return uint16(bits)
	case I16:
		return int16(bits)
	case U32:
		return uint32(bits)
	case I32:
		return int32(bits)
	case U64:
		return bits
	case I64:
		return int64(bits)
	case F32:
		return math.Float32frombits(uint32(bits))
	case F64:
		return math.Float64frombits(bits)
	}
	return nil
}

// Unbox returns the bit pattern of v, which must have kind k as its
// underlying type.
func Unbox(k Kind, v any) (uint64, bool) {
	switch x := v.(type) {
	case uint8:
		return uint64(x), k == U8
	case int8:
		return uint64(x), k == I8
	case uint16:
		return uint64(x), k == U16
	case int16:
		return uint64(x), k == I16
	case uint32:
		return uint64(x), k == U32
	case int32:
		return uint64(x), k == I32
	case uint64:
		return x, k == U64
	case int64:
		return uint64(x), k == I64
	case float32:
		return uint64(math.Float32bits(x)), k == F32
	case float64:
		return math.Float64bits(x), k == F64
	case nil:
		return 0, false
	}

	// Named types such as `type Color uint8`.
	rv := reflect.ValueOf(v)
	got, ok := KindFor(rv.Type())
	if !ok || got != k {
		return 0, false
	}
	switch {
	case k.IsUnsigned():
		return rv.Uint(), true
	case k.IsSigned():
		return uint64(rv.Int()), true
	case k == F32:
		return uint64(math.Float32bits(float32(rv.Float()))), true
	default:
		return math.Float64bits(rv.Float()), true
	}
}

// Codec reads and writes one primitive with bounds checks.
type Codec struct {
	Kind  Kind
	Order Order
}

func (c Codec) ByteLen() int {
	return c.Kind.Size()
}

func (c Codec) String() string {
	if c.Kind.Size() == 1 {
		return c.Kind.String()
	}
	return c.Kind.String() + c.Order.String()
}

// Read decodes the value at the front of b as the Go type of c.Kind.
func (c Codec) Read(b []byte) (any, error) {
	n := c.Kind.Size()
	if len(b) < n {
		return nil, errors.ShortBuffer(errors.PhaseDecode, nil, n, len(b))
	}
	return Box(c.Kind, Bits(c.Kind, c.Order, b)), nil
}

// Write encodes v at the front of b. v must have c.Kind as its underlying
// type.
func (c Codec) Write(v any, b []byte) error {
	bits, ok := Unbox(c.Kind, v)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, nil, typeName(v), c.Kind.String())
	}
	n := c.Kind.Size()
	if len(b) < n {
		return errors.ShortBuffer(errors.PhaseEncode, nil, n, len(b))
	}
	PutBits(c.Kind, c.Order, b, bits)
	return nil
}

// typeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
