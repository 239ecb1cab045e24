package schema

import (
	"strconv"

	"github.com/wippyai/bytestruct/bitfield"
	"github.com/wippyai/bytestruct/errors"
	"github.com/wippyai/bytestruct/field"
	"github.com/wippyai/bytestruct/internal/layout"
)

// Type is a member type. It is implemented by the values returned from Prim,
// Ordered, Array and Bits, and by *Struct.
type Type interface {
	// ByteLen returns the encoded length, or -1 for an invalid type.
	ByteLen() int
	String() string

	validate(path []string) error
	decode(b []byte, order field.Order) any
	encode(v any, order field.Order, b []byte, path []string) error
	zero() any
}

type primType struct {
	kind field.Kind
}

// Prim is a numeric member in the byte order of the enclosing struct.
func Prim(kind field.Kind) Type {
	return primType{kind: kind}
}

func (t primType) ByteLen() int {
	if !t.kind.Valid() {
		return -1
	}
	return t.kind.Size()
}

func (t primType) String() string { return t.kind.String() }

func (t primType) validate(path []string) error {
	if !t.kind.Valid() {
		return errors.Layout(path, t.kind.String(), "invalid primitive kind")
	}
	return nil
}

func (t primType) decode(b []byte, order field.Order) any {
	return field.Box(t.kind, field.Bits(t.kind, order, b))
}

func (t primType) encode(v any, order field.Order, b []byte, path []string) error {
	bits, ok := field.Unbox(t.kind, v)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(v), t.kind.String())
	}
	field.PutBits(t.kind, order, b, bits)
	return nil
}

func (t primType) zero() any { return field.Box(t.kind, 0) }

type orderedType struct {
	elem  Type
	order field.Order
}

// Ordered pins t to order regardless of the enclosing struct. A Struct, or an
// array of them, is pinned through a copy whose own order is replaced.
func Ordered(t Type, order field.Order) Type {
	return orderedType{elem: pinned(t, order), order: order}
}

func pinned(t Type, order field.Order) Type {
	switch x := t.(type) {
	case *Struct:
		if x == nil {
			return t
		}
		cp := *x
		cp.order = order
		return &cp
	case arrayType:
		return arrayType{elem: pinned(x.elem, order), n: x.n}
	default:
		return t
	}
}

func (t orderedType) ByteLen() int {
	if t.elem == nil {
		return -1
	}
	return t.elem.ByteLen()
}

func (t orderedType) String() string {
	if t.elem == nil {
		return "<nil>" + t.order.String()
	}
	return t.elem.String() + t.order.String()
}

func (t orderedType) validate(path []string) error {
	if t.elem == nil {
		return errors.Layout(path, "ordered", "element type is nil")
	}
	return t.elem.validate(path)
}

func (t orderedType) decode(b []byte, _ field.Order) any {
	return t.elem.decode(b, t.order)
}

func (t orderedType) encode(v any, _ field.Order, b []byte, path []string) error {
	return t.elem.encode(v, t.order, b, path)
}

func (t orderedType) zero() any { return t.elem.zero() }

type arrayType struct {
	elem Type
	n    int
}

// Array is n consecutive elements of t.
func Array(t Type, n int) Type {
	return arrayType{elem: t, n: n}
}

func (t arrayType) ByteLen() int {
	if t.elem == nil || t.elem.ByteLen() < 0 {
		return -1
	}
	size, ok := layout.Array(t.elem.ByteLen(), t.n)
	if !ok {
		return -1
	}
	return size
}

func (t arrayType) String() string {
	elem := "<nil>"
	if t.elem != nil {
		elem = t.elem.String()
	}
	return "[" + strconv.Itoa(t.n) + "]" + elem
}

func (t arrayType) validate(path []string) error {
	if t.elem == nil {
		return errors.Layout(path, t.String(), "element type is nil")
	}
	if t.n < 0 {
		return errors.Layout(path, t.String(), "array length is negative")
	}
	if err := t.elem.validate(child(path, "[elem]")); err != nil {
		return err
	}
	if t.ByteLen() < 0 {
		return errors.Layout(path, t.String(), "array exceeds the maximum layout size")
	}
	return nil
}

func (t arrayType) decode(b []byte, order field.Order) any {
	size := t.elem.ByteLen()
	out := make([]any, t.n)
	for i := range out {
		out[i] = t.elem.decode(b[i*size:], order)
	}
	return out
}

func (t arrayType) encode(v any, order field.Order, b []byte, path []string) error {
	elems, ok := v.([]any)
	if !ok {
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(v), t.String())
	}
	if len(elems) != t.n {
		return errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Path(path...).
			Type(t.String()).
			Value(len(elems)).
			Detail("array has %d elements, layout needs %d", len(elems), t.n).
			Build()
	}
	size := t.elem.ByteLen()
	for i, e := range elems {
		if err := t.elem.encode(e, order, b[i*size:], child(path, "["+strconv.Itoa(i)+"]")); err != nil {
			return err
		}
	}
	return nil
}

func (t arrayType) zero() any {
	out := make([]any, t.n)
	for i := range out {
		out[i] = t.elem.zero()
	}
	return out
}

type bitsType struct {
	desc *bitfield.Descriptor
}

// Bits is a bitfield member in the byte order of the enclosing struct.
func Bits(desc *bitfield.Descriptor) Type {
	return bitsType{desc: desc}
}

func (t bitsType) ByteLen() int {
	if t.desc == nil {
		return -1
	}
	return t.desc.ByteLen()
}

func (t bitsType) String() string {
	if t.desc == nil {
		return "bitfield<nil>"
	}
	return t.desc.String()
}

func (t bitsType) validate(path []string) error {
	if t.desc == nil {
		return errors.Layout(path, "bitfield", "descriptor is nil")
	}
	return nil
}

func (t bitsType) decode(b []byte, order field.Order) any {
	return t.desc.Decode(field.Bits(t.desc.Base(), order, b))
}

// encode masks like bitfield.Descriptor.Encode.
func (t bitsType) encode(v any, order field.Order, b []byte, path []string) error {
	var bv bitfield.Value
	switch x := v.(type) {
	case bitfield.Value:
		bv = x
	case map[string]uint64:
		bv = x
	default:
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(v), t.String())
	}
	field.PutBits(t.desc.Base(), order, b, t.desc.Encode(bv))
	return nil
}

func (t bitsType) zero() any { return t.desc.Decode(0) }
