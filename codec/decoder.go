package codec

import (
	"reflect"
	"unsafe"

	"github.com/wippyai/bytestruct"
	"github.com/wippyai/bytestruct/errors"
	"github.com/wippyai/bytestruct/field"
)

type Decoder struct {
	compiler *Compiler
}

func NewDecoder() *Decoder {
	return &Decoder{
		compiler: NewCompiler(),
	}
}

func NewDecoderWithCompiler(c *Compiler) *Decoder {
	return &Decoder{compiler: c}
}

// Decode reads the front of b into v, which must be a non-nil pointer.
func (d *Decoder) Decode(b []byte, order field.Order, v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.NilPointer(errors.PhaseDecode, nil, typeName(v))
	}
	ct, err := d.compiler.Compile(rv.Type().Elem(), order)
	if err != nil {
		return err
	}
	return d.DecodeCompiled(ct, b, rv.UnsafePointer())
}

// DecodeCompiled reads the front of b into ptr, which must point to
// ct.GoType. On a short buffer the target is left untouched.
func (d *Decoder) DecodeCompiled(ct *CompiledType, b []byte, ptr unsafe.Pointer) error {
	if len(b) < ct.ByteLen {
		return errors.ShortBuffer(errors.PhaseDecode, nil, ct.ByteLen, len(b))
	}
	decode(ct, b, ptr)
	return nil
}

// decode assumes len(b) >= ct.ByteLen and cannot fail.
func decode(ct *CompiledType, b []byte, ptr unsafe.Pointer) {
	switch ct.Kind {
	case KindPrimitive:
		storeBits(ct.ByteLen, ptr, field.Bits(ct.Prim, ct.Order, b))

	case KindStruct:
		for i := range ct.Fields {
			f := &ct.Fields[i]
			decode(f.Type, b[f.Offset:], unsafe.Add(ptr, f.GoOffset))
		}

	case KindArray:
		elem := ct.Elem
		for i := 0; i < ct.Len; i++ {
			decode(elem, b[i*elem.ByteLen:], unsafe.Add(ptr, uintptr(i)*elem.GoSize))
		}

	case KindBitfield:
		desc := ct.Bits
		raw := field.Bits(ct.Prim, ct.Order, b)
		for i, off := range ct.BitOffsets {
			storeBits(ct.ByteLen, unsafe.Add(ptr, off), (raw>>desc.Shift(i))&desc.Mask(i))
		}

	case KindCustom:
		p := reflect.NewAt(ct.GoType, ptr).Interface().(bytestruct.Packer)
		p.ReadBytes(b[:ct.ByteLen:ct.ByteLen])
	}
}

// typeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
