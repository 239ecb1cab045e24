package codec

import (
	"reflect"
	"unsafe"

	"github.com/wippyai/bytestruct"
	"github.com/wippyai/bytestruct/errors"
	"github.com/wippyai/bytestruct/field"
)

type Encoder struct {
	compiler   *Compiler
	strictBits bool
}

func NewEncoder() *Encoder {
	return &Encoder{
		compiler: NewCompiler(),
	}
}

func NewEncoderWithCompiler(c *Compiler) *Encoder {
	return &Encoder{compiler: c}
}

// StrictBits returns a copy of e that reports an overflow error for bitfield
// values wider than their field instead of masking them.
func (e *Encoder) StrictBits() *Encoder {
	cp := *e
	cp.strictBits = true
	return &cp
}

// Encode writes v, a value or a pointer to one, at the front of b.
func (e *Encoder) Encode(v any, order field.Order, b []byte) error {
	ptr, goType, err := valuePointer(v, errors.PhaseEncode)
	if err != nil {
		return err
	}
	ct, err := e.compiler.Compile(goType, order)
	if err != nil {
		return err
	}
	return e.EncodeCompiled(ct, ptr, b)
}

// EncodeCompiled writes the value at ptr, which must point to ct.GoType.
func (e *Encoder) EncodeCompiled(ct *CompiledType, ptr unsafe.Pointer, b []byte) error {
	if len(b) < ct.ByteLen {
		return errors.ShortBuffer(errors.PhaseEncode, nil, ct.ByteLen, len(b))
	}
	return e.encode(ct, ptr, b)
}

// encode assumes len(b) >= ct.ByteLen.
func (e *Encoder) encode(ct *CompiledType, ptr unsafe.Pointer, b []byte) error {
	switch ct.Kind {
	case KindPrimitive:
		field.PutBits(ct.Prim, ct.Order, b, loadBits(ct.ByteLen, ptr))
		return nil

	case KindStruct:
		for i := range ct.Fields {
			f := &ct.Fields[i]
			if err := e.encode(f.Type, unsafe.Add(ptr, f.GoOffset), b[f.Offset:]); err != nil {
				return errors.AtPath(err, f.Name)
			}
		}
		return nil

	case KindArray:
		elem := ct.Elem
		for i := 0; i < ct.Len; i++ {
			p := unsafe.Add(ptr, uintptr(i)*elem.GoSize)
			if err := e.encode(elem, p, b[i*elem.ByteLen:]); err != nil {
				return err
			}
		}
		return nil

	case KindBitfield:
		return e.encodeBitfield(ct, ptr, b)

	case KindCustom:
		p := reflect.NewAt(ct.GoType, ptr).Interface().(bytestruct.Packer)
		p.WriteBytes(b[:ct.ByteLen:ct.ByteLen])
		return nil

	default:
		return errors.Unsupported(errors.PhaseEncode, nil, "layout kind "+ct.Kind.String())
	}
}

func (e *Encoder) encodeBitfield(ct *CompiledType, ptr unsafe.Pointer, b []byte) error {
	d := ct.Bits
	size := ct.ByteLen
	var raw uint64
	for i, off := range ct.BitOffsets {
		v := loadBits(size, unsafe.Add(ptr, off))
		mask := d.Mask(i)
		if e.strictBits && v&^mask != 0 {
			f := d.Field(i)
			return errors.Overflow(errors.PhaseEncode, []string{f.Name}, v, int(f.Bits))
		}
		raw |= (v & mask) << d.Shift(i)
	}
	field.PutBits(ct.Prim, ct.Order, b, raw)
	return nil
}

// valuePointer returns an addressable pointer to v's data. Non-pointer
// values are copied.
func valuePointer(v any, phase errors.Phase) (unsafe.Pointer, reflect.Type, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, nil, errors.NilPointer(phase, nil, "nil")
	}
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, nil, errors.NilPointer(phase, nil, rv.Type().String())
		}
		return rv.UnsafePointer(), rv.Type().Elem(), nil
	}
	tmp := reflect.New(rv.Type())
	tmp.Elem().Set(rv)
	return tmp.UnsafePointer(), rv.Type(), nil
}
