package schema

import (
	"io"
	"strconv"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/bytestruct/bitfield"
	"github.com/wippyai/bytestruct/errors"
	"github.com/wippyai/bytestruct/field"
)

// maxFlags is the widest flags set that fits one backing integer.
const maxFlags = 64

// LoadWIT decodes a WIT resolve in the JSON form emitted by
// `wasm-tools component wit --json`.
func LoadWIT(r io.Reader) (*wit.Resolve, error) {
	res, err := wit.DecodeJSON(r)
	if err != nil {
		return nil, errors.ParseFailed("WIT resolve", err)
	}
	return res, nil
}

// LookupWIT returns the named type definition in res. When several
// interfaces define the same name, the first is returned.
func LookupWIT(res *wit.Resolve, name string) (*wit.TypeDef, error) {
	for _, td := range res.TypeDefs {
		if td.Name != nil && *td.Name == name {
			return td, nil
		}
	}
	return nil, errors.NotFound(errors.PhaseParse, "WIT type", name)
}

// WITNames lists the named type definitions in res that have a fixed layout.
func WITNames(res *wit.Resolve) []string {
	var names []string
	for _, td := range res.TypeDefs {
		if td.Name == nil {
			continue
		}
		if _, err := FromWIT(td, field.LittleEndian); err == nil {
			names = append(names, *td.Name)
		}
	}
	return names
}

// FromWIT derives the layout of t. Records and tuples become *Struct values
// built with order.
func FromWIT(t wit.Type, order field.Order) (Type, error) {
	return fromWIT(t, order, nil)
}

func fromWIT(t wit.Type, order field.Order, path []string) (Type, error) {
	switch t := t.(type) {
	case wit.Bool:
		return Prim(field.U8), nil
	case wit.U8:
		return Prim(field.U8), nil
	case wit.S8:
		return Prim(field.I8), nil
	case wit.U16:
		return Prim(field.U16), nil
	case wit.S16:
		return Prim(field.I16), nil
	case wit.U32:
		return Prim(field.U32), nil
	case wit.S32:
		return Prim(field.I32), nil
	case wit.U64:
		return Prim(field.U64), nil
	case wit.S64:
		return Prim(field.I64), nil
	case wit.F32:
		return Prim(field.F32), nil
	case wit.F64:
		return Prim(field.F64), nil
	case wit.Char:
		return Prim(field.U32), nil
	case *wit.TypeDef:
		return fromTypeDef(t, order, path)
	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			Detail("WIT type %T has no fixed layout", t).
			Build()
	}
}

func fromTypeDef(td *wit.TypeDef, order field.Order, path []string) (Type, error) {
	name := "anonymous"
	if td.Name != nil {
		name = *td.Name
	}

	switch kind := td.Kind.(type) {
	case *wit.Record:
		b := NewBuilder(name, order)
		for _, f := range kind.Fields {
			ft, err := fromWIT(f.Type, order, child(path, f.Name))
			if err != nil {
				return nil, err
			}
			b.Field(f.Name, ft)
		}
		return b.Build()

	case *wit.Tuple:
		if td.Name == nil {
			name = "tuple"
		}
		b := NewBuilder(name, order)
		for i, et := range kind.Types {
			idx := strconv.Itoa(i)
			ft, err := fromWIT(et, order, child(path, idx))
			if err != nil {
				return nil, err
			}
			b.Field(idx, ft)
		}
		return b.Build()

	case *wit.Flags:
		return flagsType(kind, path)

	case *wit.Enum:
		switch n := len(kind.Cases); {
		case n <= 1<<8:
			return Prim(field.U8), nil
		case n <= 1<<16:
			return Prim(field.U16), nil
		default:
			return Prim(field.U32), nil
		}

	case wit.Type:
		return fromWIT(kind, order, path)

	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			Type(name).
			Detail("WIT %T has no fixed layout", kind).
			Build()
	}
}

// flagsType packs one bit per flag, in declaration order from the least
// significant bit, into the narrowest unsigned integer that holds them.
func flagsType(f *wit.Flags, path []string) (Type, error) {
	n := len(f.Flags)
	if n == 0 || n > maxFlags {
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			Value(n).
			Detail("flags with %d members cannot be packed into one integer", n).
			Build()
	}

	var base field.Kind
	for _, bits := range []int{8, 16, 32, 64} {
		if n <= bits {
			base, _ = field.Unsigned(bits)
			break
		}
	}

	fields := make([]bitfield.Field, 0, n+1)
	for _, flag := range f.Flags {
		fields = append(fields, bitfield.Field{Name: flag.Name, Bits: 1})
	}
	if pad := base.Bits() - n; pad > 0 {
		fields = append(fields, bitfield.Field{Name: bitfield.Padding, Bits: uint8(pad)})
	}

	desc, err := bitfield.New(base, fields...)
	if err != nil {
		return nil, errors.AtPath(err, path...)
	}
	return Bits(desc), nil
}
