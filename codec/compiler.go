package codec

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/bytestruct"
	"github.com/wippyai/bytestruct/bitfield"
	"github.com/wippyai/bytestruct/errors"
	"github.com/wippyai/bytestruct/field"
	"github.com/wippyai/bytestruct/internal/layout"
)

// Struct tag keys.
const (
	TagName = "bytestruct"
	TagBits = "bits"
)

var (
	packerType  = reflect.TypeFor[bytestruct.Packer]()
	ordererType = reflect.TypeFor[bytestruct.Orderer]()
)

type Compiler struct {
	cache sync.Map // cacheKey -> *CompiledType
}

type cacheKey struct {
	goType reflect.Type
	order  field.Order
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile returns the layout of goType with order as the root byte order.
// Pointer types are dereferenced once. The root type is always compiled
// structurally, even if it implements bytestruct.Packer, so a Packer may
// delegate to its own codec.
func (c *Compiler) Compile(goType reflect.Type, order field.Order) (*CompiledType, error) {
	if goType == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindNilPointer).
			Detail("Go type cannot be nil").
			Build()
	}
	if goType.Kind() == reflect.Ptr {
		goType = goType.Elem()
	}

	key := cacheKey{goType: goType, order: order}
	if cached, ok := c.cache.Load(key); ok {
		return cached.(*CompiledType), nil
	}

	ct, err := c.compile(goType, order, nil, true)
	if err != nil {
		return nil, err
	}

	actual, loaded := c.cache.LoadOrStore(key, ct)
	if !loaded {
		Logger().Debug("layout compiled",
			zap.String("type", goType.String()),
			zap.Stringer("order", order),
			zap.Int("byte_len", ct.ByteLen))
	}
	return actual.(*CompiledType), nil
}

func (c *Compiler) compile(goType reflect.Type, order field.Order, path []string, root bool) (*CompiledType, error) {
	if !root && reflect.PointerTo(goType).Implements(packerType) {
		return c.compileCustom(goType, order, path)
	}

	if kind, ok := field.KindFor(goType); ok {
		return &CompiledType{
			GoType:  goType,
			GoSize:  goType.Size(),
			ByteLen: kind.Size(),
			Kind:    KindPrimitive,
			Prim:    kind,
			Order:   order,
		}, nil
	}

	switch goType.Kind() {
	case reflect.Array:
		return c.compileArray(goType, order, path)
	case reflect.Struct:
		n, err := bitsTagged(goType, path)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return c.compileBitfield(goType, order, path)
		}
		return c.compileStruct(goType, order, path)
	default:
		return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			GoType(goType.String()).
			Detail("%s has no fixed-size encoding", goType.Kind()).
			Build()
	}
}

func (c *Compiler) compileCustom(goType reflect.Type, order field.Order, path []string) (*CompiledType, error) {
	n := reflect.New(goType).Interface().(bytestruct.Packer).ByteLen()
	if n < 0 || n > layout.MaxSize {
		return nil, errors.New(errors.PhaseCompile, errors.KindLayout).
			Path(path...).
			GoType(goType.String()).
			Value(n).
			Detail("ByteLen() returned %d", n).
			Build()
	}
	return &CompiledType{
		GoType:  goType,
		GoSize:  goType.Size(),
		ByteLen: n,
		Kind:    KindCustom,
		Order:   order,
	}, nil
}

func (c *Compiler) compileArray(goType reflect.Type, order field.Order, path []string) (*CompiledType, error) {
	elemPath := append(append([]string{}, path...), "[elem]")
	elem, err := c.compile(goType.Elem(), order, elemPath, false)
	if err != nil {
		return nil, err
	}

	size, ok := layout.Array(elem.ByteLen, goType.Len())
	if !ok {
		return nil, errors.Layout(path, goType.String(), "array length overflows the maximum layout size")
	}

	return &CompiledType{
		GoType:  goType,
		GoSize:  goType.Size(),
		ByteLen: size,
		Elem:    elem,
		Len:     goType.Len(),
		Kind:    KindArray,
		Order:   order,
	}, nil
}

func (c *Compiler) compileStruct(goType reflect.Type, order field.Order, path []string) (*CompiledType, error) {
	if own, ok := ownOrder(goType); ok {
		order = own
	}

	fields := make([]CompiledField, 0, goType.NumField())
	sizes := make([]int, 0, goType.NumField())

	for i := 0; i < goType.NumField(); i++ {
		sf := goType.Field(i)
		tag, hasTag := sf.Tag.Lookup(TagName)
		if tag == "-" {
			continue
		}
		if !sf.IsExported() && sf.Name != "_" {
			continue
		}

		fieldPath := append(append([]string{}, path...), sf.Name)
		fieldOrder := order
		if hasTag && tag != "" {
			o, err := field.ParseOrder(tag)
			if err != nil {
				return nil, errors.New(errors.PhaseCompile, errors.KindInvalidInput).
					Path(fieldPath...).
					Cause(err).
					Detail("invalid %s tag %q", TagName, tag).
					Build()
			}
			fieldOrder = o
		}

		ft, err := c.compile(sf.Type, fieldOrder, fieldPath, false)
		if err != nil {
			return nil, err
		}

		fields = append(fields, CompiledField{
			Name:     sf.Name,
			GoOffset: sf.Offset,
			Type:     ft,
		})
		sizes = append(sizes, ft.ByteLen)
	}

	info, ok := layout.Calculate(sizes)
	if !ok {
		return nil, errors.Layout(path, goType.String(), "struct exceeds the maximum layout size")
	}
	for i := range fields {
		fields[i].Offset = info.Offsets[i]
	}

	return &CompiledType{
		GoType:  goType,
		GoSize:  goType.Size(),
		ByteLen: info.Size,
		Fields:  fields,
		Kind:    KindStruct,
		Order:   order,
	}, nil
}

func (c *Compiler) compileBitfield(goType reflect.Type, order field.Order, path []string) (*CompiledType, error) {
	if own, ok := ownOrder(goType); ok {
		order = own
	}

	var base field.Kind
	bits := make([]bitfield.Field, goType.NumField())
	offsets := make([]uintptr, goType.NumField())

	for i := 0; i < goType.NumField(); i++ {
		sf := goType.Field(i)
		fieldPath := append(append([]string{}, path...), sf.Name)

		kind, ok := field.KindFor(sf.Type)
		if !ok || !kind.IsUnsigned() {
			return nil, errors.TypeMismatch(errors.PhaseCompile, fieldPath, sf.Type.String(), "unsigned integer")
		}
		if i == 0 {
			base = kind
		} else if kind != base {
			return nil, errors.Layout(fieldPath, goType.String(),
				"bitfield members must share one kind, found "+kind.String()+" after "+base.String())
		}

		width, err := strconv.ParseUint(strings.TrimSpace(sf.Tag.Get(TagBits)), 10, 8)
		if err != nil {
			return nil, errors.New(errors.PhaseCompile, errors.KindInvalidInput).
				Path(fieldPath...).
				Cause(err).
				Detail("invalid %s tag %q", TagBits, sf.Tag.Get(TagBits)).
				Build()
		}

		// Blank fields are named "_", which is also bitfield.Padding.
		bits[i] = bitfield.Field{Name: sf.Name, Bits: uint8(width)}
		offsets[i] = sf.Offset
	}

	desc, err := bitfield.New(base, bits...)
	if err != nil {
		return nil, errors.AtPath(err, path...)
	}

	return &CompiledType{
		GoType:     goType,
		GoSize:     goType.Size(),
		ByteLen:    desc.ByteLen(),
		Bits:       desc,
		BitOffsets: offsets,
		Kind:       KindBitfield,
		Prim:       base,
		Order:      order,
	}, nil
}

// bitsTagged counts the fields carrying a bits tag. A struct is a bitfield
// when every field is tagged; partial tagging is an error.
func bitsTagged(goType reflect.Type, path []string) (int, error) {
	n := 0
	for i := 0; i < goType.NumField(); i++ {
		if _, ok := goType.Field(i).Tag.Lookup(TagBits); ok {
			n++
		}
	}
	if n > 0 && n != goType.NumField() {
		return 0, errors.New(errors.PhaseCompile, errors.KindLayout).
			Path(path...).
			GoType(goType.String()).
			Detail("%d of %d fields carry a %s tag, a bitfield needs all of them", n, goType.NumField(), TagBits).
			Build()
	}
	return n, nil
}

func ownOrder(goType reflect.Type) (field.Order, bool) {
	switch {
	case goType.Implements(ordererType):
		return reflect.Zero(goType).Interface().(bytestruct.Orderer).ByteOrder(), true
	case reflect.PointerTo(goType).Implements(ordererType):
		return reflect.New(goType).Interface().(bytestruct.Orderer).ByteOrder(), true
	default:
		return 0, false
	}
}
