package types

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/wippyai/bytestruct/bitfield"
	"github.com/wippyai/bytestruct/field"
)

type CompiledType struct {
	GoType     reflect.Type
	Elem       *CompiledType
	Bits       *bitfield.Descriptor
	Fields     []Field
	BitOffsets []uintptr
	GoSize     uintptr
	ByteLen    int
	Len        int
	Kind       Kind
	Prim       field.Kind
	Order      field.Order
}

type Field struct {
	Type     *CompiledType
	Name     string
	GoOffset uintptr
	Offset   int
}

// TypeName is the short layout name used in errors and dumps.
func (ct *CompiledType) TypeName() string {
	switch ct.Kind {
	case KindPrimitive:
		return field.Codec{Kind: ct.Prim, Order: ct.Order}.String()
	case KindArray:
		return "[" + strconv.Itoa(ct.Len) + "]" + ct.Elem.TypeName()
	case KindBitfield:
		if ct.Bits.ByteLen() == 1 {
			return ct.Bits.String()
		}
		return ct.Bits.String() + ct.Order.String()
	case KindCustom:
		return ct.GoType.String() + "(" + strconv.Itoa(ct.ByteLen) + " bytes)"
	default:
		return ct.GoType.String()
	}
}

// Field returns the member with the given Go field name.
func (ct *CompiledType) Field(name string) (Field, bool) {
	for _, f := range ct.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// String renders the member table, one line per member, nested structs
// indented beneath their parent.
func (ct *CompiledType) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d bytes, %s)\n", ct.TypeName(), ct.ByteLen, ct.Order)
	ct.describe(&b, 0, 1)
	return strings.TrimSuffix(b.String(), "\n")
}

func (ct *CompiledType) describe(b *strings.Builder, base, depth int) {
	if ct.Kind != KindStruct {
		return
	}
	indent := strings.Repeat("  ", depth)
	for _, f := range ct.Fields {
		fmt.Fprintf(b, "%s%4d  %-24s %s\n", indent, base+f.Offset, f.Name, f.Type.TypeName())
		f.Type.describe(b, base+f.Offset, depth+1)
	}
}
