package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/bytestruct/bitfield"
	bserrors "github.com/wippyai/bytestruct/errors"
	"github.com/wippyai/bytestruct/field"
)

func named(name string, kind wit.TypeDefKind) *wit.TypeDef {
	return &wit.TypeDef{Name: &name, Kind: kind}
}

func TestFromWIT_Primitives(t *testing.T) {
	tests := []struct {
		in   wit.Type
		want field.Kind
	}{
		{wit.Bool{}, field.U8},
		{wit.U8{}, field.U8},
		{wit.S8{}, field.I8},
		{wit.U16{}, field.U16},
		{wit.S16{}, field.I16},
		{wit.U32{}, field.U32},
		{wit.S32{}, field.I32},
		{wit.U64{}, field.U64},
		{wit.S64{}, field.I64},
		{wit.F32{}, field.F32},
		{wit.F64{}, field.F64},
		{wit.Char{}, field.U32},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			got, err := FromWIT(tt.in, field.LittleEndian)
			require.NoError(t, err)
			assert.Equal(t, Prim(tt.want), got)
		})
	}
}

func TestFromWIT_Record(t *testing.T) {
	point := named("point", &wit.Record{Fields: []wit.Field{
		{Name: "x", Type: wit.S32{}},
		{Name: "y", Type: wit.S32{}},
	}})
	rect := named("rect", &wit.Record{Fields: []wit.Field{
		{Name: "origin", Type: point},
		{Name: "size", Type: &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.U16{}, wit.U16{}}}}},
		{Name: "visible", Type: wit.Bool{}},
	}})

	typ, err := FromWIT(rect, field.BigEndian)
	require.NoError(t, err)
	s, ok := typ.(*Struct)
	require.True(t, ok)

	assert.Equal(t, "rect", s.Name())
	assert.Equal(t, 13, s.ByteLen())

	size, ok := s.Member("size")
	require.True(t, ok)
	tuple := size.Type.(*Struct)
	assert.Equal(t, "tuple", tuple.Name())
	_, ok = tuple.Member("1")
	assert.True(t, ok)

	v, err := s.Read([]byte{0, 0, 0, 1, 0xFF, 0xFF, 0xFF, 0xFE, 0, 10, 0, 20, 1})
	require.NoError(t, err)
	assert.Equal(t, Value{
		"origin":  Value{"x": int32(1), "y": int32(-2)},
		"size":    Value{"0": uint16(10), "1": uint16(20)},
		"visible": uint8(1),
	}, v)
}

func TestFromWIT_Flags(t *testing.T) {
	perms := named("perms", &wit.Flags{Flags: []wit.Flag{{Name: "read"}, {Name: "write"}, {Name: "exec"}}})

	typ, err := FromWIT(perms, field.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, 1, typ.ByteLen())
	assert.Equal(t, "bitfield<u8>{read:1, write:1, exec:1, _:5}", typ.String())

	s := NewBuilder("file", field.LittleEndian).Field("perms", typ).MustBuild()
	v, err := s.Read([]byte{0x05})
	require.NoError(t, err)
	assert.Equal(t, bitfield.Value{"read": 1, "write": 0, "exec": 1}, v["perms"])

	var many []wit.Flag
	for i := 0; i < 9; i++ {
		many = append(many, wit.Flag{Name: "f" + string(rune('a'+i))})
	}
	typ, err = FromWIT(named("many", &wit.Flags{Flags: many}), field.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, 2, typ.ByteLen())

	_, err = FromWIT(named("none", &wit.Flags{}), field.LittleEndian)
	require.ErrorIs(t, err, &bserrors.Error{Phase: bserrors.PhaseCompile, Kind: bserrors.KindUnsupported})
}

func TestFromWIT_Enum(t *testing.T) {
	small := named("color", &wit.Enum{Cases: []wit.EnumCase{{Name: "red"}, {Name: "green"}}})
	typ, err := FromWIT(small, field.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, Prim(field.U8), typ)

	cases := make([]wit.EnumCase, 300)
	for i := range cases {
		cases[i] = wit.EnumCase{Name: "c"}
	}
	typ, err = FromWIT(named("big", &wit.Enum{Cases: cases}), field.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, Prim(field.U16), typ)
}

func TestFromWIT_Alias(t *testing.T) {
	typ, err := FromWIT(&wit.TypeDef{Kind: wit.U32{}}, field.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, Prim(field.U32), typ)

	inner := named("inner", &wit.Record{Fields: []wit.Field{{Name: "a", Type: wit.U8{}}}})
	typ, err = FromWIT(&wit.TypeDef{Kind: inner}, field.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, 1, typ.ByteLen())
}

func TestFromWIT_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		typ  wit.Type
	}{
		{"string", wit.String{}},
		{"list", &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}},
		{"option", &wit.TypeDef{Kind: &wit.Option{Type: wit.U8{}}}},
		{"record with string", named("msg", &wit.Record{Fields: []wit.Field{
			{Name: "id", Type: wit.U32{}},
			{Name: "text", Type: wit.String{}},
		}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromWIT(tt.typ, field.LittleEndian)
			require.ErrorIs(t, err, &bserrors.Error{Phase: bserrors.PhaseCompile, Kind: bserrors.KindUnsupported})
		})
	}

	_, err := FromWIT(named("msg", &wit.Record{Fields: []wit.Field{{Name: "text", Type: wit.String{}}}}), field.LittleEndian)
	var e *bserrors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []string{"text"}, e.Path)
}

func TestLookupWIT(t *testing.T) {
	res := &wit.Resolve{TypeDefs: []*wit.TypeDef{
		{Kind: wit.U8{}},
		named("point", &wit.Record{Fields: []wit.Field{{Name: "x", Type: wit.U8{}}}}),
		named("label", &wit.Record{Fields: []wit.Field{{Name: "s", Type: wit.String{}}}}),
	}}

	td, err := LookupWIT(res, "point")
	require.NoError(t, err)
	assert.Equal(t, "point", *td.Name)

	_, err = LookupWIT(res, "nope")
	require.ErrorIs(t, err, &bserrors.Error{Phase: bserrors.PhaseParse, Kind: bserrors.KindNotFound})

	assert.Equal(t, []string{"point"}, WITNames(res))
}

func TestLoadWIT_Invalid(t *testing.T) {
	_, err := LoadWIT(strings.NewReader("{not json"))
	require.ErrorIs(t, err, &bserrors.Error{Phase: bserrors.PhaseParse, Kind: bserrors.KindInvalidInput})
}
