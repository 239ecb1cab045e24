package schema

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/bytestruct/bitfield"
	bserrors "github.com/wippyai/bytestruct/errors"
	"github.com/wippyai/bytestruct/field"
)

var colorTableInfo = bitfield.MustNew(field.U8,
	bitfield.Field{Name: "global_color_table_flag", Bits: 1},
	bitfield.Field{Name: "color_resolution", Bits: 3},
	bitfield.Field{Name: "sort_flag", Bits: 1},
	bitfield.Field{Name: "global_color_table_size", Bits: 3},
)

func screenDescriptor(t *testing.T) *Struct {
	t.Helper()
	s, err := NewBuilder("logical_screen_descriptor", field.LittleEndian).
		Field("width", Prim(field.U16)).
		Field("height", Prim(field.U16)).
		Field("color_table_info", Bits(colorTableInfo)).
		Field("background_color_index", Prim(field.U8)).
		Field("pixel_aspect_ratio", Prim(field.U8)).
		Build()
	require.NoError(t, err)
	return s
}

// testStruct mirrors a little-endian record embedding a big-endian
// sub-record with a bitfield, followed by an array.
func testStruct(t *testing.T) *Struct {
	t.Helper()
	bits := bitfield.MustNew(field.U16,
		bitfield.Field{Name: "x", Bits: 4},
		bitfield.Field{Name: "y", Bits: 8},
		bitfield.Field{Name: "z", Bits: 4},
	)
	sub := NewBuilder("sub", field.BigEndian).
		Field("b", Prim(field.U16)).
		Field("c", Bits(bits)).
		MustBuild()
	return NewBuilder("test", field.LittleEndian).
		Field("a", Prim(field.U8)).
		Field("s", sub).
		Field("d", Array(Prim(field.U16), 3)).
		Field("e", Prim(field.U32)).
		MustBuild()
}

func TestStruct_GIF(t *testing.T) {
	s := screenDescriptor(t)
	require.Equal(t, 7, s.ByteLen())

	data := []byte{0x40, 0x01, 0xC8, 0x00, 0xF7, 0x00, 0x00}
	v, err := s.Read(data)
	require.NoError(t, err)

	assert.Equal(t, uint16(320), v["width"])
	assert.Equal(t, uint16(200), v["height"])
	assert.Equal(t, bitfield.Value{
		"global_color_table_flag": 1,
		"color_resolution":        3,
		"sort_flag":               1,
		"global_color_table_size": 7,
	}, v["color_table_info"])

	out, err := s.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestStruct_NestedOrder(t *testing.T) {
	s := testStruct(t)
	require.Equal(t, 15, s.ByteLen())

	v := Value{
		"a": uint8(0x12),
		"s": Value{"b": uint16(0x3456), "c": bitfield.Value{"x": 0xF, "y": 0x8F, "z": 0x7}},
		"d": []any{uint16(0x1020), uint16(0x3040), uint16(0x5060)},
		"e": uint32(0x9ABCDEF0),
	}
	out, err := s.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78, 0xff, 0x20, 0x10, 0x40, 0x30, 0x60, 0x50, 0xf0, 0xde, 0xbc, 0x9a}, out)

	got, err := s.Read([]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd})
	require.NoError(t, err)
	assert.Equal(t, Value{
		"a": uint8(0),
		"s": Value{"b": uint16(0x1122), "c": bitfield.Value{"x": 0x4, "y": 0x34, "z": 0x3}},
		"d": []any{uint16(0x5544), uint16(0x7766), uint16(0x9988)},
		"e": uint32(0xddccbbaa),
	}, got)
}

func TestStruct_Members(t *testing.T) {
	s := testStruct(t)
	ms := s.Members()
	require.Len(t, ms, 4)

	wantOffsets := []int{0, 1, 5, 11}
	wantLens := []int{1, 4, 6, 4}
	for i, m := range ms {
		assert.Equal(t, wantOffsets[i], m.Offset, m.Name)
		assert.Equal(t, wantLens[i], m.Len, m.Name)
	}

	m, ok := s.Member("d")
	require.True(t, ok)
	assert.Equal(t, "[3]u16", m.Type.String())
	_, ok = s.Member("missing")
	assert.False(t, ok)

	assert.Equal(t, "test", s.Name())
	assert.Equal(t, field.LittleEndian, s.Order())
	assert.Contains(t, s.Describe(), "test (15 bytes, le)")
	assert.Contains(t, s.Describe(), "      1  b")
}

func TestStruct_RoundTripRandom(t *testing.T) {
	s := testStruct(t)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 128; i++ {
		src := make([]byte, s.ByteLen())
		rng.Read(src)

		v, err := s.Read(src)
		require.NoError(t, err)
		dst, err := s.Marshal(v)
		require.NoError(t, err)
		require.Equal(t, src, dst)
	}
}

func TestStruct_OrderedMember(t *testing.T) {
	s := NewBuilder("mixed", field.LittleEndian).
		Field("le", Prim(field.U16)).
		Field("be", Ordered(Prim(field.U16), field.BigEndian)).
		Field("be_arr", Ordered(Array(Prim(field.U16), 2), field.BigEndian)).
		MustBuild()

	v, err := s.Read([]byte{1, 2, 1, 2, 0, 1, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0201), v["le"])
	assert.Equal(t, uint16(0x0102), v["be"])
	assert.Equal(t, []any{uint16(1), uint16(2)}, v["be_arr"])
	assert.Equal(t, "u16be", s.Members()[1].Type.String())
}

func TestStruct_OrderedNestedStruct(t *testing.T) {
	inner := NewBuilder("inner", field.LittleEndian).
		Field("x", Prim(field.U16)).
		MustBuild()
	s := NewBuilder("outer", field.LittleEndian).
		Field("in", Ordered(inner, field.BigEndian)).
		Field("arr", Ordered(Array(inner, 2), field.BigEndian)).
		Field("plain", inner).
		MustBuild()

	v := Value{
		"in":    Value{"x": uint16(0x0102)},
		"arr":   []any{Value{"x": uint16(0x0304)}, Value{"x": uint16(0x0506)}},
		"plain": Value{"x": uint16(0x0708)},
	}
	out, err := s.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x08, 0x07}, out)

	got, err := s.Read(out)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	// The original struct keeps its own order.
	assert.Equal(t, field.LittleEndian, inner.Order())
	b, err := inner.Marshal(Value{"x": uint16(0x0102)})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x01}, b)
}

func TestStruct_Padding(t *testing.T) {
	s := NewBuilder("padded", field.LittleEndian).
		Field("a", Prim(field.U8)).
		Field(Padding, Array(Prim(field.U8), 3)).
		Field("b", Prim(field.U32)).
		Field(Padding, Prim(field.U8)).
		MustBuild()
	require.Equal(t, 9, s.ByteLen())

	v, err := s.Read([]byte{7, 0xEE, 0xEE, 0xEE, 1, 0, 0, 0, 0xEE})
	require.NoError(t, err)
	assert.Equal(t, Value{"a": uint8(7), "b": uint32(1)}, v)

	out, err := s.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 0, 0, 0, 1, 0, 0, 0, 0}, out)

	_, ok := s.Member(Padding)
	assert.False(t, ok)
}

func TestStruct_WriteErrors(t *testing.T) {
	s := testStruct(t)
	good := func() Value {
		return Value{
			"a": uint8(1),
			"s": Value{"b": uint16(2), "c": bitfield.Value{}},
			"d": []any{uint16(1), uint16(2), uint16(3)},
			"e": uint32(4),
		}
	}

	tests := []struct {
		name   string
		mutate func(Value)
		kind   bserrors.Kind
		path   []string
	}{
		{"missing member", func(v Value) { delete(v, "e") }, bserrors.KindFieldMissing, nil},
		{"wrong primitive type", func(v Value) { v["a"] = 1 }, bserrors.KindTypeMismatch, []string{"a"}},
		{"wrong width", func(v Value) { v["e"] = uint16(4) }, bserrors.KindTypeMismatch, []string{"e"}},
		{"short array", func(v Value) { v["d"] = []any{uint16(1)} }, bserrors.KindTypeMismatch, []string{"d"}},
		{"array element", func(v Value) { v["d"] = []any{uint16(1), "x", uint16(3)} }, bserrors.KindTypeMismatch, []string{"d", "[1]"}},
		{"nested missing", func(v Value) { delete(v["s"].(Value), "b") }, bserrors.KindFieldMissing, []string{"s"}},
		{"nested not a map", func(v Value) { v["s"] = 5 }, bserrors.KindTypeMismatch, []string{"s"}},
		{"bitfield not a map", func(v Value) { v["s"].(Value)["c"] = uint16(0) }, bserrors.KindTypeMismatch, []string{"s", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := good()
			tt.mutate(v)
			err := s.Write(v, make([]byte, 15))
			require.ErrorIs(t, err, &bserrors.Error{Phase: bserrors.PhaseEncode, Kind: tt.kind})

			var e *bserrors.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.path, e.Path)
		})
	}

	v := good()
	v["unknown"] = "ignored"
	require.NoError(t, s.Write(v, make([]byte, 15)))

	// Plain maps are accepted where Values are expected.
	v = good()
	v["s"] = map[string]any{"b": uint16(2), "c": map[string]uint64{"x": 1}}
	require.NoError(t, s.Write(v, make([]byte, 15)))
}

func TestStruct_ShortBuffer(t *testing.T) {
	s := screenDescriptor(t)

	_, err := s.Read(make([]byte, 6))
	require.ErrorIs(t, err, &bserrors.Error{Phase: bserrors.PhaseDecode, Kind: bserrors.KindShortBuffer})

	err = s.Write(s.Zero(), make([]byte, 6))
	require.ErrorIs(t, err, &bserrors.Error{Phase: bserrors.PhaseEncode, Kind: bserrors.KindShortBuffer})
}

func TestStruct_Zero(t *testing.T) {
	s := testStruct(t)
	z := s.Zero()

	assert.Equal(t, uint8(0), z["a"])
	assert.Equal(t, []any{uint16(0), uint16(0), uint16(0)}, z["d"])
	assert.Equal(t, bitfield.Value{"x": 0, "y": 0, "z": 0}, z["s"].(Value)["c"])

	out, err := s.Marshal(z)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 15), out)
}

func TestBuilder_Validation(t *testing.T) {
	tests := []struct {
		name  string
		build func() (*Struct, error)
	}{
		{"empty name", func() (*Struct, error) {
			return NewBuilder("s", field.LittleEndian).Field("", Prim(field.U8)).Build()
		}},
		{"nil type", func() (*Struct, error) {
			return NewBuilder("s", field.LittleEndian).Field("a", nil).Build()
		}},
		{"duplicate", func() (*Struct, error) {
			return NewBuilder("s", field.LittleEndian).Field("a", Prim(field.U8)).Field("a", Prim(field.U8)).Build()
		}},
		{"negative array", func() (*Struct, error) {
			return NewBuilder("s", field.LittleEndian).Field("a", Array(Prim(field.U8), -1)).Build()
		}},
		{"nil array element", func() (*Struct, error) {
			return NewBuilder("s", field.LittleEndian).Field("a", Array(nil, 2)).Build()
		}},
		{"invalid kind", func() (*Struct, error) {
			return NewBuilder("s", field.LittleEndian).Field("a", Prim(field.Kind(99))).Build()
		}},
		{"nil bitfield", func() (*Struct, error) {
			return NewBuilder("s", field.LittleEndian).Field("a", Bits(nil)).Build()
		}},
		{"nil ordered", func() (*Struct, error) {
			return NewBuilder("s", field.LittleEndian).Field("a", Ordered(nil, field.BigEndian)).Build()
		}},
		{"nil struct", func() (*Struct, error) {
			return NewBuilder("s", field.LittleEndian).Field("a", (*Struct)(nil)).Build()
		}},
		{"array of nil struct", func() (*Struct, error) {
			return NewBuilder("s", field.LittleEndian).Field("a", Array((*Struct)(nil), 2)).Build()
		}},
		{"ordered nil struct", func() (*Struct, error) {
			return NewBuilder("s", field.LittleEndian).Field("a", Ordered((*Struct)(nil), field.BigEndian)).Build()
		}},
		{"oversized", func() (*Struct, error) {
			return NewBuilder("s", field.LittleEndian).
				Field("a", Array(Prim(field.U64), 1<<28)).
				Field("b", Array(Prim(field.U64), 1<<28)).
				Build()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			require.ErrorIs(t, err, &bserrors.Error{Phase: bserrors.PhaseCompile, Kind: bserrors.KindLayout})
		})
	}

	assert.Panics(t, func() {
		NewBuilder("s", field.LittleEndian).Field("", Prim(field.U8)).MustBuild()
	})
}

func TestBuilder_EmptyStruct(t *testing.T) {
	s, err := NewBuilder("empty", field.BigEndian).Build()
	require.NoError(t, err)
	assert.Equal(t, 0, s.ByteLen())

	v, err := s.Read(nil)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestValue_Clone(t *testing.T) {
	orig := Value{
		"n":    uint8(1),
		"arr":  []any{uint16(1), Value{"x": uint8(2)}},
		"bits": bitfield.Value{"f": 1},
		"sub":  Value{"y": uint32(3)},
	}
	cp := orig.Clone()
	require.Equal(t, orig, cp)

	cp["arr"].([]any)[1].(Value)["x"] = uint8(9)
	cp["bits"].(bitfield.Value)["f"] = 0
	cp["sub"].(Value)["y"] = uint32(0)

	assert.Equal(t, uint8(2), orig["arr"].([]any)[1].(Value)["x"])
	assert.Equal(t, uint64(1), orig["bits"].(bitfield.Value)["f"])
	assert.Equal(t, uint32(3), orig["sub"].(Value)["y"])

	assert.Nil(t, Value(nil).Clone())
}
