package bitfield

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/bytestruct/errors"
	"github.com/wippyai/bytestruct/field"
)

// Padding is the reserved name for unnamed filler bits.
const Padding = "_"

// Field is one named run of bits.
type Field struct {
	Name string
	Bits uint8
}

// Value maps field names to their unpacked values. Padding is never present.
type Value map[string]uint64

// Descriptor is a validated bitfield layout. It is safe for concurrent use.
type Descriptor struct {
	fields []Field
	shifts []uint8
	masks  []uint64
	index  map[string]int
	base   field.Kind
}

// New validates fields against the backing kind base, which must be an
// unsigned integer kind.
func New(base field.Kind, fields ...Field) (*Descriptor, error) {
	typ := "bitfield<" + base.String() + ">"
	if !base.IsUnsigned() {
		return nil, errors.Layout(nil, typ, "backing type must be an unsigned integer")
	}
	if len(fields) == 0 {
		return nil, errors.Layout(nil, typ, "at least one field is required")
	}

	d := &Descriptor{
		base:   base,
		fields: append([]Field(nil), fields...),
		shifts: make([]uint8, len(fields)),
		masks:  make([]uint64, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	total := 0
	for i, f := range fields {
		if f.Name == "" {
			return nil, errors.Layout([]string{"[" + strconv.Itoa(i) + "]"}, typ, "field name is empty")
		}
		if f.Bits == 0 {
			return nil, errors.Layout([]string{f.Name}, typ, "field width must be at least 1 bit")
		}
		if f.Name != Padding {
			if _, dup := d.index[f.Name]; dup {
				return nil, errors.Layout([]string{f.Name}, typ, "duplicate field name")
			}
			d.index[f.Name] = i
		}
		if total+int(f.Bits) > base.Bits() {
			break
		}
		d.shifts[i] = uint8(total)
		d.masks[i] = maskOf(f.Bits)
		total += int(f.Bits)
	}

	sum := 0
	for _, f := range fields {
		sum += int(f.Bits)
	}
	if sum != base.Bits() {
		return nil, errors.New(errors.PhaseCompile, errors.KindLayout).
			Type(typ).
			Value(sum).
			Detail("field widths sum to %d bits, backing integer has %d", sum, base.Bits()).
			Build()
	}

	return d, nil
}

// MustNew is like New but panics on an invalid layout. Intended for
// package-level layout declarations.
func MustNew(base field.Kind, fields ...Field) *Descriptor {
	d, err := New(base, fields...)
	if err != nil {
		panic(err)
	}
	return d
}

func maskOf(bits uint8) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return 1<<bits - 1
}

// Base returns the backing integer kind.
func (d *Descriptor) Base() field.Kind { return d.base }

// ByteLen returns the encoded size, the size of the backing integer.
func (d *Descriptor) ByteLen() int { return d.base.Size() }

// Len returns the number of declared fields, padding included.
func (d *Descriptor) Len() int { return len(d.fields) }

// Fields returns a copy of the declared fields.
func (d *Descriptor) Fields() []Field {
	return append([]Field(nil), d.fields...)
}

// Field returns the i-th declared field.
func (d *Descriptor) Field(i int) Field { return d.fields[i] }

// Index returns the position of the named field or -1.
func (d *Descriptor) Index(name string) int {
	if i, ok := d.index[name]; ok {
		return i
	}
	return -1
}

// Shift returns the bit position of the i-th field's least significant bit.
func (d *Descriptor) Shift(i int) uint8 { return d.shifts[i] }

// Mask returns the unshifted mask of the i-th field.
func (d *Descriptor) Mask(i int) uint64 { return d.masks[i] }

// Pack ORs every value, masked to its field width, into position. Missing
// trailing values are zero and extra values are ignored.
func (d *Descriptor) Pack(vals []uint64) uint64 {
	var raw uint64
	n := min(len(vals), len(d.fields))
	for i := 0; i < n; i++ {
		raw |= (vals[i] & d.masks[i]) << d.shifts[i]
	}
	return raw
}

// PackStrict is Pack without truncation: a value wider than its field is an
// overflow error.
func (d *Descriptor) PackStrict(vals []uint64) (uint64, error) {
	n := min(len(vals), len(d.fields))
	for i := 0; i < n; i++ {
		if vals[i]&^d.masks[i] != 0 {
			return 0, errors.Overflow(errors.PhaseEncode, []string{d.fields[i].Name}, vals[i], int(d.fields[i].Bits))
		}
	}
	return d.Pack(vals), nil
}

// Unpack splits raw into one value per declared field.
func (d *Descriptor) Unpack(raw uint64) []uint64 {
	vals := make([]uint64, len(d.fields))
	d.UnpackInto(raw, vals)
	return vals
}

// UnpackInto is Unpack without allocation. dst must hold Len() values.
func (d *Descriptor) UnpackInto(raw uint64, dst []uint64) {
	for i := range d.fields {
		dst[i] = (raw >> d.shifts[i]) & d.masks[i]
	}
}

// Encode packs a Value. Absent names and padding encode as zero, unknown
// names are ignored.
func (d *Descriptor) Encode(v Value) uint64 {
	var raw uint64
	for i, f := range d.fields {
		if f.Name == Padding {
			continue
		}
		raw |= (v[f.Name] & d.masks[i]) << d.shifts[i]
	}
	return raw
}

// Decode unpacks raw into a Value.
func (d *Descriptor) Decode(raw uint64) Value {
	v := make(Value, len(d.index))
	for i, f := range d.fields {
		if f.Name == Padding {
			continue
		}
		v[f.Name] = (raw >> d.shifts[i]) & d.masks[i]
	}
	return v
}

// Read decodes the backing integer from the front of b and unpacks it.
func (d *Descriptor) Read(b []byte, order field.Order) ([]uint64, error) {
	if len(b) < d.ByteLen() {
		return nil, errors.ShortBuffer(errors.PhaseDecode, nil, d.ByteLen(), len(b))
	}
	return d.Unpack(field.Bits(d.base, order, b)), nil
}

// Write packs vals, masking, and encodes the result at the front of b.
func (d *Descriptor) Write(vals []uint64, order field.Order, b []byte) error {
	if len(b) < d.ByteLen() {
		return errors.ShortBuffer(errors.PhaseEncode, nil, d.ByteLen(), len(b))
	}
	field.PutBits(d.base, order, b, d.Pack(vals))
	return nil
}

// String renders the layout as "bitfield<u8>{a:1, b:3, _:4}".
func (d *Descriptor) String() string {
	var b strings.Builder
	b.WriteString("bitfield<")
	b.WriteString(d.base.String())
	b.WriteString(">{")
	for i, f := range d.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s:%d", f.Name, f.Bits)
	}
	b.WriteByte('}')
	return b.String()
}
