package schema

import (
	"fmt"
	"strings"

	"github.com/wippyai/bytestruct/bitfield"
	"github.com/wippyai/bytestruct/errors"
	"github.com/wippyai/bytestruct/field"
)

// Padding is the reserved name for filler members.
const Padding = bitfield.Padding

// Member is one laid-out member of a Struct.
type Member struct {
	Type   Type
	Name   string
	Offset int
	Len    int
}

// Struct is an immutable, validated layout. It is safe for concurrent use.
type Struct struct {
	index   map[string]int
	name    string
	members []Member
	size    int
	order   field.Order
}

func (s *Struct) Name() string { return s.name }
func (s *Struct) Order() field.Order { return s.order }
func (s *Struct) Members() []Member { return append([]Member(nil), s.members...) }

func (s *Struct) ByteLen() int {
	if s == nil {
		return -1
	}
	return s.size
}

func (s *Struct) validate(path []string) error {
	if s == nil {
		return errors.Layout(path, "struct", "struct is nil")
	}
	return nil
}

// Member returns the member with the given name. Padding cannot be looked up.
func (s *Struct) Member(name string) (Member, bool) {
	i, ok := s.index[name]
	if !ok {
		return Member{}, false
	}
	return s.members[i], true
}

// Read decodes the front of b.
func (s *Struct) Read(b []byte) (Value, error) {
	if len(b) < s.size {
		return nil, errors.ShortBuffer(errors.PhaseDecode, nil, s.size, len(b))
	}
	return s.decode(b, s.order).(Value), nil
}

// Write encodes v at the front of b. Every non-padding member must be
// present with a value of the matching Go type. Unknown keys are ignored.
// On error b may be partially written.
func (s *Struct) Write(v Value, b []byte) error {
	if len(b) < s.size {
		return errors.ShortBuffer(errors.PhaseEncode, nil, s.size, len(b))
	}
	return s.encode(v, s.order, b, nil)
}

// Marshal encodes v into a new buffer of exactly ByteLen bytes.
func (s *Struct) Marshal(v Value) ([]byte, error) {
	b := make([]byte, s.size)
	if err := s.Write(v, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Zero returns a Value with every member set to its zero value.
func (s *Struct) Zero() Value {
	return s.zero().(Value)
}

func (s *Struct) decode(b []byte, _ field.Order) any {
	v := make(Value, len(s.index))
	for _, m := range s.members {
		if m.Name == Padding {
			continue
		}
		v[m.Name] = m.Type.decode(b[m.Offset:], s.order)
	}
	return v
}

func (s *Struct) encode(v any, _ field.Order, b []byte, path []string) error {
	var sv Value
	switch x := v.(type) {
	case Value:
		sv = x
	case map[string]any:
		sv = x
	default:
		return errors.TypeMismatch(errors.PhaseEncode, path, typeName(v), s.name)
	}

	for _, m := range s.members {
		dst := b[m.Offset : m.Offset+m.Len]
		if m.Name == Padding {
			clear(dst)
			continue
		}
		mv, ok := sv[m.Name]
		if !ok {
			return errors.FieldMissing(errors.PhaseEncode, path, m.Name)
		}
		if err := m.Type.encode(mv, s.order, dst, child(path, m.Name)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Struct) zero() any {
	v := make(Value, len(s.index))
	for _, m := range s.members {
		if m.Name != Padding {
			v[m.Name] = m.Type.zero()
		}
	}
	return v
}

func (s *Struct) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.name
}

// Describe renders the member table, one line per member, nested structs
// indented beneath their parent.
func (s *Struct) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d bytes, %s)\n", s.name, s.size, s.order)
	s.describe(&b, 0, 1)
	return strings.TrimSuffix(b.String(), "\n")
}

func (s *Struct) describe(b *strings.Builder, base, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, m := range s.members {
		fmt.Fprintf(b, "%s%4d  %-24s %s\n", indent, base+m.Offset, m.Name, m.Type)
		if nested, ok := m.Type.(*Struct); ok {
			nested.describe(b, base+m.Offset, depth+1)
		}
	}
}
