package schema

import (
	"go.uber.org/zap"

	"github.com/wippyai/bytestruct/errors"
	"github.com/wippyai/bytestruct/field"
	"github.com/wippyai/bytestruct/internal/layout"
)

// Builder assembles a Struct member by member. Errors are reported by Build.
type Builder struct {
	name    string
	members []Member
	order   field.Order
}

func NewBuilder(name string, order field.Order) *Builder {
	return &Builder{name: name, order: order}
}

// Field appends a member. Use Padding as the name for filler bytes.
func (b *Builder) Field(name string, t Type) *Builder {
	b.members = append(b.members, Member{Name: name, Type: t})
	return b
}

// Build validates the members and computes their offsets.
func (b *Builder) Build() (*Struct, error) {
	s := &Struct{
		name:    b.name,
		order:   b.order,
		members: make([]Member, len(b.members)),
		index:   make(map[string]int, len(b.members)),
	}

	sizes := make([]int, len(b.members))
	for i, m := range b.members {
		path := []string{b.name, m.Name}
		if m.Name == "" {
			return nil, errors.Layout([]string{b.name}, b.name, "member name is empty")
		}
		if m.Type == nil {
			return nil, errors.Layout(path, b.name, "member type is nil")
		}
		if m.Name != Padding {
			if _, dup := s.index[m.Name]; dup {
				return nil, errors.Layout(path, b.name, "duplicate member name")
			}
			s.index[m.Name] = i
		}
		if err := m.Type.validate(path); err != nil {
			return nil, err
		}
		sizes[i] = m.Type.ByteLen()
	}

	info, ok := layout.Calculate(sizes)
	if !ok {
		return nil, errors.Layout([]string{b.name}, b.name, "struct exceeds the maximum layout size")
	}
	for i, m := range b.members {
		s.members[i] = Member{Name: m.Name, Type: m.Type, Offset: info.Offsets[i], Len: sizes[i]}
	}
	s.size = info.Size

	Logger().Debug("schema built",
		zap.String("name", s.name),
		zap.Stringer("order", s.order),
		zap.Int("members", len(s.members)),
		zap.Int("byte_len", s.size))
	return s, nil
}

// MustBuild is like Build but panics on an invalid layout.
func (b *Builder) MustBuild() *Struct {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
