package field

import (
	"strings"

	"github.com/wippyai/bytestruct/errors"
)

type Kind uint8

const (
	U8 Kind = iota
	I8
	U16
	I16
	U32
	I32
	U64
	I64
	F32
	F64
)

var kindNames = [...]string{
	U8:  "u8",
	I8:  "i8",
	U16: "u16",
	I16: "i16",
	U32: "u32",
	I32: "i32",
	U64: "u64",
	I64: "i64",
	F32: "f32",
	F64: "f64",
}

var kindSizes = [...]int{
	U8:  1,
	I8:  1,
	U16: 2,
	I16: 2,
	U32: 4,
	I32: 4,
	U64: 8,
	I64: 8,
	F32: 4,
	F64: 8,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// Size returns the encoded width in bytes.
func (k Kind) Size() int {
	if int(k) < len(kindSizes) {
		return kindSizes[k]
	}
	return 0
}

// Bits returns the encoded width in bits.
func (k Kind) Bits() int {
	return k.Size() * 8
}

func (k Kind) IsUnsigned() bool {
	switch k {
	case U8, U16, U32, U64:
		return true
	}
	return false
}

func (k Kind) IsSigned() bool {
	switch k {
	case I8, I16, I32, I64:
		return true
	}
	return false
}

func (k Kind) IsFloat() bool {
	return k == F32 || k == F64
}

// Unsigned returns the unsigned kind of the given width in bits.
func Unsigned(bits int) (Kind, bool) {
	switch bits {
	case 8:
		return U8, true
	case 16:
		return U16, true
	case 32:
		return U32, true
	case 64:
		return U64, true
	}
	return 0, false
}

// ParseKind accepts the names printed by Kind.String, plus "s8".."s64" as
// aliases for the signed kinds.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(name, "s") && len(name) > 1 && name[1] >= '0' && name[1] <= '9' {
		name = "i" + name[1:]
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, errors.New(errors.PhaseParse, errors.KindInvalidInput).
		Detail("unknown primitive kind %q", s).
		Build()
}
