package field

import (
	"encoding/binary"
	"strings"

	"github.com/wippyai/bytestruct/errors"
)

// Order is the byte order of a multi-byte primitive.
type Order uint8

const (
	LittleEndian Order = iota
	BigEndian
)

func (o Order) String() string {
	if o == BigEndian {
		return "be"
	}
	return "le"
}

// ByteOrder returns the encoding/binary counterpart of o.
func (o Order) ByteOrder() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "le", "little", "little-endian", "littleendian":
		return LittleEndian, nil
	case "be", "big", "big-endian", "bigendian":
		return BigEndian, nil
	}
	return 0, errors.New(errors.PhaseParse, errors.KindInvalidInput).
		Detail("unknown byte order %q", s).
		Build()
}
