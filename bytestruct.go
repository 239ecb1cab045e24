package bytestruct

import "github.com/wippyai/bytestruct/field"

// Packer is implemented by member types that encode themselves. The codec
// hands WriteBytes and ReadBytes a slice of exactly ByteLen bytes.
//
// ByteLen must be constant for a type and is queried once, on a zero value,
// when the enclosing layout is compiled.
type Packer interface {
	ByteLen() int
	WriteBytes(b []byte)
	ReadBytes(b []byte)
}

// Orderer is implemented by struct types that fix their own byte order. An
// Orderer's members use its order regardless of the enclosing layout. For a
// bitfield struct the order applies to the backing integer.
type Orderer interface {
	ByteOrder() field.Order
}
