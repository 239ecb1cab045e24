// Package bitfield packs several narrow unsigned values into one fixed-width
// unsigned integer.
//
// # Bit Order
//
// Fields are packed LSB-first: the first declared field occupies the least
// significant bits of the backing integer, the next field the bits directly
// above it, and so on. This is a logical convention independent of the byte
// order used to put the backing integer on the wire.
//
//	Descriptor u16 { x: 4, y: 8, _: 1, z: 3 }
//
//	| 15 14 13 | 12 | 11 10 9 8 7 6 5 4 | 3 2 1 0 |
//	|    z     | _  |         y         |    x    |
//
// # Validation
//
// The widths must add up to the width of the backing integer exactly. Padding
// is declared explicitly with a field named "_", which may appear more than
// once. Every other name must be unique. A Descriptor is validated once by New
// and is immutable afterwards.
//
// # Truncation
//
// Pack and Encode mask every value to its declared width. Writing 9 (0b1001)
// into a 3-bit field stores 1 (0b001). This is part of the contract: packing is
// total, and Unpack(Pack(v)) == v holds exactly when every value already fits.
// PackStrict reports an overflow error instead of masking.
package bitfield
