// Package field converts single fixed-width primitives to and from bytes.
//
// A primitive is described by a Kind (bit width and numeric class) and an
// Order (byte order on the wire):
//
//	Kind    Size    Go type
//	────────────────────────
//	u8/i8   1       uint8/int8
//	u16/i16 2       uint16/int16
//	u32/i32 4       uint32/int32
//	u64/i64 8       uint64/int64
//	f32     4       float32
//	f64     8       float64
//
// Every bit pattern of the right length decodes to a value and every value
// encodes to exactly one bit pattern, so reads and writes never fail once the
// buffer is long enough. Floats travel as their IEEE-754 bit pattern; NaN
// payloads survive a round trip.
//
// Big-endian puts the most significant byte first, little-endian the least
// significant byte first. Single-byte kinds ignore the order.
package field
