// Package codec packs Go values into fixed-layout byte sequences.
//
// A Go type is compiled once into a CompiledType holding the byte offset,
// byte length and codec of every member. Encoding and decoding then walk the
// compiled layout and move bytes through unsafe field offsets without further
// reflection.
//
// # Layout
//
// Members are laid out in declaration order with no alignment:
//
//	Go type                 Encoded as                  Length
//	────────────────────────────────────────────────────────────
//	uint8/int8              u8/i8                       1
//	uint16/int16            u16/i16                     2
//	uint32/int32/float32    u32/i32/f32                 4
//	uint64/int64/float64    u64/i64/f64                 8
//	[N]T                    N elements of T             N*len(T)
//	struct                  members back to back        sum
//	struct, bits tags       one unsigned integer        size of base
//	*T implements Packer    T.WriteBytes/ReadBytes      T.ByteLen()
//
// Named types (type Color uint8) encode as their underlying kind. bool, int,
// uint, uintptr, string, slices, maps, pointers and interfaces are rejected
// at compile time.
//
// # Tags
//
//	Field uint16 `bytestruct:"be"`   // member byte order
//	Skip  string `bytestruct:"-"`    // not part of the layout
//	_     [2]byte                    // explicit padding, carried verbatim
//
// A struct whose fields all carry a bits tag is a bitfield. Every field must
// share one unsigned kind, which is the backing integer, and the widths must
// add up to its width. Fields are packed LSB-first:
//
//	type Flags struct {
//	    Ready uint8 `bits:"1"`
//	    Mode  uint8 `bits:"3"`
//	    _     uint8 `bits:"4"`
//	}
//
// # Byte Order
//
// A member's order is, by precedence: the ByteOrder method of its struct type
// (bytestruct.Orderer), its bytestruct tag, then the order of the enclosing
// struct. The root order is the one passed to Compile.
//
// # Key Types
//
//	Compiler      - Compiles and caches Go type layouts
//	CompiledType  - Immutable layout descriptor
//	Encoder       - Writes Go values to byte buffers
//	Decoder       - Reads byte buffers into Go values
//	Codec[T]      - Typed, allocation-free front end for one layout
package codec
