// Package bytestruct packs Go structs into fixed-layout byte sequences.
//
// A layout is the concatenation of its members with no alignment or padding
// inserted: the encoded length of a struct is the sum of the encoded lengths
// of its members. Each member is a numeric primitive in a chosen byte order,
// a nested struct, a fixed-length array, a bitfield packed into one unsigned
// integer, or a custom type implementing Packer.
//
// # Architecture Overview
//
//	bytestruct/          Root package with the Packer and Orderer interfaces
//	├── field/           Numeric primitives and byte order
//	├── bitfield/        Named bit runs packed into one unsigned integer
//	├── codec/           Reflection compiler, Encoder, Decoder, Codec[T]
//	├── schema/          Layouts built at runtime and derived from WIT
//	├── wasmmem/         Layout reads and writes on wazero linear memory
//	├── errors/          Structured error types for debugging
//	└── cmd/bsview/      Decode binary files against a WIT layout
//
// # Quick Start
//
// Declare a struct and compile a codec for it:
//
//	type ColorTableInfo struct {
//	    GlobalColorTableFlag uint8 `bits:"1"`
//	    ColorResolution      uint8 `bits:"3"`
//	    SortFlag             uint8 `bits:"1"`
//	    GlobalColorTableSize uint8 `bits:"3"`
//	}
//
//	type ScreenDescriptor struct {
//	    Width                uint16
//	    Height               uint16
//	    ColorTableInfo       ColorTableInfo
//	    BackgroundColorIndex uint8
//	    PixelAspectRatio     uint8
//	}
//
//	c := codec.MustNew[ScreenDescriptor](field.LittleEndian)
//	c.ByteLen() // 7
//
//	d, err := c.Read(data)
//	out := c.Marshal(&d)
//
// Layouts not known at compile time are described with schema.NewBuilder
// or derived from WIT records with schema.FromWIT.
package bytestruct
