// Package types defines the compiled layout structures for fast packing.
//
// CompiledType holds precomputed layout information (byte length, member
// offsets, byte order, bitfield descriptor) for a Go type. By compiling type
// metadata once, the codec avoids reflection and validation on hot paths.
//
// # Key Types
//
//   - CompiledType: Cached type metadata with layout info
//   - Kind: Type discriminator (primitive, struct, array, bitfield, custom)
//
// This package is internal to the codec.
package types
