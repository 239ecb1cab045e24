// Package schema describes fixed layouts at runtime.
//
// Where package codec derives a layout from a Go struct type, schema builds
// one explicitly and reads it into dynamic values:
//
//	hdr, err := schema.NewBuilder("header", field.BigEndian).
//		Field("magic", schema.Prim(field.U32)).
//		Field("version", schema.Ordered(schema.Prim(field.U16), field.LittleEndian)).
//		Field("flags", schema.Bits(flagsDesc)).
//		Field("sizes", schema.Array(schema.Prim(field.U16), 4)).
//		Build()
//
//	v, err := hdr.Read(data)   // schema.Value{"magic": uint32(...), ...}
//	err = hdr.Write(v, out)
//
// # Value Mapping
//
//	Member type     Go value
//	─────────────────────────────────────────────
//	Prim(kind)      uint8 ... float64 per kind
//	Array(t, n)     []any of length n
//	Bits(desc)      bitfield.Value
//	*Struct         Value
//
// Members named "_" are padding: Read omits them and Write zero-fills them.
//
// # Byte Order
//
// Prim members use the order of the enclosing struct. Ordered pins a member
// to a fixed order. A nested *Struct always uses the order it was built with.
//
// # WIT
//
// FromWIT derives a layout from a WIT type definition. Records map to
// structs, tuples to structs with members "0", "1", ..., flags to 1-bit
// bitfields and enums to unsigned discriminants. Types with variable length
// or indirection (string, list, option, result, variant, resources) have no
// fixed layout and are rejected.
package schema
