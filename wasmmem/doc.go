// Package wasmmem reads and writes fixed layouts in WebAssembly linear
// memory.
//
// A Region wraps a wazero api.Memory. Records are decoded from, and encoded
// into, bounds-checked views of the guest memory without intermediate
// copies:
//
//	r := wasmmem.New(mod.ExportedMemory("memory"))
//	hdr, err := wasmmem.ReadAt(r, headerCodec, ptr)
//	err = wasmmem.WriteAt(r, headerCodec, ptr, &hdr)
//
// Views returned by Bytes alias guest memory and are invalidated when the
// memory grows. A Region is not safe for concurrent use with a running guest.
package wasmmem
