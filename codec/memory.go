package codec

import "unsafe"

// loadBits reads the raw bit pattern of an n-byte numeric at p. Signed and
// float kinds share the representation of the unsigned kind of equal size.
func loadBits(n int, p unsafe.Pointer) uint64 {
	switch n {
	case 1:
		return uint64(*(*uint8)(p))
	case 2:
		return uint64(*(*uint16)(p))
	case 4:
		return uint64(*(*uint32)(p))
	default:
		return *(*uint64)(p)
	}
}

func storeBits(n int, p unsafe.Pointer, v uint64) {
	switch n {
	case 1:
		*(*uint8)(p) = uint8(v)
	case 2:
		*(*uint16)(p) = uint16(v)
	case 4:
		*(*uint32)(p) = uint32(v)
	default:
		*(*uint64)(p) = v
	}
}
