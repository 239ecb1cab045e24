package layout

import "math"

// MaxSize bounds the byte length of any layout.
const MaxSize = math.MaxInt32

// Info is the result of laying out a member sequence.
type Info struct {
	Offsets []int
	Size    int
}

// Calculate places members of the given sizes consecutively. It reports false
// if a size is negative or the total exceeds MaxSize.
func Calculate(sizes []int) (Info, bool) {
	offsets := make([]int, len(sizes))
	offset := 0

	for i, size := range sizes {
		if size < 0 {
			return Info{}, false
		}
		offsets[i] = offset

		next, ok := SafeAdd(offset, size)
		if !ok {
			return Info{}, false
		}
		offset = next
	}

	return Info{Offsets: offsets, Size: offset}, true
}

// Array returns the size of n consecutive elements of elemSize bytes.
func Array(elemSize, n int) (int, bool) {
	if elemSize < 0 || n < 0 {
		return 0, false
	}
	return SafeMul(elemSize, n)
}

func SafeMul(a, b int) (int, bool) {
	if b != 0 && a > MaxSize/b {
		return 0, false
	}
	return a * b, true
}

func SafeAdd(a, b int) (int, bool) {
	if a > MaxSize-b {
		return 0, false
	}
	return a + b, true
}
