package wasmmem

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/bytestruct/codec"
	"github.com/wippyai/bytestruct/errors"
	"github.com/wippyai/bytestruct/schema"
)

// Region adapts a wazero api.Memory to layout reads and writes.
type Region struct {
	mem api.Memory
}

// New wraps mem. It returns nil for a nil memory.
func New(mem api.Memory) *Region {
	if mem == nil {
		return nil
	}
	return &Region{mem: mem}
}

// Size returns the current memory size in bytes.
func (r *Region) Size() uint32 {
	return r.mem.Size()
}

// Bytes returns a view of n bytes at offset. Writes to the view write guest
// memory.
func (r *Region) Bytes(offset, n uint32) ([]byte, error) {
	data, ok := r.mem.Read(offset, n)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseMemory, offset, n)
	}
	return data, nil
}

func (r *Region) view(offset uint32, n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.InvalidInput(errors.PhaseMemory, "negative length")
	}
	if uint64(n) > uint64(^uint32(0)) {
		return nil, errors.OutOfBounds(errors.PhaseMemory, offset, ^uint32(0))
	}
	return r.Bytes(offset, uint32(n))
}

// ReadAt decodes one record at offset.
func ReadAt[T any](r *Region, c *codec.Codec[T], offset uint32) (T, error) {
	var zero T
	b, err := r.view(offset, c.ByteLen())
	if err != nil {
		return zero, err
	}
	return c.Read(b)
}

// WriteAt encodes v at offset.
func WriteAt[T any](r *Region, c *codec.Codec[T], offset uint32, v *T) error {
	b, err := r.view(offset, c.ByteLen())
	if err != nil {
		return err
	}
	return c.Write(v, b)
}

// ReadSliceAt decodes n records stored back to back at offset.
func ReadSliceAt[T any](r *Region, c *codec.Codec[T], offset uint32, n int) ([]T, error) {
	if n < 0 {
		return nil, errors.InvalidInput(errors.PhaseMemory, "negative record count")
	}
	size := uint64(c.ByteLen()) * uint64(n)
	if size > uint64(^uint32(0)) {
		return nil, errors.OutOfBounds(errors.PhaseMemory, offset, ^uint32(0))
	}
	b, err := r.Bytes(offset, uint32(size))
	if err != nil {
		return nil, err
	}
	return c.ReadSlice(b, n)
}

// WriteSliceAt encodes vs back to back at offset.
func WriteSliceAt[T any](r *Region, c *codec.Codec[T], offset uint32, vs []T) error {
	size := uint64(c.ByteLen()) * uint64(len(vs))
	if size > uint64(^uint32(0)) {
		return errors.OutOfBounds(errors.PhaseMemory, offset, ^uint32(0))
	}
	b, err := r.Bytes(offset, uint32(size))
	if err != nil {
		return err
	}
	return c.WriteSlice(vs, b)
}

// ReadValue decodes a dynamic record at offset.
func (r *Region) ReadValue(s *schema.Struct, offset uint32) (schema.Value, error) {
	b, err := r.view(offset, s.ByteLen())
	if err != nil {
		return nil, err
	}
	return s.Read(b)
}

// WriteValue encodes a dynamic record at offset. Guest memory is left
// untouched when v does not match s.
func (r *Region) WriteValue(s *schema.Struct, offset uint32, v schema.Value) error {
	b, err := r.view(offset, s.ByteLen())
	if err != nil {
		return err
	}
	tmp, err := s.Marshal(v)
	if err != nil {
		return err
	}
	copy(b, tmp)
	return nil
}
