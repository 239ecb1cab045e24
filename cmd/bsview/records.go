package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.bytecodealliance.org/wit"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/bytestruct/bitfield"
	"github.com/wippyai/bytestruct/errors"
	"github.com/wippyai/bytestruct/field"
	"github.com/wippyai/bytestruct/schema"
)

// record is one decoded layout instance.
type record struct {
	value  schema.Value
	index  int
	offset int
}

// layoutFor derives the record layout of td. Non-struct types are wrapped in
// a single-member struct named "value".
func layoutFor(td *wit.TypeDef, order field.Order) (*schema.Struct, error) {
	typ, err := schema.FromWIT(td, order)
	if err != nil {
		return nil, err
	}
	if s, ok := typ.(*schema.Struct); ok {
		return s, nil
	}
	name := "value"
	if td.Name != nil {
		name = *td.Name
	}
	return schema.NewBuilder(name, order).Field("value", typ).Build()
}

// recordCount returns how many whole records of size bytes fit in n bytes,
// capped at limit when limit > 0.
func recordCount(n, size, limit int) (int, error) {
	if size == 0 {
		if limit <= 0 {
			return 0, errors.InvalidInput(errors.PhaseValidate, "zero-length layout needs an explicit -count")
		}
		return limit, nil
	}
	count := n / size
	if limit > 0 {
		if limit > count {
			return 0, errors.ShortBuffer(errors.PhaseValidate, nil, limit*size, n)
		}
		count = limit
	}
	return count, nil
}

// decodeAll decodes count consecutive records from data. Records are split
// into contiguous chunks decoded by up to workers goroutines.
func decodeAll(ctx context.Context, s *schema.Struct, data []byte, base, count, workers int) ([]record, error) {
	out := make([]record, count)
	if count == 0 {
		return out, nil
	}
	workers = max(1, min(workers, count))
	chunk := (count + workers - 1) / workers
	size := s.ByteLen()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < count; start += chunk {
		end := min(start+chunk, count)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				v, err := s.Read(data[i*size:])
				if err != nil {
					return fmt.Errorf("record %d: %w", i, err)
				}
				out[i] = record{index: i, offset: base + i*size, value: v}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// cells renders one column per non-padding member, in layout order.
func cells(s *schema.Struct, v schema.Value) []string {
	var out []string
	for _, m := range s.Members() {
		if m.Name == schema.Padding {
			continue
		}
		out = append(out, formatValue(v[m.Name]))
	}
	return out
}

// columns returns the non-padding member names of s.
func columns(s *schema.Struct) []string {
	var out []string
	for _, m := range s.Members() {
		if m.Name != schema.Padding {
			out = append(out, m.Name)
		}
	}
	return out
}

func formatValue(v any) string {
	switch x := v.(type) {
	case schema.Value:
		return formatMap(x)
	case bitfield.Value:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[k] = e
		}
		return formatMap(m)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = formatValue(e)
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return fmt.Sprint(v)
	}
}

func formatMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + formatValue(m[k])
	}
	return "{" + strings.Join(parts, " ") + "}"
}
