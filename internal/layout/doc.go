// Package layout computes packed member offsets.
//
// Members are laid out back to back in declaration order. There is no
// alignment and no padding: a member starts where the previous one ends and
// the total size is the arithmetic sum of member sizes. Arrays occupy
// element size times length.
//
// All arithmetic is overflow-checked against MaxSize so a layout that cannot
// be addressed is rejected when it is built rather than when it is used.
//
// This package is internal to bytestruct.
package layout
