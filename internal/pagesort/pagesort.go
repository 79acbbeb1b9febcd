// Package pagesort holds the per-page kernels used by parsort jobs:
// an in-place sort of a single page and a two-way merge of sorted pages.
package pagesort

import "slices"

// Sort sorts p in place in ascending order.
func Sort(p []uint64) {
	if len(p) <= 1 {
		return
	}
	slices.Sort(p)
}

// Merge merges two ascending slices into a newly allocated slice of
// len(a)+len(b). Neither input is modified. On equal keys, elements of a
// are emitted first.
func Merge(a, b []uint64) []uint64 {
	return MergeInto(make([]uint64, 0, len(a)+len(b)), a, b)
}

// MergeInto appends the merge of a and b to dst and returns the extended slice.
func MergeInto(dst, a, b []uint64) []uint64 {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if b[j] < a[i] {
			dst = append(dst, b[j])
			j++
		} else {
			dst = append(dst, a[i])
			i++
		}
	}
	// At most one of the tails is non-empty
	dst = append(dst, a[i:]...)
	return append(dst, b[j:]...)
}

// IsSorted reports whether p is in non-decreasing order.
func IsSorted(p []uint64) bool {
	return slices.IsSorted(p)
}
