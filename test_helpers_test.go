package parsort

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"slices"
	"testing"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

// newTestRNG returns a PCG generator seeded from the test name, so every
// test sees its own reproducible stream.
func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// generateValues creates n pseudo-random values. With limit > 0 values are
// drawn from [0, limit), which forces duplicates for small limits.
func generateValues(rng *rand.Rand, n int, limit uint64) []uint64 {
	values := make([]uint64, n)
	for i := range values {
		if limit > 0 {
			values[i] = rng.Uint64N(limit)
		} else {
			values[i] = rng.Uint64()
		}
	}
	return values
}

// sortedCopy returns an ascending copy of values.
func sortedCopy(values []uint64) []uint64 {
	out := slices.Clone(values)
	slices.Sort(out)
	return out
}

// mustNew creates a Sorter or fails the test.
func mustNew(t testing.TB, workers int, opts ...Option) *Sorter {
	t.Helper()
	s, err := New(workers, opts...)
	if err != nil {
		t.Fatalf("New(%d): %v", workers, err)
	}
	return s
}

// pages splits values into pages of the given capacity.
func pages(values []uint64, capacity int) []Page {
	var out []Page
	for len(values) > 0 {
		n := min(capacity, len(values))
		out = append(out, Page(slices.Clone(values[:n])))
		values = values[n:]
	}
	return out
}

// queuedElements sums the sizes of jobs.
func queuedElements(jobs []Job) int {
	total := 0
	for _, job := range jobs {
		total += job.Size()
	}
	return total
}
