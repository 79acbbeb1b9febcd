package parsort

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
)

// multisetHash is an order-independent fingerprint of a multiset of values.
// Each value is hashed with xxHash64 and folded with both addition and xor,
// so the result does not depend on the order values are added in but
// changes when a value is lost, duplicated or altered.
type multisetHash struct {
	count uint64
	sum   uint64
	xor   uint64
}

func (m *multisetHash) add(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h := xxhash.Sum64(buf[:])
	m.count++
	m.sum += h
	m.xor ^= h
}

func (m *multisetHash) addAll(values []uint64) {
	for _, v := range values {
		m.add(v)
	}
}

func multisetOf(values []uint64) multisetHash {
	var m multisetHash
	m.addAll(values)
	return m
}

// Digest returns the xxh3 hash of values in order, each encoded as
// little-endian uint64. Two sorts of the same input have equal digests.
func Digest(values []uint64) uint64 {
	h := xxh3.New()
	var buf [8 * 512]byte
	for len(values) > 0 {
		n := min(len(values), len(buf)/8)
		for i, v := range values[:n] {
			binary.LittleEndian.PutUint64(buf[i*8:], v)
		}
		_, _ = h.Write(buf[:n*8]) // Hasher.Write never fails
		values = values[n:]
	}
	return h.Sum64()
}
