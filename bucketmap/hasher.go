package bucketmap

import (
	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
)

// Hasher is the hash capability of a key type. Bucket selection is
// Hash(key) % buckets.
type Hasher[K any] interface {
	Hash(key K) uint64
}

// HasherFunc adapts a plain function to Hasher.
type HasherFunc[K any] func(key K) uint64

func (f HasherFunc[K]) Hash(key K) uint64 {
	return f(key)
}

type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Identity hashes an integer to itself, so bucket = key % buckets. Negative
// keys wrap around to their two's complement value.
type Identity[K Integer] struct{}

func (Identity[K]) Hash(key K) uint64 {
	return uint64(key)
}

// CodePointSum adds up the code points of a string. It is weak and far from
// uniform: anagrams always collide, and short ASCII keys crowd a narrow range
// of buckets.
type CodePointSum struct{}

func (CodePointSum) Hash(key string) (h uint64) {
	for _, r := range key {
		h += uint64(r)
	}

	return
}

// XXHash is a fast, well distributed, non-cryptographic string hash.
type XXHash struct{}

func (XXHash) Hash(key string) uint64 {
	return xxhash.Sum64String(key)
}

// SipHash is a keyed string hash. With secret keys, callers can't construct
// colliding inputs on purpose.
type SipHash struct {
	K0, K1 uint64
}

func (h SipHash) Hash(key string) uint64 {
	return siphash.Hash(h.K0, h.K1, []byte(key))
}
