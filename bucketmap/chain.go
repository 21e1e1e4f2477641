package bucketmap

import "github.com/webbmaffian/go-own/arena"

// Chain walks the collision chain of the bucket key hashes to, including
// entries for other keys.
type Chain[K comparable, V any] struct {
	m       *Map[K, V]
	cur     arena.Idx
	nextIdx arena.Idx
}

func (m *Map[K, V]) Chain(key K) Chain[K, V] {
	return Chain[K, V]{
		m:       m,
		nextIdx: m.buckets[m.bucket(key)],
	}
}

func (c *Chain[K, V]) Next() bool {
	if c.nextIdx == arena.Nil {
		return false
	}

	c.cur = c.nextIdx
	c.nextIdx = c.m.entries.At(c.cur).next

	return true
}

func (c *Chain[K, V]) Key() K {
	return c.m.entries.At(c.cur).key
}

func (c *Chain[K, V]) Val() *V {
	return &c.m.entries.At(c.cur).val
}

// ChainLen counts the entries sharing key's bucket.
func (m *Map[K, V]) ChainLen(key K) (n int) {
	c := m.Chain(key)

	for c.Next() {
		n++
	}

	return
}
