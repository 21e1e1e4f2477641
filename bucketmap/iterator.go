package bucketmap

import (
	"iter"

	"github.com/webbmaffian/go-own/arena"
)

// Iterator visits every entry, bucket by bucket and in chain order within a
// bucket. It must not outlive a Put or Delete on the map.
type Iterator[K comparable, V any] struct {
	m       *Map[K, V]
	cur     arena.Idx
	nextIdx arena.Idx
	bucket  int
}

func (m *Map[K, V]) Iterate() Iterator[K, V] {
	return Iterator[K, V]{
		m:      m,
		bucket: -1,
	}
}

func (iter *Iterator[K, V]) Next() bool {
	for iter.nextIdx == arena.Nil {
		if iter.bucket >= len(iter.m.buckets)-1 {
			return false
		}

		iter.bucket++
		iter.nextIdx = iter.m.buckets[iter.bucket]
	}

	iter.cur = iter.nextIdx
	iter.nextIdx = iter.m.entries.At(iter.cur).next

	return true
}

func (iter *Iterator[K, V]) Key() K {
	return iter.m.entries.At(iter.cur).key
}

func (iter *Iterator[K, V]) Val() *V {
	return &iter.m.entries.At(iter.cur).val
}

// Bucket is the index of the bucket holding the current entry.
func (iter *Iterator[K, V]) Bucket() int {
	return iter.bucket
}

// All yields every key and value in iteration order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := m.Iterate()

		for it.Next() {
			if !yield(it.Key(), *it.Val()) {
				return
			}
		}
	}
}
