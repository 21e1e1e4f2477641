// Package bucketmap implements a hash map with a fixed number of buckets,
// each holding a chain of entries. Keys are hashed by a Hasher chosen per
// key type, duplicates are replaced in place, and collisions cost a linear
// scan of the chain. Entries live in an arena and are chained by index.
package bucketmap

import (
	"github.com/webbmaffian/go-own/arena"
	"go.uber.org/zap"
)

type entry[K comparable, V any] struct {
	next arena.Idx
	key  K
	val  V
}

// New allocates an empty map with its entries on the Go heap.
func New[K comparable, V any](hasher Hasher[K], opts ...Option) *Map[K, V] {
	return newMap[K, V](hasher, arena.New[entry[K, V]](), newConfig(opts))
}

// NewOffHeap allocates an empty map whose entries live in an anonymous memory
// mapping, preallocated for capacity entries. Neither K nor V may contain
// pointers, so string keys are out.
func NewOffHeap[K comparable, V any](hasher Hasher[K], capacity int, opts ...Option) (m *Map[K, V], err error) {
	entries, err := arena.NewOffHeap[entry[K, V]](capacity)

	if err != nil {
		return
	}

	return newMap[K, V](hasher, entries, newConfig(opts)), nil
}

// NewIntegers returns a map hashing integer keys by identity.
func NewIntegers[K Integer, V any](opts ...Option) *Map[K, V] {
	return New[K, V](Identity[K]{}, opts...)
}

// NewStrings returns a map hashing string keys by the sum of their code
// points.
func NewStrings[V any](opts ...Option) *Map[string, V] {
	return New[string, V](CodePointSum{}, opts...)
}

func newMap[K comparable, V any](hasher Hasher[K], entries *arena.Arena[entry[K, V]], conf config) *Map[K, V] {
	return &Map[K, V]{
		entries: entries,
		buckets: make([]arena.Idx, conf.buckets),
		hasher:  hasher,
		conf:    conf,
	}
}

// Map is not safe for concurrent use.
type Map[K comparable, V any] struct {
	entries *arena.Arena[entry[K, V]]
	buckets []arena.Idx
	hasher  Hasher[K]
	conf    config
}

// Put stores val under key. An existing entry for key gets its value
// replaced, otherwise a new entry is appended to the key's bucket.
func (m *Map[K, V]) Put(key K, val V) {
	b, prev, idx := m.lookup(key)

	if idx != arena.Nil {
		m.entries.At(idx).val = val
		return
	}

	idx = m.entries.Alloc(entry[K, V]{
		key: key,
		val: val,
	})

	m.link(b, prev, idx)
	m.growIfNeeded()
}

func (m *Map[K, V]) Get(key K) (val V, ok bool) {
	if _, _, idx := m.lookup(key); idx != arena.Nil {
		return m.entries.At(idx).val, true
	}

	return
}

// GetPtr borrows the stored value. The pointer is valid until the next Put or
// Delete.
func (m *Map[K, V]) GetPtr(key K) (*V, bool) {
	if _, _, idx := m.lookup(key); idx != arena.Nil {
		return &m.entries.At(idx).val, true
	}

	return nil, false
}

func (m *Map[K, V]) Has(key K) bool {
	_, _, idx := m.lookup(key)
	return idx != arena.Nil
}

// Delete unlinks the entry for key and reports whether there was one.
// Chain order of the remaining entries is kept.
func (m *Map[K, V]) Delete(key K) bool {
	b, prev, idx := m.lookup(key)

	if idx == arena.Nil {
		return false
	}

	m.link(b, prev, m.entries.At(idx).next)
	m.entries.Free(idx)

	return true
}

func (m *Map[K, V]) Len() int {
	return m.entries.Len()
}

func (m *Map[K, V]) Buckets() int {
	return len(m.buckets)
}

// Clear drops every entry, walking each chain with a loop. The bucket count
// is kept.
func (m *Map[K, V]) Clear() {
	for b, idx := range m.buckets {
		for idx != arena.Nil {
			e := m.entries.At(idx)
			idx = e.next
			*e = entry[K, V]{}
		}

		m.buckets[b] = arena.Nil
	}

	m.entries.Reset()
}

// Close clears the map and releases its entry storage. A closed map behaves
// like a new, empty map on the Go heap with the same buckets.
func (m *Map[K, V]) Close() (err error) {
	m.Clear()
	err = m.entries.Close()
	m.entries = arena.New[entry[K, V]]()

	return
}

func (m *Map[K, V]) bucket(key K) int {
	return int(m.hasher.Hash(key) % uint64(len(m.buckets)))
}

// lookup scans the key's bucket. idx is the matching entry or Nil, and prev
// is the entry linking to idx (or the chain's tail when idx is Nil), Nil when
// that link is the bucket itself.
func (m *Map[K, V]) lookup(key K) (b int, prev arena.Idx, idx arena.Idx) {
	b = m.bucket(key)

	for idx = m.buckets[b]; idx != arena.Nil; prev, idx = idx, m.entries.At(idx).next {
		if m.entries.At(idx).key == key {
			return
		}
	}

	return
}

func (m *Map[K, V]) link(b int, prev arena.Idx, idx arena.Idx) {
	if prev == arena.Nil {
		m.buckets[b] = idx
	} else {
		m.entries.At(prev).next = idx
	}
}

func (m *Map[K, V]) growIfNeeded() {
	if !(m.conf.loadFactor > 0) {
		return
	}

	if float64(m.Len()) <= m.conf.loadFactor*float64(len(m.buckets)) {
		return
	}

	m.conf.logger.Debug("Growing bucket map.",
		zap.Int("len", m.Len()),
		zap.Int("from_buckets", len(m.buckets)),
		zap.Int("to_buckets", len(m.buckets)*2),
		zap.Float64("load_factor", m.conf.loadFactor))

	m.rehash(len(m.buckets) * 2)
}

// rehash re-threads every entry into n buckets without moving any entry.
// Entries that end up in the same bucket keep their relative order.
func (m *Map[K, V]) rehash(n int) {
	buckets := make([]arena.Idx, n)
	tails := make([]arena.Idx, n)

	for _, idx := range m.buckets {
		for idx != arena.Nil {
			e := m.entries.At(idx)
			next := e.next
			e.next = arena.Nil

			b := int(m.hasher.Hash(e.key) % uint64(n))

			if tails[b] == arena.Nil {
				buckets[b] = idx
			} else {
				m.entries.At(tails[b]).next = idx
			}

			tails[b] = idx
			idx = next
		}
	}

	m.buckets = buckets
}
