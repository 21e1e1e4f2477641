package arena

import (
	"math"

	"github.com/webbmaffian/go-own/mmarr"
)

// store is the backing memory of an arena: a growable sequence of slots
// addressed by position.
type store[N any] interface {
	append(n *N) int
	at(pos int) *N
	len() int
	truncate(n int)
	close() error
}

type heapStore[N any] struct {
	items []N
}

func (s *heapStore[N]) append(n *N) int {
	s.items = append(s.items, *n)
	return len(s.items) - 1
}

func (s *heapStore[N]) at(pos int) *N {
	return &s.items[pos]
}

func (s *heapStore[N]) len() int {
	return len(s.items)
}

func (s *heapStore[N]) truncate(n int) {
	clear(s.items[n:])
	s.items = s.items[:n]
}

func (s *heapStore[N]) close() error {
	s.items = nil
	return nil
}

// offHeapStore keeps its slots in an anonymous mapping and doubles it when
// full.
type offHeapStore[N any] struct {
	arr *mmarr.Array[N]
}

func (s *offHeapStore[N]) append(n *N) int {
	if s.arr.Len() == s.arr.Cap() {
		capacity := int64(s.arr.Cap()) * 2

		if capacity > math.MaxUint32 {
			capacity = math.MaxUint32
		}

		// Failing to map more memory is treated like the runtime treats an
		// exhausted heap.
		if err := s.arr.Grow(int(capacity)); err != nil {
			panic(err)
		}
	}

	return s.arr.Append(n)
}

func (s *offHeapStore[N]) at(pos int) *N {
	return s.arr.Get(pos)
}

func (s *offHeapStore[N]) len() int {
	return s.arr.Len()
}

func (s *offHeapStore[N]) truncate(n int) {
	s.arr.Truncate(n)
}

func (s *offHeapStore[N]) close() error {
	return s.arr.Close()
}
