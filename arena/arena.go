// Package arena stores fixed-type nodes in one contiguous slot sequence and
// hands out indexes instead of pointers. Links between nodes are plain Idx
// values, so a structure built on an arena owns all of its nodes through a
// single handle and can be torn down with one loop.
package arena

import (
	"math"

	"github.com/webbmaffian/go-own/mmarr"
)

// Idx addresses a slot in an arena. The zero value is Nil.
type Idx uint32

// Nil is the empty link. Slot 0 is reserved for it and never handed out.
const Nil Idx = 0

// New returns an arena backed by the Go heap.
func New[N any]() *Arena[N] {
	return newArena[N](&heapStore[N]{})
}

// NewOffHeap returns an arena backed by an anonymous memory mapping with room
// for capacity nodes before it has to grow. N must not contain pointers.
func NewOffHeap[N any](capacity int) (a *Arena[N], err error) {
	arr, err := mmarr.New[N](capacity + 1)

	if err != nil {
		return
	}

	return newArena[N](&offHeapStore[N]{arr: arr}), nil
}

func newArena[N any](s store[N]) *Arena[N] {
	var sentinel N
	s.append(&sentinel)

	return &Arena[N]{
		slots: s,
		freed: []bool{false},
	}
}

type Arena[N any] struct {
	slots  store[N]
	free   []Idx
	freed  []bool // indexed by slot
	live   int
	closed bool
}

// Alloc stores n in a free slot and returns its index. Freed slots are reused
// before the arena grows.
func (a *Arena[N]) Alloc(n N) (idx Idx) {
	a.mustBeOpen()

	if l := len(a.free); l > 0 {
		idx = a.free[l-1]
		a.free = a.free[:l-1]
		a.freed[idx] = false
		*a.slots.at(int(idx)) = n
	} else {
		if uint64(a.slots.len()) > math.MaxUint32 {
			panic("arena: index space exhausted")
		}

		idx = Idx(a.slots.append(&n))
		a.freed = append(a.freed, false)
	}

	a.live++
	return
}

// Free zeroes the slot and makes it available to Alloc.
func (a *Arena[N]) Free(idx Idx) {
	a.mustBeOpen()

	if idx == Nil {
		panic("arena: free of nil index")
	}

	if a.freed[idx] {
		panic("arena: double free")
	}

	var zero N
	*a.slots.at(int(idx)) = zero
	a.free = append(a.free, idx)
	a.freed[idx] = true
	a.live--
}

// At returns a pointer to the node in slot idx. The pointer stays valid until
// the next Alloc, which may move the storage.
func (a *Arena[N]) At(idx Idx) *N {
	if idx == Nil {
		panic("arena: dereference of nil index")
	}

	return a.slots.at(int(idx))
}

// Len returns the number of live nodes.
func (a *Arena[N]) Len() int {
	return a.live
}

// Cap returns the number of slots handed out so far, free or not.
func (a *Arena[N]) Cap() int {
	if a.closed {
		return 0
	}

	return a.slots.len() - 1
}

// Reset drops every node at once. The arena stays usable.
func (a *Arena[N]) Reset() {
	a.mustBeOpen()
	a.slots.truncate(1)
	a.free = a.free[:0]
	a.freed = a.freed[:1]
	a.live = 0
}

// Close releases the backing memory. It's safe to call Close more than once.
func (a *Arena[N]) Close() (err error) {
	if a.closed {
		return
	}

	err = a.slots.close()
	a.free, a.freed = nil, nil
	a.live = 0
	a.closed = true
	return
}

func (a *Arena[N]) mustBeOpen() {
	if a.closed {
		panic("arena: use after close")
	}
}
