// Package list implements a LIFO singly linked list whose nodes live in an
// arena. Every node is owned by exactly one link: the list head or the next
// field of its predecessor. Links only ever point towards the tail, so the
// chain can't form a cycle.
package list

import (
	"fmt"
	"strings"

	"github.com/webbmaffian/go-own/arena"
)

type node[T any] struct {
	next arena.Idx
	val  T
}

// List is not safe for concurrent use. The zero value is an empty list with
// its nodes on the Go heap.
type List[T any] struct {
	nodes  *arena.Arena[node[T]]
	head   arena.Idx
	length int
}

// New returns an empty list with its nodes on the Go heap.
func New[T any]() *List[T] {
	return &List[T]{
		nodes: arena.New[node[T]](),
	}
}

// NewOffHeap returns an empty list with its nodes in an anonymous memory
// mapping, preallocated for capacity nodes. T must not contain pointers.
func NewOffHeap[T any](capacity int) (l *List[T], err error) {
	nodes, err := arena.NewOffHeap[node[T]](capacity)

	if err != nil {
		return
	}

	return &List[T]{
		nodes: nodes,
	}, nil
}

// Push puts val in front of the list. The new node takes over the previous
// head as its next link.
func (l *List[T]) Push(val T) {
	if l.nodes == nil {
		l.nodes = arena.New[node[T]]()
	}

	l.head = l.nodes.Alloc(node[T]{
		next: l.head,
		val:  val,
	})
	l.length++
}

// Pop detaches the head and returns its value. The second return value is
// false if the list is empty.
func (l *List[T]) Pop() (val T, ok bool) {
	if l.head == arena.Nil {
		return
	}

	idx := l.head
	n := l.nodes.At(idx)
	val, l.head = n.val, n.next
	l.nodes.Free(idx)
	l.length--

	return val, true
}

// Peek returns a copy of the head value without touching the list.
func (l *List[T]) Peek() (val T, ok bool) {
	if l.head == arena.Nil {
		return
	}

	return l.nodes.At(l.head).val, true
}

// PeekMut borrows the head value for writing. The pointer is valid until the
// next Push or Pop.
func (l *List[T]) PeekMut() (*T, bool) {
	if l.head == arena.Nil {
		return nil, false
	}

	return &l.nodes.At(l.head).val, true
}

func (l *List[T]) Len() int {
	return l.length
}

func (l *List[T]) IsEmpty() bool {
	return l.head == arena.Nil
}

// Slice copies the values from head to tail.
func (l *List[T]) Slice() []T {
	s := make([]T, 0, l.length)
	iter := l.Iter()

	for iter.Next() {
		s = append(s, iter.Val())
	}

	return s
}

// String formats the list head first, e.g. "[42 -> 23 -> 12]".
func (l *List[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')

	iter := l.Iter()

	for i := 0; iter.Next(); i++ {
		if i > 0 {
			b.WriteString(" -> ")
		}

		fmt.Fprint(&b, iter.Val())
	}

	b.WriteByte(']')
	return b.String()
}

// Clear tears the list down one node at a time: the head's next link is
// moved into the head before the old head node is zeroed, so no call ever
// nests and no extra memory is needed. The list is empty and reusable
// afterwards.
func (l *List[T]) Clear() {
	for l.head != arena.Nil {
		n := l.nodes.At(l.head)
		l.head = n.next
		*n = node[T]{}
	}

	if l.nodes != nil {
		l.nodes.Reset()
	}

	l.length = 0
}

// Close clears the list and releases its node storage. A closed list behaves
// like a zero List.
func (l *List[T]) Close() (err error) {
	l.Clear()

	if l.nodes != nil {
		err = l.nodes.Close()
		l.nodes = nil
	}

	return
}
