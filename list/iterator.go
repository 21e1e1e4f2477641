package list

import (
	"iter"

	"github.com/webbmaffian/go-own/arena"
)

// Iter is a read-only cursor from head to tail. It must not outlive a Push or
// Pop on the list it came from.
type Iter[T any] struct {
	list    *List[T]
	cur     arena.Idx
	nextIdx arena.Idx
}

// Iter returns a fresh cursor. Calling it again starts over at the head.
func (l *List[T]) Iter() Iter[T] {
	return Iter[T]{
		list:    l,
		nextIdx: l.head,
	}
}

func (iter *Iter[T]) Next() bool {
	if iter.nextIdx == arena.Nil {
		return false
	}

	iter.cur = iter.nextIdx
	iter.nextIdx = iter.list.nodes.At(iter.cur).next

	return true
}

func (iter *Iter[T]) Val() T {
	return iter.list.nodes.At(iter.cur).val
}

// IterMut is like Iter, but hands out pointers that may be written through.
type IterMut[T any] struct {
	Iter[T]
}

func (l *List[T]) IterMut() IterMut[T] {
	return IterMut[T]{l.Iter()}
}

func (iter *IterMut[T]) Val() *T {
	return &iter.list.nodes.At(iter.cur).val
}

// IntoIter owns the nodes it was given and hands out their values by popping.
type IntoIter[T any] struct {
	list List[T]
}

// IntoIter moves every node, and the storage holding them, into the returned
// iterator. l is left as a zero List and keeps working independently.
func (l *List[T]) IntoIter() *IntoIter[T] {
	it := &IntoIter[T]{list: *l}
	*l = List[T]{}

	return it
}

func (it *IntoIter[T]) Next() (T, bool) {
	return it.list.Pop()
}

func (it *IntoIter[T]) Len() int {
	return it.list.Len()
}

// Close drops whatever the iterator didn't hand out.
func (it *IntoIter[T]) Close() error {
	return it.list.Close()
}

// All yields the values from head to tail without consuming anything.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := l.Iter()

		for it.Next() {
			if !yield(it.Val()) {
				return
			}
		}
	}
}

// Drain pops and yields values until the list is empty or the loop breaks.
// Values not yet yielded stay in the list.
func (l *List[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := l.Pop()

			if !ok || !yield(v) {
				return
			}
		}
	}
}
