// Package mmarr provides a typed array living in an anonymous memory mapping,
// i.e. outside of the Go heap. The garbage collector never scans it, which is
// why the item type MUST NOT contain any pointer, slice, string, map,
// interface, channel nor func.
package mmarr

import (
	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
	"github.com/webbmaffian/go-own/internal/utils"
)

// Initialize a new off-heap array with room for capacity items. A capacity
// below 1 is raised to 1.
func New[T any](capacity int) (arr *Array[T], err error) {
	arr = &Array[T]{
		head: newHeader[T](capacity),
	}

	if arr.head.itemSize <= 0 {
		return nil, ErrItemSize
	}

	if utils.TypeHasPointers[T]() {
		return nil, ErrPointerType
	}

	if arr.data, err = mapRegion(arr.head.regionSize()); err != nil {
		return nil, err
	}

	return
}

func mapRegion(size int) (mmap.MMap, error) {
	data, err := mmap.MapRegion(nil, size, mmap.RDWR, mmap.ANON, 0)

	if err != nil {
		return nil, errors.Wrapf(err, "failed to map %d bytes", size)
	}

	return data, nil
}

// Memory-mapped array
type Array[T any] struct {
	data mmap.MMap
	head header
}

// Grow remaps the array into a region large enough for capacity items. The
// existing items are copied over, and every pointer previously returned by
// Get is invalidated.
func (arr *Array[T]) Grow(capacity int) (err error) {
	if arr.data == nil {
		return ErrClosed
	}

	if capacity <= arr.head.capacity {
		return
	}

	head := arr.head
	head.capacity = capacity

	data, err := mapRegion(head.regionSize())

	if err != nil {
		return
	}

	copy(data, arr.data[:arr.head.length*arr.head.itemSize])

	if err = arr.data.Unmap(); err != nil {
		data.Unmap()
		return errors.Wrap(err, "failed to unmap previous region")
	}

	arr.data, arr.head = data, head
	return
}

// Close releases the mapping. It's safe to call Close more than once.
func (arr *Array[T]) Close() (err error) {
	if arr.data == nil {
		return
	}

	err = arr.data.Unmap()
	arr.data = nil
	arr.head.length = 0

	if err != nil {
		return errors.Wrap(err, "failed to unmap region")
	}

	return
}

func (arr *Array[T]) Append(val *T) (pos int) {
	if arr.head.length >= arr.head.capacity {
		return -1
	}

	pos = arr.head.length
	arr.head.length++
	arr.Set(pos, val)
	return
}

func (arr *Array[T]) Set(pos int, val *T) {
	idx := arr.posToIdx(pos)
	copy(arr.data[idx:idx+arr.head.itemSize], utils.PointerToBytes(val, arr.head.itemSize))
}

func (arr *Array[T]) Get(pos int) *T {
	idx := arr.posToIdx(pos)
	return utils.BytesToPointer[T](arr.data[idx : idx+arr.head.itemSize])
}

// Truncate shrinks the length to n items and zeroes everything behind it.
func (arr *Array[T]) Truncate(n int) {
	if n < 0 || n >= arr.head.length {
		return
	}

	clear(arr.data[n*arr.head.itemSize : arr.head.length*arr.head.itemSize])
	arr.head.length = n
}

func (arr *Array[T]) Cap() int {
	return arr.head.capacity
}

func (arr *Array[T]) Len() int {
	return arr.head.length
}

func (arr *Array[T]) ItemSize() int {
	return arr.head.itemSize
}

func (arr *Array[T]) Items() []T {
	return utils.BytesToSlice[T](arr.data, arr.head.length)
}

// Negative positions count from the end.
func (arr *Array[T]) posToIdx(pos int) int {
	if pos < 0 {
		pos += arr.head.length
	}

	if pos < 0 || pos >= arr.head.length {
		panic("mmarr: position out of range")
	}

	return pos * arr.head.itemSize
}
