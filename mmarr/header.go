package mmarr

import (
	"unsafe"
)

func newHeader[T any](capacity int) header {
	var item T

	h := header{
		itemSize: int(unsafe.Sizeof(item)),
		capacity: capacity,
	}

	if h.capacity <= 0 {
		h.capacity = 1
	}

	return h
}

type header struct {
	itemSize int
	length   int
	capacity int
}

func (h header) regionSize() int {
	return h.itemSize * h.capacity
}
