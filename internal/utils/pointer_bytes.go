package utils

import (
	"unsafe"
)

// PointerToBytes views the memory behind val as a byte slice of the given length.
func PointerToBytes[T any](val *T, length int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(val)), length)
}

// BytesToPointer reinterprets the start of b as a *T. The caller guarantees
// that b is at least unsafe.Sizeof(T) bytes long.
func BytesToPointer[T any](b []byte) *T {
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

// BytesToSlice reinterprets b as a slice of length items of T.
func BytesToSlice[T any](b []byte, length int) []T {
	if length == 0 {
		return nil
	}

	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), length)
}
