package utils

import "reflect"

// HasPointers reports whether values of type t carry anything the garbage
// collector would have to trace. Such values must never be stored in memory
// the Go runtime doesn't know about.
func HasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false

	case reflect.Array:
		return t.Len() > 0 && HasPointers(t.Elem())

	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if HasPointers(t.Field(i).Type) {
				return true
			}
		}

		return false
	}

	// Pointers, uintptr, strings, slices, maps, chans, funcs and interfaces.
	return true
}

// TypeHasPointers is HasPointers for a type parameter.
func TypeHasPointers[T any]() bool {
	return HasPointers(reflect.TypeFor[T]())
}
