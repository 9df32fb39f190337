package state

import (
	"math"
	"reflect"
)

// Same reports whether a and b are the same value by identity.
//
// References (pointers, maps, channels and slices) are compared by address,
// scalars by value. Floats follow same-value rules: NaN is the same as NaN,
// while +0 and -0 are different. Structs and arrays have no identity of their
// own and compare member by member with the same rules, so a struct holding a
// pointer is the same as another only when both point at the same target.
// Funcs are never the same unless both are nil.
//
// Address comparison inherits Go's allocation rules: distinct pointers to
// zero-size values (new(struct{}) twice) may share an address and then
// count as the same.
func Same[T any](a, b T) bool {
	return sameValue(reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem())
}

func sameValue(x, y reflect.Value) bool {
	if !x.IsValid() || !y.IsValid() {
		return x.IsValid() == y.IsValid()
	}
	if x.Type() != y.Type() {
		return false
	}
	switch x.Kind() {
	case reflect.Bool:
		return x.Bool() == y.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return x.Int() == y.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return x.Uint() == y.Uint()
	case reflect.Float32, reflect.Float64:
		return sameFloat(x.Float(), y.Float())
	case reflect.Complex64, reflect.Complex128:
		cx, cy := x.Complex(), y.Complex()
		return sameFloat(real(cx), real(cy)) && sameFloat(imag(cx), imag(cy))
	case reflect.String:
		return x.String() == y.String()
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return x.Pointer() == y.Pointer()
	case reflect.Slice:
		return x.Pointer() == y.Pointer() && x.Len() == y.Len() && x.Cap() == y.Cap()
	case reflect.Func:
		return x.IsNil() && y.IsNil()
	case reflect.Interface:
		if x.IsNil() || y.IsNil() {
			return x.IsNil() && y.IsNil()
		}
		return sameValue(x.Elem(), y.Elem())
	case reflect.Array:
		for i := 0; i < x.Len(); i++ {
			if !sameValue(x.Index(i), y.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Struct:
		for i := 0; i < x.NumField(); i++ {
			if !sameValue(x.Field(i), y.Field(i)) {
				return false
			}
		}
		return true
	}
	return false
}

func sameFloat(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Float64bits(a) == math.Float64bits(b)
}
