package expr

import (
	"math/big"
	"reflect"
)

// ValuesEqual reports whether an attribute value equals an expected value.
//
// Numbers compare by value regardless of their Go type, so int64(1),
// uint8(1) and 1.0 are all equal. Everything else compares with
// reflect.DeepEqual.
func ValuesEqual(got, want any) bool {
	if g, ok := number(got); ok {
		if w, ok := number(want); ok {
			return g.Cmp(w) == 0
		}
		return false
	}
	return reflect.DeepEqual(got, want)
}

func number(x any) (*big.Float, bool) {
	if x == nil {
		return nil, false
	}
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return new(big.Float).SetInt64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Float).SetUint64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if f != f {
			// NaN never equals anything.
			return nil, false
		}
		return new(big.Float).SetFloat64(f), true
	}
	return nil, false
}
