package expr

import (
	"reflect"

	"github.com/roach88/rpath/pkg/errs"
)

// Ident is an attribute name used as a subscript. It behaves like a string.
type Ident string

func vertexSubscript(prior VertexExpression, sub any) (Expression, error) {
	switch s := sub.(type) {
	case string:
		return NewAttribute(prior, s), nil
	case Ident:
		return NewAttribute(prior, string(s)), nil
	}
	return nil, errs.NewInvalidSubscript(sub, "string, Ident")
}

func arraySubscript(prior VertexArrayExpression, sub any) (Expression, error) {
	switch s := sub.(type) {
	case string:
		return prior.First().Attr(s), nil
	case Ident:
		return prior.First().Attr(string(s)), nil
	case Conditions:
		return prior.Where(s), nil
	case map[string]any:
		return prior.Where(Conditions(s)), nil
	}

	if i, ok := integer(sub); ok {
		return prior.At(i), nil
	}
	return nil, errs.NewInvalidSubscript(sub, "integer, Conditions, string, Ident")
}

// integer reports the value of sub if it is any Go integer kind that fits in int.
func integer(sub any) (int, bool) {
	if sub == nil {
		return 0, false
	}
	v := reflect.ValueOf(sub)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := v.Int()
		if int64(int(i)) != i {
			return 0, false
		}
		return int(i), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > uint64(^uint(0)>>1) {
			return 0, false
		}
		return int(u), true
	}
	return 0, false
}
