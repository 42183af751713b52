package api

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
)

// Query holds request query parameters. Values may be scalars, pointers to
// scalars or slices; slices are encoded as repeated keys and nil values are
// skipped.
type Query map[string]any

// Values converts q into url.Values.
func (q Query) Values() url.Values {
	v := make(url.Values, len(q))
	for key, val := range q {
		addQueryValue(v, key, val)
	}
	return v
}

func addQueryValue(v url.Values, key string, val any) {
	switch x := val.(type) {
	case nil:
		return
	case string:
		v.Add(key, x)
	case []string:
		for _, s := range x {
			v.Add(key, s)
		}
	case bool:
		v.Add(key, strconv.FormatBool(x))
	case int:
		v.Add(key, strconv.Itoa(x))
	case int64:
		v.Add(key, strconv.FormatInt(x, 10))
	case fmt.Stringer:
		v.Add(key, x.String())
	default:
		rv := reflect.ValueOf(val)
		switch rv.Kind() {
		case reflect.Pointer:
			if rv.IsNil() {
				return
			}
			addQueryValue(v, key, rv.Elem().Interface())
		case reflect.Slice, reflect.Array:
			for i := 0; i < rv.Len(); i++ {
				addQueryValue(v, key, rv.Index(i).Interface())
			}
		default:
			v.Add(key, fmt.Sprint(val))
		}
	}
}
