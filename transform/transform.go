package transform

import (
	"strings"
)

// MapTrimSpace runs [strings.TrimSpace] on all string values in m recursively.
func MapTrimSpace(m map[string]any) {
	stringFunc(m, strings.TrimSpace)
}

// MapToLower runs [strings.ToLower] on all string values in m recursively.
func MapToLower(m map[string]any) {
	stringFunc(m, strings.ToLower)
}

// MapStringFunc applies f to every string value in m recursively.
func MapStringFunc(m map[string]any, f func(string) string) {
	stringFunc(m, f)
}

// MapMulti runs all given functions on m sequentially.
func MapMulti(m map[string]any, fns ...func(map[string]any)) {
	for _, f := range fns {
		f(m)
	}
}

// Keys restricts f to the top-level keys given; values below them are
// still visited recursively.
func Keys(f func(string) string, keys ...string) func(map[string]any) {
	return func(m map[string]any) {
		for _, k := range keys {
			if v, ok := m[k]; ok {
				m[k] = apply(v, f)
			}
		}
	}
}

func stringFunc(m map[string]any, f func(string) string) {
	for k, v := range m {
		m[k] = apply(v, f)
	}
}

func apply(v any, f func(string) string) any {
	switch x := v.(type) {
	case string:
		return f(x)
	case *string:
		if x != nil {
			*x = f(*x)
		}
	case map[string]any:
		stringFunc(x, f)
	case []any:
		for i := range x {
			x[i] = apply(x[i], f)
		}
	case []string:
		for i := range x {
			x[i] = f(x[i])
		}
	}
	return v
}
