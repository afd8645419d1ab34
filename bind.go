package symvalidation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Gobd/symvalidation/formula"
)

var (
	errNotString = validation.NewError("validation_is_string", "must be a string")
	errNotInt    = validation.NewError("validation_is_int", "must be an integer")
	errNotObject = validation.NewError("validation_is_object", "must be an object")

	errMissing = errors.New("missing")
)

// bindValues reads the concrete value of every variable of d from raw.
// Missing and mistyped values are collected per field path.
func bindValues(d *Descriptor, raw any) (formula.Env, error) {
	env := formula.Env{}
	errs := ValidationErrors{}
	for _, b := range d.bindings {
		key := strings.Join(b.path, ".")
		if key == "" {
			key = b.v.Name
		}
		rv, err := lookupPath(raw, b.path)
		if errors.Is(err, errMissing) && b.fallback != nil {
			env[b.v.Name] = *b.fallback
			continue
		}
		if errors.Is(err, errMissing) {
			err = validation.ErrRequired
		}
		if err != nil {
			errs[key] = err
			continue
		}
		val, err := toValue(b.v.Sort, rv)
		if err != nil {
			errs[key] = err
			continue
		}
		env[b.v.Name] = val
	}
	return env, errs.Filter()
}

func lookupPath(raw any, path []string) (any, error) {
	cur := raw
	for _, seg := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, errNotObject
		}
		cur, ok = m[seg]
		if !ok {
			return nil, errMissing
		}
	}
	if cur == nil {
		return nil, errMissing
	}
	return cur, nil
}

func toValue(sort formula.Sort, v any) (formula.Value, error) {
	if sort == formula.SortString {
		s, ok := v.(string)
		if !ok {
			return formula.Value{}, errNotString
		}
		return formula.StringValue(s), nil
	}
	n, ok := toInt(v)
	if !ok {
		return formula.Value{}, errNotInt
	}
	return formula.IntValue(n), nil
}

func toInt(v any) (int64, bool) { //nolint:revive // one case per numeric kind
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return uintToInt(uint64(n))
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return uintToInt(n)
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case fmt.Stringer:
		return stringToInt(n.String())
	case string:
		return stringToInt(n)
	}
	return 0, false
}

func uintToInt(n uint64) (int64, bool) {
	if n > math.MaxInt64 {
		return 0, false
	}
	return int64(n), true
}

func floatToInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func stringToInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !govalidator.IsInt(s) {
		return 0, false
	}
	i, err := strconv.ParseInt(s, 10, 64)
	return i, err == nil
}
