// Package classify determines the kind of JSON values and produces the
// short summaries shown next to each node of the tree view.
package classify

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/mcncl/jsonview/internal/models"
)

// Classify returns the kind of a parsed value.
func Classify(v *models.Value) models.Kind {
	return v.Kind()
}

// Summarize returns the one-line display form of v for the given kind.
// Strings are quoted verbatim; embedded quotes are not escaped.
func Summarize(v *models.Value, kind models.Kind) string {
	switch kind {
	case models.KindString:
		return `"` + v.Str() + `"`
	case models.KindNull:
		return "null"
	case models.KindBoolean:
		if v.Bool() {
			return "true"
		}
		return "false"
	case models.KindArray:
		return fmt.Sprintf("Array(%d)", v.Len())
	case models.KindObject:
		return fmt.Sprintf("Object{%d}", v.Len())
	default:
		return CanonicalNumber(v.Number())
	}
}

// CanonicalNumber renders a number literal in its shortest decimal form:
// 1.50 becomes 1.5, 1e2 becomes 100 and -0 becomes 0. Exponent notation is
// kept for magnitudes below 1e-6 or from 1e21 up. Literals beyond the
// float64 range render as Infinity or -Infinity.
func CanonicalNumber(n json.Number) string {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil && !math.IsInf(f, 0) {
		return n.String()
	}
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	// d.ddde±x
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(sci, "e")
	digits := strings.Replace(mantissa, ".", "", 1)
	e, _ := strconv.Atoi(exp)
	k, point := len(digits), e+1

	switch {
	case k <= point && point <= 21:
		return sign + digits + strings.Repeat("0", point-k)
	case 0 < point && point <= 21:
		return sign + digits[:point] + "." + digits[point:]
	case -6 < point && point <= 0:
		return sign + "0." + strings.Repeat("0", -point) + digits
	}

	expSign := "+"
	if e < 0 {
		expSign = "-"
		e = -e
	}
	if k == 1 {
		return sign + digits + "e" + expSign + strconv.Itoa(e)
	}
	return sign + digits[:1] + "." + digits[1:] + "e" + expSign + strconv.Itoa(e)
}

// SummarizeValue classifies v and summarizes it.
func SummarizeValue(v *models.Value) string {
	return Summarize(v, Classify(v))
}

// Host classifies a value in Go's generic representation, such as the
// output of decoding JSON into an interface{}. Sequences are tested
// before keyed containers. The second result is false for types that
// have no JSON counterpart.
func Host(v interface{}) (models.Kind, bool) {
	if v == nil {
		return models.KindNull, true
	}
	switch t := v.(type) {
	case *models.Value:
		return t.Kind(), true
	case json.Number:
		return models.KindNumber, true
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return models.KindNull, true
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return models.KindArray, true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return models.KindNull, false
		}
		return models.KindObject, true
	case reflect.Bool:
		return models.KindBoolean, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return models.KindNumber, true
	case reflect.String:
		return models.KindString, true
	default:
		return models.KindNull, false
	}
}

// Normalize converts a host value into a models.Value. Go maps carry no
// member order, so object members are sorted by key.
func Normalize(v interface{}) (*models.Value, error) {
	if mv, ok := v.(*models.Value); ok {
		if mv == nil {
			return models.Null(), nil
		}
		return mv, nil
	}
	kind, ok := Host(v)
	if !ok {
		return nil, fmt.Errorf("unsupported JSON host type %T", v)
	}
	if kind == models.KindNull {
		return models.Null(), nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}

	switch kind {
	case models.KindArray:
		items := make([]*models.Value, rv.Len())
		for i := range items {
			item, err := Normalize(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = item
		}
		return models.Array(items...), nil
	case models.KindObject:
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		members := make([]models.Member, 0, len(keys))
		for _, k := range keys {
			mv := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
			child, err := Normalize(mv.Interface())
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			members = append(members, models.Member{Key: k, Value: child})
		}
		return models.Object(members...), nil
	case models.KindBoolean:
		return models.Bool(rv.Bool()), nil
	case models.KindString:
		return models.String(rv.String()), nil
	default:
		if rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64 {
			if f := rv.Float(); math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("unsupported number %v", f)
			}
		}
		return models.Number(hostNumber(v, rv)), nil
	}
}

func hostNumber(v interface{}, rv reflect.Value) json.Number {
	if n, ok := v.(json.Number); ok {
		return n
	}
	switch rv.Kind() {
	case reflect.Float32:
		return json.Number(strconv.FormatFloat(rv.Float(), 'g', -1, 32))
	case reflect.Float64:
		return json.Number(strconv.FormatFloat(rv.Float(), 'g', -1, 64))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return json.Number(strconv.FormatUint(rv.Uint(), 10))
	default:
		return json.Number(strconv.FormatInt(rv.Int(), 10))
	}
}
