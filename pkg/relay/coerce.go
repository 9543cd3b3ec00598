package relay

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Coercion is total: every raw value yields a value of the requested type.
// The rules follow loose dynamic-language casts rather than validation:
//
//	int:    leading numeric prefix of strings ("12abc" -> 12, "abc" -> 0, "1.9" -> 1,
//	        "1e3" -> 1000), floats truncate toward zero, NaN -> 0, out of range
//	        clamps, true -> 1, empty list/map -> 0, non-empty -> 1
//	string: strings verbatim, true -> "1", false -> "", numbers in shortest
//	        decimal form, lists and maps -> "Array"
//	bool:   "", "0" and "false" -> false, every other string -> true,
//	        numbers are true unless zero, lists and maps unless empty
//	list:   lists pass through, maps become their values ordered by key,
//	        scalars become a single-element list, nil becomes an empty list

// Coerce converts raw to the literal type t
func Coerce(raw any, t LiteralType) (any, error) {
	switch t {
	case IntType:
		return CoerceInt(raw), nil
	case StringType:
		return CoerceString(raw), nil
	case BoolType:
		return CoerceBool(raw), nil
	case ListType:
		return CoerceList(raw), nil
	default:
		return nil, fmt.Errorf("unsupported literal type %q", t)
	}
}

// zeroValue returns the value an absent optional literal binds to
func zeroValue(t LiteralType) any {
	switch t {
	case IntType:
		return 0
	case StringType:
		return ""
	case BoolType:
		return false
	case ListType:
		return []any{}
	default:
		return nil
	}
}

// CoerceInt converts raw to int
func CoerceInt(raw any) int {
	switch v := raw.(type) {
	case nil:
		return 0
	case int:
		return v
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		return parseLeadingInt(v)
	case []byte:
		return parseLeadingInt(string(v))
	case float64:
		return truncate(v)
	case float32:
		return truncate(float64(v))
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n, err := cast.ToInt64E(v)
		if err != nil {
			return 0
		}
		return int(n)
	case numberLiteral:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		if f, err := v.Float64(); err == nil {
			return truncate(f)
		}
		return parseLeadingInt(v.String())
	}

	if n, ok := collection(raw); ok {
		if n == 0 {
			return 0
		}
		return 1
	}
	if s, ok := raw.(fmt.Stringer); ok {
		return parseLeadingInt(s.String())
	}
	return 0
}

// CoerceString converts raw to string
func CoerceString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		if v {
			return "1"
		}
		return ""
	case numberLiteral:
		if n, err := v.Int64(); err == nil {
			return strconv.FormatInt(n, 10)
		}
		if f, err := v.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return v.String()
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	}

	if _, ok := collection(raw); ok {
		return "Array"
	}
	if s, err := cast.ToStringE(raw); err == nil {
		return s
	}
	return fmt.Sprint(raw)
}

// CoerceBool converts raw to bool
func CoerceBool(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return truthy(v)
	case []byte:
		return truthy(string(v))
	case float64:
		return v != 0
	case float32:
		return v != 0
	case int8, int16, int32, int64, int, uint, uint8, uint16, uint32, uint64:
		return CoerceInt(v) != 0
	case numberLiteral:
		if f, err := v.Float64(); err == nil {
			return f != 0
		}
		return truthy(v.String())
	case fmt.Stringer:
		return truthy(v.String())
	}

	if n, ok := collection(raw); ok {
		return n > 0
	}
	return true
}

// CoerceList converts raw to an ordered list
func CoerceList(raw any) []any {
	switch v := raw.(type) {
	case nil:
		return []any{}
	case []any:
		return v
	case []byte:
		return []any{string(v)}
	case map[string]any:
		keys := sortedKeys(v)
		list := make([]any, 0, len(keys))
		for _, k := range keys {
			list = append(list, v[k])
		}
		return list
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		list := make([]any, rv.Len())
		for i := range list {
			list[i] = rv.Index(i).Interface()
		}
		return list
	case reflect.Map:
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
		})
		list := make([]any, 0, len(keys))
		for _, k := range keys {
			list = append(list, rv.MapIndex(k).Interface())
		}
		return list
	default:
		return []any{raw}
	}
}

// numberLiteral is a JSON number decoded with UseNumber
type numberLiteral interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

func truthy(s string) bool {
	return s != "" && s != "0" && s != "false"
}

// collection reports whether raw is a list or a mapping, and its length
func collection(raw any) (int, bool) {
	if _, isBytes := raw.([]byte); isBytes {
		return 0, false
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	default:
		return 0, false
	}
}

func truncate(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	default:
		return int(f)
	}
}

func parseLeadingInt(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := numericPrefix(s)
	if end == 0 {
		return 0
	}
	num := s[:end]
	if !strings.ContainsAny(num, ".eE") {
		// ParseInt clamps to the int range on overflow
		n, _ := strconv.ParseInt(num, 10, 0)
		return int(n)
	}
	f, _ := strconv.ParseFloat(num, 64)
	return truncate(f)
}

// numericPrefix returns the length of the longest prefix of s that reads as a
// decimal number with optional sign, fraction and exponent
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
