package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// String resolves keys against raw and returns the first value that is
// non-empty after trimming, or nil.
func String(raw map[string]any, keys Keys) *string {
	for _, k := range keys {
		s, ok := scalarString(raw[k])
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s != "" {
			return &s
		}
	}
	return nil
}

// Int resolves keys against raw and coerces the first present value,
// truncating toward zero. Anything that is not a finite number yields 0.
func Int(raw map[string]any, keys Keys) int {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return ToInt(v)
	}
	return 0
}

// ToInt coerces v to an integer the way a loosely typed sheet export expects:
// numbers and numeric strings are truncated, everything else is 0.
func ToInt(v any) int {
	f, ok := Number(v)
	if !ok {
		return 0
	}
	f = math.Trunc(f)
	// float64(math.MaxInt) rounds up to 2^63, so compare with >=
	switch {
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	}
	return int(f)
}

// Number reports v as a finite float64.
func Number(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case json.Number:
		parsed, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, true
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// scalarString stringifies scalar JSON values. Objects and arrays are not
// usable as field values and are reported as absent.
func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}
