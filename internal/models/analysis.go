package models

import (
	"strconv"
	"strings"
)

// Analysis is the structured result of a trend or competitor analysis.
// It holds whatever object the model returned; fields may be missing or
// carry unexpected types, so the accessors below never fail.
type Analysis map[string]interface{}

// String returns the field as text, or def when missing or not a string
func (a Analysis) String(key, def string) string {
	if s, ok := a[key].(string); ok {
		return s
	}
	return def
}

// Strings returns the string items of a list field
func (a Analysis) Strings(key string) []string {
	switch v := a[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

// Number returns a numeric field, accepting numbers sent as strings such as "5.2" or "5.2%"
func (a Analysis) Number(key string, def float64) float64 {
	switch v := a[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "%"), 64); err == nil {
			return f
		}
	}
	return def
}
