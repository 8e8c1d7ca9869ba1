package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical renders v as canonical JSON: object keys sorted,
// strings NFC-normalized, no HTML escaping, and every float in fixed
// six-decimal notation. Equal values always yield identical bytes;
// chart hashes are computed over this form.
func MarshalCanonical(v any) ([]byte, error) {
	return appendCanonical(make([]byte, 0, 1024), v)
}

func appendCanonical(buf []byte, v any) ([]byte, error) {
	switch t := v.(type) {
	case nil:
		return append(buf, "null"...), nil
	case bool:
		return strconv.AppendBool(buf, t), nil
	case string:
		return appendCanonicalString(buf, t), nil
	case int:
		return strconv.AppendInt(buf, int64(t), 10), nil
	case int64:
		return strconv.AppendInt(buf, t, 10), nil
	case float64:
		return appendCanonicalFloat(buf, t)
	case map[string]any:
		return appendCanonicalObject(buf, t)
	case []any:
		return appendCanonicalArray(buf, t)
	default:
		return nil, fmt.Errorf("canonical: unsupported type %T", v)
	}
}

func appendCanonicalObject(buf []byte, m map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Keys in this codebase are ASCII, so a byte sort is a code unit sort.
	sort.Strings(keys)

	buf = append(buf, '{')
	var err error
	for i, k := range keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendCanonicalString(buf, k)
		buf = append(buf, ':')
		if buf, err = appendCanonical(buf, m[k]); err != nil {
			return nil, err
		}
	}
	return append(buf, '}'), nil
}

func appendCanonicalArray(buf []byte, arr []any) ([]byte, error) {
	buf = append(buf, '[')
	var err error
	for i, v := range arr {
		if i > 0 {
			buf = append(buf, ',')
		}
		if buf, err = appendCanonical(buf, v); err != nil {
			return nil, err
		}
	}
	return append(buf, ']'), nil
}

// appendCanonicalFloat writes a float with exactly six decimals.
// Fixed-precision rendering is what makes document bytes reproducible;
// shortest-round-trip formatting would leak representation noise.
func appendCanonicalFloat(buf []byte, f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("canonical: non-finite number")
	}
	if f == 0 {
		f = 0 // fold -0 into 0
	}
	return strconv.AppendFloat(buf, f, 'f', 6, 64), nil
}

func appendCanonicalString(buf []byte, s string) []byte {
	s = norm.NFC.String(s)
	buf = append(buf, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			buf = append(buf, '\\', '"')
		case c == '\\':
			buf = append(buf, '\\', '\\')
		case c >= 0x20:
			buf = append(buf, c)
		case c == '\b':
			buf = append(buf, '\\', 'b')
		case c == '\f':
			buf = append(buf, '\\', 'f')
		case c == '\n':
			buf = append(buf, '\\', 'n')
		case c == '\r':
			buf = append(buf, '\\', 'r')
		case c == '\t':
			buf = append(buf, '\\', 't')
		default:
			buf = append(buf, fmt.Sprintf(`\u%04x`, c)...)
		}
	}
	return append(buf, '"')
}
