// Package decode turns the loosely-typed JSON the ledger node returns for Move objects
// and events into domain values. Malformed input never panics; it yields zero values
// or a false ok.
package decode

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Int64 reads a Move integer. u64 values arrive as decimal strings, smaller widths as
// JSON numbers. Anything unparsable yields 0.
func Int64(v any) int64 {
	switch n := v.(type) {
	case nil:
		return 0
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			if u > math.MaxInt64 {
				return math.MaxInt64
			}
			return int64(u)
		}
		return 0
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		return 0
	case int:
		return int64(n)
	case int64:
		return n
	case uint8:
		return int64(n)
	case bool:
		return 0
	default:
		return 0
	}
}

// Bool reads a Move bool; only a JSON true (or the string "true") is true.
func Bool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(strings.TrimSpace(b), "true")
	default:
		return false
	}
}

// Text reads a Move String or vector<u8>. Byte sequences are decoded as UTF-8; when they
// are not valid UTF-8 the stringified sequence is returned instead.
func Text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []any:
		if b, ok := byteSeq(s); ok {
			if utf8.Valid(b) {
				return string(b)
			}
		}
		return joinSeq(s)
	case []byte:
		if utf8.Valid(s) {
			return string(s)
		}
		return fmt.Sprint(s)
	default:
		return fmt.Sprint(s)
	}
}

// Address reads an address-valued field; non-strings yield "".
func Address(v any) string {
	s, _ := v.(string)
	return s
}

// ObjectID reads an id that may be flat ("0x..") or nested
// ({"id": ".."}, {"objectId": ".."}, {"ObjectID": ".."}, possibly recursively).
func ObjectID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case map[string]any:
		for _, key := range []string{"id", "objectId", "ObjectID", "bytes"} {
			if inner, ok := id[key]; ok {
				if s := ObjectID(inner); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

func byteSeq(items []any) ([]byte, bool) {
	b := make([]byte, 0, len(items))
	for _, it := range items {
		n, ok := it.(float64)
		if !ok {
			if num, isNum := it.(json.Number); isNum {
				f, err := num.Float64()
				if err != nil {
					return nil, false
				}
				n, ok = f, true
			}
		}
		if !ok || n < 0 || n > 255 || n != math.Trunc(n) {
			return nil, false
		}
		b = append(b, byte(n))
	}
	return b, true
}

func joinSeq(items []any) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprint(it)
	}
	return strings.Join(parts, ",")
}
