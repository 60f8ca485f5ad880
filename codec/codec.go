package codec

import (
	"regexp"
	"sort"
	"strings"
)

// segment matches one key=value pair. The match is greedy and the value may
// be empty; a value may contain '=' since only the first '=' splits.
var segment = regexp.MustCompile(`[^,]+=[^,]*`)

// Decode parses an encoded string into a map. Later duplicate keys win.
// Empty or malformed input yields an empty map, never nil.
func Decode(s string) map[string]string {
	out := make(map[string]string)
	for _, pair := range segment.FindAllString(s, -1) {
		key, value, _ := strings.Cut(pair, "=")
		out[key] = value
	}
	return out
}

// Encode joins the map as comma-separated key=value pairs. Keys are emitted in
// lexical order, but callers should not rely on any order. Empty keys are
// skipped since Decode could never read them back.
func Encode(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		if k == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(m[k])
	}
	return b.String()
}
