package domain

import (
	"slices"
	"strings"
)

// QueryParam is a single key/value pair of a module request query.
// A bare key such as "?raw" has an empty Value.
type QueryParam struct {
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// Query is the ordered list of parameters attached to a module request.
type Query []QueryParam

// ParseQuery parses a raw query string with or without the leading '?'.
func ParseQuery(raw string) Query {
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return nil
	}
	var q Query
	for part := range strings.SplitSeq(raw, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		q = append(q, QueryParam{Key: k, Value: v})
	}
	return q
}

// Has reports whether the query contains key.
func (q Query) Has(key string) bool {
	return slices.ContainsFunc(q, func(p QueryParam) bool { return p.Key == key })
}

// Get returns the value of the first parameter named key.
func (q Query) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// String returns the canonical query string: parameters sorted by key then value,
// joined with '&' and prefixed with '?'. An empty query stringifies to "".
func (q Query) String() string {
	if len(q) == 0 {
		return ""
	}
	sorted := slices.Clone(q)
	slices.SortStableFunc(sorted, func(a, b QueryParam) int {
		if c := strings.Compare(a.Key, b.Key); c != 0 {
			return c
		}
		return strings.Compare(a.Value, b.Value)
	})

	var sb strings.Builder
	sb.WriteByte('?')
	for i, p := range sorted {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(p.Key)
		if p.Value != "" {
			sb.WriteByte('=')
			sb.WriteString(p.Value)
		}
	}
	return sb.String()
}
