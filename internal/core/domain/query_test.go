package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/weave/internal/core/domain"
)

func TestQuery_String(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"", ""},
		{"?", ""},
		{"?raw", "?raw"},
		{"b=2&a=1", "?a=1&b=2"},
		{"?v=2&v=1&inline", "?inline&v=1&v=2"},
		{"a=1&&b", "?a=1&b"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.ParseQuery(tt.raw).String())
		})
	}
}

func TestQuery_Lookup(t *testing.T) {
	q := domain.ParseQuery("?raw&lang=ts")

	assert.True(t, q.Has("raw"))
	assert.False(t, q.Has("inline"))

	v, ok := q.Get("lang")
	assert.True(t, ok)
	assert.Equal(t, "ts", v)

	_, ok = q.Get("missing")
	assert.False(t, ok)
}
