package domain_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weave/internal/core/domain"
)

func TestNewModuleID(t *testing.T) {
	root := filepath.FromSlash("/project")

	tests := []struct {
		name     string
		path     string
		query    string
		expected string
	}{
		{"UnderRoot", "/project/src/index.js", "", "src/index.js"},
		{"WithQuery", "/project/src/style.css", "?inline", "src/style.css?inline"},
		{"OutsideRoot", "/elsewhere/lib.js", "", "/elsewhere/lib.js"},
		{"Virtual", "virtual:routes", "", "virtual:routes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.NewModuleID(filepath.FromSlash(tt.path), tt.query, root)
			assert.Equal(t, filepath.ToSlash(tt.expected), got.String())
		})
	}
}

func TestModuleID_Identity(t *testing.T) {
	a := domain.NewModuleID("/project/a.js", domain.ParseQuery("b=2&a=1").String(), "/project")
	b := domain.NewModuleID("/project/a.js", domain.ParseQuery("a=1&b=2").String(), "/project")
	c := domain.NewModuleID("/project/a.js", "", "/project")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	seen := map[domain.ModuleID]bool{a: true}
	assert.True(t, seen[b])
}

func TestModuleID_Zero(t *testing.T) {
	var zero domain.ModuleID
	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.String())
	assert.True(t, domain.ModuleIDFromString("").IsZero())
	assert.False(t, domain.ModuleIDFromString("a.js").IsZero())
}

func TestModuleID_PathAndQuery(t *testing.T) {
	mid := domain.ModuleIDFromString("src/a.css?inline&v=1")
	assert.Equal(t, "src/a.css", mid.Path())
	assert.Equal(t, "?inline&v=1", mid.Query())
	assert.Equal(t, filepath.Join("/root", "src", "a.css"), mid.ResolvedPath("/root"))

	plain := domain.ModuleIDFromString("src/a.js")
	assert.Empty(t, plain.Query())

	virtual := domain.ModuleIDFromString("virtual:routes")
	assert.Equal(t, "virtual:routes", virtual.ResolvedPath("/root"))
}

func TestModuleID_JSON(t *testing.T) {
	type wrapper struct {
		ID domain.ModuleID `json:"id"`
	}

	data, err := json.Marshal(wrapper{ID: domain.ModuleIDFromString("src/a.js")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"src/a.js"}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal(data, &w))
	assert.Equal(t, domain.ModuleIDFromString("src/a.js"), w.ID)
}
