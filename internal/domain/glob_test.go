package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*.go", "main.go", true},
		{"*.go", "lib/a.go", true},
		{"*.go", "lib/a.rb", false},
		{"*_test.go", "lib/a_test.go", true},
		{"vendor/*", "vendor/x/y.go", true},
		{"testdata/*", "pkg/testdata/f.go", false},
		{"lib/*.go", "lib/a.go", true},
		{"lib/*.go", "lib/sub/a.go", false},
		{"gen", "gen/a.go", true},
		{"[", "a.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchGlob(tt.pattern, tt.path))
		})
	}
}

func TestSelectedByGlobs(t *testing.T) {
	include := []string{"*.go"}
	exclude := []string{"*_test.go", "vendor/*"}

	assert.True(t, SelectedByGlobs(include, exclude, "lib/a.go"))
	assert.False(t, SelectedByGlobs(include, exclude, "lib/a_test.go"))
	assert.False(t, SelectedByGlobs(include, exclude, "vendor/a.go"))
	assert.False(t, SelectedByGlobs(include, exclude, "README.md"))
	assert.False(t, SelectedByGlobs(nil, nil, "lib/a.go"))
}
