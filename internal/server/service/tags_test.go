package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "nil", in: nil, want: []string{}},
		{name: "trim and lower", in: []string{" Go ", "SQL"}, want: []string{"go", "sql"}},
		{name: "dedupe after normalization", in: []string{"go", "Go", "GO "}, want: []string{"go"}},
		{name: "drop empty", in: []string{"", "  ", "rust"}, want: []string{"rust"}},
		{name: "sorted", in: []string{"c", "a", "b"}, want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.in))
		})
	}
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"go", "rust", "sql"}, ParseTags("go, Rust,,sql"))
	assert.Equal(t, []string{}, ParseTags(""))
	assert.Equal(t, []string{}, ParseTags(",,"))
}
