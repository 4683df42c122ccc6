package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSlug(t *testing.T) {
	valid := []string{"movie", "sci-fi", "rock_n_roll", "Top10", strings.Repeat("a", 50)}
	for _, s := range valid {
		assert.True(t, ValidSlug(s), "slug %q should be valid", s)
	}

	invalid := []string{"", "with space", "dot.dot", "slash/", "at@sign", strings.Repeat("a", 51)}
	for _, s := range invalid {
		assert.False(t, ValidSlug(s), "slug %q should be invalid", s)
	}
}
