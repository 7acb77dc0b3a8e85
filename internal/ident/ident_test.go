package ident

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingCodeLength(t *testing.T) {
	assert.Len(t, TrackingCode(8), 8)
	assert.Len(t, TrackingCode(12), 12)
	assert.Len(t, TrackingCode(0), DefaultCodeLength)
	assert.Len(t, TrackingCode(-3), DefaultCodeLength)
}

func TestTrackingCodeAlphabet(t *testing.T) {
	for range 200 {
		code := TrackingCode(16)
		for _, r := range code {
			require.True(t, strings.ContainsRune(alphabet, r), "unexpected symbol %q in %s", r, code)
		}
	}
}

func TestTrackingCodeCoversAlphabet(t *testing.T) {
	seen := make(map[rune]bool)
	for range 500 {
		for _, r := range TrackingCode(32) {
			seen[r] = true
		}
	}
	assert.Len(t, seen, len(alphabet))
}

func TestNewIDUnique(t *testing.T) {
	ids := make(map[string]struct{}, 1000)
	for range 1000 {
		id := NewID()
		require.NotEmpty(t, id)
		_, dup := ids[id]
		require.False(t, dup, "duplicate id %s", id)
		ids[id] = struct{}{}
	}
}
