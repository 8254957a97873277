package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	s, err := Generate(0)
	require.NoError(t, err)
	assert.Len(t, s, DefaultLength)

	for _, r := range s {
		assert.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q", r)
	}
}

func TestNew_IsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		v := New(PrefixCharge)
		require.True(t, strings.HasPrefix(v, "ch_"))
		require.False(t, seen[v], "duplicate id %s", v)
		seen[v] = true
	}
}

func TestParsePrefixedID(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantPfx   string
		wantShort string
		wantErr   bool
	}{
		{name: "customer", input: "cus_abc123", wantPfx: "cus", wantShort: "abc123"},
		{name: "extra underscores stay in short id", input: "card_a_b", wantPfx: "card", wantShort: "a_b"},
		{name: "no underscore", input: "cus", wantErr: true},
		{name: "empty prefix", input: "_abc", wantErr: true},
		{name: "empty short id", input: "ch_", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, short, err := ParsePrefixedID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPfx, prefix)
			assert.Equal(t, tt.wantShort, short)
		})
	}
}

func TestHasPrefix(t *testing.T) {
	assert.True(t, HasPrefix(New(PrefixCustomer), PrefixCustomer))
	assert.False(t, HasPrefix("ch_123", PrefixCustomer))
	assert.False(t, HasPrefix("garbage", PrefixCustomer))
}
