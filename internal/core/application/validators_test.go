package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAccountID(t *testing.T) {
	tests := []struct {
		name     string
		account  string
		expected string
		ok       bool
	}{
		{
			name:     "valid lowercase",
			account:  "0x" + strings.Repeat("ab", 32),
			expected: "0x" + strings.Repeat("ab", 32),
			ok:       true,
		},
		{
			name:     "valid uppercase is normalized",
			account:  "0x" + strings.Repeat("AB", 32),
			expected: "0x" + strings.Repeat("ab", 32),
			ok:       true,
		},
		{
			name:    "too short",
			account: "0x" + strings.Repeat("ab", 20),
		},
		{
			name:    "missing prefix",
			account: strings.Repeat("ab", 32),
		},
		{
			name:    "not hex",
			account: "0x" + strings.Repeat("zz", 32),
		},
		{
			name:    "empty",
			account: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			normalized, ok := normalizeAccountID(tt.account)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, normalized)
			}
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	normalized, ok := normalizeAddress(
		"0x2791bca1f2de4661ed88a30c99a7a9449aa84174",
	)
	assert.True(t, ok)
	// canonical form carries the EIP-55 mixed case checksum.
	assert.Equal(t, "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174", normalized)

	_, ok = normalizeAddress("0x123")
	assert.False(t, ok)

	_, ok = normalizeAddress("")
	assert.False(t, ok)
}
