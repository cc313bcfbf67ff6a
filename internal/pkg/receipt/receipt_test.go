package receipt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNumber(t *testing.T) {
	number := NewNumber()
	assert.True(t, strings.HasPrefix(number, "SSFOWA-"))

	parts := strings.Split(number, "-")
	require.Len(t, parts, 3)
	assert.Len(t, parts[2], suffixLength)
	for _, r := range parts[2] {
		assert.Contains(t, suffixCharset, string(r))
	}
}

func TestNewNumberUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		number := NewNumber()
		assert.False(t, seen[number], "duplicate receipt number %s", number)
		seen[number] = true
	}
}

func TestNewOrderRef(t *testing.T) {
	ref := NewOrderRef()
	assert.True(t, strings.HasPrefix(ref, "order_"))
	assert.Len(t, ref, len("order_")+16)
}
