package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawRoundTrip(t *testing.T) {
	values := []string{"", "a", "hello world", "with\x00null"}
	encoded := EncodeRaw(values)
	decoded, err := DecodeRaw(encoded, len(values))
	require.NoError(t, err)
	assert.Equal(t, values, decoded)
}
