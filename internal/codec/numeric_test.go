package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarintColumnRoundTrip(t *testing.T) {
	values := []int64{0, 1, 127, 128, 99999}
	encoded := EncodeVarint(values)
	decoded, err := DecodeVarint(encoded, len(values))
	require.NoError(t, err)
	assert.Equal(t, values, decoded)
}

func TestZigzagVarintColumnRoundTrip(t *testing.T) {
	values := []int64{0, -1, 1, -1000, 1000}
	encoded := EncodeZigzagVarint(values)
	decoded, err := DecodeZigzagVarint(encoded, len(values))
	require.NoError(t, err)
	assert.Equal(t, values, decoded)
}

func TestDeltaZigzagVarintColumnRoundTrip(t *testing.T) {
	values := []int64{1000, 1001, 1002, 900, 5000}
	encoded := EncodeDeltaZigzagVarint(values)
	decoded, err := DecodeDeltaZigzagVarint(encoded, len(values))
	require.NoError(t, err)
	assert.Equal(t, values, decoded)
}

func TestAllNonNegative(t *testing.T) {
	assert.True(t, AllNonNegative([]int64{0, 1, 2}))
	assert.False(t, AllNonNegative([]int64{0, -1}))
	assert.True(t, AllNonNegative(nil))
}
