package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDictHeaderRoundTrip(t *testing.T) {
	values := []string{"a", "bb", "ccc"}
	header := EncodeLocalDictHeader(values)
	decoded, err := DecodeLocalDictHeader(header)
	require.NoError(t, err)
	assert.Equal(t, values, decoded)
}

func TestBuildLocalDictAssignsFirstSeenIDs(t *testing.T) {
	values := []string{"b", "a", "b", "c", "a"}
	distinct, ids := BuildLocalDict(values)
	require.Equal(t, []string{"b", "a", "c"}, distinct)
	assert.Equal(t, []int{0, 1, 0, 2, 1}, ids)
}

func TestEncodeDecodeIDsRoundTrip(t *testing.T) {
	ids := []int{0, 1, 2, 100, 0}
	encoded := EncodeIDs(ids)
	decoded, err := DecodeIDs(encoded, len(ids))
	require.NoError(t, err)
	assert.Equal(t, ids, decoded)
}

func TestCardinalityRatio(t *testing.T) {
	assert.Equal(t, 0.0, CardinalityRatio(nil))
	assert.InDelta(t, 1.0, CardinalityRatio([]string{"a", "b", "c"}), 1e-9)
	assert.InDelta(t, 0.5, CardinalityRatio([]string{"a", "a", "b", "b"}), 1e-9)
}
