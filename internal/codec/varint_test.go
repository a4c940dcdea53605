package codec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, math.MaxUint32, math.MaxUint64}
	for _, v := range values {
		encoded := PutUvarint(nil, v)
		got, rest, err := ReadUvarint(encoded)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Empty(t, rest)
	}
}

func TestVarintMinimalEncoding(t *testing.T) {
	encoded := PutUvarint(nil, 128)
	assert.Len(t, encoded, 2)
	assert.Equal(t, byte(0x01), encoded[1], "no trailing 0x80 continuation byte")
}

func TestVarintRejectsTruncated(t *testing.T) {
	_, _, err := ReadUvarint([]byte{0x80})
	assert.ErrorIs(t, err, ErrVarintOverflow)
}

func TestVarintRejectsOverflow(t *testing.T) {
	overflow := make([]byte, 11)
	for i := range overflow {
		overflow[i] = 0x80
	}
	_, _, err := ReadUvarint(overflow)
	assert.ErrorIs(t, err, ErrVarintOverflow)
}
