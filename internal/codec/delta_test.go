package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeltaPrefixSumRoundTrip(t *testing.T) {
	cases := [][]int64{
		{5},
		{1, 2, 3, 4, 5},
		{100, 99, 98, -5, -1000, 1000},
	}
	for _, v := range cases {
		assert.Equal(t, v, PrefixSum(Delta(v)))
	}
}

func TestDeltaPrefixSumRoundTripEmpty(t *testing.T) {
	assert.Empty(t, PrefixSum(Delta(nil)))
}

func TestPrefixSumRangeMatchesPrefixSum(t *testing.T) {
	d := Delta([]int64{10, 20, 15, 40})
	var got []int64
	PrefixSumRange(d, func(i int, value int64) bool {
		got = append(got, value)
		return true
	})
	assert.Equal(t, PrefixSum(d), got)
}

func TestPrefixSumRangeStopsEarly(t *testing.T) {
	d := Delta([]int64{1, 2, 3, 4, 5})
	var visited int
	PrefixSumRange(d, func(i int, value int64) bool {
		visited++
		return i < 1
	})
	assert.Equal(t, 2, visited)
}
