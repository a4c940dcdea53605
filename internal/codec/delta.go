package codec

// Delta computes successive differences: d[0] = v[0]; d[k] = v[k] -
// v[k-1]. The decoder is the prefix sum (PrefixSum), and
// PrefixSum(Delta(v)) == v for any int64 sequence.
func Delta(v []int64) []int64 {
	d := make([]int64, len(v))
	var prev int64
	for i, x := range v {
		d[i] = x - prev
		prev = x
	}
	return d
}

// PrefixSum is the inverse of Delta.
func PrefixSum(d []int64) []int64 {
	v := make([]int64, len(d))
	var sum int64
	for i, x := range d {
		sum += x
		v[i] = sum
	}
	return v
}

// PrefixSumRange evaluates a running prefix sum over d, calling visit with
// the running value at each index and stopping early if visit returns
// false. It exists so the query executor (package query) can evaluate a
// timestamp range predicate without first materializing the whole decoded
// column into a second allocation.
func PrefixSumRange(d []int64, visit func(index int, value int64) bool) {
	var sum int64
	for i, x := range d {
		sum += x
		if !visit(i, sum) {
			return
		}
	}
}
