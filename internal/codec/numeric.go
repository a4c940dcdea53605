package codec

// EncodeVarint encodes a plain unsigned-small integer column (tag 0x02):
// each value becomes a minimal base-128 varint, one byte for values <= 127.
func EncodeVarint(values []int64) []byte {
	var out []byte
	for _, v := range values {
		out = PutUvarint(out, uint64(v))
	}
	return out
}

// DecodeVarint decodes n plain varints.
func DecodeVarint(payload []byte, n int) ([]int64, error) {
	out := make([]int64, 0, n)
	rest := payload
	for i := 0; i < n; i++ {
		v, r, err := ReadUvarint(rest)
		if err != nil {
			return nil, err
		}
		out = append(out, int64(v))
		rest = r
	}
	return out, nil
}

// EncodeZigzagVarint encodes a signed integer column (tag 0x03): each
// value is zigzag-mapped to unsigned, then varint-encoded.
func EncodeZigzagVarint(values []int64) []byte {
	var out []byte
	for _, v := range values {
		out = PutUvarint(out, ZigzagEncode(v))
	}
	return out
}

// DecodeZigzagVarint decodes n zigzag-varints.
func DecodeZigzagVarint(payload []byte, n int) ([]int64, error) {
	out := make([]int64, 0, n)
	rest := payload
	for i := 0; i < n; i++ {
		u, r, err := ReadUvarint(rest)
		if err != nil {
			return nil, err
		}
		out = append(out, ZigzagDecode(u))
		rest = r
	}
	return out, nil
}

// EncodeDeltaZigzagVarint encodes a TIMESTAMP column (tag 0x04): successive
// differences are small and near-sorted, so delta-then-zigzag-then-varint
// keeps the encoding compact.
func EncodeDeltaZigzagVarint(values []int64) []byte {
	return EncodeZigzagVarint(Delta(values))
}

// DecodeDeltaZigzagVarint decodes n delta-zigzag-varints and prefix-sums
// them back to absolute values.
func DecodeDeltaZigzagVarint(payload []byte, n int) ([]int64, error) {
	deltas, err := DecodeZigzagVarint(payload, n)
	if err != nil {
		return nil, err
	}
	return PrefixSum(deltas), nil
}

// AllNonNegative reports whether every value in values is >= 0, used to
// choose between the plain-varint and zigzag-varint codecs for an
// INTEGER column.
func AllNonNegative(values []int64) bool {
	for _, v := range values {
		if v < 0 {
			return false
		}
	}
	return true
}
