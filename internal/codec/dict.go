package codec

// EncodeLocalDictHeader serializes a freshly-built local dictionary
// (distinct values, in first-seen order) as the column block's header: a
// length-prefixed sequence of length-prefixed byte strings, where the
// implicit id is position. This is intentionally the same shape as package
// dictionary's Encode function, duplicated here (rather than imported)
// so that package codec stays free of a dependency on package dictionary,
// which itself depends on codec for its own varint framing.
func EncodeLocalDictHeader(values []string) []byte {
	var out []byte
	out = PutUvarint(out, uint64(len(values)))
	for _, v := range values {
		out = PutUvarint(out, uint64(len(v)))
		out = append(out, v...)
	}
	return out
}

// DecodeLocalDictHeader parses a local dictionary from header.
func DecodeLocalDictHeader(header []byte) ([]string, error) {
	n, rest, err := ReadUvarint(header)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, n)
	for i := uint64(0); i < n; i++ {
		length, r, err := ReadUvarint(rest)
		if err != nil {
			return nil, err
		}
		if uint64(len(r)) < length {
			return nil, ErrVarintOverflow
		}
		values = append(values, string(r[:length]))
		rest = r[length:]
	}
	return values, nil
}

// BuildLocalDict assigns ids to values in first-seen order and returns
// both the distinct value list (for the header) and the per-row id
// stream (for the payload).
func BuildLocalDict(values []string) (distinct []string, ids []int) {
	index := make(map[string]int)
	ids = make([]int, len(values))
	for i, v := range values {
		id, ok := index[v]
		if !ok {
			id = len(distinct)
			index[v] = id
			distinct = append(distinct, v)
		}
		ids[i] = id
	}
	return distinct, ids
}

// EncodeIDs encodes a stream of dictionary ids as varints, used for both
// local (tag 0x05) and global-ref (tag 0x06) dictionary columns; the
// difference between the two tags is only whether the block carries its
// own header (local) or an empty one (global, since the dictionary lives
// once in the container's global section).
func EncodeIDs(ids []int) []byte {
	var out []byte
	for _, id := range ids {
		out = PutUvarint(out, uint64(id))
	}
	return out
}

// DecodeIDs decodes n dictionary ids from payload.
func DecodeIDs(payload []byte, n int) ([]int, error) {
	out := make([]int, 0, n)
	rest := payload
	for i := 0; i < n; i++ {
		v, r, err := ReadUvarint(rest)
		if err != nil {
			return nil, err
		}
		out = append(out, int(v))
		rest = r
	}
	return out, nil
}

// CardinalityRatio reports the fraction of rows that are distinct values,
// used to decide the HOST/PATH/URL/UUID dictionary-vs-raw fallback: at or
// above localDictCardinalityFallback, a dictionary buys little over raw
// storage.
func CardinalityRatio(values []string) float64 {
	if len(values) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return float64(len(seen)) / float64(len(values))
}
