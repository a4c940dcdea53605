package codec

// RLEPair is one (run_length, value) pair of the template_id stream's
// run-length encoding: varint-encoded pairs, runs of length 1 allowed,
// with no special marker needed since every pair is valid.
type RLEPair struct {
	RunLength uint64
	Value     uint64
}

// EncodeRLE run-length encodes ids (template_id[i] or similarly
// adjacent-repeating integer streams) as a sequence of varint
// (run_length, value) pairs.
func EncodeRLE(ids []uint64) []byte {
	var out []byte
	i := 0
	for i < len(ids) {
		j := i + 1
		for j < len(ids) && ids[j] == ids[i] {
			j++
		}
		out = PutUvarint(out, uint64(j-i))
		out = PutUvarint(out, ids[i])
		i = j
	}
	return out
}

// DecodeRLE decodes an RLE-varint payload back into a flat id stream of
// exactly total elements.
func DecodeRLE(payload []byte, total int) ([]uint64, error) {
	out := make([]uint64, 0, total)
	rest := payload
	for len(out) < total {
		run, r, err := ReadUvarint(rest)
		if err != nil {
			return nil, err
		}
		value, r2, err := ReadUvarint(r)
		if err != nil {
			return nil, err
		}
		for k := uint64(0); k < run; k++ {
			out = append(out, value)
		}
		rest = r2
	}
	if len(out) != total {
		return nil, ErrVarintOverflow
	}
	return out, nil
}
