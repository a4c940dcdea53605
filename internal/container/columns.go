package container

import (
	"github.com/adam-bouafia/logsim/internal/codec"
	"github.com/adam-bouafia/logsim/internal/column"
	"github.com/adam-bouafia/logsim/internal/dictionary"
	"github.com/adam-bouafia/logsim/internal/template"
)

// localDictCardinalityFallback is the cardinality ratio above which a
// local dictionary buys little over raw length-prefixed storage: at or
// above 50% distinct values per row, the per-row dictionary overhead
// outweighs the savings from repeated values.
const localDictCardinalityFallback = 0.5

// encodeColumn chooses and applies the codec pipeline for one column by
// field type, and wraps the result as a self-describing column block.
// severity and pool are the container's global dictionaries; both are
// mutated (interned into) as SEVERITY and MESSAGE/QUOTED_STRING values
// are seen.
func encodeColumn(ft template.FieldType, col *column.Column, severity *dictionary.Dictionary, pool *dictionary.MessagePool) []byte {
	switch ft {
	case template.Timestamp:
		return codec.EncodeBlock(codec.TagDeltaZigzagVarint, nil, codec.EncodeDeltaZigzagVarint(col.Ints))

	case template.Integer:
		if codec.AllNonNegative(col.Ints) {
			return codec.EncodeBlock(codec.TagVarint, nil, codec.EncodeVarint(col.Ints))
		}
		return codec.EncodeBlock(codec.TagZigzagVarint, nil, codec.EncodeZigzagVarint(col.Ints))

	case template.IPv4:
		return encodeIPv4Column(col)

	case template.Severity:
		// Severity text is looked up with its observed case so a line
		// re-renders byte-exact; a spelling not already in the dictionary
		// is appended after the canonical entries.
		ids := make([]int, len(col.Strings))
		for i, s := range col.Strings {
			id, ok := severity.ID(s)
			if !ok {
				id = severity.Intern(s)
			}
			ids[i] = id
		}
		return codec.EncodeBlock(codec.TagDictGlobal, nil, codec.EncodeIDs(ids))

	case template.Message, template.QuotedString:
		ids := make([]int, len(col.Strings))
		for i, s := range col.Strings {
			ids[i] = pool.Intern(s)
		}
		return codec.EncodeBlock(codec.TagDictGlobal, nil, codec.EncodeIDs(ids))

	default: // IPv6, UUID, Hex, Host, ProcessID, Path, URL
		if codec.CardinalityRatio(col.Strings) >= localDictCardinalityFallback {
			return codec.EncodeBlock(codec.TagRaw, nil, codec.EncodeRaw(col.Strings))
		}
		distinct, ids := codec.BuildLocalDict(col.Strings)
		header := codec.EncodeLocalDictHeader(distinct)
		return codec.EncodeBlock(codec.TagDictLocal, header, codec.EncodeIDs(ids))
	}
}

// decodeColumn reverses encodeColumn given the block's parsed tag, header,
// and payload, and n, the column's row count (recovered from the owning
// template's assigned-line count).
func decodeColumn(ft template.FieldType, n int, tag codec.Tag, header, payload []byte, severity *dictionary.Dictionary, pool *dictionary.MessagePool) (*column.Column, error) {
	col := &column.Column{FieldType: ft}
	switch tag {
	case codec.TagDeltaZigzagVarint:
		vals, err := codec.DecodeDeltaZigzagVarint(payload, n)
		if err != nil {
			return nil, err
		}
		col.Ints = vals
		return col, nil

	case codec.TagVarint:
		vals, err := codec.DecodeVarint(payload, n)
		if err != nil {
			return nil, err
		}
		col.Ints = vals
		return col, nil

	case codec.TagZigzagVarint:
		vals, err := codec.DecodeZigzagVarint(payload, n)
		if err != nil {
			return nil, err
		}
		col.Ints = vals
		return col, nil

	case codec.TagDictLocal:
		if ft == template.IPv4 {
			return decodeIPv4DictColumn(header, payload, n)
		}
		values, err := codec.DecodeLocalDictHeader(header)
		if err != nil {
			return nil, err
		}
		ids, err := codec.DecodeIDs(payload, n)
		if err != nil {
			return nil, err
		}
		col.Strings = make([]string, n)
		for i, id := range ids {
			if id < 0 || id >= len(values) {
				return nil, &Error{Kind: DictionaryIdOutOfRange, Section: "column", Offset: -1, Message: "local dictionary id out of range"}
			}
			col.Strings[i] = values[id]
		}
		return col, nil

	case codec.TagDictGlobal:
		ids, err := codec.DecodeIDs(payload, n)
		if err != nil {
			return nil, err
		}
		col.Strings = make([]string, n)
		dict := pool.Dict()
		if ft == template.Severity {
			dict = severity
		}
		for i, id := range ids {
			s, ok := dict.Lookup(id)
			if !ok {
				return nil, &Error{Kind: DictionaryIdOutOfRange, Section: "column", Offset: -1, Message: "global dictionary id out of range"}
			}
			col.Strings[i] = s
		}
		return col, nil

	case codec.TagRaw:
		vals, err := codec.DecodeRaw(payload, n)
		if err != nil {
			return nil, err
		}
		col.Strings = vals
		return col, nil

	default:
		return nil, &Error{Kind: UnknownCodecTag, Section: "column", Offset: -1, Message: "unrecognized codec tag"}
	}
}

// encodeIPv4Column applies the local dictionary-of-addresses pipeline:
// distinct addresses become a dictionary, rows become varint ids into
// it. The dictionary header stores each distinct address as 4 raw bytes
// (fixed width, cheaper than the general length-prefixed string header).
func encodeIPv4Column(col *column.Column) []byte {
	index := make(map[uint32]int)
	var distinct []uint32
	ids := make([]int, len(col.IPv4s))
	for i, v := range col.IPv4s {
		id, ok := index[v]
		if !ok {
			id = len(distinct)
			index[v] = id
			distinct = append(distinct, v)
		}
		ids[i] = id
	}
	header := make([]byte, 0, 4*len(distinct))
	for _, v := range distinct {
		header = append(header, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
	return codec.EncodeBlock(codec.TagDictLocal, header, codec.EncodeIDs(ids))
}

func decodeIPv4DictColumn(header, payload []byte, n int) (*column.Column, error) {
	if len(header)%4 != 0 {
		return nil, &Error{Kind: MalformedSlot, Section: "column", Offset: -1, Message: "ipv4 dictionary header not a multiple of 4 bytes"}
	}
	distinct := make([]uint32, len(header)/4)
	for i := range distinct {
		b := header[i*4 : i*4+4]
		distinct[i] = uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	}
	ids, err := codec.DecodeIDs(payload, n)
	if err != nil {
		return nil, err
	}
	col := &column.Column{FieldType: template.IPv4, IPv4s: make([]uint32, n)}
	for i, id := range ids {
		if id < 0 || id >= len(distinct) {
			return nil, &Error{Kind: DictionaryIdOutOfRange, Section: "column", Offset: -1, Message: "ipv4 dictionary id out of range"}
		}
		col.IPv4s[i] = distinct[id]
	}
	return col, nil
}

// IPv4DictionaryHas reports whether addr is present in the local IPv4
// dictionary encoded in a column block's header, without decoding the
// payload's id stream. This is the predicate-pushdown fast path: if addr
// is absent, the template is skipped entirely.
func IPv4DictionaryHas(header []byte, addr uint32) bool {
	for i := 0; i+4 <= len(header); i += 4 {
		b := header[i : i+4]
		v := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
		if v == addr {
			return true
		}
	}
	return false
}
