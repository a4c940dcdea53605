// Package container implements the self-describing binary container
// format: a single-pass writer and a lazy, seekable reader built on top
// of internal/template, internal/column, internal/dictionary, and
// internal/codec.
package container

import "encoding/binary"

// Magic is the container's 4-byte identifier.
var Magic = [4]byte{'L', 'S', 'C', '1'}

// Version is the current container format version.
const Version uint16 = 1

// FlagEntropyDictionary is flags bit 0: set when the entropy pass
// prepended a trained/content dictionary.
const FlagEntropyDictionary uint16 = 1 << 0

// headerSize is the fixed-position prefix that sits outside the
// entropy-coded body: magic(4) + version(2) + flags(2) + footer_offset(8).
const headerSize = 4 + 2 + 2 + 8

// header is the fixed-position prefix that precedes the entropy-coded
// body.
type header struct {
	Version      uint16
	Flags        uint16
	FooterOffset uint64 // offset of the footer within the decoded body buffer
}

func encodeHeader(h header) []byte {
	buf := make([]byte, headerSize)
	copy(buf[0:4], Magic[:])
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	binary.LittleEndian.PutUint16(buf[6:8], h.Flags)
	binary.LittleEndian.PutUint64(buf[8:16], h.FooterOffset)
	return buf
}

func decodeHeader(data []byte) (header, error) {
	if len(data) >= len(Magic) {
		var magic [4]byte
		copy(magic[:], data[0:4])
		if magic != Magic {
			return header{}, &Error{Kind: InvalidMagic, Section: "header", Offset: 0, Message: "bad magic bytes"}
		}
	}
	if len(data) < headerSize {
		return header{}, &Error{Kind: TruncatedContainer, Section: "header", Offset: int64(len(data)), Message: "container shorter than fixed header"}
	}
	h := header{
		Version:      binary.LittleEndian.Uint16(data[4:6]),
		Flags:        binary.LittleEndian.Uint16(data[6:8]),
		FooterOffset: binary.LittleEndian.Uint64(data[8:16]),
	}
	if h.Version != Version {
		return header{}, &Error{Kind: UnsupportedVersion, Section: "header", Offset: 4, Message: "unsupported container version"}
	}
	return h, nil
}

// footerSize is the fixed-width encoding of the footer fields:
// n_lines(8) + n_templates(4) + templates_offset(8) + globals_offset(8) +
// tidstream_offset(8) + columns_offset(8) + crc32(4).
const footerSize = 8 + 4 + 8 + 8 + 8 + 8 + 4

// footer holds the body's section offsets and summary fields, all
// relative to the start of the decoded body buffer.
type footer struct {
	NLines          uint64
	NTemplates      uint32
	TemplatesOffset uint64
	GlobalsOffset   uint64
	TidstreamOffset uint64
	ColumnsOffset   uint64
	CRC32           uint32
}

func encodeFooter(f footer) []byte {
	buf := make([]byte, footerSize)
	binary.LittleEndian.PutUint64(buf[0:8], f.NLines)
	binary.LittleEndian.PutUint32(buf[8:12], f.NTemplates)
	binary.LittleEndian.PutUint64(buf[12:20], f.TemplatesOffset)
	binary.LittleEndian.PutUint64(buf[20:28], f.GlobalsOffset)
	binary.LittleEndian.PutUint64(buf[28:36], f.TidstreamOffset)
	binary.LittleEndian.PutUint64(buf[36:44], f.ColumnsOffset)
	binary.LittleEndian.PutUint32(buf[44:48], f.CRC32)
	return buf
}

func decodeFooter(data []byte) (footer, error) {
	if len(data) < footerSize {
		return footer{}, &Error{Kind: TruncatedContainer, Section: "footer", Offset: int64(len(data)), Message: "body shorter than fixed footer"}
	}
	return footer{
		NLines:          binary.LittleEndian.Uint64(data[0:8]),
		NTemplates:      binary.LittleEndian.Uint32(data[8:12]),
		TemplatesOffset: binary.LittleEndian.Uint64(data[12:20]),
		GlobalsOffset:   binary.LittleEndian.Uint64(data[20:28]),
		TidstreamOffset: binary.LittleEndian.Uint64(data[28:36]),
		ColumnsOffset:   binary.LittleEndian.Uint64(data[36:44]),
		CRC32:           binary.LittleEndian.Uint32(data[44:48]),
	}, nil
}
