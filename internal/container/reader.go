package container

import (
	"hash/crc32"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/adam-bouafia/logsim/internal/codec"
	"github.com/adam-bouafia/logsim/internal/column"
	"github.com/adam-bouafia/logsim/internal/dictionary"
	"github.com/adam-bouafia/logsim/internal/template"
)

// State is the container reader's progression: UNOPENED → HEADER_PARSED
// → BODY_DECODED → FOOTER_READ → READY. Any validation failure is
// terminal; Open reports the offending section.
type State int

const (
	Unopened State = iota
	HeaderParsed
	BodyDecoded
	FooterRead
	Ready
)

// blockRef is one column block's framing, sliced out of the owned decoded
// body buffer without interpreting the payload.
type blockRef struct {
	tag     codec.Tag
	header  []byte
	payload []byte
}

// Container is an opened, immutable container: readers see an immutable
// view over one owned, entropy-decoded buffer; sections are accessed by
// slicing it, and column payloads are decoded lazily and only for the
// columns a query actually touches.
type Container struct {
	state       State
	log         logrus.FieldLogger
	footer      footer
	decodedBody []byte

	templates  []template.Template
	assignment []int
	rowCounts  []int

	severity *dictionary.Dictionary
	pool     *dictionary.MessagePool

	columnScanOnce sync.Once
	columnScanErr  error
	columnBlocks   [][]blockRef // indexed by template id

	columnCacheMu sync.Mutex
	columnCache   map[[2]int]*column.Column

	lineIndicesOnce sync.Once
	lineIndices     [][]int // indexed by template id, global line indices ascending
}

// Open parses and validates data as a container, advancing through the
// reader's state machine. It decodes the entropy pass exactly once into
// an owned buffer, checks the footer's CRC32 over the whole body before
// the footer (column blocks included), and reads the template table,
// global dictionaries, and template_id stream eagerly without decoding
// any column block; column blocks are scanned lazily on first query
// access.
func Open(data []byte, log logrus.FieldLogger) (*Container, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	hdr, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}

	decoded, err := entropyDecode(data[headerSize:], hdr.Flags)
	if err != nil {
		return nil, wrapf(EntropyDecodeFailed, "entropy_pass", int64(headerSize), err, "entropy decode failed")
	}

	if hdr.FooterOffset+footerSize > uint64(len(decoded)) {
		return nil, &Error{Kind: TruncatedContainer, Section: "footer", Offset: int64(len(decoded)), Message: "footer offset beyond decoded body"}
	}
	bodyBeforeFooter := decoded[:hdr.FooterOffset]
	ft, err := decodeFooter(decoded[hdr.FooterOffset:])
	if err != nil {
		return nil, err
	}
	if crc32.ChecksumIEEE(bodyBeforeFooter) != ft.CRC32 {
		return nil, &Error{Kind: ChecksumMismatch, Section: "body", Offset: int64(hdr.FooterOffset), Message: "crc32 mismatch over body"}
	}

	if ft.GlobalsOffset > uint64(len(decoded)) || ft.TemplatesOffset > ft.GlobalsOffset {
		return nil, &Error{Kind: TruncatedContainer, Section: "template_table", Offset: int64(ft.TemplatesOffset), Message: "template table section out of bounds"}
	}
	templates, _, err := decodeTemplateTable(decoded[ft.TemplatesOffset:ft.GlobalsOffset])
	if err != nil {
		return nil, err
	}

	if ft.TidstreamOffset > uint64(len(decoded)) || ft.GlobalsOffset > ft.TidstreamOffset {
		return nil, &Error{Kind: TruncatedContainer, Section: "globals", Offset: int64(ft.GlobalsOffset), Message: "globals section out of bounds"}
	}
	globalsBytes := decoded[ft.GlobalsOffset:ft.TidstreamOffset]
	severityDict, consumed, err := dictionary.Decode(globalsBytes)
	if err != nil {
		return nil, wrapf(VarintOverflow, "globals", int64(ft.GlobalsOffset), err, "severity dictionary")
	}
	poolDict, _, err := dictionary.Decode(globalsBytes[consumed:])
	if err != nil {
		return nil, wrapf(VarintOverflow, "globals", int64(ft.GlobalsOffset)+int64(consumed), err, "message pool dictionary")
	}
	pool := dictionary.LoadMessagePool(poolDict)

	if ft.ColumnsOffset > uint64(len(decoded)) || ft.TidstreamOffset > ft.ColumnsOffset {
		return nil, &Error{Kind: TruncatedContainer, Section: "tidstream", Offset: int64(ft.TidstreamOffset), Message: "template_id stream section out of bounds"}
	}
	tag, tidHeader, tidPayload, _, err := codec.DecodeBlock(decoded[ft.TidstreamOffset:ft.ColumnsOffset])
	if err != nil {
		return nil, wrapf(VarintOverflow, "tidstream", int64(ft.TidstreamOffset), err, "template_id stream block framing")
	}
	if tag != codec.TagRLEVarint {
		return nil, &Error{Kind: UnknownCodecTag, Section: "tidstream", Offset: int64(ft.TidstreamOffset), Message: "template_id stream must use RLE-varint"}
	}
	total, _, err := codec.ReadUvarint(tidHeader)
	if err != nil {
		return nil, wrapf(VarintOverflow, "tidstream", int64(ft.TidstreamOffset), err, "template_id stream row count")
	}
	if total != ft.NLines {
		return nil, &Error{Kind: TruncatedContainer, Section: "tidstream", Offset: int64(ft.TidstreamOffset), Message: "template_id stream row count disagrees with footer"}
	}
	rawIDs, err := codec.DecodeRLE(tidPayload, int(total))
	if err != nil {
		return nil, wrapf(VarintOverflow, "tidstream", int64(ft.TidstreamOffset), err, "template_id stream payload")
	}
	assignment := make([]int, len(rawIDs))
	rowCounts := make([]int, len(templates))
	for i, id := range rawIDs {
		assignment[i] = int(id)
		if int(id) >= 0 && int(id) < len(rowCounts) {
			rowCounts[id]++
		}
	}

	c := &Container{
		state:       Ready,
		log:         log,
		footer:      ft,
		decodedBody: decoded,
		templates:   templates,
		assignment: assignment,
		rowCounts:  rowCounts,
		severity:   severityDict,
		pool:       pool,
	}
	return c, nil
}

// State reports the reader's current state-machine position.
func (c *Container) State() State { return c.state }

// Count returns the total line count from the footer in O(1), touching
// no column block bytes.
func (c *Container) Count() uint64 { return c.footer.NLines }

// NTemplates returns the number of distinct templates.
func (c *Container) NTemplates() int { return len(c.templates) }

// Template returns the template with the given id.
func (c *Container) Template(id int) template.Template { return c.templates[id] }

// Templates returns all templates in id order. Callers must treat the
// result as read-only.
func (c *Container) Templates() []template.Template { return c.templates }

// Assignment returns the per-line template id assignment. Callers must
// treat the result as read-only.
func (c *Container) Assignment() []int { return c.assignment }

// RowCount returns the number of lines assigned to templateID.
func (c *Container) RowCount(templateID int) int { return c.rowCounts[templateID] }

// ensureColumnsScanned performs the one-time, framing-only pass over the
// columns section: it reads each column block's tag/header/payload
// boundaries but never interprets a payload's values. This keeps the scan
// itself column-pruning-safe (no dictionary lookups, no varint value
// decode) while letting later column access avoid re-walking prior
// templates' blocks to find an offset.
func (c *Container) ensureColumnsScanned() error {
	c.columnScanOnce.Do(func() {
		pos := c.footer.ColumnsOffset
		blocks := make([][]blockRef, len(c.templates))
		for _, t := range c.templates {
			if uint64(t.ID) >= uint64(len(blocks)) {
				continue
			}
			refs := make([]blockRef, 0, t.NumVariable)
			for i := 0; i < t.NumVariable; i++ {
				tag, header, payload, consumed, err := codec.DecodeBlock(c.bodyFrom(pos))
				if err != nil {
					c.columnScanErr = wrapf(VarintOverflow, "columns", int64(pos), err, "column block framing for template %d", t.ID)
					return
				}
				refs = append(refs, blockRef{tag: tag, header: header, payload: payload})
				pos += uint64(consumed)
			}
			blocks[t.ID] = refs
		}
		c.columnBlocks = blocks
	})
	return c.columnScanErr
}

// bodyFrom is a small indirection so ensureColumnsScanned can slice from an
// absolute offset without the reader retaining the full decoded buffer
// under a separate field name; decodedBody is stored once, at Open time,
// inside footer-relative slices already produced there. Kept as a method
// for readability at call sites.
func (c *Container) bodyFrom(pos uint64) []byte {
	return c.decodedBody[pos:]
}

// Column decodes and returns the fully materialized column for
// (templateID, slot), the query executor's only entry point into the
// codec layer, matching the column-pruning invariant: a column is decoded
// if and only if some predicate or projection names it.
func (c *Container) Column(templateID int, slot template.Slot) (*column.Column, error) {
	if err := c.ensureColumnsScanned(); err != nil {
		return nil, err
	}
	refs := c.columnBlocks[templateID]
	if slot.ColumnIndex < 0 || slot.ColumnIndex >= len(refs) {
		return nil, &Error{Kind: MalformedSlot, Section: "columns", Offset: -1, Message: "column index out of range for template"}
	}
	ref := refs[slot.ColumnIndex]

	key := [2]int{templateID, slot.ColumnIndex}
	c.columnCacheMu.Lock()
	if c.columnCache == nil {
		c.columnCache = make(map[[2]int]*column.Column)
	}
	if cached, ok := c.columnCache[key]; ok {
		c.columnCacheMu.Unlock()
		return cached, nil
	}
	c.columnCacheMu.Unlock()

	col, err := decodeColumn(slot.FieldType, c.rowCounts[templateID], ref.tag, ref.header, ref.payload, c.severity, c.pool)
	if err != nil {
		return nil, err
	}
	c.columnCacheMu.Lock()
	c.columnCache[key] = col
	c.columnCacheMu.Unlock()
	return col, nil
}

// LineIndices returns, for templateID, the global line indices (ascending,
// input order) of the lines assigned to it: the row-to-line mapping the
// query executor uses to translate a template-local row match back to the
// original line number.
func (c *Container) LineIndices(templateID int) []int {
	c.lineIndicesOnce.Do(func() {
		idx := make([][]int, len(c.templates))
		for li, tid := range c.assignment {
			if tid >= 0 && tid < len(idx) {
				idx[tid] = append(idx[tid], li)
			}
		}
		c.lineIndices = idx
	})
	if templateID < 0 || templateID >= len(c.lineIndices) {
		return nil
	}
	return c.lineIndices[templateID]
}

// ColumnHeader returns a column block's raw header bytes without decoding
// its payload, used by predicate-pushdown fast paths such as
// IPv4DictionaryHas.
func (c *Container) ColumnHeader(templateID int, slot template.Slot) ([]byte, error) {
	if err := c.ensureColumnsScanned(); err != nil {
		return nil, err
	}
	refs := c.columnBlocks[templateID]
	if slot.ColumnIndex < 0 || slot.ColumnIndex >= len(refs) {
		return nil, &Error{Kind: MalformedSlot, Section: "columns", Offset: -1, Message: "column index out of range for template"}
	}
	return refs[slot.ColumnIndex].header, nil
}
