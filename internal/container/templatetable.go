package container

import (
	"github.com/adam-bouafia/logsim/internal/codec"
	"github.com/adam-bouafia/logsim/internal/template"
)

// Slot tags: 0x00 marks a literal slot, 0x01 a variable slot.
const (
	slotTagLiteral  byte = 0x00
	slotTagVariable byte = 0x01
)

// encodeTemplateTable serializes templates as the container's template
// table: one entry per template, `{template_id: varint, n_slots: varint,
// slots: [tag: u8, payload]*}`. A TIMESTAMP variable slot's payload
// additionally carries its recognized layout string, needed to re-render
// the original textual form bit-exactly.
func encodeTemplateTable(templates []template.Template) []byte {
	var out []byte
	out = codec.PutUvarint(out, uint64(len(templates)))
	for _, t := range templates {
		out = codec.PutUvarint(out, uint64(t.ID))
		out = codec.PutUvarint(out, uint64(len(t.Slots)))
		for _, slot := range t.Slots {
			if slot.Literal {
				out = append(out, slotTagLiteral)
				out = codec.PutUvarint(out, uint64(len(slot.LiteralBytes)))
				out = append(out, slot.LiteralBytes...)
				continue
			}
			out = append(out, slotTagVariable)
			out = append(out, slot.FieldType.Tag())
			out = codec.PutUvarint(out, uint64(slot.ColumnIndex))
			if slot.FieldType == template.Timestamp {
				out = codec.PutUvarint(out, uint64(len(slot.TimeLayout)))
				out = append(out, slot.TimeLayout...)
			}
		}
	}
	return out
}

// decodeTemplateTable parses the template table written by
// encodeTemplateTable, returning the templates in id order and the number
// of bytes consumed.
func decodeTemplateTable(data []byte) ([]template.Template, int, error) {
	nTemplates, rest, err := codec.ReadUvarint(data)
	if err != nil {
		return nil, 0, wrapf(VarintOverflow, "template_table", -1, err, "template count")
	}
	templates := make([]template.Template, 0, nTemplates)
	for ti := uint64(0); ti < nTemplates; ti++ {
		id, r, err := codec.ReadUvarint(rest)
		if err != nil {
			return nil, 0, wrapf(VarintOverflow, "template_table", -1, err, "template id")
		}
		rest = r
		nSlots, r, err := codec.ReadUvarint(rest)
		if err != nil {
			return nil, 0, wrapf(VarintOverflow, "template_table", -1, err, "slot count")
		}
		rest = r

		slots := make([]template.Slot, 0, nSlots)
		col := 0
		for si := uint64(0); si < nSlots; si++ {
			if len(rest) < 1 {
				return nil, 0, wrapf(MalformedSlot, "template_table", -1, nil, "truncated slot tag")
			}
			tag := rest[0]
			rest = rest[1:]
			switch tag {
			case slotTagLiteral:
				length, r, err := codec.ReadUvarint(rest)
				if err != nil {
					return nil, 0, wrapf(VarintOverflow, "template_table", -1, err, "literal length")
				}
				if uint64(len(r)) < length {
					return nil, 0, wrapf(MalformedSlot, "template_table", -1, nil, "truncated literal bytes")
				}
				slots = append(slots, template.Slot{Literal: true, LiteralBytes: append([]byte(nil), r[:length]...)})
				rest = r[length:]
			case slotTagVariable:
				if len(rest) < 1 {
					return nil, 0, wrapf(MalformedSlot, "template_table", -1, nil, "truncated field-type tag")
				}
				ft, ok := template.FieldTypeFromTag(rest[0])
				if !ok {
					return nil, 0, wrapf(MalformedSlot, "template_table", -1, nil, "unknown field-type tag 0x%02x", rest[0])
				}
				rest = rest[1:]
				colIdx, r, err := codec.ReadUvarint(rest)
				if err != nil {
					return nil, 0, wrapf(VarintOverflow, "template_table", -1, err, "column index")
				}
				rest = r
				slot := template.Slot{Literal: false, FieldType: ft, ColumnIndex: int(colIdx)}
				if ft == template.Timestamp {
					layoutLen, r, err := codec.ReadUvarint(rest)
					if err != nil {
						return nil, 0, wrapf(VarintOverflow, "template_table", -1, err, "timestamp layout length")
					}
					if uint64(len(r)) < layoutLen {
						return nil, 0, wrapf(MalformedSlot, "template_table", -1, nil, "truncated timestamp layout")
					}
					slot.TimeLayout = string(r[:layoutLen])
					rest = r[layoutLen:]
				}
				slots = append(slots, slot)
				col++
			default:
				return nil, 0, wrapf(MalformedSlot, "template_table", -1, nil, "unknown slot tag 0x%02x", tag)
			}
		}
		templates = append(templates, template.Template{ID: int(id), Slots: slots, NumVariable: col})
	}
	consumed := len(data) - len(rest)
	return templates, consumed, nil
}
