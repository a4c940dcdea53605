package template

import "github.com/adam-bouafia/logsim/internal/classify"

// FieldType is the field-type tag carried by a variable slot. It mirrors
// classify.Label but adds Message, which is assigned only by the
// template extractor, never by the classifier.
type FieldType int

const (
	Timestamp FieldType = iota + 1
	Severity
	IPv4
	IPv6
	UUID
	Integer
	Hex
	Host
	ProcessID
	Path
	URL
	QuotedString
	Message
)

func (f FieldType) String() string {
	switch f {
	case Timestamp:
		return "TIMESTAMP"
	case Severity:
		return "SEVERITY"
	case IPv4:
		return "IPV4"
	case IPv6:
		return "IPV6"
	case UUID:
		return "UUID"
	case Integer:
		return "INTEGER"
	case Hex:
		return "HEX"
	case Host:
		return "HOST"
	case ProcessID:
		return "PROCESS_ID"
	case Path:
		return "PATH"
	case URL:
		return "URL"
	case QuotedString:
		return "QUOTED_STRING"
	case Message:
		return "MESSAGE"
	default:
		return "UNKNOWN"
	}
}

// fromLabel converts a classifier label into the corresponding field
// type. Literal and whitespace spans never reach this: they become
// literal slots, never variable ones.
func fromLabel(l classify.Label) FieldType {
	switch l {
	case classify.Timestamp:
		return Timestamp
	case classify.Severity:
		return Severity
	case classify.IPv4:
		return IPv4
	case classify.IPv6:
		return IPv6
	case classify.UUID:
		return UUID
	case classify.Integer:
		return Integer
	case classify.Hex:
		return Hex
	case classify.Host:
		return Host
	case classify.ProcessID:
		return ProcessID
	case classify.Path:
		return Path
	case classify.URL:
		return URL
	case classify.QuotedString:
		return QuotedString
	default:
		return Message
	}
}

// Byte tag values for the field-type-as-enum contract of the template
// table's field-type byte. Values are part of the bit-exact container
// contract and must never be renumbered within a version.
const (
	TagTimestamp     byte = 0x01
	TagSeverity      byte = 0x02
	TagIPv4          byte = 0x03
	TagIPv6          byte = 0x04
	TagUUID          byte = 0x05
	TagInteger       byte = 0x06
	TagHex           byte = 0x07
	TagHost          byte = 0x08
	TagProcessID     byte = 0x09
	TagPath          byte = 0x0A
	TagURL           byte = 0x0B
	TagQuotedString  byte = 0x0C
	TagMessage       byte = 0x0D
)

var fieldTypeTags = map[FieldType]byte{
	Timestamp: TagTimestamp, Severity: TagSeverity, IPv4: TagIPv4, IPv6: TagIPv6,
	UUID: TagUUID, Integer: TagInteger, Hex: TagHex, Host: TagHost,
	ProcessID: TagProcessID, Path: TagPath, URL: TagURL,
	QuotedString: TagQuotedString, Message: TagMessage,
}

var tagFieldTypes = func() map[byte]FieldType {
	m := make(map[byte]FieldType, len(fieldTypeTags))
	for ft, tag := range fieldTypeTags {
		m[tag] = ft
	}
	return m
}()

// Tag returns the container-format byte tag for f.
func (f FieldType) Tag() byte { return fieldTypeTags[f] }

// FieldTypeFromTag resolves a container-format byte tag back to a
// FieldType, reporting false for an unrecognized tag.
func FieldTypeFromTag(tag byte) (FieldType, bool) {
	ft, ok := tagFieldTypes[tag]
	return ft, ok
}
