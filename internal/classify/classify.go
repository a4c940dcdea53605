// Package classify attaches exactly one semantic label to every byte of a
// log line: TIMESTAMP, SEVERITY, IPV4, IPV6, UUID, INTEGER, HEX, HOST,
// PROCESS_ID, PATH, URL, QUOTED_STRING, LITERAL, or WHITESPACE.
//
// Unlike a token-by-token classifier, Classify scans the raw line directly
// with an ordered, priority-ranked set of patterns (mirroring the
// teacher's tokenizer-as-cursor idiom in sqlparser.Scanner, but matching
// regexes instead of single runes). This lets a single semantic field
// (notably a TIMESTAMP like "Thu Jun 09 06:07:04 2005", which contains
// tokenizer-level delimiters such as spaces and colons internal to the
// value) surface as one labeled Span instead of forcing the template
// extractor to re-stitch several single-character tokens back together.
// Where no pattern matches, the classifier falls back to the tokenizer's
// own surface tokens (package token) so that every byte is still covered
// and delimiters still terminate runs.
package classify

import (
	"regexp"
	"strings"

	"github.com/gofrs/uuid"

	"github.com/adam-bouafia/logsim/internal/token"
)

// Label is the closed set of field types the classifier can assign.
// MESSAGE is intentionally absent: it denotes a "remaining free-form
// tail" and is assigned only by the template extractor, never by the
// classifier.
type Label int

const (
	Timestamp Label = iota + 1
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
	Literal
	WhitespaceLabel
)

func (l Label) String() string {
	switch l {
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
	case Literal:
		return "LITERAL"
	case WhitespaceLabel:
		return "WHITESPACE"
	default:
		return "UNKNOWN"
	}
}

// Span is a labeled, contiguous run of bytes within a line, together with
// the classifier's confidence in that label. Spans are ephemeral: they
// exist only to feed the template extractor.
type Span struct {
	Label      Label
	Offset     int
	Length     int
	Text       string
	Confidence float64
}

// confidenceFloor is the threshold below which a match is treated as
// LITERAL instead of its matched label. This avoids variablizing words
// that merely happen to resemble an identifier.
const confidenceFloor = 0.5

// severityVocabulary is the bounded, case-insensitive severity vocabulary.
var severityVocabulary = map[string]struct{}{
	"trace": {}, "debug": {}, "info": {}, "notice": {},
	"warn": {}, "warning": {}, "error": {}, "fatal": {}, "critical": {},
}

var (
	reIPv4      = regexp.MustCompile(`^(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)(\.(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)){3}`)
	reIPv6      = regexp.MustCompile(`^([0-9A-Fa-f]{0,4}:){2,7}[0-9A-Fa-f]{0,4}`)
	reUUID      = regexp.MustCompile(`^[0-9A-Fa-f]{8}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{12}`)
	reHex       = regexp.MustCompile(`^0[xX][0-9A-Fa-f]+`)
	reInteger   = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?`)
	rePath      = regexp.MustCompile(`^(/[\w.\-]+)+/?`)
	reURL       = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*://[^\s]+`)
	reHost      = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\-]*(\.[A-Za-z0-9][A-Za-z0-9\-]*)+`)
	reProcessID = regexp.MustCompile(`^[A-Za-z_][\w\-]*\[[0-9]+\]`)

	// timestamp layouts are tried as prefixes of the remaining line, in
	// order; the first one that parses wins. Kept alongside the regex
	// patterns used to detect the *shape* cheaply before attempting a
	// full time.Parse in package template (which needs the matched
	// layout string to re-render the value on query).
	reApacheTimestamp = regexp.MustCompile(`^\[?[A-Z][a-z]{2} [A-Z][a-z]{2} [0-9]{1,2} [0-9]{2}:[0-9]{2}:[0-9]{2} [0-9]{4}\]?`)
	reSyslogTimestamp = regexp.MustCompile(`^[A-Z][a-z]{2} {1,2}[0-9]{1,2} [0-9]{2}:[0-9]{2}:[0-9]{2}`)
	reRFC3339         = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}[T ][0-9]{2}:[0-9]{2}:[0-9]{2}(\.[0-9]+)?(Z|[+-][0-9]{2}:?[0-9]{2})?`)
)

type pattern struct {
	label Label
	match func(rest string) (length int, confidence float64)
}

// patterns is tried in a fixed priority order: UUID, then IPV4, IPV6,
// TIMESTAMP, INTEGER/HEX, HOST, PATH/URL, QUOTED_STRING, SEVERITY, and
// finally PROCESS_ID, falling back to LITERAL if nothing matches.
var patterns = []pattern{
	{UUID, matchUUID},
	{IPv4, matchRegex(reIPv4, 0.95)},
	{IPv6, matchIPv6},
	{Timestamp, matchTimestamp},
	{Hex, matchRegex(reHex, 0.9)},
	{Integer, matchRegex(reInteger, 0.7)},
	{Host, matchRegex(reHost, 0.6)},
	{Path, matchRegex(rePath, 0.6)},
	{URL, matchRegex(reURL, 0.9)},
	{QuotedString, matchQuoted},
	{Severity, matchSeverity},
	{ProcessID, matchRegex(reProcessID, 0.85)},
}

func matchRegex(re *regexp.Regexp, confidence float64) func(string) (int, float64) {
	return func(rest string) (int, float64) {
		loc := re.FindStringIndex(rest)
		if loc == nil || loc[0] != 0 {
			return 0, 0
		}
		return loc[1], confidence
	}
}

func matchUUID(rest string) (int, float64) {
	loc := reUUID.FindStringIndex(rest)
	if loc == nil || loc[0] != 0 {
		return 0, 0
	}
	if _, err := uuid.FromString(rest[:loc[1]]); err != nil {
		return 0, 0
	}
	return loc[1], 0.99
}

func matchIPv6(rest string) (int, float64) {
	loc := reIPv6.FindStringIndex(rest)
	if loc == nil || loc[0] != 0 {
		return 0, 0
	}
	if strings.Count(rest[:loc[1]], ":") < 2 {
		return 0, 0
	}
	return loc[1], 0.9
}

func matchTimestamp(rest string) (int, float64) {
	for _, re := range []*regexp.Regexp{reApacheTimestamp, reRFC3339, reSyslogTimestamp} {
		if loc := re.FindStringIndex(rest); loc != nil && loc[0] == 0 {
			return loc[1], 0.95
		}
	}
	return 0, 0
}

func matchQuoted(rest string) (int, float64) {
	toks := token.Tokenize(rest)
	if len(toks) == 0 || toks[0].Kind != token.Quoted {
		return 0, 0
	}
	return toks[0].Length, 0.9
}

func matchSeverity(rest string) (int, float64) {
	toks := token.Tokenize(rest)
	if len(toks) == 0 || toks[0].Kind != token.Word {
		return 0, 0
	}
	if _, ok := severityVocabulary[strings.ToLower(toks[0].Text)]; !ok {
		return 0, 0
	}
	return toks[0].Length, 0.97
}

// Classify labels every byte of line, returning spans in left-to-right
// order with no gaps and no overlaps. A match whose confidence is below
// confidenceFloor is folded into LITERAL.
func Classify(line string) []Span {
	var spans []Span
	pos := 0
	for pos < len(line) {
		rest := line[pos:]

		if length, label, confidence, ok := bestMatch(rest); ok {
			if confidence < confidenceFloor {
				label, confidence = Literal, confidence
			}
			spans = append(spans, Span{Label: label, Offset: pos, Length: length, Text: rest[:length], Confidence: confidence})
			pos += length
			continue
		}

		// No pattern matched: fall back to the raw tokenizer so every
		// byte is still covered.
		toks := token.Tokenize(rest)
		tok := toks[0]
		label := Literal
		confidence := 1.0
		if tok.Kind == token.Whitespace {
			label = WhitespaceLabel
		}
		spans = append(spans, Span{Label: label, Offset: pos, Length: tok.Length, Text: tok.Text, Confidence: confidence})
		pos += tok.Length
	}
	return spans
}

// bestMatch tries every pattern in priority order and returns the first
// one that matches at the start of rest.
func bestMatch(rest string) (length int, label Label, confidence float64, ok bool) {
	for _, p := range patterns {
		if l, c := p.match(rest); l > 0 {
			return l, p.label, c, true
		}
	}
	return 0, 0, 0, false
}
