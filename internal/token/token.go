// Package token splits a raw log line into surface tokens: word runs,
// number runs, quoted atoms, delimiters, and whitespace, covering every
// input byte.
//
// The scanner is a cursor over a single log line, rune-at-a-time, in the
// style of a hand-written recursive-descent lexer: no separate DFA table,
// just a switch over the first (and sometimes second) rune of the
// remaining input. It recognizes only generic surface shapes (word runs,
// number runs, quoted atoms, bracket and punctuation delimiters,
// whitespace); the semantic interpretation of a word or number run into a
// field type is entirely the classifier's job (package classify), not the
// tokenizer's.
package token

import (
	"unicode"
	"unicode/utf8"

	"github.com/smasher164/xid"
)

// Kind is the closed set of surface shapes the tokenizer distinguishes.
// Kind is advisory: it only tells the classifier what family of bytes it
// is looking at (word, number, quoted, ...), never the log-level semantic
// meaning.
type Kind int

const (
	Word Kind = iota + 1
	Number
	Quoted
	Delim
	Whitespace
	Other
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "Word"
	case Number:
		return "Number"
	case Quoted:
		return "Quoted"
	case Delim:
		return "Delim"
	case Whitespace:
		return "Whitespace"
	case Other:
		return "Other"
	default:
		return "Unknown"
	}
}

// Token is a contiguous substring of a line with its byte offset, length,
// and surface kind. Offset/Length always cover Text exactly; concatenating
// Text across an entire Tokenize call reproduces the input line byte-exact
// (a trailing newline is stripped before scanning starts).
type Token struct {
	Kind   Kind
	Offset int
	Length int
	Text   string
}

// scanner is the cursor used internally by Tokenize. It is not exported:
// callers only ever see the resulting []Token slice, since tokens exist
// only for the duration of one Tokenize call.
type scanner struct {
	input    string
	curIndex int
}

// Tokenize splits a raw line into an ordered sequence of tokens covering
// every byte. A trailing "\n" or "\r\n" is stripped before scanning. An
// empty line (after stripping) yields zero tokens. Tokenization never
// fails: unrecognized bytes become Other-kind runs.
func Tokenize(line string) []Token {
	line = stripTrailingNewline(line)
	if len(line) == 0 {
		return nil
	}

	s := &scanner{input: line}
	var out []Token
	for s.curIndex < len(s.input) {
		start := s.curIndex
		kind := s.next()
		out = append(out, Token{
			Kind:   kind,
			Offset: start,
			Length: s.curIndex - start,
			Text:   s.input[start:s.curIndex],
		})
	}
	return out
}

func stripTrailingNewline(line string) string {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
	}
	return line
}

// next scans exactly one token starting at s.curIndex and advances the
// cursor past it, returning the token's kind. Every branch is responsible
// for advancing s.curIndex at least one rune, so the loop in Tokenize
// always makes progress.
func (s *scanner) next() Kind {
	r, w := utf8.DecodeRuneInString(s.input[s.curIndex:])

	switch {
	case r == utf8.RuneError && w <= 1:
		// Non-UTF8 byte: treat as a single-byte Other token so the
		// scanner always makes progress over malformed input instead of
		// rejecting the line.
		s.curIndex++
		return Other
	case unicode.IsSpace(r):
		s.scanWhile(unicode.IsSpace)
		return Whitespace
	case r == '"' || r == '\'' || r == '`':
		s.scanQuoted(r)
		return Quoted
	case isDelim(r):
		s.curIndex += w
		return Delim
	case r == '+' || r == '-' || (r >= '0' && r <= '9'):
		if s.scanNumber() {
			return Number
		}
		// '+'/'-' not followed by a digit: treat as a delimiter rune.
		s.curIndex += w
		return Delim
	case xid.Start(r) || r == '_' || r == '%' || r == '\\':
		s.scanWhile(func(r rune) bool {
			return xid.Continue(r) || r == '_' || r == '%' || r == '\\' || r == '.' || r == '-' || r == ':' || r == '/'
		})
		return Word
	default:
		s.curIndex += w
		return Other
	}
}

// scanWhile advances the cursor while pred holds for the next rune.
func (s *scanner) scanWhile(pred func(rune) bool) {
	for s.curIndex < len(s.input) {
		r, w := utf8.DecodeRuneInString(s.input[s.curIndex:])
		if r == utf8.RuneError && w <= 1 {
			return
		}
		if !pred(r) {
			return
		}
		s.curIndex += w
	}
}

// scanQuoted consumes an atomic quoted token including its surrounding
// quote runes. An unterminated quote consumes to end of line rather than
// rejecting the line, matching the tokenizer's never-reject contract.
func (s *scanner) scanQuoted(quote rune) {
	_, w := utf8.DecodeRuneInString(s.input[s.curIndex:])
	s.curIndex += w
	for s.curIndex < len(s.input) {
		r, rw := utf8.DecodeRuneInString(s.input[s.curIndex:])
		if r == utf8.RuneError && rw <= 1 {
			s.curIndex++
			continue
		}
		if r == '\\' && s.curIndex+rw < len(s.input) {
			// consume an escaped character as part of the literal
			_, w2 := utf8.DecodeRuneInString(s.input[s.curIndex+rw:])
			s.curIndex += rw + w2
			continue
		}
		s.curIndex += rw
		if r == quote {
			return
		}
	}
}

// scanNumber consumes an integer, decimal, or simple dotted/colon-grouped
// numeric run (IPv4 octets, IPv6 hextets, or a plain integer all surface
// as one Number token; the classifier in package classify distinguishes
// between them). Returns false, leaving the cursor unmoved, if the rune at
// the cursor is a bare sign with no following digit.
func (s *scanner) scanNumber() bool {
	start := s.curIndex
	r, w := utf8.DecodeRuneInString(s.input[s.curIndex:])
	if r == '+' || r == '-' {
		r2, _ := utf8.DecodeRuneInString(s.input[s.curIndex+w:])
		if r2 < '0' || r2 > '9' {
			return false
		}
		s.curIndex += w
	}
	s.scanWhile(func(r rune) bool {
		return (r >= '0' && r <= '9') ||
			(r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') ||
			r == '.' || r == ':' || r == 'x' || r == 'X'
	})
	return s.curIndex > start
}

// isDelim reports whether r is one of the punctuation runes that the
// tokenizer always splits off as its own single-rune token; these runes
// terminate whatever run precedes them and become their own token.
func isDelim(r rune) bool {
	switch r {
	case '[', ']', '(', ')', '{', '}', '<', '>', ',', ';', '|', '=', '!', '?', '*', '&', '@', '#', '^', '~':
		return true
	default:
		return false
	}
}
