// Package dictionary implements a bijection between a small set of byte
// strings and compact integer ids, either local to one column or global
// across a container (the fixed severity vocabulary, and the
// message/quoted-string token pool shared by every template).
package dictionary

import (
	"crypto/sha256"
	"strings"

	"github.com/adam-bouafia/logsim/internal/codec"
)

// Dictionary is a bijection between byte strings and ids, where the id
// is simply the string's position in a length-prefixed sequence of
// length-prefixed byte strings. It is built once per container (or once
// per column, for local dictionaries) and never mutated after the
// container is serialized.
type Dictionary struct {
	values []string
	index  map[string]int
}

// New returns an empty Dictionary ready for interning.
func New() *Dictionary {
	return &Dictionary{index: make(map[string]int)}
}

// Intern returns the id for s, assigning the next free id (len(values))
// the first time s is seen.
func (d *Dictionary) Intern(s string) int {
	if id, ok := d.index[s]; ok {
		return id
	}
	id := len(d.values)
	d.values = append(d.values, s)
	d.index[s] = id
	return id
}

// ID looks up s without inserting it, used by the query executor to
// resolve a predicate literal against a column's dictionary: if the
// literal is absent from the dictionary, the template is skipped
// entirely rather than decoded and found empty.
func (d *Dictionary) ID(s string) (int, bool) {
	id, ok := d.index[s]
	return id, ok
}

// IDFold looks up s case-insensitively, returning the id of the first
// entry equal to s under case folding (e.g. "error" finds "ERROR").
func (d *Dictionary) IDFold(s string) (int, bool) {
	for i, v := range d.values {
		if strings.EqualFold(v, s) {
			return i, true
		}
	}
	return 0, false
}

// Lookup returns the string stored at id.
func (d *Dictionary) Lookup(id int) (string, bool) {
	if id < 0 || id >= len(d.values) {
		return "", false
	}
	return d.values[id], true
}

// Len returns the number of distinct entries.
func (d *Dictionary) Len() int { return len(d.values) }

// Values returns the dictionary's entries in id order. Callers must treat
// the result as read-only.
func (d *Dictionary) Values() []string { return d.values }

// Encode serializes the dictionary as a length-prefixed sequence of
// length-prefixed byte strings.
func Encode(d *Dictionary) []byte {
	var out []byte
	out = codec.PutUvarint(out, uint64(len(d.values)))
	for _, v := range d.values {
		out = codec.PutUvarint(out, uint64(len(v)))
		out = append(out, v...)
	}
	return out
}

// Decode parses a Dictionary from the start of src and returns it
// together with the number of bytes consumed.
func Decode(src []byte) (*Dictionary, int, error) {
	n, rest, err := codec.ReadUvarint(src)
	if err != nil {
		return nil, 0, err
	}
	consumed := len(src) - len(rest)
	d := New()
	for i := uint64(0); i < n; i++ {
		length, r, err := codec.ReadUvarint(rest)
		if err != nil {
			return nil, 0, err
		}
		consumed += len(rest) - len(r)
		rest = r
		if uint64(len(rest)) < length {
			return nil, 0, codec.ErrVarintOverflow
		}
		d.Intern(string(rest[:length]))
		rest = rest[length:]
		consumed += int(length)
	}
	return d, consumed, nil
}

// SeverityVocabulary is the compile-time-constant set of canonical
// severity names every container's global severity dictionary starts
// with, at fixed dense ids 0..8. Observed spellings in another case (e.g.
// "error") are interned after them when a container is written.
var SeverityVocabulary = []string{
	"TRACE", "DEBUG", "INFO", "NOTICE", "WARN", "WARNING", "ERROR", "FATAL", "CRITICAL",
}

// NewSeverityDictionary builds the fixed global severity Dictionary.
func NewSeverityDictionary() *Dictionary {
	d := New()
	for _, s := range SeverityVocabulary {
		d.Intern(s)
	}
	return d
}

// MessagePool is the container-global token-pool dictionary shared by
// MESSAGE and QUOTED_STRING columns across every template: messages
// repeat across templates, so pooling them once avoids storing the same
// text twice. Interning is deduplicated by content hash rather than a
// plain map[string]int, grounded on the teacher's SchemaSuffixFromHash
// content-addressing idiom in preprocess.go: at the data volumes a token
// pool is built for, hashing once up front and indexing by the
// fixed-size digest is the same trick the teacher used to turn an
// unbounded-length key into a cheap, collision-resistant map key.
type MessagePool struct {
	dict    *Dictionary
	byHash  map[[sha256.Size]byte]int
}

// NewMessagePool returns an empty pool.
func NewMessagePool() *MessagePool {
	return &MessagePool{dict: New(), byHash: make(map[[sha256.Size]byte]int)}
}

// Intern returns the pool id for s, interning it on first sight.
func (p *MessagePool) Intern(s string) int {
	h := sha256.Sum256([]byte(s))
	if id, ok := p.byHash[h]; ok {
		return id
	}
	id := p.dict.Intern(s)
	p.byHash[h] = id
	return id
}

// Lookup returns the string stored at id.
func (p *MessagePool) Lookup(id int) (string, bool) { return p.dict.Lookup(id) }

// Len returns the number of distinct pooled strings.
func (p *MessagePool) Len() int { return p.dict.Len() }

// Dict exposes the underlying Dictionary for encoding.
func (p *MessagePool) Dict() *Dictionary { return p.dict }

// LoadMessagePool rebuilds a MessagePool from an already-decoded
// Dictionary (used when deserializing a container: the hash index is only
// needed while interning during compression, not for lookups on read).
func LoadMessagePool(d *Dictionary) *MessagePool {
	p := &MessagePool{dict: d, byHash: make(map[[sha256.Size]byte]int)}
	for i, v := range d.Values() {
		p.byHash[sha256.Sum256([]byte(v))] = i
	}
	return p
}
