package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternAssignsPositionalIDs(t *testing.T) {
	d := New()
	assert.Equal(t, 0, d.Intern("a"))
	assert.Equal(t, 1, d.Intern("b"))
	assert.Equal(t, 0, d.Intern("a"))
	assert.Equal(t, 2, d.Len())
}

func TestIDLookupWithoutInsert(t *testing.T) {
	d := New()
	d.Intern("x")
	id, ok := d.ID("x")
	assert.True(t, ok)
	assert.Equal(t, 0, id)

	_, ok = d.ID("missing")
	assert.False(t, ok)
}

func TestIDFoldCaseInsensitive(t *testing.T) {
	d := NewSeverityDictionary()
	id, ok := d.IDFold("error")
	require.True(t, ok)
	assert.Equal(t, "ERROR", d.values[id])

	id2, ok := d.IDFold("ErRoR")
	require.True(t, ok)
	assert.Equal(t, id, id2)

	_, ok = d.IDFold("nonsense")
	assert.False(t, ok)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	d := New()
	d.Intern("alpha")
	d.Intern("beta")
	d.Intern("")

	encoded := Encode(d)
	decoded, consumed, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), consumed)
	assert.Equal(t, d.Values(), decoded.Values())
}

func TestSeverityVocabularyIsFixed(t *testing.T) {
	d := NewSeverityDictionary()
	require.Equal(t, len(SeverityVocabulary), d.Len())
	for i, v := range SeverityVocabulary {
		id, ok := d.ID(v)
		require.True(t, ok)
		assert.Equal(t, i, id)
	}
}

func TestMessagePoolDeduplicatesByContent(t *testing.T) {
	p := NewMessagePool()
	id1 := p.Intern("hello world")
	id2 := p.Intern("hello world")
	id3 := p.Intern("different")
	assert.Equal(t, id1, id2)
	assert.NotEqual(t, id1, id3)
	assert.Equal(t, 2, p.Len())

	text, ok := p.Lookup(id1)
	require.True(t, ok)
	assert.Equal(t, "hello world", text)
}

func TestLoadMessagePoolPreservesLookups(t *testing.T) {
	p := NewMessagePool()
	p.Intern("a")
	p.Intern("b")

	loaded := LoadMessagePool(p.Dict())
	assert.Equal(t, 1, loaded.Intern("b"))
	assert.Equal(t, 2, loaded.Len())
}
