package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeCoversEveryByte(t *testing.T) {
	lines := []string{
		`[Thu Jun 09 06:07:04 2005] [notice] LDAP: Built with OpenLDAP`,
		`GET /index.html?x=1 HTTP/1.1`,
		`user "alice smith" logged in from 10.0.0.1`,
		``,
		`a`,
	}
	for _, line := range lines {
		toks := Tokenize(line)
		var rebuilt string
		for _, tok := range toks {
			rebuilt += tok.Text
		}
		assert.Equal(t, stripTrailingNewline(line), rebuilt, "tokens must cover every byte of %q", line)
	}
}

func TestTokenizeEmptyLine(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("\n"))
	assert.Empty(t, Tokenize("\r\n"))
}

func TestTokenizeQuotedIsAtomic(t *testing.T) {
	toks := Tokenize(`say "hello world" now`)
	require.Len(t, toks, 5)
	assert.Equal(t, Quoted, toks[2].Kind)
	assert.Equal(t, `"hello world"`, toks[2].Text)
}

func TestTokenizeDelimitersAreSingleRune(t *testing.T) {
	toks := Tokenize(`[a]`)
	require.Len(t, toks, 3)
	assert.Equal(t, Delim, toks[0].Kind)
	assert.Equal(t, "[", toks[0].Text)
	assert.Equal(t, Word, toks[1].Kind)
	assert.Equal(t, Delim, toks[2].Kind)
}

func TestTokenizeWhitespaceRun(t *testing.T) {
	toks := Tokenize("a   b")
	require.Len(t, toks, 3)
	assert.Equal(t, Whitespace, toks[1].Kind)
	assert.Equal(t, "   ", toks[1].Text)
}

func TestTokenizeNegativeNumber(t *testing.T) {
	toks := Tokenize("-5")
	require.Len(t, toks, 1)
	assert.Equal(t, Number, toks[0].Kind)
}

func TestTokenizeBareSignIsDelim(t *testing.T) {
	toks := Tokenize("5-x")
	require.Len(t, toks, 3)
	assert.Equal(t, Number, toks[0].Kind)
	assert.Equal(t, Delim, toks[1].Kind)
	assert.Equal(t, Word, toks[2].Kind)
}

func TestTokenizeWordAllowsInternalPunctuation(t *testing.T) {
	toks := Tokenize("proc-1.example.com")
	require.Len(t, toks, 1)
	assert.Equal(t, Word, toks[0].Kind)
}
