package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rebuild(spans []Span) string {
	var out string
	for _, s := range spans {
		out += s.Text
	}
	return out
}

func TestClassifyCoversEveryByte(t *testing.T) {
	lines := []string{
		`[Thu Jun 09 06:07:04 2005] [notice] LDAP: Built with OpenLDAP`,
		`2024-01-02T15:04:05Z ERROR service unavailable`,
		`host.example.com GET /a/b/c 200`,
		`user=550e8400-e29b-41d4-a716-446655440000 ip=10.0.0.1`,
	}
	for _, line := range lines {
		spans := Classify(line)
		assert.Equal(t, line, rebuild(spans), "spans must cover %q exactly", line)
	}
}

func TestClassifyApacheTimestamp(t *testing.T) {
	spans := Classify(`[Thu Jun 09 06:07:04 2005] [notice] LDAP: Built with OpenLDAP`)
	require.NotEmpty(t, spans)
	// The bracketed timestamp regex consumes its surrounding brackets, so
	// the very first span is the full "[...]" run.
	assert.Equal(t, Timestamp, spans[0].Label)
	assert.Equal(t, `[Thu Jun 09 06:07:04 2005]`, spans[0].Text)
}

func TestClassifySeverity(t *testing.T) {
	spans := Classify(`ERROR something broke`)
	require.NotEmpty(t, spans)
	assert.Equal(t, Severity, spans[0].Label)
}

func TestClassifyIPv4(t *testing.T) {
	spans := Classify(`connect from 192.168.1.10 refused`)
	var found bool
	for _, s := range spans {
		if s.Label == IPv4 {
			found = true
			assert.Equal(t, "192.168.1.10", s.Text)
		}
	}
	assert.True(t, found)
}

func TestClassifyUUID(t *testing.T) {
	spans := Classify(`request 550e8400-e29b-41d4-a716-446655440000 accepted`)
	var found bool
	for _, s := range spans {
		if s.Label == UUID {
			found = true
		}
	}
	assert.True(t, found)
}

func TestClassifyUnmatchedWordFallsBackToLiteral(t *testing.T) {
	// A bare word that resembles nothing in the pattern table classifies as
	// LITERAL via the tokenizer fallback, never as a spurious variable.
	spans := Classify(`hello`)
	require.Len(t, spans, 1)
	assert.Equal(t, Literal, spans[0].Label)
}
