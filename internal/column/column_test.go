package column

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adam-bouafia/logsim/internal/template"
)

func TestBuildRowAlignment(t *testing.T) {
	lines := []string{
		"192.168.0.1 connected",
		"host offline",
		"192.168.0.2 connected",
	}
	tmpls, assignment, err := template.Extract(lines, template.Config{
		MinSupport: 1, AbsorptionThreshold: 0.8, TemplateCeiling: 100,
	}, logrus.StandardLogger())
	require.NoError(t, err)

	var ipTmpl template.Template
	var found bool
	for _, tmpl := range tmpls {
		for _, s := range tmpl.Slots {
			if !s.Literal && s.FieldType == template.IPv4 {
				ipTmpl = tmpl
				found = true
			}
		}
	}
	require.True(t, found)

	set := Build(ipTmpl, lines, assignment)
	require.Len(t, set.Columns, ipTmpl.NumVariable)

	var ipCol *Column
	for i, s := range ipTmpl.Slots {
		if !s.Literal && s.FieldType == template.IPv4 {
			ipCol = set.Columns[ipTmpl.Slots[i].ColumnIndex]
		}
	}
	require.NotNil(t, ipCol)
	require.Equal(t, 2, ipCol.Len())
	assert.Equal(t, PackIPv4("192.168.0.1"), ipCol.IPv4s[0])
	assert.Equal(t, PackIPv4("192.168.0.2"), ipCol.IPv4s[1])
}

func TestIPv4RoundTrip(t *testing.T) {
	addrs := []string{"0.0.0.0", "255.255.255.255", "10.0.0.1", "192.168.1.100"}
	for _, a := range addrs {
		packed := PackIPv4(a)
		assert.Equal(t, a, Uint32ToIPv4(packed))
	}
}

func TestColumnLenByFieldType(t *testing.T) {
	intCol := &Column{FieldType: template.Integer, Ints: []int64{1, 2, 3}}
	assert.Equal(t, 3, intCol.Len())

	ipCol := &Column{FieldType: template.IPv4, IPv4s: []uint32{1, 2}}
	assert.Equal(t, 2, ipCol.Len())

	strCol := &Column{FieldType: template.Host, Strings: []string{"a", "b", "c", "d"}}
	assert.Equal(t, 4, strCol.Len())
}
