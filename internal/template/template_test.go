package template

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAbsorptionWidensDisagreeingWordToMessage(t *testing.T) {
	lines := []string{
		"user alice logged in successfully",
		"user bob logged in successfully",
		"user carol logged in successfully",
	}
	templates, assignment, err := Extract(lines, Config{MinSupport: 2, AbsorptionThreshold: 0.8, TemplateCeiling: 100}, logrus.StandardLogger())
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, []int{0, 0, 0}, assignment)

	var messageSlots int
	for _, slot := range templates[0].Slots {
		if !slot.Literal && slot.FieldType == Message {
			messageSlots++
		}
	}
	assert.Equal(t, 1, messageSlots)
}

func TestExtractTemplateIDsDenseInFirstAppearanceOrder(t *testing.T) {
	lines := []string{
		"host offline",
		"192.168.0.1 connected",
		"host offline",
		"192.168.0.2 connected",
	}
	templates, assignment, err := Extract(lines, Config{MinSupport: 1, AbsorptionThreshold: 0.8, TemplateCeiling: 100}, logrus.StandardLogger())
	require.NoError(t, err)
	require.Len(t, templates, 2)
	// "host offline" appears first, so it must be template 0.
	assert.Equal(t, 0, assignment[0])
	assert.Equal(t, 1, assignment[1])
	assert.Equal(t, 0, assignment[2])
	assert.Equal(t, 1, assignment[3])
	for i, tmpl := range templates {
		assert.Equal(t, i, tmpl.ID)
	}
}

func TestExtractBelowMinSupportAbsorbedOrSingleton(t *testing.T) {
	lines := make([]string, 0, 1002)
	for i := 0; i < 1000; i++ {
		lines = append(lines, "INFO request handled successfully")
	}
	lines = append(lines, "INFO request handled differently")
	lines = append(lines, "INFO request handled elsewhere")

	templates, assignment, err := Extract(lines, Config{MinSupport: 3, AbsorptionThreshold: 0.8, TemplateCeiling: 100}, logrus.StandardLogger())
	require.NoError(t, err)
	require.Len(t, templates, 1)
	for _, id := range assignment {
		assert.Equal(t, 0, id)
	}
}

func TestFinalizeTemplateColumnIndicesLeftToRight(t *testing.T) {
	lines := []string{
		"192.168.0.1 connected at 10",
		"192.168.0.2 connected at 20",
	}
	templates, _, err := Extract(lines, Config{MinSupport: 1, AbsorptionThreshold: 0.8, TemplateCeiling: 100}, logrus.StandardLogger())
	require.NoError(t, err)
	require.Len(t, templates, 1)

	var lastCol = -1
	for _, slot := range templates[0].Slots {
		if !slot.Literal {
			assert.Greater(t, slot.ColumnIndex, lastCol)
			lastCol = slot.ColumnIndex
		}
	}
	assert.Equal(t, lastCol+1, templates[0].NumVariable)
}

func TestFieldTypeTagRoundTrip(t *testing.T) {
	types := []FieldType{Timestamp, Severity, IPv4, IPv6, UUID, Integer, Hex, Host, ProcessID, Path, URL, QuotedString, Message}
	for _, ft := range types {
		tag := ft.Tag()
		got, ok := FieldTypeFromTag(tag)
		require.True(t, ok)
		assert.Equal(t, ft, got)
	}
}

func TestFieldTypeFromUnknownTagFails(t *testing.T) {
	_, ok := FieldTypeFromTag(0xFF)
	assert.False(t, ok)
}
