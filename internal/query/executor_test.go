package query

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adam-bouafia/logsim/internal/column"
	"github.com/adam-bouafia/logsim/internal/container"
)

func openContainer(t *testing.T, lines []string) *container.Container {
	t.Helper()
	data, err := container.Write(lines, container.DefaultOptions(), logrus.StandardLogger())
	require.NoError(t, err)
	c, err := container.Open(data, logrus.StandardLogger())
	require.NoError(t, err)
	return c
}

func TestCountMatchesLineCount(t *testing.T) {
	lines := []string{
		"[notice] a started",
		"[error] b failed",
		"[notice] c started",
	}
	c := openContainer(t, lines)
	assert.Equal(t, uint64(len(lines)), Count(c))
}

func TestFilterSeveritySoundAndComplete(t *testing.T) {
	lines := []string{
		"[notice] server started ok",
		"[error] connection refused now",
		"[notice] server stopped ok",
	}
	c := openContainer(t, lines)

	results, err := Filter(c, Severity("error"), 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].LineIndex)
	assert.Equal(t, lines[1], results[0].Rendered)
}

func TestFilterSeverityCaseInsensitive(t *testing.T) {
	lines := []string{
		"[NOTICE] server started ok",
		"[ERROR] connection refused now",
	}
	c := openContainer(t, lines)

	results, err := Filter(c, Severity("error"), 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, lines[1], results[0].Rendered)
}

func TestFilterIPv4DictionaryMiss(t *testing.T) {
	lines := []string{
		"connect from 10.0.0.1 accepted",
		"connect from 10.0.0.2 accepted",
	}
	c := openContainer(t, lines)

	results, err := Filter(c, IPv4Is(column.PackIPv4("10.0.0.3")), 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFilterIPv4Match(t *testing.T) {
	lines := []string{
		"connect from 10.0.0.1 accepted",
		"connect from 10.0.0.2 accepted",
	}
	c := openContainer(t, lines)

	results, err := Filter(c, IPv4Is(column.PackIPv4("10.0.0.2")), 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, lines[1], results[0].Rendered)
}

func TestFilterTimestampRange(t *testing.T) {
	base := int64(1700000000000)
	lines := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		ts := base + int64(i)*1000
		text := time.UnixMilli(ts).UTC().Format(time.RFC3339Nano)
		lines = append(lines, "event at "+text+" done")
	}
	c := openContainer(t, lines)

	results, err := Filter(c, TimestampBetween(base+3000, base+5000), 0)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 3, results[0].LineIndex)
	assert.Equal(t, 5, results[2].LineIndex)
}

func TestFilterRespectsLimitInInputOrder(t *testing.T) {
	lines := []string{
		"[error] one",
		"[notice] two",
		"[error] three",
		"[error] four",
	}
	c := openContainer(t, lines)

	results, err := Filter(c, Severity("error"), 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].LineIndex)
	assert.Equal(t, 2, results[1].LineIndex)
}

func TestFilterConjunctionShortCircuits(t *testing.T) {
	lines := []string{
		"[error] from 10.0.0.1 now",
		"[notice] from 10.0.0.2 now",
	}
	c := openContainer(t, lines)

	pred := And(Severity("error"), IPv4Is(column.PackIPv4("10.0.0.2")))
	results, err := Filter(c, pred, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFilterConjunctionMatches(t *testing.T) {
	lines := []string{
		"[error] from 10.0.0.1 now",
		"[notice] from 10.0.0.2 now",
	}
	c := openContainer(t, lines)

	pred := And(Severity("error"), IPv4Is(column.PackIPv4("10.0.0.1")))
	results, err := Filter(c, pred, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].LineIndex)
}

func TestCostRankOrdersSeverityCheapest(t *testing.T) {
	assert.Less(t, costRank(SeverityIn), costRank(IPv4Equals))
	assert.Less(t, costRank(IPv4Equals), costRank(TimestampRange))
}
