package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pytestJUnit = `<?xml version="1.0" encoding="utf-8"?>
<testsuites>
  <testsuite name="pytest" errors="1" failures="2" skipped="3" tests="42" time="12.345"/>
</testsuites>`

const bareJUnit = `<?xml version="1.0"?>
<testsuite name="unit" errors="0" failures="0" skipped="0" tests="10" time="1.5"/>`

const cobertura = `<?xml version="1.0"?>
<coverage line-rate="0.8725" branch-rate="0.7" version="7.3" timestamp="1727000000"/>`

func TestParseJUnitWrapped(t *testing.T) {
	totals, err := ParseJUnit(strings.NewReader(pytestJUnit))
	require.NoError(t, err)

	assert.Equal(t, 42, totals.Tests)
	assert.Equal(t, 2, totals.Failures)
	assert.Equal(t, 1, totals.Errors)
	assert.Equal(t, 3, totals.Skipped)
	assert.Equal(t, 36, totals.Passed())
	assert.True(t, totals.Failed())
}

func TestParseJUnitBareSuite(t *testing.T) {
	totals, err := ParseJUnit(strings.NewReader(bareJUnit))
	require.NoError(t, err)

	assert.Equal(t, 10, totals.Tests)
	assert.False(t, totals.Failed())
}

func TestParseJUnitRejectsOtherXML(t *testing.T) {
	_, err := ParseJUnit(strings.NewReader(`<coverage line-rate="1"/>`))
	assert.Error(t, err)
}

func TestParseCobertura(t *testing.T) {
	pct, err := ParseCobertura(strings.NewReader(cobertura))
	require.NoError(t, err)
	assert.InDelta(t, 87.25, pct, 0.001)
}

func TestArchiveCopiesMatchingReports(t *testing.T) {
	reports := t.TempDir()
	archive := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(reports, "junit.xml"), []byte(pytestJUnit), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(reports, "coverage.xml"), []byte(cobertura), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(reports, "notes.txt"), []byte("ignored"), 0o644))

	dest, err := Archive(reports, archive, nil)
	require.NoError(t, err)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"junit.xml", "coverage.xml"}, names)
}

func TestArchiveToleratesMissingReports(t *testing.T) {
	dest, err := Archive(t.TempDir(), t.TempDir(), nil)
	require.NoError(t, err)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSummarize(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junit.xml"), []byte(pytestJUnit), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junit-perf.xml"), []byte(bareJUnit), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "coverage.xml"), []byte(cobertura), 0o644))

	summary, err := Summarize(dir)
	require.NoError(t, err)

	assert.Equal(t, 52, summary.Totals.Tests)
	assert.InDelta(t, 87.25, summary.Coverage, 0.001)
	assert.Len(t, summary.Reports, 3)
}

func TestSummarizeWithoutCoverage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "junit.xml"), []byte(bareJUnit), 0o644))

	summary, err := Summarize(dir)
	require.NoError(t, err)
	assert.Equal(t, float64(-1), summary.Coverage)
}
