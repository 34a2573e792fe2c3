package artifact

import (
	"encoding/xml"
	"fmt"
	"io"
)

// SuiteTotals aggregates the counters of one or more JUnit test suites.
type SuiteTotals struct {
	Tests    int
	Failures int
	Errors   int
	Skipped  int
	Time     float64
}

// Passed returns the number of passing tests.
func (s SuiteTotals) Passed() int {
	return s.Tests - s.Failures - s.Errors - s.Skipped
}

// Failed reports whether any test failed or errored.
func (s SuiteTotals) Failed() bool {
	return s.Failures > 0 || s.Errors > 0
}

// Add accumulates another set of totals.
func (s *SuiteTotals) Add(other SuiteTotals) {
	s.Tests += other.Tests
	s.Failures += other.Failures
	s.Errors += other.Errors
	s.Skipped += other.Skipped
	s.Time += other.Time
}

type junitSuite struct {
	Tests    int     `xml:"tests,attr"`
	Failures int     `xml:"failures,attr"`
	Errors   int     `xml:"errors,attr"`
	Skipped  int     `xml:"skipped,attr"`
	Time     float64 `xml:"time,attr"`
}

type junitSuites struct {
	XMLName xml.Name
	Tests   int          `xml:"tests,attr"`
	Suites  []junitSuite `xml:"testsuite"`
}

// ParseJUnit reads a JUnit XML report. Both a bare <testsuite> root and a
// <testsuites> wrapper are accepted (pytest emits the latter).
func ParseJUnit(r io.Reader) (SuiteTotals, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return SuiteTotals{}, fmt.Errorf("failed to read junit report: %w", err)
	}

	var root junitSuites
	if err := xml.Unmarshal(data, &root); err != nil {
		return SuiteTotals{}, fmt.Errorf("invalid junit XML: %w", err)
	}

	var totals SuiteTotals
	switch root.XMLName.Local {
	case "testsuites":
		for _, s := range root.Suites {
			totals.Add(SuiteTotals{
				Tests:    s.Tests,
				Failures: s.Failures,
				Errors:   s.Errors,
				Skipped:  s.Skipped,
				Time:     s.Time,
			})
		}
	case "testsuite":
		var s junitSuite
		if err := xml.Unmarshal(data, &s); err != nil {
			return SuiteTotals{}, fmt.Errorf("invalid junit XML: %w", err)
		}
		totals = SuiteTotals(s)
	default:
		return SuiteTotals{}, fmt.Errorf("unexpected junit root element %q", root.XMLName.Local)
	}

	return totals, nil
}
