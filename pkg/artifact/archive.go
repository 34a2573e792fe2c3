// Package artifact collects and summarizes the interchange-format reports
// (JUnit XML, Cobertura coverage) produced by a test run.
package artifact

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Globs matched inside the reports directory when archiving.
var defaultGlobs = []string{"junit*.xml", "coverage*.xml"}

// Archive copies report files from reportsDir into a timestamped directory
// under archiveDir and returns its path. Missing reports are logged, not
// fatal: archiving runs in terminal hooks and must not mask the run result.
func Archive(reportsDir, archiveDir string, globs []string) (string, error) {
	if len(globs) == 0 {
		globs = defaultGlobs
	}

	dest := filepath.Join(archiveDir, time.Now().Format("20060102-150405"))
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	var copied int
	for _, glob := range globs {
		matches, err := filepath.Glob(filepath.Join(reportsDir, glob))
		if err != nil {
			return "", fmt.Errorf("bad artifact glob %q: %w", glob, err)
		}
		for _, src := range matches {
			if err := copyFile(src, filepath.Join(dest, filepath.Base(src))); err != nil {
				return "", err
			}
			copied++
		}
	}

	if copied == 0 {
		fmt.Printf("No artifacts matched in %s (archived nothing)\n", reportsDir)
	} else {
		fmt.Printf("Archived %d artifact(s) to %s\n", copied, dest)
	}
	return dest, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return nil
}

// Summary is the aggregated outcome of an archived run.
type Summary struct {
	Totals SuiteTotals
	// Coverage is the line coverage percentage, or -1 when no coverage
	// report was found.
	Coverage float64
	// Reports lists the files that contributed to the summary.
	Reports []string
}

// Summarize parses every junit and coverage report in dir.
func Summarize(dir string) (Summary, error) {
	summary := Summary{Coverage: -1}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return summary, fmt.Errorf("failed to read archive %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		path := filepath.Join(dir, name)

		switch {
		case strings.HasPrefix(name, "junit") && strings.HasSuffix(name, ".xml"):
			f, err := os.Open(path)
			if err != nil {
				return summary, err
			}
			totals, err := ParseJUnit(f)
			_ = f.Close()
			if err != nil {
				return summary, fmt.Errorf("%s: %w", name, err)
			}
			summary.Totals.Add(totals)
			summary.Reports = append(summary.Reports, name)

		case strings.HasPrefix(name, "coverage") && strings.HasSuffix(name, ".xml"):
			f, err := os.Open(path)
			if err != nil {
				return summary, err
			}
			pct, err := ParseCobertura(f)
			_ = f.Close()
			if err != nil {
				return summary, fmt.Errorf("%s: %w", name, err)
			}
			summary.Coverage = pct
			summary.Reports = append(summary.Reports, name)
		}
	}

	return summary, nil
}
