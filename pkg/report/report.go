// Package report renders a test-run summary from archived artifacts and can
// serve the archive over HTTP for local inspection.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"gantry/pkg/artifact"
)

// Render writes summary.md and summary.html into the archive directory and
// returns the generated Markdown.
func Render(archiveDir string) (string, error) {
	summary, err := artifact.Summarize(archiveDir)
	if err != nil {
		return "", err
	}

	md := Markdown(archiveDir, summary)

	mdPath := filepath.Join(archiveDir, "summary.md")
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", mdPath, err)
	}

	var html bytes.Buffer
	if err := goldmark.Convert([]byte(md), &html); err != nil {
		return "", fmt.Errorf("failed to render HTML summary: %w", err)
	}

	htmlPath := filepath.Join(archiveDir, "summary.html")
	if err := os.WriteFile(htmlPath, html.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", htmlPath, err)
	}

	return md, nil
}

// Markdown formats a run summary as Markdown.
func Markdown(archiveDir string, summary artifact.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Test Run Summary\n\n")
	fmt.Fprintf(&b, "Generated %s from `%s`\n\n", time.Now().Format(time.RFC3339), archiveDir)

	status := "PASSED"
	if summary.Totals.Failed() {
		status = "FAILED"
	}
	fmt.Fprintf(&b, "**Status: %s**\n\n", status)

	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Tests | %d |\n", summary.Totals.Tests)
	fmt.Fprintf(&b, "| Passed | %d |\n", summary.Totals.Passed())
	fmt.Fprintf(&b, "| Failures | %d |\n", summary.Totals.Failures)
	fmt.Fprintf(&b, "| Errors | %d |\n", summary.Totals.Errors)
	fmt.Fprintf(&b, "| Skipped | %d |\n", summary.Totals.Skipped)
	fmt.Fprintf(&b, "| Duration | %.2fs |\n", summary.Totals.Time)
	if summary.Coverage >= 0 {
		fmt.Fprintf(&b, "| Line coverage | %.2f%% |\n", summary.Coverage)
	}

	if len(summary.Reports) > 0 {
		fmt.Fprintf(&b, "\n## Reports\n\n")
		for _, name := range summary.Reports {
			fmt.Fprintf(&b, "- [%s](%s)\n", name, name)
		}
	}

	return b.String()
}
