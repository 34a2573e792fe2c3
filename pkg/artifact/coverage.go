package artifact

import (
	"encoding/xml"
	"fmt"
	"io"
)

type coberturaRoot struct {
	LineRate float64 `xml:"line-rate,attr"`
}

// ParseCobertura reads a Cobertura coverage report and returns the line
// coverage as a percentage.
func ParseCobertura(r io.Reader) (float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read coverage report: %w", err)
	}

	var root coberturaRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return 0, fmt.Errorf("invalid coverage XML: %w", err)
	}

	return root.LineRate * 100, nil
}
