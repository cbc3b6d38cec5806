package textio

import (
	"fmt"
	"os"
	"strings"
)

const separator = "============================================================"

// AppendResults appends a finished report to the tool's fixed-name results
// file in the working directory, preceded by a separator and the input
// file name. Failure here is the caller's warning, never fatal parsing.
func AppendResults(resultsFile, inputFile, report string) error {
	f, err := os.OpenFile(resultsFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", resultsFile, err)
	}
	defer f.Close()

	var b strings.Builder
	b.WriteString("\n" + separator + "\n")
	b.WriteString("Input file: " + inputFile + "\n")
	b.WriteString(report)
	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("write %s: %w", resultsFile, err)
	}
	return nil
}
