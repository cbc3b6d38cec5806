// Package wordfreq counts distinct whitespace-delimited words in a file.
package wordfreq

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"tally/internal/textio"
)

const ResultsFile = "WordCountResults.txt"

// Count tallies every token in r. Whitespace splitting cannot yield an
// invalid token, so the error list exists only to keep the tool contract
// (accepted + errors == tokens) uniform with its siblings.
func Count(r io.Reader) (map[string]int, []string, error) {
	freq := make(map[string]int)
	err := textio.ForEachToken(r, func(line int, token string) {
		freq[token]++
	})
	if err != nil {
		return nil, nil, err
	}
	return freq, nil, nil
}

// FormatReport renders WORD/COUNT rows sorted by word plus a grand total.
func FormatReport(freq map[string]int, errs []string, elapsed time.Duration) string {
	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Strings(words)

	lines := []string{"WORD\tCOUNT"}
	total := 0
	for _, w := range words {
		total += freq[w]
		lines = append(lines, fmt.Sprintf("%s\t%d", w, freq[w]))
	}
	lines = append(lines, "", fmt.Sprintf("Grand Total\t%d", total))

	if len(errs) > 0 {
		lines = append(lines, "", "Errors (non-fatal):")
		lines = append(lines, errs...)
	}
	lines = append(lines, "", fmt.Sprintf("Elapsed time: %.6f seconds", elapsed.Seconds()))
	return strings.Join(lines, "\n") + "\n"
}
