// Package textio holds the line/token plumbing shared by the CLI tools:
// whitespace tokenization with line numbers and the best-effort results
// file append every tool performs.
package textio

import (
	"bufio"
	"io"
	"strings"
)

// ForEachToken calls fn for every whitespace-delimited token in r,
// with its 1-based line number. Blank lines are skipped.
func ForEachToken(r io.Reader, fn func(line int, token string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		for _, tok := range strings.Fields(raw) {
			fn(line, tok)
		}
	}
	return sc.Err()
}
