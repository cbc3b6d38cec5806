// Package numstats implements the descriptive-statistics tool: float
// parsing with per-line error capture and a plain-text report.
package numstats

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"tally/internal/textio"
)

const ResultsFile = "StatisticsResults.txt"

// Parse reads whitespace-delimited tokens from r. Tokens that do not
// parse as floats become line-numbered error strings; parsing never
// stops on a bad token.
func Parse(r io.Reader) ([]float64, []string, error) {
	var values []float64
	var errs []string
	err := textio.ForEachToken(r, func(line int, token string) {
		v, perr := strconv.ParseFloat(token, 64)
		if perr != nil {
			errs = append(errs, fmt.Sprintf("Line %d: invalid number -> %q", line, token))
			return
		}
		values = append(values, v)
	})
	if err != nil {
		return nil, nil, err
	}
	return values, errs, nil
}

type Summary struct {
	Count    int
	Mean     float64
	Median   float64
	Mode     *float64 // nil when every value occurs exactly once
	Variance float64  // population (divisor N)
	StdDev   float64  // population
}

// Summarize computes the descriptive statistics for a non-empty value set.
func Summarize(values []float64) (Summary, error) {
	data := stats.Float64Data(values)
	mean, err := stats.Mean(data)
	if err != nil {
		return Summary{}, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return Summary{}, err
	}
	variance, err := stats.PopulationVariance(data)
	if err != nil {
		return Summary{}, err
	}
	stddev, err := stats.StandardDeviationPopulation(data)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Count:    len(values),
		Mean:     mean,
		Median:   median,
		Mode:     mode(values),
		Variance: variance,
		StdDev:   stddev,
	}, nil
}

// mode returns the smallest value among those tied for highest frequency,
// or nil when no value repeats. A plain frequency fold: the tie-break must
// still pick a winner when every distinct value shares the top count.
func mode(values []float64) *float64 {
	freq := make(map[float64]int, len(values))
	for _, v := range values {
		freq[v]++
	}
	maxCount := 0
	for _, c := range freq {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount < 2 {
		return nil
	}
	var best float64
	found := false
	for v, c := range freq {
		if c != maxCount {
			continue
		}
		if !found || v < best {
			best = v
			found = true
		}
	}
	return &best
}

// FormatReport builds the text written to stdout and the results file.
func FormatReport(values []float64, errs []string, elapsed time.Duration) string {
	secs := elapsed.Seconds()
	if len(values) == 0 {
		var b strings.Builder
		b.WriteString("No valid numeric data found.\n")
		if len(errs) > 0 {
			b.WriteString("Errors:\n" + strings.Join(errs, "\n") + "\n")
		}
		fmt.Fprintf(&b, "\nElapsed time: %.6f seconds\n", secs)
		return b.String()
	}

	s, err := Summarize(values)
	if err != nil {
		// unreachable with a non-empty slice; keep the report honest anyway
		return fmt.Sprintf("statistics failed: %v\n", err)
	}

	lines := []string{
		"Descriptive Statistics",
		strings.Repeat("-", 24),
		fmt.Sprintf("Count: %d", s.Count),
		"Mean: " + formatFloat(s.Mean),
		"Median: " + formatFloat(s.Median),
		"Mode: " + formatMode(s.Mode),
		"Population Std Dev: " + formatFloat(s.StdDev),
		"Population Variance: " + formatFloat(s.Variance),
	}
	if len(errs) > 0 {
		lines = append(lines, "", "Errors (invalid tokens were ignored):")
		lines = append(lines, errs...)
	}
	lines = append(lines, "", fmt.Sprintf("Elapsed time: %.6f seconds", secs))
	return strings.Join(lines, "\n") + "\n"
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func formatMode(m *float64) string {
	if m == nil {
		return "N/A"
	}
	return formatFloat(*m)
}
