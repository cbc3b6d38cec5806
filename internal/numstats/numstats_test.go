package numstats_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"tally/internal/numstats"
)

func TestParse_AcceptedPlusErrorsEqualsTokens(t *testing.T) {
	in := "1 2 x\n3.5\nfoo bar\n-2\n"
	values, errs, err := numstats.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// 7 tokens total
	if len(values)+len(errs) != 7 {
		t.Fatalf("accepted(%d)+errors(%d) != tokens(7)", len(values), len(errs))
	}
	if len(values) != 4 || len(errs) != 3 {
		t.Fatalf("got %d values, %d errors", len(values), len(errs))
	}
	if !strings.HasPrefix(errs[0], "Line 1:") {
		t.Fatalf("expected line 1 error, got %q", errs[0])
	}
	if !strings.HasPrefix(errs[1], "Line 3:") {
		t.Fatalf("expected line 3 error, got %q", errs[1])
	}
}

func TestSummarize_MedianOdd(t *testing.T) {
	s, err := numstats.Summarize([]float64{5, 1, 3})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if s.Median != 3 {
		t.Fatalf("median: got %v want 3", s.Median)
	}
}

func TestSummarize_MedianEven(t *testing.T) {
	s, err := numstats.Summarize([]float64{4, 1, 3, 2})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if s.Median != 2.5 {
		t.Fatalf("median: got %v want 2.5", s.Median)
	}
}

func TestSummarize_ModeSmallestTieBreak(t *testing.T) {
	s, err := numstats.Summarize([]float64{2, 2, 1, 1, 3})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if s.Mode == nil || *s.Mode != 1 {
		t.Fatalf("mode: got %v want 1", s.Mode)
	}
}

func TestSummarize_ModeUniformTieStillPicksSmallest(t *testing.T) {
	// every distinct value is tied above frequency 1
	s, err := numstats.Summarize([]float64{1, 1, 2, 2})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if s.Mode == nil || *s.Mode != 1 {
		t.Fatalf("mode: got %v want 1", s.Mode)
	}
}

func TestSummarize_ModeNoneWhenAllUnique(t *testing.T) {
	s, err := numstats.Summarize([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if s.Mode != nil {
		t.Fatalf("mode: got %v want nil", *s.Mode)
	}

	// single value has frequency 1 as well
	s, err = numstats.Summarize([]float64{7})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if s.Mode != nil {
		t.Fatalf("single-value mode: got %v want nil", *s.Mode)
	}
}

func TestSummarize_PopulationVariance(t *testing.T) {
	// values 2, 4: mean 3, population variance ((1+1)/2) = 1
	s, err := numstats.Summarize([]float64{2, 4})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if math.Abs(s.Variance-1) > 1e-12 {
		t.Fatalf("variance: got %v want 1", s.Variance)
	}
	if math.Abs(s.StdDev-1) > 1e-12 {
		t.Fatalf("stddev: got %v want 1", s.StdDev)
	}
}

func TestFormatReport_NoData(t *testing.T) {
	out := numstats.FormatReport(nil, []string{`Line 1: invalid number -> "x"`}, time.Millisecond)
	if !strings.Contains(out, "No valid numeric data found.") {
		t.Fatalf("missing no-data header:\n%s", out)
	}
	if !strings.Contains(out, "Line 1:") {
		t.Fatalf("missing error block:\n%s", out)
	}
	if !strings.Contains(out, "Elapsed time:") {
		t.Fatalf("missing elapsed line:\n%s", out)
	}
}

func TestFormatReport_ModeNA(t *testing.T) {
	out := numstats.FormatReport([]float64{1, 2}, nil, time.Millisecond)
	if !strings.Contains(out, "Mode: N/A") {
		t.Fatalf("expected Mode: N/A in:\n%s", out)
	}
	if !strings.Contains(out, "Count: 2") {
		t.Fatalf("expected Count: 2 in:\n%s", out)
	}
}
