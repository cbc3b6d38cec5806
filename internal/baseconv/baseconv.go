// Package baseconv converts base-10 integers to binary and hexadecimal
// using repeated division, the way the exercise defines it, and parses
// both encodings back for round-trip checks.
package baseconv

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"tally/internal/textio"
)

const (
	ResultsFile = "ConvertNumbersResults.txt"

	hexDigits = "0123456789ABCDEF"
)

// ParseIntegers reads base-10 integer tokens from r; invalid tokens
// become line-numbered error strings.
func ParseIntegers(r io.Reader) ([]int64, []string, error) {
	var values []int64
	var errs []string
	err := textio.ForEachToken(r, func(line int, token string) {
		v, perr := strconv.ParseInt(token, 10, 64)
		if perr != nil {
			errs = append(errs, fmt.Sprintf("Line %d: invalid integer -> %q", line, token))
			return
		}
		values = append(values, v)
	})
	if err != nil {
		return nil, nil, err
	}
	return values, errs, nil
}

// ToBinary encodes n by repeated division by 2. Zero is "0"; negative
// numbers carry a "-" prefix.
func ToBinary(n int64) string { return encode(n, 2) }

// ToHexadecimal encodes n by repeated division by 16 with uppercase digits.
func ToHexadecimal(n int64) string { return encode(n, 16) }

func encode(n int64, base uint64) string {
	if n == 0 {
		return "0"
	}
	// work on the uint64 magnitude so math.MinInt64 does not overflow
	sign := ""
	m := uint64(n)
	if n < 0 {
		sign = "-"
		m = -m
	}
	var digits []byte
	for m > 0 {
		digits = append(digits, hexDigits[m%base])
		m /= base
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return sign + string(digits)
}

// FromBinary parses a string produced by ToBinary.
func FromBinary(s string) (int64, error) { return decode(s, 2) }

// FromHexadecimal parses a string produced by ToHexadecimal.
func FromHexadecimal(s string) (int64, error) { return decode(s, 16) }

func decode(s string, base uint64) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty input")
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
		if s == "" {
			return 0, fmt.Errorf("bare sign")
		}
	}
	// accumulate the magnitude unsigned so the full int64 range,
	// math.MinInt64 included, decodes without overflow
	var m uint64
	for i := 0; i < len(s); i++ {
		d := strings.IndexByte(hexDigits[:base], s[i])
		if d < 0 {
			return 0, fmt.Errorf("invalid digit %q for base %d", s[i], base)
		}
		if m > (math.MaxUint64-uint64(d))/base {
			return 0, fmt.Errorf("value out of range: %q", s)
		}
		m = m*base + uint64(d)
	}
	if neg {
		if m > 1<<63 {
			return 0, fmt.Errorf("value out of range: -%q", s)
		}
		return -int64(m), nil
	}
	if m > 1<<63-1 {
		return 0, fmt.Errorf("value out of range: %q", s)
	}
	return int64(m), nil
}

// FormatReport renders the conversion table plus errors and timing.
func FormatReport(values []int64, errs []string, elapsed time.Duration) string {
	lines := []string{"ITEM\tDECIMAL\tBINARY\tHEXADECIMAL"}
	for i, v := range values {
		lines = append(lines, fmt.Sprintf("%d\t%d\t%s\t%s", i+1, v, ToBinary(v), ToHexadecimal(v)))
	}
	if len(errs) > 0 {
		lines = append(lines, "", "Errors (invalid tokens were ignored):")
		lines = append(lines, errs...)
	}
	lines = append(lines, "", fmt.Sprintf("Elapsed time: %.6f seconds", elapsed.Seconds()))
	return strings.Join(lines, "\n") + "\n"
}
