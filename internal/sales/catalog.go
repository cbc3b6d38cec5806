// Package sales groups sale line items from JSON-decoded rows, prices
// them against a catalog, and renders the sales report. Malformed rows
// are logged and skipped; nothing short of an unreadable input aborts
// a run.
package sales

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const ResultsFile = "SalesResults.txt"

// BuildCatalog converts a decoded catalog list into {title: unit price}.
// Entries with a missing/empty title or non-numeric price are skipped.
// On duplicate titles the first occurrence wins; later ones are skipped
// and counted. Returns the catalog and the number of skipped entries.
func BuildCatalog(data any) (map[string]float64, int) {
	prices := make(map[string]float64)
	skipped := 0

	list, ok := data.([]any)
	if !ok {
		log.Error().Msg("price catalog JSON must be a list of products")
		return prices, 1
	}

	for idx, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			log.Warn().Int("entry", idx).Msg("catalog entry is not an object; skipped")
			skipped++
			continue
		}
		title, ok := obj["title"].(string)
		if !ok || strings.TrimSpace(title) == "" {
			log.Warn().Int("entry", idx).Msg("catalog entry has invalid title; skipped")
			skipped++
			continue
		}
		price, ok := toFloat(obj["price"])
		if !ok {
			log.Warn().Int("entry", idx).Str("title", title).Msg("catalog entry has invalid price; skipped")
			skipped++
			continue
		}
		if _, dup := prices[title]; dup {
			log.Warn().Int("entry", idx).Str("title", title).Msg("duplicate catalog title; first occurrence kept")
			skipped++
			continue
		}
		prices[title] = price
	}
	return prices, skipped
}

// toFloat accepts the numeric shapes a decoded JSON row can carry:
// float64, integer types, json.Number, or a numeric string.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}

// stringifyID renders a SALE_ID the way it will key its group: strings
// as-is, integral floats without the trailing ".0" a float64 decode
// would otherwise produce.
func stringifyID(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}
