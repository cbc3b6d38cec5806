package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"tally/internal/adapters/observability"
	"tally/internal/sales"
	"tally/internal/shared"
)

func main() { os.Exit(run(os.Args[1:])) }

func run(args []string) int {
	cfg := shared.Load()
	log.Logger = observability.NewCLILogger(cfg.AppEnv)

	if len(args) != 2 {
		log.Error().Msg("usage: computesales <priceCatalogue.json> <salesRecord.json>")
		return 2
	}
	start := time.Now()

	catalogData, ok := loadJSON(args[0])
	if !ok {
		return 2
	}
	salesData, ok := loadJSON(args[1])
	if !ok {
		return 2
	}

	prices, skipped := sales.BuildCatalog(catalogData)
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("catalog entries skipped")
	}
	res := sales.Aggregate(salesData, prices)

	report := sales.FormatReport(res, time.Since(start))
	fmt.Print(report)

	if err := appendReport(sales.ResultsFile, report); err != nil {
		log.Error().Err(err).Str("file", sales.ResultsFile).Msg("could not write results file")
		return 1
	}
	return 0
}

// loadJSON reads and decodes one input. An unreadable file is fatal for
// the run; a readable file with broken JSON is logged and treated as an
// empty list so processing continues.
func loadJSON(path string) (any, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("cannot read input file")
		return nil, false
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		log.Error().Err(err).Str("file", path).Msg("invalid JSON; treating as empty")
		return []any{}, true
	}
	return v, true
}

func appendReport(path, report string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(report)
	return err
}
