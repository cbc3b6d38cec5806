package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"tally/internal/adapters/observability"
	"tally/internal/numstats"
	"tally/internal/shared"
	"tally/internal/textio"
)

func main() { os.Exit(run(os.Args[1:])) }

func run(args []string) int {
	cfg := shared.Load()
	log.Logger = observability.NewCLILogger(cfg.AppEnv)

	if len(args) != 1 {
		log.Error().Msg("usage: computestats <input-file>")
		return 2
	}
	input := args[0]

	start := time.Now()
	f, err := os.Open(input)
	if err != nil {
		log.Error().Err(err).Str("file", input).Msg("cannot read input file")
		return 2
	}
	values, errs, err := numstats.Parse(f)
	f.Close()
	if err != nil {
		log.Error().Err(err).Str("file", input).Msg("cannot read input file")
		return 2
	}

	report := numstats.FormatReport(values, errs, time.Since(start))
	fmt.Print(report)

	if err := textio.AppendResults(numstats.ResultsFile, input, report); err != nil {
		log.Warn().Err(err).Msg("could not append results file")
	}
	return 0
}
