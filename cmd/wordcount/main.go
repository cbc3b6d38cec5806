package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"tally/internal/adapters/observability"
	"tally/internal/shared"
	"tally/internal/textio"
	"tally/internal/wordfreq"
)

func main() { os.Exit(run(os.Args[1:])) }

func run(args []string) int {
	cfg := shared.Load()
	log.Logger = observability.NewCLILogger(cfg.AppEnv)

	if len(args) != 1 {
		log.Error().Msg("usage: wordcount <input-file>")
		return 2
	}
	input := args[0]

	start := time.Now()
	f, err := os.Open(input)
	if err != nil {
		log.Error().Err(err).Str("file", input).Msg("cannot read input file")
		return 2
	}
	freq, errs, err := wordfreq.Count(f)
	f.Close()
	if err != nil {
		log.Error().Err(err).Str("file", input).Msg("cannot read input file")
		return 2
	}

	report := wordfreq.FormatReport(freq, errs, time.Since(start))
	fmt.Print(report)

	if err := textio.AppendResults(wordfreq.ResultsFile, input, report); err != nil {
		log.Warn().Err(err).Msg("could not append results file")
	}
	return 0
}
