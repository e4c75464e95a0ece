package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fourply/fourply/analyzer"
	"github.com/fourply/fourply/board"
	"github.com/fourply/fourply/config"
)

func main() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	log.Logger = log.Output(output)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	g, err := board.NewGeometry(cfg.Rows(), cfg.Cols())
	if err != nil {
		log.Fatal().Err(err).Msg("bad board size")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var onTerminal analyzer.TerminalFunc
	var store *analyzer.Store
	if path := cfg.AnalyzerDB(); path != "" {
		store, err = analyzer.OpenStore(path)
		if err != nil {
			log.Fatal().Err(err).Msg("opening store")
		}
		defer store.Close()
		onTerminal = store.Insert
		log.Info().Str("path", path).Msg("storing-terminal-positions")
	}

	start := time.Now()
	sum, err := analyzer.New(g).Run(ctx, onTerminal)
	if err != nil {
		log.Fatal().Err(err).Msg("enumeration failed")
	}
	log.Info().Float64("seconds", time.Since(start).Seconds()).Msg("done")

	if err := analyzer.WriteReport(os.Stdout, sum); err != nil {
		log.Fatal().Err(err).Msg("writing report")
	}
}
