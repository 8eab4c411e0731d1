package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/blockade/automatic"
	"github.com/domino14/blockade/board"
	"github.com/domino14/blockade/config"
	"github.com/domino14/blockade/equity"
	"github.com/domino14/blockade/game"
	"github.com/domino14/blockade/protocol"
	"github.com/domino14/blockade/shape"
	"github.com/domino14/blockade/shell"
)

var (
	GitVersion string
)

func setupLogging(cfg *config.Config) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg)
	log.Debug().Str("version", GitVersion).Msgf("Loaded config: %v", cfg.SanitizedSettings())

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	var err error
	switch cfg.GetString(config.ConfigMode) {
	case config.ModeLocal:
		err = runLocal(cfg)
	case config.ModeInteractive:
		err = runInteractive(cfg)
	case config.ModeShell:
		err = runShell(cfg)
	case config.ModeBatch:
		err = runBatch(cfg)
	}
	if errors.Is(err, protocol.ErrGameOver) {
		log.Info().Msg("referee ended the game")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("exiting")
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func runLocal(cfg *config.Config) error {
	gamechan := make(chan string, 1)
	res, err := automatic.PlayOneGame(cfg, gamechan)
	if err != nil {
		return err
	}
	fmt.Print(<-gamechan)
	for p := 0; p < board.NumPlayers; p++ {
		fmt.Printf("%c (%s): %d pieces, %d cells\n",
			board.PlayerGlyph(p), res.Scorers[p], res.Pieces[p], res.Cells[p])
	}
	return nil
}

// runInteractive plays one seat for an outside referee on stdin and
// stdout. Our scorer is the first configured one.
func runInteractive(cfg *config.Config) error {
	var seed []byte
	if s := cfg.GetString(config.ConfigSeed); s != "" {
		var err error
		if seed, err = automatic.ParseSeed(s); err != nil {
			return err
		}
	}
	scorer, err := equity.NewScorer(cfg.GetStringSlice(config.ConfigScorers)[0], shape.Default(), seed)
	if err != nil {
		return err
	}
	policy, err := game.ParseExhaustionPolicy(cfg.GetString(config.ConfigExhaustionPolicy))
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	s := protocol.NewSession(os.Stdin, os.Stdout, scorer, game.Options{
		Policy:    policy,
		MaxRounds: cfg.GetInt(config.ConfigMaxRounds),
	})
	return s.Run(ctx)
}

func runShell(cfg *config.Config) error {
	sc, err := shell.NewShellController(cfg)
	if err != nil {
		return err
	}
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go sc.Loop(sig)
	<-sig
	log.Info().Msg("got quit signal...")
	return nil
}

func runBatch(cfg *config.Config) error {
	numGames := cfg.GetInt(config.ConfigNumGames)
	var seeds [][]byte
	if path := cfg.GetString(config.ConfigSeedsFile); path != "" {
		var err error
		if seeds, err = automatic.LoadSeeds(path); err != nil {
			return err
		}
		numGames = len(seeds)
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	results, err := automatic.StartCompVCompGames(ctx, cfg, numGames,
		cfg.GetInt(config.ConfigThreads), seeds, cfg.GetString(config.ConfigLogFile))
	if err != nil {
		return err
	}
	log.Info().Int("games", len(results)).Dur("elapsed", time.Since(start)).Msg("batch-done")
	fmt.Print(automatic.Summarize(results))
	return nil
}
