package automatic

// Data collection for automatic games: computer vs computer batches.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/blockade/config"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

type job struct {
	idx  int
	seed []byte
}

// PlayOneGame plays a single game with the settings in cfg.
func PlayOneGame(cfg *config.Config, gamechan chan string) (*Result, error) {
	r, err := NewGameRunner(nil, cfg)
	if err != nil {
		return nil, err
	}
	r.SetGameChan(gamechan)
	return r.PlayFullGame()
}

// StartCompVCompGames plays numGames independent games on threads
// workers. If seeds is not empty it must have numGames entries, and game
// i uses seeds[i]. Per-turn CSV lines go to outputFilename when it is not
// empty. Cancelling ctx stops queuing; games already started finish.
// The returned results are in game order, with unplayed games left out.
func StartCompVCompGames(ctx context.Context, cfg *config.Config, numGames, threads int,
	seeds [][]byte, outputFilename string) ([]*Result, error) {

	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	if len(seeds) > 0 && len(seeds) != numGames {
		return nil, fmt.Errorf("have %d seeds for %d games", len(seeds), numGames)
	}
	if threads < 1 {
		threads = 1
	}

	var logfile io.WriteCloser
	if outputFilename != "" {
		f, err := os.Create(outputFilename)
		if err != nil {
			return nil, err
		}
		logfile = f
	}

	var store *ResultStore
	if dbPath := cfg.GetString(config.ConfigResultsDB); dbPath != "" {
		var err error
		if store, err = OpenResultStore(dbPath); err != nil {
			if logfile != nil {
				logfile.Close()
			}
			return nil, err
		}
		defer store.Close()
	}

	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)
	CVCCounter.Set(0)

	jobs := make(chan job, 100)
	results := make([]*Result, numGames)
	var logChan chan string
	loggerDone := make(chan struct{})
	if logfile != nil {
		logChan = make(chan string, 100)
		go func() {
			defer close(loggerDone)
			io.WriteString(logfile, TurnLogHeader)
			for msg := range logChan {
				io.WriteString(logfile, msg)
			}
			logfile.Close()
			log.Debug().Msg("exiting turn logger goroutine")
		}()
	} else {
		close(loggerDone)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < numGames; i++ {
			j := job{idx: i}
			if len(seeds) > 0 {
				j.seed = seeds[i]
			}
			select {
			case jobs <- j:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return nil
			}
			if (i+1)%1000 == 0 {
				log.Info().Msgf("Queued %v jobs", i+1)
			}
		}
		log.Info().Msg("Finished queueing all jobs.")
		return nil
	})

	names := cfg.GetStringSlice(config.ConfigScorers)
	for t := 0; t < threads; t++ {
		g.Go(func() error {
			r, err := NewGameRunner(logChan, cfg)
			if err != nil {
				return err
			}
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for j := range jobs {
				if err := r.Init(names, j.seed); err != nil {
					return err
				}
				res, err := r.PlayFullGame()
				if err != nil {
					return err
				}
				if store != nil {
					if err := store.Save(context.WithoutCancel(gctx), res); err != nil {
						return err
					}
				}
				// each index is written by exactly one worker
				results[j.idx] = res
				CVCCounter.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	if logChan != nil {
		close(logChan)
	}
	<-loggerDone
	if err != nil {
		return nil, err
	}
	log.Info().Int64("games", CVCCounter.Value()).Msg("All games finished.")

	played := results[:0]
	for _, r := range results {
		if r != nil {
			played = append(played, r)
		}
	}
	return played, nil
}
