package protocol

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/domino14/blockade/board"
	"github.com/domino14/blockade/equity"
	"github.com/domino14/blockade/game"
	"github.com/domino14/blockade/move"
	"github.com/domino14/blockade/shape"
)

// Session plays our seat against a referee.
type Session struct {
	src    io.Reader
	in     *Reader
	out    *bufio.Writer
	scorer equity.Scorer
	opts   game.Options

	catalog *shape.Catalog
	header  Header
	game    *game.Game
	seat    int
}

// NewSession creates a session reading referee input from r and writing
// our moves to w. The scorer picks our moves.
func NewSession(r io.Reader, w io.Writer, scorer equity.Scorer, opts game.Options) *Session {
	return &Session{
		src:     r,
		in:      NewReader(r),
		out:     bufio.NewWriter(w),
		scorer:  scorer,
		opts:    opts,
		catalog: shape.Default(),
	}
}

// Game is nil until the header has been read.
func (s *Session) Game() *game.Game {
	return s.game
}

func (s *Session) Header() Header {
	return s.header
}

// Start reads the header and sets up the game.
func (s *Session) Start() error {
	h, err := s.in.ReadHeader()
	if err != nil {
		return err
	}
	s.header = h
	var scorers [board.NumPlayers]equity.Scorer
	scorers[h.Me] = s.scorer
	s.game = game.NewGame(s.catalog, scorers, s.opts)
	s.seat = 0
	log.Debug().Int("me", h.Me).Str("gameID", s.game.Uid()).Msg("protocol-session-start")
	return nil
}

// Run plays until the referee sends the sentinel, which is returned as
// ErrGameOver, or until input ends cleanly, which returns nil. If the input
// is an io.Closer it is closed when ctx is cancelled, so a blocked read
// returns ctx.Err(). Other readers are only checked between moves.
func (s *Session) Run(ctx context.Context) error {
	if c, ok := s.src.(io.Closer); ok {
		stop := context.AfterFunc(ctx, func() { c.Close() })
		defer stop()
	}
	if s.game == nil {
		if err := s.Start(); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		if s.seat == s.header.Me {
			err = s.playOwn()
		} else {
			err = s.ingestOpponent()
		}
		if err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, io.EOF) {
			log.Info().Msg("referee input ended")
			return nil
		}
		if err != nil {
			return err
		}
		s.seat = (s.seat + 1) % board.NumPlayers
	}
}

func (s *Session) playOwn() error {
	var m *move.Move
	if s.game.Playing() == game.StatePlaying {
		var err error
		if m, err = s.game.PlayTurn(); err != nil {
			return err
		}
	}
	line := "0"
	if m != nil {
		line = m.WireString()
	}
	log.Debug().Str("move", line).Msg("own-move")
	if _, err := fmt.Fprintln(s.out, line); err != nil {
		return err
	}
	return s.out.Flush()
}

func (s *Session) ingestOpponent() error {
	pts, err := s.in.ReadMove()
	if err != nil {
		return err
	}
	if s.game.Playing() != game.StatePlaying {
		// We consider the game over but the referee keeps going.
		return nil
	}
	if err := s.game.IngestPoints(s.seat, pts); err != nil {
		return fmt.Errorf("opponent %d move %v: %w", s.seat, pts, err)
	}
	return nil
}
