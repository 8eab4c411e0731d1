// Package protocol speaks the line protocol used when the engine plays one
// seat of a game run by an outside referee. Everything is whitespace
// separated integers; line breaks carry no meaning.
package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/domino14/blockade/board"
	"github.com/domino14/blockade/shape"
)

// ErrGameOver is returned when the referee sends the end-of-game sentinel.
var ErrGameOver = errors.New("game over")

// Header opens every session.
type Header struct {
	BoardSize   int
	PlayerCount int
	Me          int
}

// Reader tokenizes referee input.
type Reader struct {
	sc *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &Reader{sc: sc}
}

// nextInt returns io.EOF only when input ends cleanly before the token.
func (r *Reader) nextInt() (int, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	n, err := strconv.Atoi(r.sc.Text())
	if err != nil {
		return 0, fmt.Errorf("bad token %q: %w", r.sc.Text(), err)
	}
	return n, nil
}

func (r *Reader) mustInt() (int, error) {
	n, err := r.nextInt()
	if err == io.EOF {
		return 0, io.ErrUnexpectedEOF
	}
	return n, err
}

// ReadHeader reads board size, player count and our seat.
func (r *Reader) ReadHeader() (Header, error) {
	var h Header
	var err error
	if h.BoardSize, err = r.mustInt(); err != nil {
		return h, fmt.Errorf("reading board size: %w", err)
	}
	if h.PlayerCount, err = r.mustInt(); err != nil {
		return h, fmt.Errorf("reading player count: %w", err)
	}
	if h.Me, err = r.mustInt(); err != nil {
		return h, fmt.Errorf("reading player index: %w", err)
	}
	if h.BoardSize != board.Dim {
		return h, fmt.Errorf("unsupported board size %d, need %d", h.BoardSize, board.Dim)
	}
	if h.PlayerCount != board.NumPlayers {
		return h, fmt.Errorf("unsupported player count %d, need %d", h.PlayerCount, board.NumPlayers)
	}
	if h.Me < 0 || h.Me >= board.NumPlayers {
		return h, fmt.Errorf("player index %d out of range", h.Me)
	}
	return h, nil
}

// ReadMove reads one opponent move as 0-indexed cells. An empty slice is
// a pass. The sentinel gives ErrGameOver and clean end of input io.EOF.
func (r *Reader) ReadMove() ([]shape.Point, error) {
	size, err := r.nextInt()
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, ErrGameOver
	}
	if size > shape.MaxSize {
		return nil, fmt.Errorf("piece size %d too large", size)
	}
	pts := make([]shape.Point, size)
	for i := range pts {
		x, err := r.mustInt()
		if err != nil {
			return nil, fmt.Errorf("reading cell %d: %w", i, err)
		}
		y, err := r.mustInt()
		if err != nil {
			return nil, fmt.Errorf("reading cell %d: %w", i, err)
		}
		pts[i] = shape.Point{X: x - 1, Y: y - 1}
	}
	return pts, nil
}
