// Package equity estimates how often each of several hole-card hands wins a
// Hold'em showdown by sampling random board runouts.
package equity

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"runtime"
	"slices"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerhands/internal/randutil"
	"github.com/lox/pokerhands/internal/statistics"
	"github.com/lox/pokerhands/poker"
)

const (
	// DefaultIterations is used when Request.Iterations is zero.
	DefaultIterations = 100_000
	maxWorkers        = 8
	checkEvery        = 1024
	boardSize         = 5
)

var (
	ErrTooFewHands   = errors.New("at least two hands are required")
	ErrInvalidHand   = errors.New("invalid hand")
	ErrInvalidBoard  = errors.New("invalid board")
	ErrDuplicateCard = errors.New("duplicate card")
)

// Request describes a simulation. Hands holds two hole cards per player.
type Request struct {
	Hands      [][]poker.Card
	Board      []poker.Card
	Iterations int
	// Opponents adds players holding random unknown cards. They compete for
	// the pot but are not reported.
	Opponents int
	Seed      int64 // Zero picks a time-based seed
	Workers   int   // Zero uses the CPU count, capped at 8
	Logger    *log.Logger
}

// HandReport is the outcome for one requested hand.
type HandReport struct {
	Hand       []poker.Card
	Wins       int
	Ties       int
	Equity     float64 // Pot share won, counting ties fractionally
	StdError   float64 // Standard error of Equity
	Categories map[poker.Category]int
}

// EquityInterval returns the 95% confidence interval for Equity.
func (h HandReport) EquityInterval() (float64, float64) {
	margin := 1.96 * h.StdError
	return max(0, h.Equity-margin), min(1, h.Equity+margin)
}

// WinRate returns the fraction of runouts won outright.
func (h HandReport) WinRate(iterations int) float64 {
	if iterations == 0 {
		return 0
	}
	return float64(h.Wins) / float64(iterations)
}

// TieRate returns the fraction of runouts split with another player.
func (h HandReport) TieRate(iterations int) float64 {
	if iterations == 0 {
		return 0
	}
	return float64(h.Ties) / float64(iterations)
}

// Report is the result of Calculate.
type Report struct {
	Hands      []HandReport
	Board      []poker.Card
	Iterations int
	Seed       int64
	Workers    int
}

type tally struct {
	wins       []int
	ties       []int
	shares     []statistics.Sample
	categories []map[poker.Category]int
}

func newTally(n int) *tally {
	t := &tally{
		wins:       make([]int, n),
		ties:       make([]int, n),
		shares:     make([]statistics.Sample, n),
		categories: make([]map[poker.Category]int, n),
	}
	for i := range t.categories {
		t.categories[i] = make(map[poker.Category]int)
	}
	return t
}

func (t *tally) merge(o *tally) {
	for i := range t.wins {
		t.wins[i] += o.wins[i]
		t.ties[i] += o.ties[i]
		t.shares[i].Merge(o.shares[i])
		for c, n := range o.categories[i] {
			t.categories[i][c] += n
		}
	}
}

// Calculate runs a Monte Carlo simulation of req. Results are reproducible
// for the same seed and worker count.
func Calculate(ctx context.Context, req Request) (*Report, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	iterations := req.Iterations
	if iterations == 0 {
		iterations = DefaultIterations
	}
	workers := req.Workers
	if workers <= 0 {
		workers = min(runtime.NumCPU(), maxWorkers)
	}
	workers = min(workers, iterations)
	seed := randutil.Seed(req.Seed)
	logger := req.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.WithPrefix("equity")

	available := remaining(req.Hands, req.Board)
	if need := boardSize - len(req.Board) + 2*req.Opponents; need > len(available) {
		return nil, fmt.Errorf("%w: %d opponents need %d cards, only %d left", ErrInvalidHand, req.Opponents, need, len(available))
	}

	logger.Debug("starting simulation",
		"hands", len(req.Hands),
		"opponents", req.Opponents,
		"iterations", iterations,
		"workers", workers,
		"seed", seed)

	seeds := randutil.Split(randutil.New(seed), workers)
	tallies := make([]*tally, workers)
	perWorker := iterations / workers
	extra := iterations % workers

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		n := perWorker
		if w < extra {
			n++
		}
		tallies[w] = newTally(len(req.Hands))
		sim := &simulation{
			hands:     req.Hands,
			board:     req.Board,
			opponents: req.Opponents,
			available: append([]poker.Card(nil), available...),
			rng:       randutil.New(seeds[w]),
			out:       tallies[w],
		}
		g.Go(func() error {
			return sim.run(ctx, n)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := newTally(len(req.Hands))
	for _, t := range tallies {
		total.merge(t)
	}

	report := &Report{
		Board:      append([]poker.Card(nil), req.Board...),
		Iterations: iterations,
		Seed:       seed,
		Workers:    workers,
	}
	for i, hand := range req.Hands {
		report.Hands = append(report.Hands, HandReport{
			Hand:       append([]poker.Card(nil), hand...),
			Wins:       total.wins[i],
			Ties:       total.ties[i],
			Equity:     total.shares[i].Mean(),
			StdError:   total.shares[i].StdError(),
			Categories: total.categories[i],
		})
	}
	return report, nil
}

func validate(req Request) error {
	if len(req.Hands) < 2 && !(len(req.Hands) == 1 && req.Opponents > 0) {
		return ErrTooFewHands
	}
	if req.Iterations < 0 {
		return fmt.Errorf("iterations must not be negative, got %d", req.Iterations)
	}
	if req.Opponents < 0 {
		return fmt.Errorf("opponents must not be negative, got %d", req.Opponents)
	}
	if len(req.Board) > boardSize {
		return fmt.Errorf("%w: at most %d cards, got %d", ErrInvalidBoard, boardSize, len(req.Board))
	}

	var seen cardSet
	for _, c := range req.Board {
		if !c.Valid() {
			return fmt.Errorf("%w: %v", ErrInvalidBoard, c)
		}
		if seen.contains(c) {
			return fmt.Errorf("%w: %s on the board", ErrDuplicateCard, c)
		}
		seen.add(c)
	}
	for i, hand := range req.Hands {
		if len(hand) != 2 {
			return fmt.Errorf("%w: hand %d must contain exactly 2 cards, got %d", ErrInvalidHand, i+1, len(hand))
		}
		for _, c := range hand {
			if !c.Valid() {
				return fmt.Errorf("%w: hand %d has %v", ErrInvalidHand, i+1, c)
			}
			if seen.contains(c) {
				return fmt.Errorf("%w: %s in hand %d", ErrDuplicateCard, c, i+1)
			}
			seen.add(c)
		}
	}
	return nil
}

// cardSet is a bitset with one bit per card.
type cardSet uint64

func cardIndex(c poker.Card) int {
	return int(c.Rank-poker.Two)*4 + int(c.Suit-poker.Hearts)
}

func (s *cardSet) add(c poker.Card) { *s |= 1 << cardIndex(c) }

func (s cardSet) contains(c poker.Card) bool { return s&(1<<cardIndex(c)) != 0 }

// remaining returns the cards not held by any hand or on the board.
func remaining(hands [][]poker.Card, board []poker.Card) []poker.Card {
	var used cardSet
	for _, c := range board {
		used.add(c)
	}
	for _, hand := range hands {
		for _, c := range hand {
			used.add(c)
		}
	}

	out := make([]poker.Card, 0, 52)
	for _, suit := range poker.Suits {
		for rank := poker.Two; rank <= poker.Ace; rank++ {
			c := poker.NewCard(rank, suit)
			if !used.contains(c) {
				out = append(out, c)
			}
		}
	}
	return out
}

type simulation struct {
	hands     [][]poker.Card
	board     []poker.Card
	opponents int
	available []poker.Card
	rng       *rand.Rand
	out       *tally
}

func (s *simulation) run(ctx context.Context, iterations int) error {
	players := len(s.hands) + s.opponents
	board := make([]poker.Card, boardSize)
	copy(board, s.board)
	holes := make([][]poker.Card, players)
	copy(holes, s.hands)
	buf := make([]poker.Card, 0, 2+boardSize)
	results := make([]poker.Result, players)

	for i := range iterations {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		// Partial Fisher-Yates: the front of available holds this runout.
		draw := boardSize - len(s.board) + 2*s.opponents
		for j := range draw {
			k := j + s.rng.IntN(len(s.available)-j)
			s.available[j], s.available[k] = s.available[k], s.available[j]
		}
		copy(board[len(s.board):], s.available)
		for o := range s.opponents {
			start := boardSize - len(s.board) + 2*o
			holes[len(s.hands)+o] = s.available[start : start+2]
		}

		for p, hole := range holes {
			buf = append(append(buf[:0], hole...), board...)
			res, err := poker.Evaluate(buf)
			if err != nil {
				return err
			}
			results[p] = res
		}

		winners := poker.Winners(results)
		share := 1 / float64(len(winners))
		for h := range s.hands {
			won := slices.Contains(winners, h)
			switch {
			case won && len(winners) == 1:
				s.out.wins[h]++
			case won:
				s.out.ties[h]++
			}
			if won {
				s.out.shares[h].Add(share)
			} else {
				s.out.shares[h].Add(0)
			}
			s.out.categories[h][results[h].Category]++
		}
	}
	return nil
}
