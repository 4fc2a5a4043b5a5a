// Package simulator plays bots against each other in heads-up rounds and
// measures the result.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerhands/internal/bot"
	"github.com/lox/pokerhands/internal/game"
	"github.com/lox/pokerhands/internal/gameid"
	"github.com/lox/pokerhands/internal/phh"
	"github.com/lox/pokerhands/internal/randutil"
	"github.com/lox/pokerhands/internal/statistics"
)

// maxActions bounds a single round so a misbehaving bot cannot hang a run.
const maxActions = 1000

// ErrStalled is returned when a round does not finish within maxActions.
var ErrStalled = errors.New("round did not finish")

// Config holds configuration for running simulations
type Config struct {
	Rounds        int
	Hero          string // Bot kind measured by the results
	Villain       string
	StartingMoney int
	Seed          int64
	Logger        *log.Logger
	History       io.Writer // Receives a PHH record of every round when set
}

// Result summarises the hero's performance.
type Result struct {
	Rounds    int               // Rounds played, counting both seatings
	Net       statistics.Sample // Hero's money won or lost per round
	Wins      int
	Losses    int
	Splits    int
	Showdowns int
	Seed      int64
}

// Simulator runs duplicate heads-up rounds: every deal is played twice with
// the bots swapping seats, which cancels out the luck of the cards.
type Simulator struct {
	config   Config
	logger   *log.Logger
	recorder *phh.Recorder
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", config.Rounds)
	}
	if config.StartingMoney == 0 {
		config.StartingMoney = game.DefaultStartingMoney
	}
	for _, kind := range []string{config.Hero, config.Villain} {
		if _, err := bot.New(kind, nil, nil); err != nil {
			return nil, err
		}
	}
	config.Seed = randutil.Seed(config.Seed)

	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Simulator{config: config, logger: logger.WithPrefix("simulator")}
	if config.History != nil {
		session := gameid.NewGenerator(nil, randutil.New(config.Seed)).Generate()
		s.recorder = phh.NewRecorder(config.History, session, logger)
	}
	return s, nil
}

// Run executes the simulation and returns results
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	res := &Result{Seed: s.config.Seed}

	for round := range s.config.Rounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dealSeed := s.config.Seed + int64(round)
		for heroSeat := range 2 {
			net, showdown, err := s.playRound(dealSeed, heroSeat)
			if err != nil {
				return nil, fmt.Errorf("round %d (seed %d, hero seat %d): %w", round+1, dealSeed, heroSeat, err)
			}
			res.Rounds++
			res.Net.Add(float64(net))
			if showdown {
				res.Showdowns++
			}
			switch {
			case net > 0:
				res.Wins++
			case net < 0:
				res.Losses++
			default:
				res.Splits++
			}
		}
	}

	if s.recorder != nil {
		if err := s.recorder.Err(); err != nil {
			return nil, err
		}
	}
	s.logger.Debug("simulation complete", "rounds", res.Rounds, "mean", res.Net.Mean())
	return res, nil
}

// playRound plays a single round with the hero in heroSeat and returns the
// hero's net result.
func (s *Simulator) playRound(seed int64, heroSeat int) (int, bool, error) {
	rng := randutil.New(seed)
	kinds := [2]string{s.config.Villain, s.config.Villain}
	kinds[heroSeat] = s.config.Hero

	var bots [2]bot.Bot
	for i, kind := range kinds {
		b, err := bot.New(kind, rng, s.logger)
		if err != nil {
			return 0, false, err
		}
		bots[i] = b
	}

	names := [2]string{"villain:" + s.config.Villain, "villain:" + s.config.Villain}
	names[heroSeat] = "hero:" + s.config.Hero

	opts := []game.Option{
		game.WithStartingMoney(s.config.StartingMoney),
		game.WithSeed(seed),
		game.WithLogger(s.logger),
	}
	if s.recorder != nil {
		opts = append(opts, game.WithObserver(s.recorder.Observe))
	}
	g, err := game.NewGame(names, opts...)
	if err != nil {
		return 0, false, err
	}
	if s.recorder != nil {
		s.recorder.Attach(g)
		defer s.recorder.Detach()
	}

	showdown := false
	for range maxActions {
		if g.Round() > 1 || g.State() == game.Finished {
			net := g.Players()[heroSeat].Money - s.config.StartingMoney
			return net, showdown, nil
		}

		switch g.State() {
		case game.RevealFlop, game.RevealTurn, game.RevealRiver:
			err = g.Reveal()
		case game.Showdown:
			showdown = true
			_, err = g.Showdown()
		default:
			seat := g.Active()
			d := bots[seat].MakeDecision(bot.ViewOf(g))
			s.logger.Debug("decision", "seat", seat, "action", d.Action, "amount", d.Amount, "reason", d.Reasoning)
			_, err = bot.Apply(g, d)
		}
		if err != nil {
			return 0, false, err
		}
	}
	return 0, false, ErrStalled
}
