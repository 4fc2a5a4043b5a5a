package game

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerhands/internal/randutil"
	"github.com/lox/pokerhands/poker"
)

// DefaultStartingMoney is used when WithStartingMoney is not given.
const DefaultStartingMoney = 1000

// Dealer supplies cards for a round. *poker.Deck satisfies it.
type Dealer interface {
	Draw() (poker.Card, error)
}

// Option configures a Game during creation.
type Option func(*config)

type config struct {
	startingMoney int
	rng           *rand.Rand
	newDealer     func() Dealer
	logger        *log.Logger
	clock         quartz.Clock
	observer      Observer
}

func defaultConfig() *config {
	return &config{
		startingMoney: DefaultStartingMoney,
		logger:        log.New(io.Discard),
		clock:         quartz.NewReal(),
	}
}

// WithStartingMoney sets the money each player sits down with.
func WithStartingMoney(amount int) Option {
	return func(c *config) { c.startingMoney = amount }
}

// WithRNG shuffles every round's deck from rng.
func WithRNG(rng *rand.Rand) Option {
	return func(c *config) { c.rng = rng }
}

// WithSeed shuffles every round's deck from a source derived from seed.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = randutil.New(seed) }
}

// WithDealer replaces the shuffled deck. newDealer is called once per round.
func WithDealer(newDealer func() Dealer) Option {
	return func(c *config) { c.newDealer = newDealer }
}

// WithLogger sets the logger used for state transitions.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithClock sets the clock used to timestamp events.
func WithClock(clock quartz.Clock) Option {
	return func(c *config) { c.clock = clock }
}

// WithObserver registers a function that receives every event.
func WithObserver(observer Observer) Option {
	return func(c *config) { c.observer = observer }
}
