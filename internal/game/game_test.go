package game

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerhands/poker"
)

// stackedDealer deals cards in a fixed order.
type stackedDealer struct {
	cards []poker.Card
}

func (d *stackedDealer) Draw() (poker.Card, error) {
	if len(d.cards) == 0 {
		return poker.Card{}, poker.ErrNoMoreCards
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, nil
}

// withRounds stacks one deck per round. Rounds beyond the list reuse the last deck.
func withRounds(decks ...string) Option {
	round := 0
	return WithDealer(func() Dealer {
		d := decks[min(round, len(decks)-1)]
		round++
		return &stackedDealer{cards: poker.MustParseCards(d)}
	})
}

// Seat 0 gets aces, seat 1 gets kings on a dry board.
const acesOverKings = "As Kc Ah Kd 2c 7d 9h 3s 4c"

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g, err := NewGame([2]string{"Alice", "Bob"}, opts...)
	require.NoError(t, err)
	return g
}

func checkDown(t *testing.T, g *Game) {
	t.Helper()
	for g.State() != Showdown {
		switch g.State() {
		case AwaitingBet:
			require.NoError(t, g.Check())
		case RevealFlop, RevealTurn, RevealRiver:
			require.NoError(t, g.Reveal())
		default:
			t.Fatalf("unexpected state %s", g.State())
		}
	}
}

func TestNewGameValidation(t *testing.T) {
	tests := []struct {
		name  string
		names [2]string
		opts  []Option
	}{
		{"empty name", [2]string{"", "Bob"}, nil},
		{"duplicate names", [2]string{"Bob", "Bob"}, nil},
		{"zero money", [2]string{"Alice", "Bob"}, []Option{WithStartingMoney(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGame(tt.names, tt.opts...)
			require.Error(t, err)
		})
	}
}

func TestNewGameDealsFirstRound(t *testing.T) {
	g := newTestGame(t, withRounds(acesOverKings))

	assert.Equal(t, AwaitingBet, g.State())
	assert.Equal(t, 1, g.Round())
	assert.Equal(t, 0, g.Active())
	assert.Empty(t, g.Board())

	players := g.Players()
	assert.Equal(t, "As Ah", players[0].Hand.String())
	assert.Equal(t, "Kc Kd", players[1].Hand.String())
	assert.Equal(t, DefaultStartingMoney, players[0].Money)
}

func TestSeededGamesDealIdentically(t *testing.T) {
	a := newTestGame(t, WithSeed(7))
	b := newTestGame(t, WithSeed(7))

	pa, pb := a.Players(), b.Players()
	assert.Equal(t, pa[0].Hand.Cards(), pb[0].Hand.Cards())
	assert.Equal(t, pa[1].Hand.Cards(), pb[1].Hand.Cards())
}

func TestCheckAroundClosesStreet(t *testing.T) {
	g := newTestGame(t, withRounds(acesOverKings))

	require.NoError(t, g.Check())
	assert.Equal(t, AwaitingBet, g.State())
	assert.Equal(t, 1, g.Active())

	require.NoError(t, g.Check())
	assert.Equal(t, RevealFlop, g.State())

	require.NoError(t, g.Reveal())
	assert.Equal(t, AwaitingBet, g.State())
	assert.Equal(t, "2c 7d 9h", poker.FormatCards(g.Board()))
	assert.Equal(t, 0, g.Active())

	require.NoError(t, g.Check())
	require.NoError(t, g.Check())
	assert.Equal(t, RevealTurn, g.State())
	require.NoError(t, g.Reveal())
	assert.Len(t, g.Board(), 4)

	require.NoError(t, g.Check())
	require.NoError(t, g.Check())
	assert.Equal(t, RevealRiver, g.State())
	require.NoError(t, g.Reveal())
	assert.Len(t, g.Board(), 5)

	require.NoError(t, g.Check())
	require.NoError(t, g.Check())
	assert.Equal(t, Showdown, g.State())
}

func TestActionsInWrongState(t *testing.T) {
	g := newTestGame(t, withRounds(acesOverKings))

	assert.ErrorIs(t, g.Call(), ErrInvalidState)
	assert.ErrorIs(t, g.Reveal(), ErrInvalidState)
	_, err := g.Showdown()
	assert.ErrorIs(t, err, ErrInvalidState)

	require.NoError(t, g.Bet(10))
	assert.ErrorIs(t, g.Check(), ErrInvalidState)

	require.NoError(t, g.Call())
	assert.ErrorIs(t, g.Check(), ErrInvalidState)
	assert.ErrorIs(t, g.Bet(10), ErrInvalidState)
	_, err = g.Fold()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestBetValidation(t *testing.T) {
	g := newTestGame(t, withRounds(acesOverKings), WithStartingMoney(100))

	assert.ErrorIs(t, g.Bet(0), ErrInvalidAmount)
	assert.ErrorIs(t, g.Bet(-5), ErrInvalidAmount)
	assert.ErrorIs(t, g.Bet(101), ErrInsufficientFunds)

	require.NoError(t, g.Bet(60))
	// Bob owes 60, so raising by 50 needs 110.
	assert.ErrorIs(t, g.Bet(50), ErrInsufficientFunds)
	assert.Equal(t, AwaitingCall, g.State())
	assert.Equal(t, 60, g.Owed())
}

func TestBetRaiseCallShowdown(t *testing.T) {
	g := newTestGame(t, withRounds(acesOverKings))

	require.NoError(t, g.Bet(20))
	assert.Equal(t, 1, g.Active())
	require.NoError(t, g.Bet(30)) // raise
	assert.Equal(t, 0, g.Active())
	assert.Equal(t, 30, g.Owed())
	require.NoError(t, g.Call())
	assert.Equal(t, 100, g.Pot())
	assert.Equal(t, RevealFlop, g.State())

	checkDown(t, g)

	out, err := g.Showdown()
	require.NoError(t, err)
	assert.Equal(t, []int{0}, out.Winners)
	assert.Equal(t, 100, out.Pot)
	assert.Equal(t, poker.OnePair, out.Results[0].Category)
	assert.True(t, out.Results[0].Greater(out.Results[1]))

	players := g.Players()
	assert.Equal(t, 1050, players[0].Money)
	assert.Equal(t, 950, players[1].Money)

	assert.Equal(t, 2, g.Round())
	assert.Equal(t, AwaitingBet, g.State())
	assert.Equal(t, 0, g.Pot())
	assert.Equal(t, 1, g.Active(), "first to act alternates")
}

func TestFoldAwardsPot(t *testing.T) {
	g := newTestGame(t, withRounds(acesOverKings))

	require.NoError(t, g.Bet(30))
	out, err := g.Fold()
	require.NoError(t, err)

	assert.True(t, out.Folded)
	assert.Equal(t, []int{0}, out.Winners)
	assert.Equal(t, 30, out.Shares[0])

	players := g.Players()
	assert.Equal(t, 1030, players[0].Money)
	assert.Equal(t, 970, players[1].Money)
	assert.Equal(t, 2, g.Round())
}

func TestSplitPotOnTie(t *testing.T) {
	// Both players hold ace-king.
	g := newTestGame(t, withRounds("As Ad Kh Kd 2c 7d 9h 3s 4c"))

	require.NoError(t, g.Bet(40))
	require.NoError(t, g.Call())
	checkDown(t, g)

	out, err := g.Showdown()
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1}, out.Winners)
	assert.Equal(t, 40, out.Shares[0])
	assert.Equal(t, 40, out.Shares[1])

	players := g.Players()
	assert.Equal(t, 1000, players[0].Money)
	assert.Equal(t, 1000, players[1].Money)
}

func TestAllInRunsOutBoardAndFinishes(t *testing.T) {
	g := newTestGame(t, withRounds(acesOverKings), WithStartingMoney(100))

	require.NoError(t, g.Bet(100))
	require.NoError(t, g.Call())

	assert.Equal(t, RevealFlop, g.State())
	require.NoError(t, g.Reveal())
	assert.Equal(t, RevealTurn, g.State(), "no betting while a player is all-in")
	require.NoError(t, g.Reveal())
	assert.Equal(t, RevealRiver, g.State())
	require.NoError(t, g.Reveal())
	assert.Equal(t, Showdown, g.State())

	out, err := g.Showdown()
	require.NoError(t, err)
	assert.Equal(t, 200, out.Shares[0])

	assert.Equal(t, Finished, g.State())
	winner, ok := g.Winner()
	require.True(t, ok)
	assert.Equal(t, "Alice", winner.Name)
	assert.Equal(t, 200, winner.Money)

	assert.ErrorIs(t, g.Check(), ErrGameFinished)
	assert.ErrorIs(t, g.Bet(1), ErrGameFinished)
	assert.ErrorIs(t, g.Reveal(), ErrGameFinished)
	_, err = g.Fold()
	assert.ErrorIs(t, err, ErrGameFinished)
}

func TestShortCallRefundsBettor(t *testing.T) {
	g := newTestGame(t, WithStartingMoney(100), withRounds(
		acesOverKings,
		// Round two deals Bob first: Bob Qc Qd, Alice 2h 8s.
		"Qc 2h Qd 8s Kh Jd 5c 6d Ts",
	))

	require.NoError(t, g.Bet(40))
	require.NoError(t, g.Call())
	checkDown(t, g)
	_, err := g.Showdown()
	require.NoError(t, err)

	players := g.Players()
	require.Equal(t, 140, players[0].Money)
	require.Equal(t, 60, players[1].Money)

	require.Equal(t, 1, g.Active())
	require.NoError(t, g.Check())
	require.NoError(t, g.Bet(100))
	assert.ErrorIs(t, g.Bet(10), ErrInsufficientFunds, "Bob cannot cover a raise")

	require.NoError(t, g.Call())
	assert.Equal(t, 120, g.Pot())
	players = g.Players()
	assert.Equal(t, 80, players[0].Money)
	assert.Equal(t, 0, players[1].Money)
	assert.Equal(t, 60, players[0].TotalBet)

	for g.State() != Showdown {
		require.NoError(t, g.Reveal())
	}
	out, err := g.Showdown()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, out.Winners)

	players = g.Players()
	assert.Equal(t, 80, players[0].Money)
	assert.Equal(t, 120, players[1].Money)
	assert.Equal(t, 3, g.Round())
}

func TestEventsUseInjectedClock(t *testing.T) {
	ctx := context.Background()
	mockClock := quartz.NewMock(t)

	var events []Event
	g := newTestGame(t,
		withRounds(acesOverKings),
		WithClock(mockClock),
		WithObserver(func(ev Event) { events = append(events, ev) }),
	)

	start := mockClock.Now()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeRoundStarted, events[0].Type)
	assert.True(t, start.Equal(events[0].Time))

	mockClock.Advance(time.Second).MustWait(ctx)
	require.NoError(t, g.Bet(25))

	last := events[len(events)-1]
	assert.Equal(t, EventTypeActed, last.Type)
	assert.Equal(t, "Alice", last.Player)
	assert.Equal(t, Bet, last.Action)
	assert.Equal(t, 25, last.Amount)
	assert.True(t, start.Add(time.Second).Equal(last.Time))
	assert.Equal(t, "Alice bet 25", last.String())

	_, err := g.Fold()
	require.NoError(t, err)

	var types []EventType
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []EventType{
		EventTypeRoundStarted,
		EventTypeActed,
		EventTypeActed,
		EventTypeWon,
		EventTypeRoundStarted,
	}, types)
	assert.Equal(t, 2, events[len(events)-1].Round)
}

func TestSplitPotOddChip(t *testing.T) {
	shares := splitPot(101, []int{0, 1}, 1)
	assert.Equal(t, 51, shares[1])
	assert.Equal(t, 50, shares[0])

	shares = splitPot(101, []int{1, 0}, 0)
	assert.Equal(t, 51, shares[0])
	assert.Equal(t, 50, shares[1])

	shares = splitPot(80, []int{1}, 0)
	assert.Equal(t, map[int]int{1: 80}, shares)
}
