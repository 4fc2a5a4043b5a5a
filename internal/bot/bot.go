// Package bot provides simple automated players for the heads-up game.
package bot

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerhands/internal/game"
	"github.com/lox/pokerhands/internal/randutil"
	"github.com/lox/pokerhands/poker"
)

// View is what a bot can see when it is asked to act.
type View struct {
	State game.State
	Hole  []poker.Card
	Board []poker.Card
	Money int
	Owed  int
	Pot   int
}

// ViewOf captures the view of the player about to act in g.
func ViewOf(g *game.Game) View {
	me := g.Players()[g.Active()]
	return View{
		State: g.State(),
		Hole:  me.Hand.Cards(),
		Board: g.Board(),
		Money: me.Money,
		Owed:  g.Owed(),
		Pot:   g.Pot(),
	}
}

// Decision is a bot's chosen action. Amount is only used for bets and is the
// raise on top of what is owed.
type Decision struct {
	Action    game.Action
	Amount    int
	Reasoning string
}

// Bot decides actions from a View.
type Bot interface {
	MakeDecision(v View) Decision
}

// Kinds lists the names accepted by New.
var Kinds = []string{"call", "fold", "maniac", "random", "tag"}

// New creates a bot by name.
func New(kind string, rng *rand.Rand, logger *log.Logger) (Bot, error) {
	if rng == nil {
		rng = randutil.New(randutil.Seed(0))
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.WithPrefix(kind + "-bot")

	switch kind {
	case "call":
		return &CallBot{}, nil
	case "fold":
		return &FoldBot{}, nil
	case "maniac":
		return &ManiacBot{}, nil
	case "random":
		return &RandBot{rng: rng}, nil
	case "tag":
		return &TAGBot{rng: rng, logger: logger}, nil
	}
	return nil, fmt.Errorf("unknown bot %q, expected one of %v", kind, Kinds)
}

// MaxRaise returns the largest raise the player can afford after paying
// what is owed.
func (v View) MaxRaise() int {
	return max(0, v.Money-v.Owed)
}

// ValidActions lists the actions the game accepts in the view's state.
func (v View) ValidActions() []game.Action {
	switch v.State {
	case game.AwaitingBet:
		if v.MaxRaise() > 0 {
			return []game.Action{game.Check, game.Bet, game.Fold}
		}
		return []game.Action{game.Check, game.Fold}
	case game.AwaitingCall:
		if v.MaxRaise() > 0 {
			return []game.Action{game.Call, game.Bet, game.Fold}
		}
		return []game.Action{game.Call, game.Fold}
	}
	return nil
}

// passive returns check when free, otherwise call.
func passive(v View, reason string) Decision {
	if v.State == game.AwaitingBet {
		return Decision{Action: game.Check, Reasoning: reason}
	}
	return Decision{Action: game.Call, Reasoning: reason}
}

// bet raises by amount clamped to what the player can afford, falling back
// to a passive action when nothing can be raised.
func bet(v View, amount int, reason string) Decision {
	amount = min(max(amount, 1), v.MaxRaise())
	if amount <= 0 {
		return passive(v, reason)
	}
	return Decision{Action: game.Bet, Amount: amount, Reasoning: reason}
}

// Apply performs d on g. Bets the game rejects are downgraded to a check or
// call so a bot can never stall a game.
func Apply(g *game.Game, d Decision) (*game.Outcome, error) {
	switch d.Action {
	case game.Check:
		return nil, g.Check()
	case game.Call:
		return nil, g.Call()
	case game.Fold:
		return g.Fold()
	case game.Bet:
		if err := g.Bet(d.Amount); err == nil {
			return nil, nil
		}
		if g.State() == game.AwaitingBet {
			return nil, g.Check()
		}
		return nil, g.Call()
	}
	return nil, fmt.Errorf("unknown action %v", d.Action)
}
