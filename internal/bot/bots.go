package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerhands/internal/game"
	"github.com/lox/pokerhands/poker"
)

// CallBot checks or calls every street.
type CallBot struct{}

func (c *CallBot) MakeDecision(v View) Decision {
	return passive(v, "call-bot never folds")
}

// FoldBot checks when free and folds to any bet.
type FoldBot struct{}

func (f *FoldBot) MakeDecision(v View) Decision {
	if v.State == game.AwaitingBet {
		return Decision{Action: game.Check, Reasoning: "fold-bot free check"}
	}
	return Decision{Action: game.Fold, Reasoning: "fold-bot facing a bet"}
}

// ManiacBot bets the pot whenever it can.
type ManiacBot struct{}

func (m *ManiacBot) MakeDecision(v View) Decision {
	return bet(v, max(v.Pot, 10), "maniac pot bet")
}

// RandBot makes uniform random legal actions
type RandBot struct {
	rng *rand.Rand
}

func (r *RandBot) MakeDecision(v View) Decision {
	actions := v.ValidActions()
	if len(actions) == 0 {
		return Decision{Action: game.Fold, Reasoning: "rand-bot no valid actions"}
	}

	action := actions[r.rng.IntN(len(actions))]
	if action == game.Bet {
		return bet(v, 1+r.rng.IntN(v.MaxRaise()), "rand-bot random bet")
	}
	return Decision{Action: action, Reasoning: "rand-bot random action"}
}

// TAGBot is a tight aggressive bot: it bets strong hands, calls made pairs
// and mostly gives up otherwise.
type TAGBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

func (t *TAGBot) MakeDecision(v View) Decision {
	half := max(v.Pot/2, 10)

	if len(v.Board) == 0 {
		switch poker.CategorizeHoleCards(v.Hole[0], v.Hole[1]) {
		case poker.CategoryPremium:
			return bet(v, half, "TAG raise premium")
		case poker.CategoryStrong, poker.CategoryMedium:
			return passive(v, "TAG play playable hand")
		}
		return t.giveUp(v)
	}

	res, err := poker.BestHand(v.Hole, v.Board)
	if err != nil {
		t.logger.Warn("cannot evaluate hand", "error", err)
		return passive(v, "TAG evaluation failed")
	}

	switch {
	case res.Category >= poker.TwoPair:
		return bet(v, half, "TAG value bet "+res.Category.String())
	case res.Category == poker.OnePair:
		return passive(v, "TAG call with a pair")
	}
	return t.giveUp(v)
}

func (t *TAGBot) giveUp(v View) Decision {
	if v.State == game.AwaitingBet {
		return Decision{Action: game.Check, Reasoning: "TAG check"}
	}
	if t.rng.Float64() < 0.3 { // 30% call rate
		return Decision{Action: game.Call, Reasoning: "TAG call"}
	}
	return Decision{Action: game.Fold, Reasoning: "TAG fold"}
}
