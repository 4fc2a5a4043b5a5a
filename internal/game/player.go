package game

import (
	"github.com/lox/pokerhands/poker"
)

// Player represents a seat at the table
type Player struct {
	Seat      int
	Name      string
	Money     int
	Hand      *poker.Hand
	StreetBet int // Committed during the current street
	TotalBet  int // Committed during the whole round
	Checked   bool
}

// IsAllIn returns true once the player has nothing left to bet
func (p *Player) IsAllIn() bool {
	return p.Money == 0
}

// snapshot returns a copy that shares no mutable state with p.
func (p *Player) snapshot() Player {
	cp := *p
	cp.Hand = poker.NewHand(p.Hand.Cards()...)
	return cp
}

func (p *Player) pay(amount int) {
	p.Money -= amount
	p.StreetBet += amount
	p.TotalBet += amount
}

func (p *Player) resetStreet() {
	p.StreetBet = 0
	p.Checked = false
}
