// Package phh records heads-up games in the Poker Hand History format
// (https://phh.readthedocs.io). A session file holds one TOML table per
// hand, keyed by the hand's number in the session.
package phh

// Variant is the PHH code for no-limit Texas hold'em.
const Variant = "NT"

// HandHistory represents a single poker hand encoded in PHH format.
type HandHistory struct {
	Variant           string   `toml:"variant"`
	Table             string   `toml:"table,omitempty"`
	SeatCount         int      `toml:"seat_count,omitempty"`
	Seats             []int    `toml:"seats,omitempty"`
	Antes             []int    `toml:"antes"`
	BlindsOrStraddles []int    `toml:"blinds_or_straddles"`
	MinBet            int      `toml:"min_bet"`
	StartingStacks    []int    `toml:"starting_stacks"`
	FinishingStacks   []int    `toml:"finishing_stacks,omitempty"`
	Winnings          []int    `toml:"winnings,omitempty"`
	Actions           []string `toml:"actions"`
	Players           []string `toml:"players,omitempty"`
	HandID            string   `toml:"hand"`
	Time              string   `toml:"time,omitempty"`
	TimeZone          string   `toml:"time_zone,omitempty"`
	Day               int      `toml:"day,omitempty"`
	Month             int      `toml:"month,omitempty"`
	Year              int      `toml:"year,omitempty"`
}

// Net returns how much each seat won or lost in the hand.
func (h *HandHistory) Net() []int {
	if len(h.FinishingStacks) != len(h.StartingStacks) {
		return nil
	}
	net := make([]int, len(h.StartingStacks))
	for i := range net {
		net[i] = h.FinishingStacks[i] - h.StartingStacks[i]
	}
	return net
}
