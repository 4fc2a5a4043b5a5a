package game

import (
	"fmt"
	"time"

	"github.com/lox/pokerhands/poker"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeRoundStarted EventType = "round_started"
	EventTypeActed        EventType = "acted"
	EventTypeRevealed     EventType = "revealed"
	EventTypeWon          EventType = "won"
	EventTypeBusted       EventType = "busted"
	EventTypeFinished     EventType = "finished"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event describes something that happened in the game. Only the fields that
// apply to Type are set.
type Event struct {
	Type   EventType
	Round  int
	Seat   int // Seat of Player, -1 when the event has no player
	Player string
	Action Action
	Amount int
	Cards  []poker.Card
	Result *poker.Result
	Time   time.Time
}

// Observer receives events synchronously, in order, from the goroutine that
// drives the game.
type Observer func(Event)

// String renders the event as a single log-friendly line.
func (e Event) String() string {
	switch e.Type {
	case EventTypeRoundStarted:
		return fmt.Sprintf("round %d started", e.Round)
	case EventTypeActed:
		if e.Amount > 0 {
			return fmt.Sprintf("%s %s %d", e.Player, e.Action, e.Amount)
		}
		return fmt.Sprintf("%s %s", e.Player, e.Action)
	case EventTypeRevealed:
		return fmt.Sprintf("board %s", poker.FormatCards(e.Cards))
	case EventTypeWon:
		if e.Result != nil {
			return fmt.Sprintf("%s wins %d with %s", e.Player, e.Amount, e.Result)
		}
		return fmt.Sprintf("%s wins %d", e.Player, e.Amount)
	case EventTypeBusted:
		return fmt.Sprintf("%s has no money left", e.Player)
	case EventTypeFinished:
		return fmt.Sprintf("game over, %s wins", e.Player)
	}
	return e.Type.String()
}
