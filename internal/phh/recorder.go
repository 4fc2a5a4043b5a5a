package phh

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerhands/internal/game"
)

// Table is the read side of a game that the recorder needs. *game.Game
// satisfies it.
type Table interface {
	Players() [2]game.Player
}

// Recorder turns game events into hand histories and writes each hand to w as
// soon as it is settled. Use Observe as the game's observer and Attach the
// game once it exists. One recorder can follow several games in turn.
type Recorder struct {
	w       io.Writer
	session string
	logger  *log.Logger

	table    Table
	hand     *HandHistory
	boardLen int
	settled  bool
	count    int
	err      error
}

// NewRecorder writes hands tagged with session to w.
func NewRecorder(w io.Writer, session string, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{w: w, session: session, logger: logger.WithPrefix("phh")}
}

// Attach starts recording table from the deal of its current round. Call it
// straight after creating the game, before any action.
func (r *Recorder) Attach(t Table) {
	r.Detach()
	r.table = t
	r.begin()
}

// Detach writes the current hand if it was settled and stops following the
// table.
func (r *Recorder) Detach() {
	if r.table != nil {
		r.flush()
	}
	r.table = nil
}

// Observe records ev. It has the game.Observer signature.
func (r *Recorder) Observe(ev game.Event) {
	if r.table == nil || r.err != nil {
		return
	}

	if ev.Type == game.EventTypeRoundStarted {
		r.flush()
		r.begin()
	}
	if r.hand != nil && r.hand.Year == 0 {
		r.stamp(ev)
	}

	switch ev.Type {
	case game.EventTypeActed:
		total := r.table.Players()[ev.Seat].StreetBet
		if a, ok := FormatAction(ev.Seat, ev.Action, total); ok {
			r.add(a)
		}
	case game.EventTypeRevealed:
		r.add(DealtBoard(FormatCards(ev.Cards[r.boardLen:])))
		r.boardLen = len(ev.Cards)
	case game.EventTypeWon:
		if ev.Result != nil && !r.settled {
			for _, p := range r.table.Players() {
				r.add(ShowedHand(p.Seat, FormatCards(p.Hand.Cards())))
			}
		}
		r.settled = true
		if r.hand != nil {
			r.hand.Winnings[ev.Seat] += ev.Amount
		}
	case game.EventTypeFinished:
		r.flush()
	}
}

// Hands returns how many hands have been written.
func (r *Recorder) Hands() int { return r.count }

// Err returns the first write error. Recording stops after an error.
func (r *Recorder) Err() error { return r.err }

func (r *Recorder) begin() {
	players := r.table.Players()
	hand := &HandHistory{
		Variant:           Variant,
		Table:             r.session,
		SeatCount:         len(players),
		Antes:             make([]int, len(players)),
		BlindsOrStraddles: make([]int, len(players)),
		MinBet:            1,
		StartingStacks:    make([]int, len(players)),
		Winnings:          make([]int, len(players)),
	}
	for i, p := range players {
		hand.Seats = append(hand.Seats, i+1)
		hand.Players = append(hand.Players, p.Name)
		hand.StartingStacks[i] = p.Money + p.TotalBet
		hand.Actions = append(hand.Actions, DealtHole(i, FormatCards(p.Hand.Cards())))
	}
	r.hand = hand
	r.boardLen = 0
	r.settled = false
}

func (r *Recorder) stamp(ev game.Event) {
	if ev.Time.IsZero() {
		return
	}
	t := ev.Time.UTC()
	r.hand.TimeZone = "UTC"
	r.hand.Time = t.Format("15:04:05")
	r.hand.Day, r.hand.Month, r.hand.Year = t.Day(), int(t.Month()), t.Year()
}

func (r *Recorder) add(action string) {
	if r.hand != nil {
		r.hand.Actions = append(r.hand.Actions, action)
	}
}

// flush writes the current hand if it was settled. Unfinished hands are
// dropped.
func (r *Recorder) flush() {
	hand := r.hand
	r.hand = nil
	if hand == nil || !r.settled {
		return
	}

	for _, p := range r.table.Players() {
		hand.FinishingStacks = append(hand.FinishingStacks, p.Money)
	}
	r.count++
	hand.HandID = fmt.Sprintf("%s-%d", r.session, r.count)
	if err := EncodeSection(r.w, r.count, hand); err != nil {
		r.err = fmt.Errorf("write hand %d: %w", r.count, err)
		r.logger.Error("failed to record hand", "hand", hand.HandID, "error", err)
		return
	}
	r.logger.Debug("recorded hand", "hand", hand.HandID, "actions", len(hand.Actions))
}
