package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerhands/internal/randutil"
	"github.com/lox/pokerhands/poker"
)

const seats = 2

var (
	ErrInvalidState      = errors.New("invalid state")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrGameFinished      = errors.New("game finished")
)

// Outcome describes how a round was settled.
type Outcome struct {
	Round   int
	Pot     int
	Winners []int       // Seats that received a share of the pot
	Shares  map[int]int // Amount paid to each winning seat
	Results [seats]poker.Result
	Folded  bool // Settled by a fold, Results are unset
}

// Game is a heads-up Hold'em match between two players. It is not safe for
// concurrent use.
type Game struct {
	cfg     *config
	logger  *log.Logger
	players [seats]*Player
	board   []poker.Card
	dealer  Dealer
	state   State
	round   int
	button  int
	toAct   int
	pot     int
	winner  int
}

// NewGame seats two players and deals the first round.
func NewGame(names [seats]string, opts ...Option) (*Game, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.startingMoney <= 0 {
		return nil, fmt.Errorf("%w: starting money must be positive, got %d", ErrInvalidAmount, cfg.startingMoney)
	}
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("player %d has no name", i+1)
		}
	}
	if names[0] == names[1] {
		return nil, fmt.Errorf("players must have distinct names, both are %q", names[0])
	}
	if cfg.rng == nil {
		cfg.rng = randutil.New(randutil.Seed(0))
	}

	g := &Game{
		cfg:    cfg,
		logger: cfg.logger.WithPrefix("game"),
		winner: -1,
	}
	for i, name := range names {
		g.players[i] = &Player{
			Seat:  i,
			Name:  name,
			Money: cfg.startingMoney,
			Hand:  poker.NewHand(),
		}
	}

	if err := g.startRound(); err != nil {
		return nil, err
	}
	return g, nil
}

// State returns the current state.
func (g *Game) State() State { return g.state }

// Round returns the 1-based number of the current round.
func (g *Game) Round() int { return g.round }

// Pot returns the money committed to the current round.
func (g *Game) Pot() int { return g.pot }

// Active returns the seat expected to act next.
func (g *Game) Active() int { return g.toAct }

// Button returns the seat that acts last this round.
func (g *Game) Button() int { return g.button }

// Board returns a copy of the community cards.
func (g *Game) Board() []poker.Card {
	return append([]poker.Card(nil), g.board...)
}

// Players returns a snapshot of both seats.
func (g *Game) Players() [seats]Player {
	var out [seats]Player
	for i, p := range g.players {
		out[i] = p.snapshot()
	}
	return out
}

// Owed returns how much the active player must pay to match the opponent.
func (g *Game) Owed() int {
	return g.owed(g.toAct)
}

// Winner returns the last player with money once the game is finished.
func (g *Game) Winner() (Player, bool) {
	if g.state != Finished || g.winner < 0 {
		return Player{}, false
	}
	return g.players[g.winner].snapshot(), true
}

// Check passes the action without betting. The street closes once both
// players have checked.
func (g *Game) Check() error {
	if err := g.require("check", AwaitingBet); err != nil {
		return err
	}

	p := g.players[g.toAct]
	p.Checked = true
	g.emit(Event{Type: EventTypeActed, Seat: p.Seat, Player: p.Name, Action: Check})

	if g.players[g.opponent(p.Seat)].Checked {
		g.closeStreet()
		return nil
	}
	g.toAct = g.opponent(p.Seat)
	return nil
}

// Bet pays whatever is owed plus amount, leaving the opponent to call, raise
// or fold.
func (g *Game) Bet(amount int) error {
	if err := g.require("bet", AwaitingBet, AwaitingCall); err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("%w: bet must be positive, got %d", ErrInvalidAmount, amount)
	}

	p := g.players[g.toAct]
	opp := g.players[g.opponent(p.Seat)]
	if opp.IsAllIn() {
		return fmt.Errorf("%w: cannot raise an all-in player", ErrInvalidState)
	}

	total := g.owed(p.Seat) + amount
	if total > p.Money {
		return fmt.Errorf("%w: %s needs %d but has %d", ErrInsufficientFunds, p.Name, total, p.Money)
	}

	p.pay(total)
	g.pot += total
	g.emit(Event{Type: EventTypeActed, Seat: p.Seat, Player: p.Name, Action: Bet, Amount: amount})

	g.setState(AwaitingCall)
	g.toAct = opp.Seat
	return nil
}

// Call matches the outstanding bet and closes the street. A player who
// cannot cover the bet goes all-in and the uncovered part is returned to the
// bettor.
func (g *Game) Call() error {
	if err := g.require("call", AwaitingCall); err != nil {
		return err
	}

	p := g.players[g.toAct]
	opp := g.players[g.opponent(p.Seat)]
	owed := g.owed(p.Seat)
	paid := min(owed, p.Money)

	if excess := owed - paid; excess > 0 {
		opp.Money += excess
		opp.StreetBet -= excess
		opp.TotalBet -= excess
		g.pot -= excess
		g.logger.Debug("refunded uncovered bet", "player", opp.Name, "amount", excess)
	}

	p.pay(paid)
	g.pot += paid
	g.emit(Event{Type: EventTypeActed, Seat: p.Seat, Player: p.Name, Action: Call, Amount: paid})

	g.closeStreet()
	return nil
}

// Fold concedes the pot to the opponent and starts the next round.
func (g *Game) Fold() (*Outcome, error) {
	if err := g.require("fold", AwaitingBet, AwaitingCall); err != nil {
		return nil, err
	}

	p := g.players[g.toAct]
	g.emit(Event{Type: EventTypeActed, Seat: p.Seat, Player: p.Name, Action: Fold})

	winner := g.opponent(p.Seat)
	out := &Outcome{
		Round:   g.round,
		Pot:     g.pot,
		Winners: []int{winner},
		Shares:  map[int]int{winner: g.pot},
		Folded:  true,
	}
	g.award(out, nil)

	if err := g.endRound(); err != nil {
		return out, err
	}
	return out, nil
}

// Reveal deals the next community cards: three on the flop, then one each
// on the turn and river.
func (g *Game) Reveal() error {
	if err := g.require("reveal", RevealFlop, RevealTurn, RevealRiver); err != nil {
		return err
	}

	n := 1
	if g.state == RevealFlop {
		n = 3
	}
	cards := make([]poker.Card, 0, n)
	for range n {
		c, err := g.dealer.Draw()
		if err != nil {
			return fmt.Errorf("reveal: %w", err)
		}
		cards = append(cards, c)
	}
	g.board = append(g.board, cards...)
	g.emit(Event{Type: EventTypeRevealed, Seat: -1, Cards: g.Board()})

	if g.anyAllIn() {
		// No further betting is possible, run the board out.
		g.setState(g.nextReveal())
		return nil
	}

	g.setState(AwaitingBet)
	g.toAct = g.opponent(g.button)
	return nil
}

// Showdown compares both hands against the board, pays the pot and starts
// the next round.
func (g *Game) Showdown() (*Outcome, error) {
	if err := g.require("showdown", Showdown); err != nil {
		return nil, err
	}

	out := &Outcome{Round: g.round, Pot: g.pot}
	results := make([]poker.Result, seats)
	for i, p := range g.players {
		res, err := p.Hand.Best(g.board...)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", p.Name, err)
		}
		results[i] = res
		out.Results[i] = res
	}

	out.Winners = poker.Winners(results)
	out.Shares = splitPot(g.pot, out.Winners, g.opponent(g.button))
	g.award(out, results)

	if err := g.endRound(); err != nil {
		return out, err
	}
	return out, nil
}

func (g *Game) award(out *Outcome, results []poker.Result) {
	for _, seat := range out.Winners {
		p := g.players[seat]
		p.Money += out.Shares[seat]
		ev := Event{Type: EventTypeWon, Seat: seat, Player: p.Name, Amount: out.Shares[seat]}
		if results != nil {
			res := results[seat]
			ev.Result = &res
		}
		g.emit(ev)
	}
	g.pot = 0
}

func (g *Game) startRound() error {
	g.round++
	g.button = g.opponent(g.button)
	g.board = g.board[:0]
	g.pot = 0

	if g.cfg.newDealer != nil {
		g.dealer = g.cfg.newDealer()
	} else {
		g.dealer = poker.NewDeck(g.cfg.rng)
	}

	for _, p := range g.players {
		p.Hand.Clear()
		p.resetStreet()
		p.TotalBet = 0
	}
	// Deal one card at a time, starting left of the button.
	for range 2 {
		for i := range seats {
			p := g.players[(g.button+1+i)%seats]
			c, err := g.dealer.Draw()
			if err != nil {
				return fmt.Errorf("deal round %d: %w", g.round, err)
			}
			p.Hand.Add(c)
		}
	}

	g.emit(Event{Type: EventTypeRoundStarted, Seat: -1})
	g.setState(AwaitingBet)
	g.toAct = g.opponent(g.button)
	return nil
}

func (g *Game) endRound() error {
	var busted bool
	for _, p := range g.players {
		if p.Money == 0 {
			busted = true
			g.emit(Event{Type: EventTypeBusted, Seat: p.Seat, Player: p.Name})
		}
	}
	if !busted {
		return g.startRound()
	}

	for i, p := range g.players {
		if p.Money > 0 {
			g.winner = i
		}
	}
	g.setState(Finished)
	ev := Event{Type: EventTypeFinished, Seat: g.winner}
	if g.winner >= 0 {
		ev.Player = g.players[g.winner].Name
	}
	g.emit(ev)
	return nil
}

func (g *Game) closeStreet() {
	for _, p := range g.players {
		p.resetStreet()
	}
	g.setState(g.nextReveal())
}

func (g *Game) nextReveal() State {
	switch len(g.board) {
	case 0:
		return RevealFlop
	case 3:
		return RevealTurn
	case 4:
		return RevealRiver
	default:
		return Showdown
	}
}

func (g *Game) require(action string, allowed ...State) error {
	if g.state == Finished {
		return ErrGameFinished
	}
	for _, s := range allowed {
		if g.state == s {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidState, action, g.state)
}

func (g *Game) setState(s State) {
	if g.state != s {
		g.logger.Debug("transition", "round", g.round, "from", g.state, "to", s)
	}
	g.state = s
}

func (g *Game) emit(ev Event) {
	ev.Round = g.round
	ev.Time = g.cfg.clock.Now()
	g.logger.Debug(ev.String(), "event", ev.Type, "round", ev.Round)
	if g.cfg.observer != nil {
		g.cfg.observer(ev)
	}
}

func (g *Game) owed(seat int) int {
	return max(0, g.players[g.opponent(seat)].StreetBet-g.players[seat].StreetBet)
}

func (g *Game) anyAllIn() bool {
	for _, p := range g.players {
		if p.IsAllIn() {
			return true
		}
	}
	return false
}

func (g *Game) opponent(seat int) int {
	return (seat + 1) % seats
}
