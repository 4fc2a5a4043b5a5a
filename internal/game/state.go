package game

// State is a node of the game state machine.
type State int

const (
	AwaitingBet State = iota
	AwaitingCall
	RevealFlop
	RevealTurn
	RevealRiver
	Showdown
	Finished
)

func (s State) String() string {
	switch s {
	case AwaitingBet:
		return "awaiting bet"
	case AwaitingCall:
		return "awaiting call"
	case RevealFlop:
		return "reveal flop"
	case RevealTurn:
		return "reveal turn"
	case RevealRiver:
		return "reveal river"
	case Showdown:
		return "showdown"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Action represents a player action
type Action int

const (
	Check Action = iota
	Bet
	Call
	Fold
)

func (a Action) String() string {
	return [...]string{"check", "bet", "call", "fold"}[a]
}
