// Package game implements a two-player Texas Hold'em game as an explicit
// finite-state machine.
//
// The main type is Game. Each call (Check, Bet, Call, Fold, Reveal, Showdown)
// is only legal in certain states and moves the machine to the next one:
//
//	AwaitingBet  --Check x2 / Call--> RevealFlop --Reveal--> AwaitingBet
//	AwaitingBet  --Bet-->             AwaitingCall
//	AwaitingCall --Bet-->             AwaitingCall (raise)
//	AwaitingCall --Call-->            RevealFlop | RevealTurn | RevealRiver | Showdown
//	any betting  --Fold-->            next round
//	Showdown     --Showdown-->        next round | Finished
//
// # Basic Usage
//
//	g, err := game.NewGame([2]string{"Alice", "Bob"}, game.WithSeed(42))
//	g.Bet(20)
//	g.Call()
//	g.Reveal() // flop
//
// # Deterministic Testing
//
// WithSeed fixes the shuffle of every round. WithDealer replaces the deck
// entirely so tests can stack the cards, and WithClock accepts a
// quartz mock so event timestamps are predictable.
package game
