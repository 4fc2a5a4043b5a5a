package poker

// HoleCardCategory is a coarse preflop strength label.
type HoleCardCategory string

const (
	CategoryPremium HoleCardCategory = "Premium"
	CategoryStrong  HoleCardCategory = "Strong"
	CategoryMedium  HoleCardCategory = "Medium"
	CategoryWeak    HoleCardCategory = "Weak"
	CategoryTrash   HoleCardCategory = "Trash"
	CategoryUnknown HoleCardCategory = "Unknown"
)

// CategorizeHoleCards labels two hole cards:
//
//	Premium  JJ+, AK
//	Strong   TT, AQ, AJ
//	Medium   77-99, suited cards ten or higher
//	Weak     other pairs, suited cards within two ranks
//	Trash    everything else
func CategorizeHoleCards(card1, card2 Card) HoleCardCategory {
	if !card1.Valid() || !card2.Valid() {
		return CategoryUnknown
	}

	small, big := card1.Rank, card2.Rank
	if small > big {
		small, big = big, small
	}
	suited := card1.Suit == card2.Suit
	pair := small == big

	switch {
	case pair && small >= Jack, small == King && big == Ace:
		return CategoryPremium
	case pair && small == Ten, big == Ace && (small == Queen || small == Jack):
		return CategoryStrong
	case pair && small >= Seven, suited && small >= Ten:
		return CategoryMedium
	case pair, suited && big-small <= 2:
		return CategoryWeak
	}
	return CategoryTrash
}
