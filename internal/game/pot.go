package game

// splitPot divides amount between the winning seats. Seats are ordered
// starting with first, so any odd chips go to the earliest winner in that
// order.
func splitPot(amount int, winners []int, first int) map[int]int {
	shares := make(map[int]int, len(winners))
	if len(winners) == 0 {
		return shares
	}

	ordered := make([]int, 0, len(winners))
	for i := range seats {
		seat := (first + i) % seats
		for _, w := range winners {
			if w == seat {
				ordered = append(ordered, seat)
			}
		}
	}

	share := amount / len(ordered)
	remainder := amount % len(ordered)
	for i, seat := range ordered {
		shares[seat] = share
		if i < remainder {
			shares[seat]++
		}
	}
	return shares
}
