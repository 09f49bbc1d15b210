package calculator

import "math"

// ScaleForHousehold scales a single-person amount to a household using the
// OECD-modified equivalence scale: 1 for the first adult, 0.5 for each
// additional adult and 0.3 for each child.
func ScaleForHousehold(amount float64, adults, children int) float64 {
	if adults < 1 {
		adults = 1
	}
	if children < 0 {
		children = 0
	}
	factor := 1 + 0.5*float64(adults-1) + 0.3*float64(children)
	return roundMoney(amount * factor)
}

// RedistributeLeftover spreads leftover money over open gaps in proportion to
// their size. No share exceeds its gap; whatever cannot be placed is returned
// as unused. Σ shares + unused == leftover (to the cent).
func RedistributeLeftover(gaps []float64, leftover float64) (shares []float64, unused float64) {
	shares = make([]float64, len(gaps))
	remaining := roundMoney(math.Max(leftover, 0))

	for remaining >= cent {
		open := 0.0
		for i, g := range gaps {
			if room := roundMoney(g - shares[i]); room >= cent {
				open += room
			}
		}
		if open < cent {
			break
		}

		available := remaining
		moved := 0.0
		for i, g := range gaps {
			room := roundMoney(g - shares[i])
			if room < cent {
				continue
			}
			amt := roundMoney(math.Min(available*room/open, room))
			amt = math.Min(amt, remaining)
			shares[i] = roundMoney(shares[i] + amt)
			remaining = roundMoney(remaining - amt)
			moved += amt
		}

		if moved < cent {
			// Proportional shares rounded to zero; hand out the last cents in order.
			for i, g := range gaps {
				if remaining < cent {
					break
				}
				if roundMoney(g-shares[i]) >= cent {
					shares[i] = roundMoney(shares[i] + cent)
					remaining = roundMoney(remaining - cent)
				}
			}
		}
	}

	return shares, remaining
}
