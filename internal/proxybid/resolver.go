package proxybid

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"auction-engine/internal/models"
)

// SortAutoBids returns a copy of autoBids ordered by ceiling descending, then
// registration time ascending. User ID breaks exact ties so the order is total.
func SortAutoBids(autoBids []models.AutoBid) []models.AutoBid {
	sorted := append([]models.AutoBid(nil), autoBids...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if c := a.MaxAmount.Cmp(b.MaxAmount); c != 0 {
			return c > 0
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.UserID < b.UserID
	})
	return sorted
}

// Resolve computes the next market-clearing proxy bid for a product.
//
// The result depends only on its arguments. A proxy bid never exceeds the
// placer's ceiling. When the strongest ceiling already leads, the price rises
// exactly to the runner-up's ceiling, not one step above it.
func Resolve(state State, autoBids []models.AutoBid) Decision {
	if len(autoBids) == 0 {
		return Decision{}
	}

	sorted := SortAutoBids(autoBids)
	strongest := sorted[0]
	var second *models.AutoBid
	if len(sorted) > 1 {
		second = &sorted[1]
	}

	if !state.Leader.Present {
		if strongest.MaxAmount.LessThan(state.StartPrice) {
			return Decision{}
		}
		return Decision{Case: OpeningBid, BidderID: strongest.UserID, Amount: state.StartPrice}
	}

	if strongest.UserID == state.Leader.BidderID {
		if second == nil || !second.MaxAmount.GreaterThan(state.CurrentPrice) {
			return Decision{}
		}
		price := decimal.Min(second.MaxAmount, strongest.MaxAmount)
		if !price.GreaterThan(state.CurrentPrice) {
			return Decision{}
		}
		return Decision{Case: DefendLead, BidderID: strongest.UserID, Amount: price}
	}

	minToWin := state.CurrentPrice.Add(state.BidStep)
	if strongest.MaxAmount.LessThan(minToWin) {
		return Decision{}
	}
	barrier := state.CurrentPrice
	if second != nil && second.MaxAmount.GreaterThan(barrier) {
		barrier = second.MaxAmount
	}
	price := decimal.Min(barrier.Add(state.BidStep), strongest.MaxAmount)
	return Decision{Case: TakeLead, BidderID: strongest.UserID, Amount: price}
}

// ApplyAutoExtend returns the product's end time after a bid lands at now.
// Inside the trigger window the auction is pushed to now+ExtensionDuration;
// the end time never moves earlier.
func ApplyAutoExtend(p models.Product, now time.Time) time.Time {
	if !p.AutoExtend || p.ExtensionDuration <= 0 {
		return p.EndTime
	}
	if p.EndTime.Sub(now) >= p.ExtensionTriggerWindow {
		return p.EndTime
	}
	if extended := now.Add(p.ExtensionDuration); extended.After(p.EndTime) {
		return extended
	}
	return p.EndTime
}
