package proxybid

import (
	"github.com/shopspring/decimal"

	"auction-engine/internal/models"
)

// Leader is the bidder currently holding the highest valid bid, if any.
type Leader struct {
	BidderID string
	Present  bool
}

// NoLeader is the state of a product nobody has validly bid on.
var NoLeader = Leader{}

// LeaderOf returns the leader implied by the highest valid bid lookup.
func LeaderOf(highest models.Bid, found bool) Leader {
	if !found {
		return NoLeader
	}
	return Leader{BidderID: highest.BidderID, Present: true}
}

// State is the product state the resolver decides on.
type State struct {
	StartPrice   decimal.Decimal
	CurrentPrice decimal.Decimal
	BidStep      decimal.Decimal
	Leader       Leader
}

// StateOf builds resolver input from a product and its leader.
func StateOf(p models.Product, leader Leader) State {
	return State{
		StartPrice:   p.StartPrice,
		CurrentPrice: p.CurrentPrice,
		BidStep:      p.BidStep,
		Leader:       leader,
	}
}

// Case identifies which resolution rule produced a decision.
type Case int

const (
	NoAction Case = iota
	// OpeningBid: nobody leads, the strongest ceiling opens at the start price.
	OpeningBid
	// DefendLead: the strongest ceiling already leads and is pushed up to the runner-up's ceiling.
	DefendLead
	// TakeLead: the strongest ceiling overtakes the current leader.
	TakeLead
)

func (c Case) String() string {
	switch c {
	case OpeningBid:
		return "opening_bid"
	case DefendLead:
		return "defend_lead"
	case TakeLead:
		return "take_lead"
	default:
		return "no_action"
	}
}

// Decision is the resolver output: either no action or one bid to place.
type Decision struct {
	Case     Case
	BidderID string
	Amount   decimal.Decimal
}

// Act reports whether the decision places a bid.
func (d Decision) Act() bool {
	return d.Case != NoAction
}

// ChangeKind describes how a newly placed bid relates to the previous leader.
type ChangeKind int

const (
	NoPreviousWinner ChangeKind = iota
	SameWinner
	NewWinner
)

// WinnerChange pairs the change kind with the displaced bidder, set only for NewWinner.
type WinnerChange struct {
	Kind             ChangeKind
	PreviousBidderID string
}

// CompareWinner classifies a new leading bid by bidderID against the previous leader.
func CompareWinner(previous Leader, bidderID string) WinnerChange {
	switch {
	case !previous.Present:
		return WinnerChange{Kind: NoPreviousWinner}
	case previous.BidderID == bidderID:
		return WinnerChange{Kind: SameWinner}
	default:
		return WinnerChange{Kind: NewWinner, PreviousBidderID: previous.BidderID}
	}
}
