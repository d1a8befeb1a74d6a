package notify

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"auction-engine/internal/models"
	"auction-engine/internal/proxybid"
	"auction-engine/utils"
)

//go:generate mockgen -source=notify.go -destination=mock_notify.go -package=notify

// Kind names the outbound message a notification turns into
type Kind string

const (
	KindBidConfirmed  Kind = "BID_CONFIRMED"
	KindOutbid        Kind = "OUTBID"
	KindBidPlaced     Kind = "BID_PLACED"
	KindAuctionWon    Kind = "AUCTION_WON"
	KindAuctionNotWon Kind = "AUCTION_NOT_WON"
)

// Notification is an outbound command built inside a transaction and sent
// only after it commits
type Notification struct {
	Kind         Kind            `json:"kind"`
	RecipientID  string          `json:"recipient_id"`
	ProductID    string          `json:"product_id"`
	ProductTitle string          `json:"product_title"`
	Amount       decimal.Decimal `json:"amount"`
	// WinnerName is masked; set on auction-end notices only
	WinnerName string `json:"winner_name,omitempty"`
}

// ForBid returns the notices a newly winning bid produces: confirmation to the
// bidder, an outbid notice to the displaced winner, and a new-bid notice to the seller.
func ForBid(product models.Product, bid models.Bid, change proxybid.WinnerChange) []Notification {
	base := Notification{ProductID: product.ProductID, ProductTitle: product.Title, Amount: bid.Amount}

	out := make([]Notification, 0, 3)
	confirmed := base
	confirmed.Kind = KindBidConfirmed
	confirmed.RecipientID = bid.BidderID
	out = append(out, confirmed)

	if change.Kind == proxybid.NewWinner {
		outbid := base
		outbid.Kind = KindOutbid
		outbid.RecipientID = change.PreviousBidderID
		out = append(out, outbid)
	}

	placed := base
	placed.Kind = KindBidPlaced
	placed.RecipientID = product.SellerID
	out = append(out, placed)
	return out
}

// ForAuctionEnd returns the winner notice plus one notice per distinct losing bidder.
// bids must be the product's valid bids, winner first.
func ForAuctionEnd(product models.Product, bids []models.Bid, winnerName string) []Notification {
	if len(bids) == 0 {
		return nil
	}
	winner := bids[0]
	base := Notification{
		ProductID:    product.ProductID,
		ProductTitle: product.Title,
		Amount:       winner.Amount,
		WinnerName:   utils.MaskName(winnerName),
	}

	won := base
	won.Kind = KindAuctionWon
	won.RecipientID = winner.BidderID
	out := []Notification{won}

	seen := map[string]bool{winner.BidderID: true}
	for _, b := range bids[1:] {
		if seen[b.BidderID] {
			continue
		}
		seen[b.BidderID] = true
		lost := base
		lost.Kind = KindAuctionNotWon
		lost.RecipientID = b.BidderID
		out = append(out, lost)
	}
	return out
}

// Notifier sends notifications. Failures are reported in logs only.
type Notifier interface {
	Dispatch(ctx context.Context, notes []Notification)
}

// EmailService is the delivery collaborator. Templating and transport retries live behind it.
type EmailService interface {
	SendBidderBidConfirmedEmail(ctx context.Context, n Notification) error
	SendBidderOutbidEmail(ctx context.Context, n Notification) error
	SendBidPlacedEmail(ctx context.Context, n Notification) error
	SendAuctionEndedWinnerEmail(ctx context.Context, n Notification) error
	SendAuctionEndedNonWinnerEmail(ctx context.Context, n Notification) error
}

// Dispatcher routes notifications to the matching EmailService call
type Dispatcher struct {
	email EmailService
}

func NewDispatcher(email EmailService) *Dispatcher {
	return &Dispatcher{email: email}
}

func (d *Dispatcher) Dispatch(ctx context.Context, notes []Notification) {
	for _, n := range notes {
		if err := d.send(ctx, n); err != nil {
			utils.Error("failed to send notification", map[string]any{
				"kind":         n.Kind,
				"recipient_id": n.RecipientID,
				"product_id":   n.ProductID,
				"error":        err.Error(),
			})
		}
	}
}

func (d *Dispatcher) send(ctx context.Context, n Notification) error {
	switch n.Kind {
	case KindBidConfirmed:
		return d.email.SendBidderBidConfirmedEmail(ctx, n)
	case KindOutbid:
		return d.email.SendBidderOutbidEmail(ctx, n)
	case KindBidPlaced:
		return d.email.SendBidPlacedEmail(ctx, n)
	case KindAuctionWon:
		return d.email.SendAuctionEndedWinnerEmail(ctx, n)
	case KindAuctionNotWon:
		return d.email.SendAuctionEndedNonWinnerEmail(ctx, n)
	default:
		return fmt.Errorf("notify: unknown kind %q", n.Kind)
	}
}
