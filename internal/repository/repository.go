package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	model "auction-engine/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// StaleEventError is recorded on events whose processing run was abandoned
const StaleEventError = "processing lease expired"

// Tx is the transactional view of the auction ledger handed to WithTx
// callbacks. Reads that a later write depends on must go through it.
type Tx interface {
	// GetProductForUpdate loads a product and holds its row lock until the transaction ends
	GetProductForUpdate(ctx context.Context, productID string) (model.Product, error)
	UpdateProductBidState(ctx context.Context, productID string, currentPrice decimal.Decimal, endTime time.Time) error
	// EndProduct flips ACTIVE to ENDED only if the product is still active and
	// its end time has passed. It reports whether this call did the flip.
	EndProduct(ctx context.Context, productID string, now time.Time) (bool, error)

	InsertBid(ctx context.Context, bid model.Bid) error
	GetHighestValidBid(ctx context.Context, productID string) (model.Bid, bool, error)
	// ListValidBids returns valid bids ordered by amount desc, created_at asc
	ListValidBids(ctx context.Context, productID string) ([]model.Bid, error)
	InvalidateBidderBids(ctx context.Context, productID, bidderID string) (int64, error)

	// ListAutoBids returns the product's auto-bids ordered by max_amount desc,
	// created_at asc, skipping bidders blocked on the product
	ListAutoBids(ctx context.Context, productID string) ([]model.AutoBid, error)
	UpsertAutoBid(ctx context.Context, autoBid model.AutoBid) (model.AutoBid, error)

	IsBidderBlocked(ctx context.Context, productID, bidderID string) (bool, error)
	InsertBidderBlock(ctx context.Context, block model.BidderBlock) error

	InsertEvent(ctx context.Context, event model.AuctionEvent) error
	CompleteEvent(ctx context.Context, eventID string, now time.Time) error

	InsertOrder(ctx context.Context, order model.Order) error
}

// AuctionDB defines the ledger storage interface for the auction engine
type AuctionDB interface {
	// WithTx runs fn in one transaction, committing when fn returns nil
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	GetProduct(ctx context.Context, productID string) (model.Product, error)
	GetUser(ctx context.Context, userID string) (model.User, error)
	GetRatingSummary(ctx context.Context, userID string) (model.RatingSummary, error)
	ListValidBids(ctx context.Context, productID string) ([]model.Bid, error)
	GetHighestValidBid(ctx context.Context, productID string) (model.Bid, bool, error)

	// ListPendingEvents returns up to limit PENDING events, oldest first
	ListPendingEvents(ctx context.Context, limit int) ([]model.AuctionEvent, error)
	// ClaimEvent moves an event from PENDING to PROCESSING and reports whether this caller won it
	ClaimEvent(ctx context.Context, eventID string, now time.Time) (bool, error)
	RequeueEvent(ctx context.Context, eventID string, retryCount int, lastError string, now time.Time) error
	FailEvent(ctx context.Context, eventID string, lastError string, now time.Time) error
	// ReleaseStaleEvents treats PROCESSING events untouched since before as a
	// failed attempt: with retries left they return to PENDING with retry_count+1,
	// otherwise they become FAILED
	ReleaseStaleEvents(ctx context.Context, before, now time.Time, maxRetry int) (released, failed int64, err error)

	// ListExpiredProducts returns ids of ACTIVE products whose end time is at or before now
	ListExpiredProducts(ctx context.Context, now time.Time) ([]string, error)
}
