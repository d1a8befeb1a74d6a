package biddingerrors

import (
	"errors"
	"fmt"
)

// Categories. Every error below wraps exactly one of them, so callers can
// branch with errors.Is on the category alone.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("invalid state")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Repository-level errors
var (
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrEventNotFound   = fmt.Errorf("auction event %w", ErrNotFound)
	ErrNoBids          = fmt.Errorf("no bids found for product: %w", ErrNotFound)
	ErrOrderExists     = fmt.Errorf("order already exists for product: %w", ErrInvalidState)
	ErrEventNotClaimed = fmt.Errorf("auction event is not processing: %w", ErrInvalidState)
)

// business logic errors
var (
	ErrAuctionNotActive = fmt.Errorf("auction is not active: %w", ErrInvalidState)
	ErrAuctionEnded     = fmt.Errorf("auction has ended: %w", ErrInvalidState)
	ErrMissingPayload   = fmt.Errorf("event payload has no productId: %w", ErrInvalidState)

	ErrSelfBid       = fmt.Errorf("seller cannot bid on own product: %w", ErrForbidden)
	ErrBidderBlocked = fmt.Errorf("bidder is blocked on this product: %w", ErrForbidden)
	ErrRatingTooLow  = fmt.Errorf("bidder rating too low: %w", ErrForbidden)
	ErrNotSeller     = fmt.Errorf("only the seller may do this: %w", ErrForbidden)

	ErrInvalidBid       = fmt.Errorf("invalid bid: %w", ErrInvalidArgument)
	ErrBidTooLow        = fmt.Errorf("bid amount too low: %w", ErrInvalidArgument)
	ErrMaxAmountTooLow  = fmt.Errorf("auto-bid ceiling too low: %w", ErrInvalidArgument)
	ErrCannotRejectSelf = fmt.Errorf("seller cannot reject themselves: %w", ErrInvalidArgument)
)
