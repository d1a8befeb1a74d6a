package bidding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"auction-engine/internal/biddingerrors"
	"auction-engine/internal/models"
	"auction-engine/internal/notify"
	"auction-engine/internal/proxybid"
	"auction-engine/internal/rating"
	"auction-engine/internal/repository"
	"auction-engine/utils"
)

// DefaultMinRatingPercent is the positive-rating share a bidder with history needs
const DefaultMinRatingPercent = 80

// BiddingService defines the business logic for auction bidding
type BiddingService struct {
	repo      repository.AuctionDB
	ratings   rating.Service
	notifier  notify.Notifier
	clock     utils.Clock
	minRating float64
}

type Option func(*BiddingService)

// WithClock overrides the wall clock
func WithClock(c utils.Clock) Option {
	return func(s *BiddingService) { s.clock = c }
}

// WithMinRating overrides the rating threshold, in percent
func WithMinRating(percent float64) Option {
	return func(s *BiddingService) { s.minRating = percent }
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB, ratings rating.Service, notifier notify.Notifier, opts ...Option) *BiddingService {
	s := &BiddingService{
		repo:      repo,
		ratings:   ratings,
		notifier:  notifier,
		clock:     utils.SystemClock{},
		minRating: DefaultMinRatingPercent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceBid validates and records a manual bid. The bid, the new price, any
// auto-extension and the re-evaluation event commit together; notifications
// go out only after the commit.
func (s *BiddingService) PlaceBid(ctx context.Context, productID, bidderID string, amount decimal.Decimal) (models.Bid, error) {
	if productID == "" || bidderID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - missing productID or bidderID", biddingerrors.ErrInvalidBid)
	}
	if !amount.IsPositive() {
		return models.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", biddingerrors.ErrInvalidBid)
	}

	summary, err := s.bidderRating(ctx, bidderID)
	if err != nil {
		return models.Bid{}, err
	}

	now := s.clock.Now()
	var (
		bid   models.Bid
		notes []notify.Notification
	)
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		product, err := tx.GetProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if err := s.checkEligibility(ctx, tx, product, bidderID, summary, now); err != nil {
			return err
		}
		if minimum := product.MinimumNextBid(); amount.LessThan(minimum) {
			return fmt.Errorf("%w - minimum is %s", biddingerrors.ErrBidTooLow, minimum.StringFixed(2))
		}

		highest, found, err := tx.GetHighestValidBid(ctx, productID)
		if err != nil {
			return err
		}
		previous := proxybid.LeaderOf(highest, found)

		bid = models.Bid{
			BidID:     utils.GenerateID(),
			ProductID: productID,
			BidderID:  bidderID,
			Amount:    amount,
			CreatedAt: now,
			IsValid:   true,
		}
		if err := tx.InsertBid(ctx, bid); err != nil {
			return err
		}
		if err := tx.UpdateProductBidState(ctx, productID, amount, proxybid.ApplyAutoExtend(product, now)); err != nil {
			return err
		}
		event := models.NewAuctionEvent(utils.GenerateID(), models.EventProductBidChanged, productID, now)
		if err := tx.InsertEvent(ctx, event); err != nil {
			return err
		}

		notes = notify.ForBid(product, bid, proxybid.CompareWinner(previous, bidderID))
		return nil
	})
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to place bid on product %s by user %s: %w", productID, bidderID, err)
	}

	utils.Info("bid placed", map[string]any{
		"product_id": productID,
		"bidder_id":  bidderID,
		"amount":     amount.String(),
	})
	s.notifier.Dispatch(ctx, notes)
	return bid, nil
}

// RegisterAutoBid creates or replaces the caller's standing ceiling on a
// product and queues a re-evaluation. The first registration time is kept so
// equal ceilings stay first-come.
func (s *BiddingService) RegisterAutoBid(ctx context.Context, userID, productID string, maxAmount decimal.Decimal) (models.AutoBid, error) {
	if productID == "" || userID == "" {
		return models.AutoBid{}, fmt.Errorf("service: %w - missing productID or userID", biddingerrors.ErrInvalidBid)
	}
	if !maxAmount.IsPositive() {
		return models.AutoBid{}, fmt.Errorf("service: %w - non-positive max amount", biddingerrors.ErrInvalidBid)
	}

	summary, err := s.bidderRating(ctx, userID)
	if err != nil {
		return models.AutoBid{}, err
	}

	now := s.clock.Now()
	var saved models.AutoBid
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		product, err := tx.GetProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if err := s.checkEligibility(ctx, tx, product, userID, summary, now); err != nil {
			return err
		}

		highest, found, err := tx.GetHighestValidBid(ctx, productID)
		if err != nil {
			return err
		}
		if minimum := minimumCeiling(product, proxybid.LeaderOf(highest, found), userID); maxAmount.LessThan(minimum) {
			return fmt.Errorf("%w - minimum is %s", biddingerrors.ErrMaxAmountTooLow, minimum.StringFixed(2))
		}

		saved, err = tx.UpsertAutoBid(ctx, models.AutoBid{
			UserID:    userID,
			ProductID: productID,
			MaxAmount: maxAmount,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}
		return tx.InsertEvent(ctx, models.NewAuctionEvent(utils.GenerateID(), models.EventAutoBidRegistered, productID, now))
	})
	if err != nil {
		return models.AutoBid{}, fmt.Errorf("service: failed to register auto-bid on product %s by user %s: %w", productID, userID, err)
	}

	utils.Info("auto-bid registered", map[string]any{"product_id": productID, "user_id": userID})
	return saved, nil
}

// RejectBidder blocks a bidder from one of the seller's products, voids their
// bids and rolls the price back to the best remaining bid.
func (s *BiddingService) RejectBidder(ctx context.Context, sellerID, productID, bidderID string) (models.Product, error) {
	if sellerID == "" || productID == "" || bidderID == "" {
		return models.Product{}, fmt.Errorf("service: %w - missing sellerID, productID or bidderID", biddingerrors.ErrInvalidBid)
	}

	now := s.clock.Now()
	var (
		updated     models.Product
		invalidated int64
	)
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		product, err := tx.GetProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product.SellerID != sellerID {
			return biddingerrors.ErrNotSeller
		}
		if bidderID == product.SellerID {
			return biddingerrors.ErrCannotRejectSelf
		}
		if product.Status != models.ProductActive {
			return biddingerrors.ErrAuctionNotActive
		}

		if err := tx.InsertBidderBlock(ctx, models.BidderBlock{
			SellerID:  sellerID,
			BidderID:  bidderID,
			ProductID: productID,
			CreatedAt: now,
		}); err != nil {
			return err
		}
		if invalidated, err = tx.InvalidateBidderBids(ctx, productID, bidderID); err != nil {
			return err
		}

		highest, found, err := tx.GetHighestValidBid(ctx, productID)
		if err != nil {
			return err
		}
		price := product.StartPrice
		if found {
			price = highest.Amount
		}
		if err := tx.UpdateProductBidState(ctx, productID, price, product.EndTime); err != nil {
			return err
		}
		if err := tx.InsertEvent(ctx, models.NewAuctionEvent(utils.GenerateID(), models.EventBidderRejected, productID, now)); err != nil {
			return err
		}

		updated = product
		updated.CurrentPrice = price
		return nil
	})
	if err != nil {
		return models.Product{}, fmt.Errorf("service: failed to reject bidder %s on product %s: %w", bidderID, productID, err)
	}

	utils.Info("bidder rejected", map[string]any{
		"product_id":    productID,
		"bidder_id":     bidderID,
		"invalidated":   invalidated,
		"current_price": updated.CurrentPrice.String(),
	})
	return updated, nil
}

// GetBidHistory returns the valid bids on a product, winner first, with bidder names masked
func (s *BiddingService) GetBidHistory(ctx context.Context, productID string) ([]models.BidView, error) {
	if productID == "" {
		return nil, fmt.Errorf("service: %w - empty product ID", biddingerrors.ErrInvalidBid)
	}
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return nil, fmt.Errorf("service: failed to get bids for product %s: %w", productID, err)
	}

	bids, err := s.repo.ListValidBids(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for product %s: %w", productID, err)
	}

	names := make(map[string]string)
	views := make([]models.BidView, 0, len(bids))
	for _, b := range bids {
		name, ok := names[b.BidderID]
		if !ok {
			name = s.maskedName(ctx, b.BidderID)
			names[b.BidderID] = name
		}
		views = append(views, models.BidView{
			BidID:      b.BidID,
			BidderName: name,
			Amount:     b.Amount,
			IsAuto:     b.IsAuto,
			CreatedAt:  b.CreatedAt,
		})
	}
	return views, nil
}

// GetWinningBid returns the highest valid bid for a product
func (s *BiddingService) GetWinningBid(ctx context.Context, productID string) (models.BidView, error) {
	if productID == "" {
		return models.BidView{}, fmt.Errorf("service: %w - empty product ID", biddingerrors.ErrInvalidBid)
	}
	if _, err := s.repo.GetProduct(ctx, productID); err != nil {
		return models.BidView{}, fmt.Errorf("service: failed to get winning bid for product %s: %w", productID, err)
	}

	winning, found, err := s.repo.GetHighestValidBid(ctx, productID)
	if err != nil {
		return models.BidView{}, fmt.Errorf("service: failed to get winning bid for product %s: %w", productID, err)
	}
	if !found {
		return models.BidView{}, fmt.Errorf("service: failed to get winning bid for product %s: %w", productID, biddingerrors.ErrNoBids)
	}

	return models.BidView{
		BidID:      winning.BidID,
		BidderName: s.maskedName(ctx, winning.BidderID),
		Amount:     winning.Amount,
		IsAuto:     winning.IsAuto,
		CreatedAt:  winning.CreatedAt,
	}, nil
}

// bidderRating checks the bidder exists and reads their rating outside the transaction
func (s *BiddingService) bidderRating(ctx context.Context, bidderID string) (models.RatingSummary, error) {
	if _, err := s.repo.GetUser(ctx, bidderID); err != nil {
		return models.RatingSummary{}, fmt.Errorf("service: failed to load bidder %s: %w", bidderID, err)
	}
	summary, err := s.ratings.Summary(ctx, bidderID)
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("service: failed to load rating for %s: %w", bidderID, err)
	}
	return summary, nil
}

// checkEligibility holds the rules shared by manual bids and auto-bid registration
func (s *BiddingService) checkEligibility(ctx context.Context, tx repository.Tx, product models.Product, bidderID string, summary models.RatingSummary, now time.Time) error {
	if product.Status != models.ProductActive {
		return biddingerrors.ErrAuctionNotActive
	}
	if !product.AcceptsBidsAt(now) {
		return biddingerrors.ErrAuctionEnded
	}
	if bidderID == product.SellerID {
		return biddingerrors.ErrSelfBid
	}
	blocked, err := tx.IsBidderBlocked(ctx, product.ProductID, bidderID)
	if err != nil {
		return err
	}
	if blocked {
		return biddingerrors.ErrBidderBlocked
	}
	if !rating.Eligible(summary, product.AllowNewBidders, s.minRating) {
		return fmt.Errorf("%w - %.1f%% positive", biddingerrors.ErrRatingTooLow, summary.Percentage())
	}
	return nil
}

func (s *BiddingService) maskedName(ctx context.Context, userID string) string {
	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, biddingerrors.ErrNotFound) {
			utils.Warn("failed to load bidder name", map[string]any{"user_id": userID, "error": err.Error()})
		}
		return utils.MaskName(userID)
	}
	return utils.MaskName(u.Name)
}

// minimumCeiling is the lowest auto-bid ceiling that can ever produce a bid:
// the start price on an unbid product, the current price for the current
// leader, otherwise one step above the current price.
func minimumCeiling(product models.Product, leader proxybid.Leader, userID string) decimal.Decimal {
	switch {
	case !leader.Present:
		return product.StartPrice
	case leader.BidderID == userID:
		return product.CurrentPrice
	default:
		return product.MinimumNextBid()
	}
}
