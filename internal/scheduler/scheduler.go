package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"auction-engine/internal/lock"
	"auction-engine/internal/models"
	"auction-engine/internal/notify"
	"auction-engine/internal/repository"
	"auction-engine/utils"
)

// LeaseKey names the cross-instance lease held while a tick finalises auctions
const LeaseKey = "lifecycle-scheduler"

var ErrBusy = errors.New("scheduler: tick already in progress")

const itemTimeout = 30 * time.Second

type Options struct {
	Interval time.Duration
	LeaseTTL time.Duration
}

// Stats summarises one tick
type Stats struct {
	Expired int
	Ended   int
	Orders  int
	Skipped int
	Failed  int
}

// Scheduler ends auctions whose time is up and opens their orders
type Scheduler struct {
	repo     repository.AuctionDB
	notifier notify.Notifier
	locker   lock.Locker
	clock    utils.Clock
	opts     Options
	busy     atomic.Bool
}

func New(repo repository.AuctionDB, notifier notify.Notifier, locker lock.Locker, clock utils.Clock, opts Options) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = time.Minute
	}
	if opts.LeaseTTL <= 0 {
		opts.LeaseTTL = 30 * time.Second
	}
	return &Scheduler{repo: repo, notifier: notifier, locker: locker, clock: clock, opts: opts}
}

// Run ticks every Interval until ctx is cancelled
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	utils.Info("lifecycle scheduler started", map[string]any{"interval": s.opts.Interval.String()})
	for {
		select {
		case <-ctx.Done():
			utils.Info("lifecycle scheduler stopped", nil)
			return nil
		case <-ticker.C:
			stats, err := s.Tick(ctx)
			switch {
			case errors.Is(err, ErrBusy), errors.Is(err, lock.ErrHeld):
				utils.Debug("lifecycle tick skipped", map[string]any{"reason": err.Error()})
			case err != nil:
				utils.Error("lifecycle tick failed", map[string]any{"error": err.Error()})
			case stats.Expired > 0:
				utils.Info("lifecycle tick", map[string]any{
					"expired": stats.Expired,
					"ended":   stats.Ended,
					"orders":  stats.Orders,
					"skipped": stats.Skipped,
					"failed":  stats.Failed,
				})
			}
		}
	}
}

// Tick finalises every auction that has run past its end time. Each product is
// handled in its own transaction; one failure does not stop the others.
func (s *Scheduler) Tick(ctx context.Context) (Stats, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return Stats{}, ErrBusy
	}
	defer s.busy.Store(false)

	release, ok, err := s.locker.TryLock(ctx, LeaseKey, s.opts.LeaseTTL)
	if err != nil {
		return Stats{}, err
	}
	if !ok {
		return Stats{}, lock.ErrHeld
	}
	defer release()

	expired, err := s.repo.ListExpiredProducts(ctx, s.clock.Now())
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Expired: len(expired)}
	for _, productID := range expired {
		if ctx.Err() != nil {
			break
		}
		s.finalizeOne(ctx, productID, &stats)
	}
	return stats, nil
}

func (s *Scheduler) finalizeOne(ctx context.Context, productID string, stats *Stats) {
	itemCtx, cancel := context.WithTimeout(ctx, itemTimeout)
	defer cancel()

	result, err := s.finalize(itemCtx, productID, s.clock.Now())
	if err != nil {
		stats.Failed++
		utils.Error("failed to finalize auction", map[string]any{"product_id": productID, "error": err.Error()})
		return
	}
	if !result.ended {
		stats.Skipped++
		return
	}
	stats.Ended++
	if result.order == nil {
		utils.Info("auction ended without bids", map[string]any{"product_id": productID})
		return
	}
	stats.Orders++
	utils.Info("auction ended", map[string]any{
		"product_id":  productID,
		"order_id":    result.order.OrderID,
		"buyer_id":    result.order.BuyerID,
		"final_price": result.order.FinalPrice.String(),
	})

	winnerName := result.order.BuyerID
	if winner, err := s.repo.GetUser(itemCtx, result.order.BuyerID); err == nil {
		winnerName = winner.Name
	}
	s.notifier.Dispatch(itemCtx, notify.ForAuctionEnd(result.product, result.bids, winnerName))
}

type finalized struct {
	ended   bool
	product models.Product
	bids    []models.Bid
	order   *models.Order
}

// finalize flips the product to ENDED and, when it has a winning bid, opens
// the order. Losing the conditional flip means another worker got there first.
func (s *Scheduler) finalize(ctx context.Context, productID string, now time.Time) (finalized, error) {
	var out finalized
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		out = finalized{}

		ended, err := tx.EndProduct(ctx, productID, now)
		if err != nil || !ended {
			return err
		}
		product, err := tx.GetProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		bids, err := tx.ListValidBids(ctx, productID)
		if err != nil {
			return err
		}
		out = finalized{ended: true, product: product, bids: bids}
		if len(bids) == 0 {
			return nil
		}

		winner := bids[0]
		order := models.Order{
			OrderID:    utils.GenerateID(),
			ProductID:  productID,
			BuyerID:    winner.BidderID,
			SellerID:   product.SellerID,
			FinalPrice: winner.Amount,
			Status:     models.OrderPendingPayment,
			CreatedAt:  now,
		}
		if err := tx.InsertOrder(ctx, order); err != nil {
			return err
		}
		out.order = &order
		return nil
	})
	if err != nil {
		return finalized{}, err
	}
	return out, nil
}
