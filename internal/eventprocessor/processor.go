package eventprocessor

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"auction-engine/internal/biddingerrors"
	"auction-engine/internal/lock"
	"auction-engine/internal/models"
	"auction-engine/internal/notify"
	"auction-engine/internal/proxybid"
	"auction-engine/internal/repository"
	"auction-engine/utils"
)

// LeaseKey names the cross-instance lease the processor holds while ticking
const LeaseKey = "event-processor"

// ErrBusy is returned by Tick while a previous tick is still running
var ErrBusy = errors.New("eventprocessor: tick already in progress")

type Options struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetry   int
	StaleAfter time.Duration // PROCESSING events older than this count as a failed attempt; 0 disables
	LeaseTTL   time.Duration
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = 2 * time.Second
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 50
	}
	if o.MaxRetry < 0 {
		o.MaxRetry = 0
	}
	if o.LeaseTTL <= 0 {
		o.LeaseTTL = 30 * time.Second
	}
	return o
}

// Stats summarises one tick
type Stats struct {
	Fetched   int
	Completed int
	ProxyBids int
	Requeued  int
	Failed    int
	Skipped   int
	Released  int64
}

// Processor drains pending auction events and runs proxy bidding for the
// products they name
type Processor struct {
	repo     repository.AuctionDB
	notifier notify.Notifier
	locker   lock.Locker
	clock    utils.Clock
	opts     Options
	busy     atomic.Bool
}

func New(repo repository.AuctionDB, notifier notify.Notifier, locker lock.Locker, clock utils.Clock, opts Options) *Processor {
	return &Processor{
		repo:     repo,
		notifier: notifier,
		locker:   locker,
		clock:    clock,
		opts:     opts.withDefaults(),
	}
}

// Run ticks every Interval until ctx is cancelled
func (p *Processor) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	utils.Info("event processor started", map[string]any{
		"interval":   p.opts.Interval.String(),
		"batch_size": p.opts.BatchSize,
		"max_retry":  p.opts.MaxRetry,
	})
	for {
		select {
		case <-ctx.Done():
			utils.Info("event processor stopped", nil)
			return nil
		case <-ticker.C:
			stats, err := p.Tick(ctx)
			switch {
			case errors.Is(err, ErrBusy), errors.Is(err, lock.ErrHeld):
				utils.Debug("event processor tick skipped", map[string]any{"reason": err.Error()})
			case err != nil:
				utils.Error("event processor tick failed", map[string]any{"error": err.Error()})
			case stats.Fetched > 0 || stats.Released > 0 || stats.Failed > 0:
				utils.Info("event processor tick", map[string]any{
					"fetched":    stats.Fetched,
					"completed":  stats.Completed,
					"proxy_bids": stats.ProxyBids,
					"requeued":   stats.Requeued,
					"failed":     stats.Failed,
					"skipped":    stats.Skipped,
					"released":   stats.Released,
				})
			}
		}
	}
}

// Tick processes one batch of pending events, oldest first and one at a time.
// A failing event never stops the rest of the batch.
func (p *Processor) Tick(ctx context.Context) (Stats, error) {
	if !p.busy.CompareAndSwap(false, true) {
		return Stats{}, ErrBusy
	}
	defer p.busy.Store(false)

	release, ok, err := p.locker.TryLock(ctx, LeaseKey, p.opts.LeaseTTL)
	if err != nil {
		return Stats{}, err
	}
	if !ok {
		return Stats{}, lock.ErrHeld
	}
	defer release()

	var stats Stats
	now := p.clock.Now()
	if p.opts.StaleAfter > 0 {
		released, failed, err := p.repo.ReleaseStaleEvents(ctx, now.Add(-p.opts.StaleAfter), now, p.opts.MaxRetry)
		if err != nil {
			utils.Warn("failed to release stale events", map[string]any{"error": err.Error()})
		}
		stats.Released = released
		stats.Failed += int(failed)
		if failed > 0 {
			utils.Error("stale events out of retries marked failed", map[string]any{"count": failed})
		}
	}

	events, err := p.repo.ListPendingEvents(ctx, p.opts.BatchSize)
	if err != nil {
		return stats, err
	}
	stats.Fetched = len(events)

	for _, ev := range events {
		if ctx.Err() != nil {
			break
		}
		p.handle(ctx, ev, &stats)
	}
	return stats, nil
}

func (p *Processor) handle(ctx context.Context, ev models.AuctionEvent, stats *Stats) {
	now := p.clock.Now()
	fields := map[string]any{"event_id": ev.EventID, "type": ev.Type, "retry_count": ev.RetryCount}

	claimed, err := p.repo.ClaimEvent(ctx, ev.EventID, now)
	if err != nil {
		fields["error"] = err.Error()
		utils.Warn("failed to claim event", fields)
		stats.Skipped++
		return
	}
	if !claimed {
		stats.Skipped++
		return
	}

	productID, ok := ev.ProductID()
	if !ok {
		if err := p.repo.FailEvent(ctx, ev.EventID, biddingerrors.ErrMissingPayload.Error(), now); err != nil {
			fields["error"] = err.Error()
			utils.Error("failed to mark event failed", fields)
		}
		stats.Failed++
		return
	}
	fields["product_id"] = productID

	notes, acted, err := p.resolve(ctx, ev.EventID, productID, now)
	if err != nil {
		p.retryOrFail(ctx, ev, err, now, stats, fields)
		return
	}

	stats.Completed++
	if acted {
		stats.ProxyBids++
	}
	p.notifier.Dispatch(ctx, notes)
}

// resolve runs proxy bidding for one product and completes the event in the same transaction
func (p *Processor) resolve(ctx context.Context, eventID, productID string, now time.Time) ([]notify.Notification, bool, error) {
	var (
		notes []notify.Notification
		acted bool
	)
	err := p.repo.WithTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		product, err := tx.GetProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}

		// an ended product needs no resolution; completing the event is the whole job.
		// A product past its end time stays open to proxy bids until the scheduler ends it.
		if product.Status == models.ProductActive {
			highest, found, err := tx.GetHighestValidBid(ctx, productID)
			if err != nil {
				return err
			}
			autoBids, err := tx.ListAutoBids(ctx, productID)
			if err != nil {
				return err
			}

			leader := proxybid.LeaderOf(highest, found)
			decision := proxybid.Resolve(proxybid.StateOf(product, leader), autoBids)
			if decision.Act() {
				bid := models.Bid{
					BidID:     utils.GenerateID(),
					ProductID: productID,
					BidderID:  decision.BidderID,
					Amount:    decision.Amount,
					CreatedAt: now,
					IsValid:   true,
					IsAuto:    true,
				}
				if err := tx.InsertBid(ctx, bid); err != nil {
					return err
				}
				if err := tx.UpdateProductBidState(ctx, productID, decision.Amount, proxybid.ApplyAutoExtend(product, now)); err != nil {
					return err
				}
				notes = notify.ForBid(product, bid, proxybid.CompareWinner(leader, decision.BidderID))
				acted = true

				utils.Debug("proxy bid placed", map[string]any{
					"product_id": productID,
					"bidder_id":  decision.BidderID,
					"amount":     decision.Amount.String(),
					"case":       decision.Case.String(),
				})
			}
		}
		return tx.CompleteEvent(ctx, eventID, now)
	})
	if err != nil {
		return nil, false, err
	}
	return notes, acted, nil
}

func (p *Processor) retryOrFail(ctx context.Context, ev models.AuctionEvent, cause error, now time.Time, stats *Stats, fields map[string]any) {
	fields["error"] = cause.Error()

	if ev.RetryCount < p.opts.MaxRetry {
		if err := p.repo.RequeueEvent(ctx, ev.EventID, ev.RetryCount+1, cause.Error(), now); err != nil {
			fields["requeue_error"] = err.Error()
			utils.Error("failed to requeue event", fields)
			return
		}
		stats.Requeued++
		utils.Warn("event processing failed, will retry", fields)
		return
	}

	if err := p.repo.FailEvent(ctx, ev.EventID, cause.Error(), now); err != nil {
		fields["fail_error"] = err.Error()
		utils.Error("failed to mark event failed", fields)
		return
	}
	stats.Failed++
	utils.Error("event processing failed permanently", fields)
}
