package bidding

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"auction-engine/internal/biddingerrors"
	model "auction-engine/internal/models"
	"auction-engine/internal/notify"
	"auction-engine/internal/rating"
	"auction-engine/internal/repository"
	"auction-engine/utils"
)

type recordingNotifier struct {
	mu    sync.Mutex
	notes []notify.Notification
}

func (r *recordingNotifier) Dispatch(_ context.Context, notes []notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, notes...)
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notes)
}

type fixture struct {
	repo     *repository.MemoryRepo
	notifier *recordingNotifier
	service  *BiddingService
}

func newFixture(t *testing.T, at time.Time) fixture {
	t.Helper()
	repo := repository.NewMemoryRepo()
	repo.AddProduct(activeProduct())
	for _, u := range []model.User{
		{UserID: "seller", Name: "sam"},
		{UserID: "alice", Name: "alice"},
		{UserID: "bob", Name: "bob"},
		{UserID: "carol", Name: "carol"},
	} {
		repo.AddUser(u)
	}

	ratings, err := rating.NewCachedService(repo, 16, time.Minute)
	require.NoError(t, err)
	notifier := &recordingNotifier{}
	return fixture{
		repo:     repo,
		notifier: notifier,
		service:  NewBiddingService(repo, ratings, notifier, WithClock(utils.FixedClock{T: at})),
	}
}

func (f fixture) product(t *testing.T) model.Product {
	t.Helper()
	p, err := f.repo.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	return p
}

func TestPlaceBid_AutoExtendInsideWindow(t *testing.T) {
	f := newFixture(t, now)
	p := activeProduct()
	p.EndTime = now.Add(2 * time.Minute)
	p.AutoExtend = true
	p.ExtensionTriggerWindow = 5 * time.Minute
	p.ExtensionDuration = 10 * time.Minute
	f.repo.AddProduct(p)

	_, err := f.service.PlaceBid(context.Background(), "p1", "alice", d(110))
	require.NoError(t, err)

	got := f.product(t)
	require.Equal(t, now.Add(10*time.Minute), got.EndTime)
	require.True(t, got.CurrentPrice.Equal(d(110)))
}

func TestPlaceBid_RaisesPriceAndQueuesEvent(t *testing.T) {
	f := newFixture(t, now)
	ctx := context.Background()

	_, err := f.service.PlaceBid(ctx, "p1", "alice", d(110))
	require.NoError(t, err)
	_, err = f.service.PlaceBid(ctx, "p1", "bob", d(125))
	require.NoError(t, err)

	_, err = f.service.PlaceBid(ctx, "p1", "alice", d(130))
	require.ErrorIs(t, err, biddingerrors.ErrBidTooLow, "minimum is 135")

	require.True(t, f.product(t).CurrentPrice.Equal(d(125)))
	events := f.repo.Events()
	require.Len(t, events, 2)
	for _, ev := range events {
		require.Equal(t, model.EventProductBidChanged, ev.Type)
		require.Equal(t, model.EventPending, ev.Status)
	}
	// 2 notices for the first bid, 3 for the second (outbid included)
	require.Equal(t, 5, f.notifier.count())
}

func TestPlaceBid_ConcurrentBidsAtSameFloor(t *testing.T) {
	f := newFixture(t, now)
	bidders := []string{"alice", "bob", "carol"}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 30; i++ {
		wg.Add(1)
		bidder := bidders[i%len(bidders)]
		go func() {
			defer wg.Done()
			_, err := f.service.PlaceBid(context.Background(), "p1", bidder, d(110))
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			require.True(t, errors.Is(err, biddingerrors.ErrBidTooLow), err.Error())
		}()
	}
	wg.Wait()

	require.Equal(t, 1, successes)
	bids, err := f.repo.ListValidBids(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, bids, 1)
}

func TestRejectBidder_RecomputesPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("next_highest_takes_over", func(t *testing.T) {
		f := newFixture(t, now)
		_, err := f.service.PlaceBid(ctx, "p1", "alice", d(110))
		require.NoError(t, err)
		_, err = f.service.PlaceBid(ctx, "p1", "bob", d(130))
		require.NoError(t, err)

		product, err := f.service.RejectBidder(ctx, "seller", "p1", "bob")
		require.NoError(t, err)
		require.True(t, product.CurrentPrice.Equal(d(110)))
		require.True(t, f.product(t).CurrentPrice.Equal(d(110)))

		winning, err := f.service.GetWinningBid(ctx, "p1")
		require.NoError(t, err)
		require.Equal(t, "a***e", winning.BidderName)

		_, err = f.service.PlaceBid(ctx, "p1", "bob", d(200))
		require.ErrorIs(t, err, biddingerrors.ErrBidderBlocked)

		events := f.repo.Events()
		require.Equal(t, model.EventBidderRejected, events[len(events)-1].Type)
	})

	t.Run("only_bidder_resets_to_start", func(t *testing.T) {
		f := newFixture(t, now)
		_, err := f.service.PlaceBid(ctx, "p1", "alice", d(110))
		require.NoError(t, err)
		_, err = f.service.PlaceBid(ctx, "p1", "alice", d(140))
		require.NoError(t, err)

		product, err := f.service.RejectBidder(ctx, "seller", "p1", "alice")
		require.NoError(t, err)
		require.True(t, product.CurrentPrice.Equal(d(100)))

		_, err = f.service.GetWinningBid(ctx, "p1")
		require.ErrorIs(t, err, biddingerrors.ErrNoBids)
		require.Len(t, f.repo.AllBids("p1"), 2, "rejected bids are kept, only invalidated")
	})

	t.Run("failed_rejection_changes_nothing", func(t *testing.T) {
		f := newFixture(t, now)
		_, err := f.service.PlaceBid(ctx, "p1", "alice", d(110))
		require.NoError(t, err)

		_, err = f.service.RejectBidder(ctx, "bob", "p1", "alice")
		require.ErrorIs(t, err, biddingerrors.ErrForbidden)
		require.True(t, f.product(t).CurrentPrice.Equal(d(110)))
	})
}

func TestRegisterAutoBid(t *testing.T) {
	ctx := context.Background()

	t.Run("minimum_is_start_price_without_bids", func(t *testing.T) {
		f := newFixture(t, now)
		_, err := f.service.RegisterAutoBid(ctx, "alice", "p1", d(90))
		require.ErrorIs(t, err, biddingerrors.ErrMaxAmountTooLow)

		ab, err := f.service.RegisterAutoBid(ctx, "alice", "p1", d(100))
		require.NoError(t, err)
		require.Equal(t, now, ab.CreatedAt)

		events := f.repo.Events()
		require.Len(t, events, 1)
		require.Equal(t, model.EventAutoBidRegistered, events[0].Type)
	})

	t.Run("leader_may_register_at_current_price", func(t *testing.T) {
		f := newFixture(t, now)
		_, err := f.service.PlaceBid(ctx, "p1", "alice", d(110))
		require.NoError(t, err)

		_, err = f.service.RegisterAutoBid(ctx, "alice", "p1", d(110))
		require.NoError(t, err)

		_, err = f.service.RegisterAutoBid(ctx, "bob", "p1", d(115))
		require.ErrorIs(t, err, biddingerrors.ErrMaxAmountTooLow, "challenger needs 120")
		_, err = f.service.RegisterAutoBid(ctx, "bob", "p1", d(120))
		require.NoError(t, err)
	})

	t.Run("update_keeps_registration_time", func(t *testing.T) {
		f := newFixture(t, now)
		_, err := f.service.RegisterAutoBid(ctx, "alice", "p1", d(150))
		require.NoError(t, err)

		ratings, err := rating.NewCachedService(f.repo, 4, time.Minute)
		require.NoError(t, err)
		later := NewBiddingService(f.repo, ratings, f.notifier, WithClock(utils.FixedClock{T: now.Add(time.Minute)}))

		ab, err := later.RegisterAutoBid(ctx, "alice", "p1", d(300))
		require.NoError(t, err)
		require.Equal(t, now, ab.CreatedAt)
		require.Equal(t, now.Add(time.Minute), ab.UpdatedAt)
		require.True(t, ab.MaxAmount.Equal(d(300)))
	})

	t.Run("seller_and_blocked_users_are_refused", func(t *testing.T) {
		f := newFixture(t, now)
		_, err := f.service.RegisterAutoBid(ctx, "seller", "p1", d(500))
		require.ErrorIs(t, err, biddingerrors.ErrSelfBid)

		_, err = f.service.PlaceBid(ctx, "p1", "bob", d(110))
		require.NoError(t, err)
		_, err = f.service.RejectBidder(ctx, "seller", "p1", "bob")
		require.NoError(t, err)
		_, err = f.service.RegisterAutoBid(ctx, "bob", "p1", d(500))
		require.ErrorIs(t, err, biddingerrors.ErrBidderBlocked)
	})
}

func TestGetBidHistory_MasksNames(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, now)

	_, err := f.service.PlaceBid(ctx, "p1", "alice", d(110))
	require.NoError(t, err)
	_, err = f.service.PlaceBid(ctx, "p1", "bob", d(120))
	require.NoError(t, err)

	history, err := f.service.GetBidHistory(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "b*b", history[0].BidderName)
	require.Equal(t, "a***e", history[1].BidderName)

	_, err = f.service.GetBidHistory(ctx, "nope")
	require.ErrorIs(t, err, biddingerrors.ErrProductNotFound)
}
