package perftests

import (
	"context"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"auction-engine/internal/eventprocessor"
	"auction-engine/internal/lock"
	model "auction-engine/internal/models"
	"auction-engine/internal/proxybid"
	"auction-engine/internal/repository"
	"auction-engine/utils"
)

// Benchmark 1: PlaceBid - Isolated Products (Low Contention - Micro Benchmark)
func Benchmark_PlaceBid_Isolated(b *testing.B) {
	_, svc := setupRepo(b, b.N, b.N)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		amount := decimal.NewFromInt(int64(101 + rand.Intn(100)))
		if _, err := svc.PlaceBid(ctx, productID(i), userID(i), amount); err != nil {
			b.Fatalf("failed to place bid: %v", err)
		}
	}
}

// Benchmark 2: PlaceBid - Shared Product (High Contention - Concurrency Benchmark)

func Benchmark_PlaceBid_ConcurrentSharedProduct(b *testing.B) {
	const numUsers = 1000
	_, svc := setupRepo(b, 1, numUsers)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 100

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			nextBid := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
			_, _ = svc.PlaceBid(ctx, productID(0), userID(rnd.Intn(numUsers)), decimal.NewFromInt(nextBid))
		}
	})
}

// Benchmark 3: GetWinningBid - Single - Threaded (Low Contention)
func Benchmark_GetWinningBid_SingleThreaded(b *testing.B) {
	_, svc := setupRepo(b, b.N, 10)
	ctx := context.Background()

	for i := 0; i < b.N; i++ {
		for j := 0; j < 10; j++ {
			_, _ = svc.PlaceBid(ctx, productID(i), userID(j), decimal.NewFromInt(int64(110+j*10)))
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := svc.GetWinningBid(ctx, productID(i)); err != nil {
			b.Fatalf("failed to get winning bid: %v", err)
		}
	}
}

// Benchmark 4: GetWinningBid - Concurrent (High Contention)
func Benchmark_GetWinningBid_ConcurrentSharedProduct(b *testing.B) {
	_, svc := setupRepo(b, 1, 100)
	ctx := context.Background()

	for j := 0; j < 100; j++ {
		_, _ = svc.PlaceBid(ctx, productID(0), userID(j), decimal.NewFromInt(int64(101+j)))
	}

	b.ReportAllocs()
	b.ResetTimer()

	var counter int64

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := svc.GetWinningBid(ctx, productID(0)); err != nil {
				b.Errorf("failed to get winning bid: %v", err)
				return
			}
			atomic.AddInt64(&counter, 1)
		}
	})
}

// Benchmark 5: Mixed Workload (Readers + Writers concurrently)
func Benchmark_MixedWorkload_SharedProduct(b *testing.B) {
	const numUsers = 500
	_, svc := setupRepo(b, 1, numUsers)
	ctx := context.Background()

	for j := 0; j < 50; j++ {
		_, _ = svc.PlaceBid(ctx, productID(0), userID(j), decimal.NewFromInt(int64(101+j)))
	}

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 150
	var counter int64

	// Ratio: 70% readers, 30% writers
	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			opType := rnd.Intn(10)
			switch {
			case opType < 3:
				// Writer: Place a new bid
				nextBid := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
				_, _ = svc.PlaceBid(ctx, productID(0), userID(rnd.Intn(numUsers)), decimal.NewFromInt(nextBid))
			default:
				// Reader: Get winning bid
				_, _ = svc.GetWinningBid(ctx, productID(0))
			}
			atomic.AddInt64(&counter, 1)
		}
	})
}

// Benchmark 6: proxy resolution over a growing pool of auto-bids
func Benchmark_Resolve(b *testing.B) {
	now := time.Now()
	autoBids := make([]model.AutoBid, 0, 200)
	for j := 0; j < 200; j++ {
		autoBids = append(autoBids, model.AutoBid{
			UserID:    userID(j),
			ProductID: productID(0),
			MaxAmount: decimal.NewFromInt(int64(150 + j%50)),
			CreatedAt: now.Add(time.Duration(j) * time.Millisecond),
		})
	}
	state := proxybid.State{
		StartPrice:   decimal.NewFromInt(100),
		CurrentPrice: decimal.NewFromInt(120),
		BidStep:      decimal.NewFromInt(5),
		Leader:       proxybid.Leader{BidderID: "manual", Present: true},
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if d := proxybid.Resolve(state, autoBids); !d.Act() {
			b.Fatal("expected a proxy bid")
		}
	}
}

// Benchmark 7: event processor draining a backlog of bid-changed events
func Benchmark_EventProcessor_Tick(b *testing.B) {
	const numProducts = 100
	repo, _ := setupRepo(b, numProducts, 2)
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < numProducts; i++ {
		err := repo.WithTx(ctx, func(ctx context.Context, tx repository.Tx) error {
			for j := 0; j < 2; j++ {
				if _, err := tx.UpsertAutoBid(ctx, model.AutoBid{
					UserID:    userID(j),
					ProductID: productID(i),
					MaxAmount: decimal.NewFromInt(int64(1_000_000 + j)),
					CreatedAt: now,
					UpdatedAt: now,
				}); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			b.Fatalf("failed to seed auto-bids: %v", err)
		}
	}

	processor := eventprocessor.New(repo, discardNotifier{}, lock.NewLocal(), utils.SystemClock{}, eventprocessor.Options{BatchSize: numProducts})

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		err := repo.WithTx(ctx, func(ctx context.Context, tx repository.Tx) error {
			for p := 0; p < numProducts; p++ {
				ev := model.NewAuctionEvent(utils.GenerateID(), model.EventProductBidChanged, productID(p), time.Now())
				if err := tx.InsertEvent(ctx, ev); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			b.Fatalf("failed to queue events: %v", err)
		}
		b.StartTimer()

		if _, err := processor.Tick(ctx); err != nil {
			b.Fatalf("tick failed: %v", err)
		}
	}
}
