package perftests

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	bidding "auction-engine/internal/biddingService"
	model "auction-engine/internal/models"
	"auction-engine/internal/notify"
	"auction-engine/internal/rating"
	repository "auction-engine/internal/repository"
)

// LoadScenario defines configurable benchmark parameters
type LoadScenario struct {
	Name            string
	NumUsers        int
	NumProducts     int
	BidsPerUser     int
	ReadRatio       int
	MaxBidIncrement int
	Burst           bool // if true, no delay between ops
}

// OperationMetrics collects latencies safely
type OperationMetrics struct {
	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(d time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()
	om.latencies = append(om.latencies, d)
}

func (om *OperationMetrics) Stats() (min, max, avg, p95, p99 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()
	if len(om.latencies) == 0 {
		return
	}
	latencies := append([]time.Duration(nil), om.latencies...)
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	min = latencies[0]
	max = latencies[len(latencies)-1]

	var total time.Duration
	for _, d := range latencies {
		total += d
	}
	avg = total / time.Duration(len(latencies))
	p95 = latencies[int(0.95*float64(len(latencies)))]
	p99 = latencies[int(0.99*float64(len(latencies)))]
	return
}

// discardNotifier drops notifications so benchmarks measure the ledger only
type discardNotifier struct{}

func (discardNotifier) Dispatch(context.Context, []notify.Notification) {}

func productID(i int) string { return fmt.Sprintf("product_%d", i) }

func userID(i int) string { return fmt.Sprintf("user_%d", i) }

// setupRepo creates the repository and bidding service with products and bidders
func setupRepo(b *testing.B, numProducts, numUsers int) (*repository.MemoryRepo, *bidding.BiddingService) {
	b.Helper()
	repo := repository.NewMemoryRepo()
	repo.AddUser(model.User{UserID: "seller", Name: "seller"})
	for i := 0; i < numUsers; i++ {
		repo.AddUser(model.User{UserID: userID(i), Name: userID(i)})
	}
	for i := 0; i < numProducts; i++ {
		repo.AddProduct(model.Product{
			ProductID:       productID(i),
			SellerID:        "seller",
			Title:           fmt.Sprintf("title_%d", i),
			StartPrice:      decimal.NewFromInt(100),
			BidStep:         decimal.NewFromInt(1),
			EndTime:         time.Now().Add(24 * time.Hour),
			AllowNewBidders: true,
		})
	}

	ratings, err := rating.NewCachedService(repo, numUsers+1, time.Minute)
	if err != nil {
		b.Fatalf("failed to build rating cache: %v", err)
	}
	return repo, bidding.NewBiddingService(repo, ratings, discardNotifier{})
}

// Benchmark_Load_BiddingSystem runs multiple scenarios
func Benchmark_Load_BiddingSystem(b *testing.B) {
	scenarios := []LoadScenario{
		{"Low-Contention-WriteHeavy", 200, 200, 10, 0, 50, false},
		{"High-Contention-WriteHeavy", 500, 10, 20, 0, 20, false},
		{"Mixed-Workload", 300, 50, 15, 7, 30, false},
		{"ReadHeavy", 200, 50, 5, 9, 20, false},
		{"Edge-Case-SingleProduct", 100, 1, 10, 5, 10, false},
		{"Peak-Burst", 500, 50, 50, 0, 20, true},
	}

	for _, s := range scenarios {
		b.Run(s.Name, func(b *testing.B) {
			runParallelScenario(b, s)
		})
	}
}

func runParallelScenario(b *testing.B, s LoadScenario) {
	b.ReportAllocs()

	_, svc := setupRepo(b, s.NumProducts, s.NumUsers)
	ctx := context.Background()

	var totalOps, successfulBids, failedBids, totalReads int64
	productSuccess := make([]int64, s.NumProducts)
	metrics := &OperationMetrics{}

	start := time.Now()

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano() + int64(time.Now().Nanosecond())))

		for pb.Next() {
			productIndex := rnd.Intn(s.NumProducts)
			id := productID(productIndex)
			opType := rnd.Intn(10)

			opStart := time.Now()
			if opType < s.ReadRatio {
				// no bids yet is an expected answer under load
				_, _ = svc.GetWinningBid(ctx, id)
				atomic.AddInt64(&totalReads, 1)
			} else {
				// most bids lose the race for the floor and are rejected as too low
				amount := decimal.NewFromInt(int64(101 + rnd.Intn(s.MaxBidIncrement)))
				if _, err := svc.PlaceBid(ctx, id, userID(rnd.Intn(s.NumUsers)), amount); err != nil {
					atomic.AddInt64(&failedBids, 1)
				} else {
					atomic.AddInt64(&successfulBids, 1)
					atomic.AddInt64(&productSuccess[productIndex], 1)
				}
			}

			metrics.Record(time.Since(opStart))
			atomic.AddInt64(&totalOps, 1)

			if !s.Burst {
				time.Sleep(time.Millisecond)
			}
		}
	})

	elapsed := time.Since(start)
	throughput := float64(totalOps) / elapsed.Seconds()
	min, max, avg, p95, p99 := metrics.Stats()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	b.Logf(
		"Scenario: %s | Products: %d | Total Ops: %d | Success Bids: %d | Failed Bids: %d | Reads: %d | Elapsed: %s | Throughput: %.2f ops/sec | Latency(us) min: %.2f avg: %.2f max: %.2f p95: %.2f p99: %.2f | Memory Alloc: %.2f MB",
		s.Name, s.NumProducts, totalOps, successfulBids, failedBids, totalReads, elapsed,
		throughput,
		float64(min.Microseconds()), float64(avg.Microseconds()), float64(max.Microseconds()),
		float64(p95.Microseconds()), float64(p99.Microseconds()),
		float64(mem.Alloc)/1024/1024,
	)

	for i, v := range productSuccess {
		if v > 0 {
			b.Logf("Product %d successful bids: %d", i, v)
		}
	}
}
