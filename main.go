package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	bidding "auction-engine/internal/biddingService"
	"auction-engine/internal/config"
	"auction-engine/internal/eventprocessor"
	kafkax "auction-engine/internal/kafka"
	"auction-engine/internal/lock"
	model "auction-engine/internal/models"
	"auction-engine/internal/notify"
	"auction-engine/internal/postgres"
	"auction-engine/internal/rating"
	"auction-engine/internal/redisx"
	"auction-engine/internal/repository"
	"auction-engine/internal/scheduler"
	"auction-engine/internal/server"
	"auction-engine/utils"
)

const serviceName = "auction-engine"

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("AUCTION_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"path": cfgPath, "error": err.Error()})
	}
	utils.SetLevel(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo := openRepo(ctx, cfg.Postgres)
	defer closeRepo()

	ratings, err := rating.NewCachedService(repo, cfg.Bidding.RatingCacheSize, cfg.Bidding.RatingCacheTTL.Duration)
	if err != nil {
		utils.Fatal("failed to build rating cache", map[string]any{"error": err.Error()})
	}

	email, producer := newEmailService(cfg.Kafka)
	notifier := notify.NewDispatcher(email)

	locker, closeLocker := newLocker(ctx, cfg.Redis)
	defer closeLocker()

	clock := utils.SystemClock{}
	biddingSvc := bidding.NewBiddingService(repo, ratings, notifier,
		bidding.WithClock(clock),
		bidding.WithMinRating(cfg.Bidding.MinRatingPercent),
	)
	processor := eventprocessor.New(repo, notifier, locker, clock, eventprocessor.Options{
		Interval:   cfg.Events.Interval.Duration,
		BatchSize:  cfg.Events.BatchSize,
		MaxRetry:   cfg.Events.MaxRetry,
		StaleAfter: cfg.Events.StaleAfter.Duration,
		LeaseTTL:   cfg.Redis.LeaseTTL.Duration,
	})
	lifecycle := scheduler.New(repo, notifier, locker, clock, scheduler.Options{
		Interval: cfg.Lifecycle.Interval.Duration,
		LeaseTTL: cfg.Redis.LeaseTTL.Duration,
	})

	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: server.SetupRouter(biddingSvc)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return processor.Run(gctx) })
	g.Go(func() error { return lifecycle.Run(gctx) })
	g.Go(func() error {
		utils.Info("starting auction server", map[string]any{"addr": cfg.HTTP.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		utils.Info("shutting down", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout.Duration)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		utils.Error("auction engine stopped with error", map[string]any{"error": err.Error()})
	}

	// loops have stopped, so nothing publishes any more
	if producer != nil {
		producer.Close()
		producer.WaitClosed()
	}
}

// openRepo connects to Postgres when a DSN is configured and falls back to a
// seeded in-memory ledger otherwise
func openRepo(ctx context.Context, cfg config.PostgresConfig) (repository.AuctionDB, func()) {
	if cfg.DSN == "" {
		utils.Warn("POSTGRES_DSN not set, using in-memory ledger", nil)
		repo := repository.NewMemoryRepo()
		prepopulate(repo)
		return repo, func() {}
	}

	pool, err := postgres.Connect(ctx, cfg.DSN, postgres.Options{MaxConns: cfg.MaxConns, MinConns: cfg.MinConns})
	if err != nil {
		utils.Fatal("failed to connect to postgres", map[string]any{"error": err.Error()})
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		utils.Fatal("failed to migrate postgres", map[string]any{"error": err.Error()})
	}
	return repository.NewPostgresRepo(pool), pool.Close
}

// newEmailService publishes notifications to Kafka when brokers are configured
// and logs them otherwise. The returned producer is nil in the latter case.
func newEmailService(cfg config.KafkaConfig) (notify.EmailService, *kafkax.Producer) {
	if len(cfg.Brokers) == 0 {
		utils.Warn("KAFKA_BROKERS not set, notifications are logged only", nil)
		return notify.LogEmailService{}, nil
	}
	producer := kafkax.NewProducer(cfg.Brokers, cfg.NotifyTopic, cfg.Buffer)
	producer.Start()
	utils.Info("publishing notifications to kafka", map[string]any{"brokers": cfg.Brokers, "topic": cfg.NotifyTopic})
	return notify.NewKafkaEmailService(producer, serviceName), producer
}

// newLocker shares the background-loop leases through Redis when it is
// configured; a single instance gets by with an in-process lock
func newLocker(ctx context.Context, cfg config.RedisConfig) (lock.Locker, func()) {
	if cfg.Addr == "" {
		return lock.NewLocal(), func() {}
	}
	rdb := redisx.New(cfg.Addr)
	if err := redisx.Ping(ctx, rdb); err != nil {
		utils.Fatal("failed to reach redis", map[string]any{"addr": cfg.Addr, "error": err.Error()})
	}
	return redisx.NewLock(rdb), func() { _ = rdb.Close() }
}

// prepopulate adds sample users and auctions to the in-memory ledger
func prepopulate(repo *repository.MemoryRepo) {
	users := []model.User{
		{UserID: "seller1", Name: "Sara Seller", Email: "seller1@example.com"},
		{UserID: "user1", Name: "Alice", Email: "user1@example.com"},
		{UserID: "user2", Name: "Bob", Email: "user2@example.com"},
		{UserID: "user3", Name: "Carol", Email: "user3@example.com"},
	}
	for _, u := range users {
		repo.AddUser(u)
	}
	repo.SetRating("user1", model.RatingSummary{Positive: 19, Total: 20})
	repo.SetRating("user2", model.RatingSummary{Positive: 9, Total: 10})
	repo.SetRating("user3", model.RatingSummary{Positive: 1, Total: 4})

	now := time.Now().UTC()
	products := []model.Product{
		{ProductID: "item1", SellerID: "seller1", Title: "Vintage camera", StartPrice: decimal.NewFromInt(100), BidStep: decimal.NewFromInt(10), EndTime: now.Add(24 * time.Hour), AllowNewBidders: true},
		{ProductID: "item2", SellerID: "seller1", Title: "Mechanical watch", StartPrice: decimal.NewFromInt(200), BidStep: decimal.NewFromInt(20), EndTime: now.Add(2 * time.Hour)},
		{ProductID: "item3", SellerID: "seller1", Title: "Signed vinyl", StartPrice: decimal.NewFromInt(150), BidStep: decimal.NewFromInt(5), EndTime: now.Add(30 * time.Minute),
			AutoExtend: true, ExtensionTriggerWindow: 5 * time.Minute, ExtensionDuration: 10 * time.Minute, AllowNewBidders: true},
	}
	for _, p := range products {
		repo.AddProduct(p)
	}
}
