package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	bidding "auction-engine/internal/biddingService"
	"auction-engine/internal/eventprocessor"
	"auction-engine/internal/lock"
	model "auction-engine/internal/models"
	"auction-engine/internal/notify"
	"auction-engine/internal/rating"
	"auction-engine/internal/repository"
	"auction-engine/internal/scheduler"
	"auction-engine/internal/server"
	"auction-engine/services/bidding/helpers"
)

var start = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// testClock is a clock the test moves by hand
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []notify.Notification
}

func (r *recordingNotifier) Dispatch(_ context.Context, notes []notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, notes...)
}

func (r *recordingNotifier) For(recipientID string) []notify.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notify.Kind
	for _, n := range r.notes {
		if n.RecipientID == recipientID {
			out = append(out, n.Kind)
		}
	}
	return out
}

// testEnv is the whole engine over an in-memory ledger
type testEnv struct {
	router    *gin.Engine
	repo      *repository.MemoryRepo
	clock     *testClock
	notifier  *recordingNotifier
	processor *eventprocessor.Processor
	lifecycle *scheduler.Scheduler
}

// SetupTestEnv seeds the ledger with a seller, three rated bidders and the given products
func SetupTestEnv(t *testing.T, products ...model.Product) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	for _, u := range []model.User{
		{UserID: "seller", Name: "Sam"},
		{UserID: "user1", Name: "Alice"},
		{UserID: "user2", Name: "Bob"},
		{UserID: "user3", Name: "Carol"},
		{UserID: "lowrated", Name: "Larry"},
	} {
		repo.AddUser(u)
	}
	repo.SetRating("user1", model.RatingSummary{Positive: 10, Total: 10})
	repo.SetRating("user2", model.RatingSummary{Positive: 8, Total: 10})
	repo.SetRating("lowrated", model.RatingSummary{Positive: 1, Total: 10})
	for _, p := range products {
		repo.AddProduct(p)
	}

	ratings, err := rating.NewCachedService(repo, 64, time.Minute)
	if err != nil {
		t.Fatalf("failed to build rating cache: %v", err)
	}

	clock := &testClock{t: start}
	notifier := &recordingNotifier{}
	locker := lock.NewLocal()
	service := bidding.NewBiddingService(repo, ratings, notifier, bidding.WithClock(clock))

	return &testEnv{
		router:    server.SetupRouter(service),
		repo:      repo,
		clock:     clock,
		notifier:  notifier,
		processor: eventprocessor.New(repo, notifier, locker, clock, eventprocessor.Options{MaxRetry: 3}),
		lifecycle: scheduler.New(repo, notifier, locker, clock, scheduler.Options{}),
	}
}

// Product returns an ACTIVE product starting at 100 with a step of 10, ending in an hour
func Product(id string) model.Product {
	return model.Product{
		ProductID:       id,
		SellerID:        "seller",
		Title:           "title " + id,
		StartPrice:      decimal.NewFromInt(100),
		BidStep:         decimal.NewFromInt(10),
		EndTime:         start.Add(time.Hour),
		AllowNewBidders: true,
	}
}

// DrainEvents ticks the event processor until no pending event is left
func (e *testEnv) DrainEvents(t *testing.T) {
	t.Helper()
	for i := 0; i < 10; i++ {
		stats, err := e.processor.Tick(context.Background())
		if err != nil {
			t.Fatalf("event processor tick: %v", err)
		}
		if stats.Fetched == 0 {
			return
		}
	}
	t.Fatal("event processor did not settle")
}

// ExecuteRequest executes an HTTP request as userID and returns the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url, userID string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(helpers.UserIDHeader, userID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request on the given router and returns the response data
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url, userID string, body any) (any, *httptest.ResponseRecorder) {
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := ExecuteRequest(t, router, method, url, userID, reqBody)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp["data"], w
}
