package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"auction-engine/internal/biddingerrors"
	model "auction-engine/internal/models"
)

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB.
// Transactions are serialised on one mutex, which gives the same per-product
// linearisation the Postgres row lock gives, and are rolled back with an undo log.
type MemoryRepo struct {
	mu         sync.Mutex
	products   map[string]model.Product                // key: productID
	users      map[string]model.User                   // key: userID
	ratings    map[string]model.RatingSummary          // key: userID
	bids       map[string][]model.Bid                  // key: productID -> bids in insertion order
	autoBids   map[string]map[string]model.AutoBid     // key: productID -> userID
	blocks     map[string]map[string]model.BidderBlock // key: productID -> bidderID
	events     map[string]model.AuctionEvent           // key: eventID
	eventOrder []string                                // eventIDs in insertion order
	orders     map[string]model.Order                  // key: productID
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		products: make(map[string]model.Product),
		users:    make(map[string]model.User),
		ratings:  make(map[string]model.RatingSummary),
		bids:     make(map[string][]model.Bid),
		autoBids: make(map[string]map[string]model.AutoBid),
		blocks:   make(map[string]map[string]model.BidderBlock),
		events:   make(map[string]model.AuctionEvent),
		orders:   make(map[string]model.Order),
	}
}

// WithTx runs fn while holding the repository lock. If fn fails every write it
// made is undone in reverse order.
func (r *MemoryRepo) WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &memTx{r: r}
	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

// GetProduct returns a product by id
func (r *MemoryRepo) GetProduct(ctx context.Context, productID string) (model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.product(productID)
}

// GetUser returns a user by id
func (r *MemoryRepo) GetUser(ctx context.Context, userID string) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, biddingerrors.ErrUserNotFound)
	}
	return u, nil
}

// GetRatingSummary returns the rating history of a user; unknown users have none
func (r *MemoryRepo) GetRatingSummary(ctx context.Context, userID string) (model.RatingSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ratings[userID], nil
}

// ListValidBids returns the valid bids for a product, winner first
func (r *MemoryRepo) ListValidBids(ctx context.Context, productID string) ([]model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.validBids(productID), nil
}

// GetHighestValidBid returns the current winning bid for a product
func (r *MemoryRepo) GetHighestValidBid(ctx context.Context, productID string) (model.Bid, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.highestValidBid(productID)
	return b, ok, nil
}

// ListPendingEvents returns up to limit pending events in creation order
func (r *MemoryRepo) ListPendingEvents(ctx context.Context, limit int) ([]model.AuctionEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.AuctionEvent
	for _, id := range r.eventOrder {
		ev := r.events[id]
		if ev.Status != model.EventPending {
			continue
		}
		out = append(out, ev)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ClaimEvent moves a pending event to PROCESSING
func (r *MemoryRepo) ClaimEvent(ctx context.Context, eventID string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ev, ok := r.events[eventID]
	if !ok {
		return false, fmt.Errorf("claim event %s: %w", eventID, biddingerrors.ErrEventNotFound)
	}
	if ev.Status != model.EventPending {
		return false, nil
	}
	ev.Status = model.EventProcessing
	ev.UpdatedAt = now
	r.events[eventID] = ev
	return true, nil
}

// RequeueEvent puts a processing event back to PENDING with a new retry count
func (r *MemoryRepo) RequeueEvent(ctx context.Context, eventID string, retryCount int, lastError string, now time.Time) error {
	return r.finishEvent(eventID, model.EventPending, &retryCount, lastError, now)
}

// FailEvent marks a processing event as terminally FAILED
func (r *MemoryRepo) FailEvent(ctx context.Context, eventID string, lastError string, now time.Time) error {
	return r.finishEvent(eventID, model.EventFailed, nil, lastError, now)
}

func (r *MemoryRepo) finishEvent(eventID string, status model.EventStatus, retryCount *int, lastError string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ev, ok := r.events[eventID]
	if !ok {
		return fmt.Errorf("update event %s: %w", eventID, biddingerrors.ErrEventNotFound)
	}
	if ev.Status != model.EventProcessing {
		return fmt.Errorf("update event %s: %w", eventID, biddingerrors.ErrEventNotClaimed)
	}
	ev.Status = status
	if retryCount != nil {
		ev.RetryCount = *retryCount
	}
	ev.LastError = lastError
	ev.UpdatedAt = now
	r.events[eventID] = ev
	return nil
}

// ReleaseStaleEvents hands abandoned PROCESSING events back, counting the lost run as an attempt
func (r *MemoryRepo) ReleaseStaleEvents(ctx context.Context, before, now time.Time, maxRetry int) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var released, failed int64
	for id, ev := range r.events {
		if ev.Status != model.EventProcessing || !ev.UpdatedAt.Before(before) {
			continue
		}
		if ev.RetryCount < maxRetry {
			ev.Status = model.EventPending
			ev.RetryCount++
			released++
		} else {
			ev.Status = model.EventFailed
			failed++
		}
		ev.LastError = StaleEventError
		ev.UpdatedAt = now
		r.events[id] = ev
	}
	return released, failed, nil
}

// ListExpiredProducts returns active products whose end time has passed, soonest first
func (r *MemoryRepo) ListExpiredProducts(ctx context.Context, now time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []model.Product
	for _, p := range r.products {
		if p.Status == model.ProductActive && !p.EndTime.After(now) {
			expired = append(expired, p)
		}
	}
	sort.Slice(expired, func(i, j int) bool {
		if !expired[i].EndTime.Equal(expired[j].EndTime) {
			return expired[i].EndTime.Before(expired[j].EndTime)
		}
		return expired[i].ProductID < expired[j].ProductID
	})

	ids := make([]string, 0, len(expired))
	for _, p := range expired {
		ids = append(ids, p.ProductID)
	}
	return ids, nil
}

// AddProduct adds a product to the repository. Products are owned by the
// listing service; this is used for seeding and tests.
func (r *MemoryRepo) AddProduct(p model.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.Status == "" {
		p.Status = model.ProductActive
	}
	if p.CurrentPrice.IsZero() {
		p.CurrentPrice = p.StartPrice
	}
	r.products[p.ProductID] = p
}

// AddUser adds a user to the repository. Intended for seeding and tests.
func (r *MemoryRepo) AddUser(u model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.UserID] = u
}

// SetRating sets the rating history of a user. Intended for seeding and tests.
func (r *MemoryRepo) SetRating(userID string, summary model.RatingSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ratings[userID] = summary
}

// Events returns a copy of every event in insertion order. Intended for tests.
func (r *MemoryRepo) Events() []model.AuctionEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.AuctionEvent, 0, len(r.eventOrder))
	for _, id := range r.eventOrder {
		out = append(out, r.events[id])
	}
	return out
}

// Order returns the order created for a product, if any. Intended for tests.
func (r *MemoryRepo) Order(productID string) (model.Order, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[productID]
	return o, ok
}

// AllBids returns every bid for a product including invalidated ones. Intended for tests.
func (r *MemoryRepo) AllBids(productID string) []model.Bid {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Bid(nil), r.bids[productID]...)
}

func (r *MemoryRepo) product(productID string) (model.Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return model.Product{}, fmt.Errorf("get product %s: %w", productID, biddingerrors.ErrProductNotFound)
	}
	return p, nil
}

func (r *MemoryRepo) validBids(productID string) []model.Bid {
	var out []model.Bid
	for _, b := range r.bids[productID] {
		if b.IsValid {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Outranks(out[j]) })
	return out
}

func (r *MemoryRepo) highestValidBid(productID string) (model.Bid, bool) {
	var (
		winning model.Bid
		found   bool
	)
	for _, b := range r.bids[productID] {
		if !b.IsValid {
			continue
		}
		if !found || b.Outranks(winning) {
			winning = b
			found = true
		}
	}
	return winning, found
}

// memTx implements Tx on top of the locked MemoryRepo
type memTx struct {
	r    *MemoryRepo
	undo []func()
}

func (t *memTx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (t *memTx) GetProductForUpdate(ctx context.Context, productID string) (model.Product, error) {
	return t.r.product(productID)
}

func (t *memTx) UpdateProductBidState(ctx context.Context, productID string, currentPrice decimal.Decimal, endTime time.Time) error {
	p, err := t.r.product(productID)
	if err != nil {
		return err
	}
	old := p
	t.undo = append(t.undo, func() { t.r.products[productID] = old })

	p.CurrentPrice = currentPrice
	p.EndTime = endTime
	t.r.products[productID] = p
	return nil
}

func (t *memTx) EndProduct(ctx context.Context, productID string, now time.Time) (bool, error) {
	p, err := t.r.product(productID)
	if err != nil {
		return false, err
	}
	if p.Status != model.ProductActive || p.EndTime.After(now) {
		return false, nil
	}
	old := p
	t.undo = append(t.undo, func() { t.r.products[productID] = old })

	p.Status = model.ProductEnded
	t.r.products[productID] = p
	return true, nil
}

func (t *memTx) InsertBid(ctx context.Context, bid model.Bid) error {
	if _, err := t.r.product(bid.ProductID); err != nil {
		return fmt.Errorf("record bid for product %s: %w", bid.ProductID, err)
	}
	old := t.r.bids[bid.ProductID]
	t.undo = append(t.undo, func() { t.r.bids[bid.ProductID] = old })

	next := make([]model.Bid, len(old), len(old)+1)
	copy(next, old)
	t.r.bids[bid.ProductID] = append(next, bid)
	return nil
}

func (t *memTx) GetHighestValidBid(ctx context.Context, productID string) (model.Bid, bool, error) {
	b, ok := t.r.highestValidBid(productID)
	return b, ok, nil
}

func (t *memTx) ListValidBids(ctx context.Context, productID string) ([]model.Bid, error) {
	return t.r.validBids(productID), nil
}

func (t *memTx) InvalidateBidderBids(ctx context.Context, productID, bidderID string) (int64, error) {
	old := t.r.bids[productID]
	next := make([]model.Bid, len(old))
	copy(next, old)

	var n int64
	for i := range next {
		if next[i].BidderID == bidderID && next[i].IsValid {
			next[i].IsValid = false
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	t.undo = append(t.undo, func() { t.r.bids[productID] = old })
	t.r.bids[productID] = next
	return n, nil
}

func (t *memTx) ListAutoBids(ctx context.Context, productID string) ([]model.AutoBid, error) {
	blocked := t.r.blocks[productID]
	out := make([]model.AutoBid, 0, len(t.r.autoBids[productID]))
	for userID, ab := range t.r.autoBids[productID] {
		if _, isBlocked := blocked[userID]; isBlocked {
			continue
		}
		out = append(out, ab)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].MaxAmount.Cmp(out[j].MaxAmount); c != 0 {
			return c > 0
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (t *memTx) UpsertAutoBid(ctx context.Context, autoBid model.AutoBid) (model.AutoBid, error) {
	byUser, ok := t.r.autoBids[autoBid.ProductID]
	if !ok {
		byUser = make(map[string]model.AutoBid)
		t.r.autoBids[autoBid.ProductID] = byUser
	}

	old, existed := byUser[autoBid.UserID]
	t.undo = append(t.undo, func() {
		if existed {
			byUser[autoBid.UserID] = old
		} else {
			delete(byUser, autoBid.UserID)
		}
	})

	if existed {
		// keep first-come priority among equal ceilings
		autoBid.CreatedAt = old.CreatedAt
	}
	byUser[autoBid.UserID] = autoBid
	return autoBid, nil
}

func (t *memTx) IsBidderBlocked(ctx context.Context, productID, bidderID string) (bool, error) {
	_, ok := t.r.blocks[productID][bidderID]
	return ok, nil
}

func (t *memTx) InsertBidderBlock(ctx context.Context, block model.BidderBlock) error {
	byBidder, ok := t.r.blocks[block.ProductID]
	if !ok {
		byBidder = make(map[string]model.BidderBlock)
		t.r.blocks[block.ProductID] = byBidder
	}
	if _, exists := byBidder[block.BidderID]; exists {
		return nil
	}
	t.undo = append(t.undo, func() { delete(byBidder, block.BidderID) })
	byBidder[block.BidderID] = block
	return nil
}

func (t *memTx) InsertEvent(ctx context.Context, event model.AuctionEvent) error {
	if _, exists := t.r.events[event.EventID]; exists {
		return fmt.Errorf("insert event %s: duplicate id", event.EventID)
	}
	n := len(t.r.eventOrder)
	t.undo = append(t.undo, func() {
		delete(t.r.events, event.EventID)
		t.r.eventOrder = t.r.eventOrder[:n]
	})
	t.r.events[event.EventID] = event
	t.r.eventOrder = append(t.r.eventOrder, event.EventID)
	return nil
}

func (t *memTx) CompleteEvent(ctx context.Context, eventID string, now time.Time) error {
	ev, ok := t.r.events[eventID]
	if !ok {
		return fmt.Errorf("complete event %s: %w", eventID, biddingerrors.ErrEventNotFound)
	}
	if ev.Status != model.EventProcessing {
		return fmt.Errorf("complete event %s: %w", eventID, biddingerrors.ErrEventNotClaimed)
	}
	old := ev
	t.undo = append(t.undo, func() { t.r.events[eventID] = old })

	ev.Status = model.EventCompleted
	ev.UpdatedAt = now
	t.r.events[eventID] = ev
	return nil
}

func (t *memTx) InsertOrder(ctx context.Context, order model.Order) error {
	if _, exists := t.r.orders[order.ProductID]; exists {
		return fmt.Errorf("insert order for product %s: %w", order.ProductID, biddingerrors.ErrOrderExists)
	}
	t.undo = append(t.undo, func() { delete(t.r.orders, order.ProductID) })
	t.r.orders[order.ProductID] = order
	return nil
}
