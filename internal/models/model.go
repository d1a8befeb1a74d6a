package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus is the lifecycle state of an auctioned product
type ProductStatus string

const (
	ProductActive ProductStatus = "ACTIVE"
	ProductEnded  ProductStatus = "ENDED"
)

// User is a marketplace participant. Identity is owned by the auth service.
type User struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// RatingSummary is the read-only rating history of a user
type RatingSummary struct {
	Positive int `json:"positive"`
	Total    int `json:"total"`
}

// HasHistory reports whether the user has been rated at least once
func (r RatingSummary) HasHistory() bool {
	return r.Total > 0
}

// Percentage returns the share of positive ratings in [0, 100]
func (r RatingSummary) Percentage() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Positive) * 100 / float64(r.Total)
}

// Product represents an auctioned item
type Product struct {
	ProductID              string           `json:"product_id"`
	SellerID               string           `json:"seller_id"`
	Title                  string           `json:"title"`
	StartPrice             decimal.Decimal  `json:"start_price"`
	CurrentPrice           decimal.Decimal  `json:"current_price"`
	BidStep                decimal.Decimal  `json:"bid_step"`
	BuyNowPrice            *decimal.Decimal `json:"buy_now_price,omitempty"`
	EndTime                time.Time        `json:"end_time"`
	AutoExtend             bool             `json:"auto_extend"`
	ExtensionTriggerWindow time.Duration    `json:"extension_trigger_window"`
	ExtensionDuration      time.Duration    `json:"extension_duration"`
	Status                 ProductStatus    `json:"status"`
	AllowNewBidders        bool             `json:"allow_new_bidders"`
	CreatedAt              time.Time        `json:"created_at"`
}

// AcceptsBidsAt reports whether the auction is open for bids at now
func (p Product) AcceptsBidsAt(now time.Time) bool {
	return p.Status == ProductActive && now.Before(p.EndTime)
}

// MinimumNextBid is the lowest amount a new manual bid may carry
func (p Product) MinimumNextBid() decimal.Decimal {
	return p.CurrentPrice.Add(p.BidStep)
}

// Bid represents a user's bid on a product. Rows are append-only except IsValid.
type Bid struct {
	BidID     string          `json:"bid_id"`
	ProductID string          `json:"product_id"`
	BidderID  string          `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	IsValid   bool            `json:"is_valid"`
	IsAuto    bool            `json:"is_auto"`
}

// Outranks reports whether b wins over other under (amount desc, created_at asc)
func (b Bid) Outranks(other Bid) bool {
	if c := b.Amount.Cmp(other.Amount); c != 0 {
		return c > 0
	}
	return b.CreatedAt.Before(other.CreatedAt)
}

// BidView is a bid as shown in public history, with the bidder masked
type BidView struct {
	BidID      string          `json:"bid_id"`
	BidderName string          `json:"bidder_name"`
	Amount     decimal.Decimal `json:"amount"`
	IsAuto     bool            `json:"is_auto"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AutoBid is a bidder's private standing ceiling on a product
type AutoBid struct {
	UserID    string          `json:"user_id"`
	ProductID string          `json:"product_id"`
	MaxAmount decimal.Decimal `json:"max_amount"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BidderBlock excludes a bidder from one product
type BidderBlock struct {
	SellerID  string    `json:"seller_id"`
	BidderID  string    `json:"bidder_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

type EventType string

const (
	EventProductBidChanged EventType = "PRODUCT_BID_CHANGED"
	EventAutoBidRegistered EventType = "AUTO_BID_REGISTERED"
	EventBidderRejected    EventType = "BIDDER_REJECTED"
)

type EventStatus string

const (
	EventPending    EventStatus = "PENDING"
	EventProcessing EventStatus = "PROCESSING"
	EventCompleted  EventStatus = "COMPLETED"
	EventFailed     EventStatus = "FAILED"
)

// EventPayload is the wire contract of an auction event
type EventPayload struct {
	ProductID string `json:"productId"`
}

// AuctionEvent is a durable, retryable request to re-evaluate proxy bidding
type AuctionEvent struct {
	EventID    string          `json:"event_id"`
	Type       EventType       `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Status     EventStatus     `json:"status"`
	RetryCount int             `json:"retry_count"`
	LastError  string          `json:"last_error,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewAuctionEvent builds a PENDING event for productID
func NewAuctionEvent(eventID string, eventType EventType, productID string, now time.Time) AuctionEvent {
	payload, _ := json.Marshal(EventPayload{ProductID: productID})
	return AuctionEvent{
		EventID:   eventID,
		Type:      eventType,
		Payload:   payload,
		Status:    EventPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ProductID decodes the payload. ok is false when the payload is malformed
// or carries no productId.
func (e AuctionEvent) ProductID() (productID string, ok bool) {
	var p EventPayload
	if err := json.Unmarshal(e.Payload, &p); err != nil {
		return "", false
	}
	return p.ProductID, p.ProductID != ""
}

type OrderStatus string

const OrderPendingPayment OrderStatus = "PENDING_PAYMENT"

// Order is the settlement record of an ended auction
type Order struct {
	OrderID    string          `json:"order_id"`
	ProductID  string          `json:"product_id"`
	BuyerID    string          `json:"buyer_id"`
	SellerID   string          `json:"seller_id"`
	FinalPrice decimal.Decimal `json:"final_price"`
	Status     OrderStatus     `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}
