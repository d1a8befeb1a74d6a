package helpers

import (
	"time"

	"github.com/shopspring/decimal"

	model "auction-engine/internal/models"
)

// Request/Response DTOs
type PlaceBidRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type RegisterAutoBidRequest struct {
	MaxAmount decimal.Decimal `json:"max_amount"`
}

type BidResponse struct {
	BidID     string          `json:"bid_id"`
	ProductID string          `json:"product_id"`
	BidderID  string          `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
	IsAuto    bool            `json:"is_auto"`
	CreatedAt string          `json:"created_at"`
}

// BidViewResponse is a public bid; the bidder is only shown masked
type BidViewResponse struct {
	BidID      string          `json:"bid_id"`
	BidderName string          `json:"bidder_name"`
	Amount     decimal.Decimal `json:"amount"`
	IsAuto     bool            `json:"is_auto"`
	CreatedAt  string          `json:"created_at"`
}

type AutoBidResponse struct {
	ProductID string          `json:"product_id"`
	MaxAmount decimal.Decimal `json:"max_amount"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

type ProductResponse struct {
	ProductID    string          `json:"product_id"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Status       string          `json:"status"`
	EndTime      string          `json:"end_time"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func NewBidResponse(b model.Bid) BidResponse {
	return BidResponse{
		BidID:     b.BidID,
		ProductID: b.ProductID,
		BidderID:  b.BidderID,
		Amount:    b.Amount,
		IsAuto:    b.IsAuto,
		CreatedAt: formatTime(b.CreatedAt),
	}
}

func NewBidViewResponse(v model.BidView) BidViewResponse {
	return BidViewResponse{
		BidID:      v.BidID,
		BidderName: v.BidderName,
		Amount:     v.Amount,
		IsAuto:     v.IsAuto,
		CreatedAt:  formatTime(v.CreatedAt),
	}
}

func NewAutoBidResponse(a model.AutoBid) AutoBidResponse {
	return AutoBidResponse{
		ProductID: a.ProductID,
		MaxAmount: a.MaxAmount,
		CreatedAt: formatTime(a.CreatedAt),
		UpdatedAt: formatTime(a.UpdatedAt),
	}
}

func NewProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ProductID:    p.ProductID,
		CurrentPrice: p.CurrentPrice,
		Status:       string(p.Status),
		EndTime:      formatTime(p.EndTime),
	}
}
