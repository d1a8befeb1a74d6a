package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	model "auction-engine/internal/models"
	"auction-engine/services/bidding/helpers"
	"auction-engine/utils"
)

//go:generate mockgen -source=bidding_handler.go -destination=mock_bidding_handler.go -package=handler

type BiddingServiceInterface interface {
	PlaceBid(ctx context.Context, productID, bidderID string, amount decimal.Decimal) (model.Bid, error)
	RegisterAutoBid(ctx context.Context, userID, productID string, maxAmount decimal.Decimal) (model.AutoBid, error)
	RejectBidder(ctx context.Context, sellerID, productID, bidderID string) (model.Product, error)
	GetBidHistory(ctx context.Context, productID string) ([]model.BidView, error)
	GetWinningBid(ctx context.Context, productID string) (model.BidView, error)
}

type BiddingHandler struct {
	service BiddingServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

var errNonPositiveAmount = errors.New("amount must be greater than zero")

// respondError maps err to a status, writes it and logs it under handlerName
func respondError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := helpers.MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	fields["handler"] = handlerName
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request rejected", fields)
}

// PlaceBidHandler handles POST /bids/products/:product_id
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	productID := c.Param("product_id")
	bidderID := helpers.CurrentUserID(c)

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}
	if !req.Amount.IsPositive() {
		helpers.HandleBindError(c, "PlaceBidHandler", errNonPositiveAmount)
		return
	}

	bid, err := h.service.PlaceBid(c.Request.Context(), productID, bidderID, req.Amount)
	if err != nil {
		respondError(c, "PlaceBidHandler", err, map[string]any{
			"product_id": productID,
			"bidder_id":  bidderID,
			"amount":     req.Amount.String(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(bid), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     bid.BidID,
		"product_id": productID,
		"bidder_id":  bidderID,
		"amount":     bid.Amount.String(),
	})
}

// RegisterAutoBidHandler handles PUT /auto-bids/products/:product_id
func (h *BiddingHandler) RegisterAutoBidHandler(c *gin.Context) {
	productID := c.Param("product_id")
	userID := helpers.CurrentUserID(c)

	var req helpers.RegisterAutoBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterAutoBidHandler", err)
		return
	}
	if !req.MaxAmount.IsPositive() {
		helpers.HandleBindError(c, "RegisterAutoBidHandler", errNonPositiveAmount)
		return
	}

	autoBid, err := h.service.RegisterAutoBid(c.Request.Context(), userID, productID, req.MaxAmount)
	if err != nil {
		respondError(c, "RegisterAutoBidHandler", err, map[string]any{
			"product_id": productID,
			"user_id":    userID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAutoBidResponse(autoBid), "auto-bid registered successfully")
	// the ceiling is private and stays out of the logs
	helpers.LogSuccess("RegisterAutoBidHandler", "auto-bid registered successfully", map[string]any{
		"product_id": productID,
		"user_id":    userID,
	})
}

// RejectBidderHandler handles POST /bids/products/:product_id/reject/:bidder_id
func (h *BiddingHandler) RejectBidderHandler(c *gin.Context) {
	productID := c.Param("product_id")
	bidderID := c.Param("bidder_id")
	sellerID := helpers.CurrentUserID(c)

	product, err := h.service.RejectBidder(c.Request.Context(), sellerID, productID, bidderID)
	if err != nil {
		respondError(c, "RejectBidderHandler", err, map[string]any{
			"product_id": productID,
			"seller_id":  sellerID,
			"bidder_id":  bidderID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewProductResponse(product), "bidder rejected successfully")
	helpers.LogSuccess("RejectBidderHandler", "bidder rejected successfully", map[string]any{
		"product_id":    productID,
		"bidder_id":     bidderID,
		"current_price": product.CurrentPrice.String(),
	})
}

// GetBidHistoryHandler handles GET /bids/products/:product_id/history
func (h *BiddingHandler) GetBidHistoryHandler(c *gin.Context) {
	productID := c.Param("product_id")
	history, err := h.service.GetBidHistory(c.Request.Context(), productID)
	if err != nil {
		respondError(c, "GetBidHistoryHandler", err, map[string]any{"product_id": productID})
		return
	}

	resp := make([]helpers.BidViewResponse, 0, len(history))
	for _, v := range history {
		resp = append(resp, helpers.NewBidViewResponse(v))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bid history retrieved successfully")
	helpers.LogSuccess("GetBidHistoryHandler", "bid history retrieved successfully", map[string]any{
		"product_id": productID,
		"count":      len(resp),
	})
}

// GetWinningBidHandler handles GET /bids/products/:product_id/winning
func (h *BiddingHandler) GetWinningBidHandler(c *gin.Context) {
	productID := c.Param("product_id")
	winning, err := h.service.GetWinningBid(c.Request.Context(), productID)
	if err != nil {
		respondError(c, "GetWinningBidHandler", err, map[string]any{"product_id": productID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidViewResponse(winning), "winning bid retrieved successfully")
	helpers.LogSuccess("GetWinningBidHandler", "winning bid retrieved successfully", map[string]any{
		"bid_id":     winning.BidID,
		"product_id": productID,
		"amount":     winning.Amount.String(),
	})
}
