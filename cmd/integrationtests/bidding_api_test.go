package integrationtests

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	model "auction-engine/internal/models"
	"auction-engine/internal/notify"
)

func bidBody(amount string) map[string]any { return map[string]any{"amount": amount} }

// PlaceBidHandler Tests
func TestPlaceBidAPI(t *testing.T) {
	tests := []struct {
		name       string
		productID  string
		userID     string
		request    any
		wantStatus int
	}{
		{name: "Valid_Bid", productID: "item1", userID: "user1", request: bidBody("110"), wantStatus: http.StatusCreated},
		{name: "New_Bidder_Allowed", productID: "item1", userID: "user3", request: bidBody("110"), wantStatus: http.StatusCreated},
		{name: "Below_Minimum", productID: "item1", userID: "user1", request: bidBody("105"), wantStatus: http.StatusBadRequest},
		{name: "Seller_Bids_Own_Product", productID: "item1", userID: "seller", request: bidBody("110"), wantStatus: http.StatusForbidden},
		{name: "Rating_Too_Low", productID: "item1", userID: "lowrated", request: bidBody("110"), wantStatus: http.StatusForbidden},
		{name: "Product_Not_Found", productID: "nonexistent", userID: "user1", request: bidBody("110"), wantStatus: http.StatusNotFound},
		{name: "Missing_Identity", productID: "item1", request: bidBody("110"), wantStatus: http.StatusUnauthorized},
		{name: "Invalid_JSON", productID: "item1", userID: "user1", request: "{amount: 'missing quotes'}", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := SetupTestEnv(t, Product("item1"))
			data, w := ExecuteRequestAndParse(t, env.router, http.MethodPost, "/bids/products/"+tt.productID, tt.userID, tt.request)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus == http.StatusCreated {
				bid := data.(map[string]any)
				require.Equal(t, tt.productID, bid["product_id"])
				require.Equal(t, tt.userID, bid["bidder_id"])
				require.Equal(t, "110", bid["amount"])
				require.NotEmpty(t, bid["bid_id"])

				_, err := time.Parse(time.RFC3339, bid["created_at"].(string))
				require.NoError(t, err)
			}
		})
	}
}

func TestProxyBiddingFlow(t *testing.T) {
	env := SetupTestEnv(t, Product("item1"))

	_, w := ExecuteRequestAndParse(t, env.router, http.MethodPut, "/auto-bids/products/item1", "user1", map[string]any{"max_amount": "150"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, w = ExecuteRequestAndParse(t, env.router, http.MethodPut, "/auto-bids/products/item1", "user2", map[string]any{"max_amount": "130"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// opening bid for the strongest ceiling, then defended up to the runner-up's ceiling
	env.DrainEvents(t)

	data, w := ExecuteRequestAndParse(t, env.router, http.MethodGet, "/bids/products/item1/winning", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	winning := data.(map[string]any)
	require.Equal(t, "A***e", winning["bidder_name"])
	require.Equal(t, "130", winning["amount"])
	require.Equal(t, true, winning["is_auto"])

	// a manual challenger is overtaken up to the leader's ceiling
	_, w = ExecuteRequestAndParse(t, env.router, http.MethodPost, "/bids/products/item1", "user3", bidBody("140"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	env.DrainEvents(t)

	data, w = ExecuteRequestAndParse(t, env.router, http.MethodGet, "/bids/products/item1/history", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := data.([]any)
	require.Len(t, history, 4)
	top := history[0].(map[string]any)
	require.Equal(t, "A***e", top["bidder_name"])
	require.Equal(t, "150", top["amount"])
	require.NotContains(t, top, "bidder_id")

	require.Equal(t, []notify.Kind{notify.KindBidConfirmed, notify.KindOutbid}, env.notifier.For("user3"))

	product, err := env.repo.GetProduct(context.Background(), "item1")
	require.NoError(t, err)
	require.Equal(t, "150", product.CurrentPrice.String())
}

func TestRejectBidderAndSettle(t *testing.T) {
	env := SetupTestEnv(t, Product("item1"))

	for _, bid := range []struct{ userID, amount string }{{"user1", "110"}, {"user2", "120"}} {
		_, w := ExecuteRequestAndParse(t, env.router, http.MethodPost, "/bids/products/item1", bid.userID, bidBody(bid.amount))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	_, w := ExecuteRequestAndParse(t, env.router, http.MethodPost, "/bids/products/item1/reject/user2", "user1", nil)
	require.Equal(t, http.StatusForbidden, w.Code, "only the seller may reject")

	data, w := ExecuteRequestAndParse(t, env.router, http.MethodPost, "/bids/products/item1/reject/user2", "seller", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "110", data.(map[string]any)["current_price"])

	_, w = ExecuteRequestAndParse(t, env.router, http.MethodPost, "/bids/products/item1", "user2", bidBody("500"))
	require.Equal(t, http.StatusForbidden, w.Code, "a rejected bidder stays blocked")

	env.DrainEvents(t)

	// past the end time the scheduler closes the auction and opens the order
	env.clock.Advance(2 * time.Hour)
	stats, err := env.lifecycle.Tick(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, stats.Orders)

	order, ok := env.repo.Order("item1")
	require.True(t, ok)
	require.Equal(t, "user1", order.BuyerID)
	require.Equal(t, "110", order.FinalPrice.String())
	require.Equal(t, model.OrderPendingPayment, order.Status)

	require.Contains(t, env.notifier.For("user1"), notify.KindAuctionWon)
	require.NotContains(t, env.notifier.For("user2"), notify.KindAuctionNotWon)

	_, w = ExecuteRequestAndParse(t, env.router, http.MethodPost, "/bids/products/item1", "user3", bidBody("500"))
	require.Equal(t, http.StatusConflict, w.Code)

	data, w = ExecuteRequestAndParse(t, env.router, http.MethodGet, "/bids/products/item1/winning", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "A***e", data.(map[string]any)["bidder_name"])
}

// GetWinningBidHandler Tests
func TestGetWinningBidAPI(t *testing.T) {
	tests := []struct {
		name       string
		productID  string
		wantStatus int
	}{
		{name: "No_Bids", productID: "item2", wantStatus: http.StatusNotFound},
		{name: "Product_Not_Found", productID: "nonexistent", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := SetupTestEnv(t, Product("item2"))
			_, w := ExecuteRequestAndParse(t, env.router, http.MethodGet, "/bids/products/"+tt.productID+"/winning", "", nil)
			require.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestGetBidHistoryAPI(t *testing.T) {
	env := SetupTestEnv(t, Product("item1"), Product("item2"))

	data, w := ExecuteRequestAndParse(t, env.router, http.MethodGet, "/bids/products/item2/history", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, data)

	_, w = ExecuteRequestAndParse(t, env.router, http.MethodGet, "/bids/products/nonexistent/history", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthz(t *testing.T) {
	env := SetupTestEnv(t)
	w := ExecuteRequest(t, env.router, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
