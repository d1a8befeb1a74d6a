package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestBid_Outranks(t *testing.T) {
	early := Bid{BidID: "b1", Amount: decimal.NewFromInt(100), CreatedAt: now}
	late := Bid{BidID: "b2", Amount: decimal.NewFromInt(100), CreatedAt: now.Add(time.Second)}
	higher := Bid{BidID: "b3", Amount: decimal.RequireFromString("100.01"), CreatedAt: now.Add(time.Minute)}

	require.True(t, early.Outranks(late), "earlier bid wins a tie")
	require.False(t, late.Outranks(early))
	require.True(t, higher.Outranks(early), "amount beats time")
	require.False(t, early.Outranks(early))
}

func TestProduct_AcceptsBidsAt(t *testing.T) {
	p := Product{Status: ProductActive, EndTime: now}

	require.True(t, p.AcceptsBidsAt(now.Add(-time.Nanosecond)))
	require.False(t, p.AcceptsBidsAt(now), "the end time itself is closed")

	p.Status = ProductEnded
	require.False(t, p.AcceptsBidsAt(now.Add(-time.Hour)))
}

func TestRatingSummary(t *testing.T) {
	require.False(t, RatingSummary{}.HasHistory())
	require.Zero(t, RatingSummary{}.Percentage())
	require.InDelta(t, 80.0, RatingSummary{Positive: 4, Total: 5}.Percentage(), 1e-9)
}

func TestAuctionEvent_ProductID(t *testing.T) {
	ev := NewAuctionEvent("e1", EventProductBidChanged, "p1", now)
	require.Equal(t, EventPending, ev.Status)
	require.JSONEq(t, `{"productId":"p1"}`, string(ev.Payload))

	id, ok := ev.ProductID()
	require.True(t, ok)
	require.Equal(t, "p1", id)

	for _, payload := range []string{`{}`, `{"productId":""}`, `not json`, ``} {
		ev.Payload = []byte(payload)
		_, ok := ev.ProductID()
		require.False(t, ok, payload)
	}
}
