package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"auction-engine/internal/biddingerrors"
	model "auction-engine/internal/models"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepo is the durable AuctionDB. Per-product linearisation comes from
// SELECT ... FOR UPDATE on the product row inside WithTx.
type PostgresRepo struct {
	DB *pgxpool.Pool
}

// NewPostgresRepo wraps a pgx pool
func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

const productColumns = `id, seller_id, title, start_price, current_price, bid_step, buy_now_price, end_time,
	auto_extend, extension_trigger_window_ms, extension_duration_ms, status, allow_new_bidders, created_at`

const bidColumns = `id, product_id, bidder_id, amount, created_at, is_valid, is_auto`

const eventColumns = `id, type, payload, status, retry_count, last_error, created_at, updated_at`

// WithTx runs fn inside a read-committed transaction. Conflicting writers on a
// product serialise on its row lock.
func (r *PostgresRepo) WithTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, &pgTx{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetProduct(ctx context.Context, productID string) (model.Product, error) {
	return scanProduct(r.DB.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, productID), productID)
}

func (r *PostgresRepo) GetUser(ctx context.Context, userID string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRow(ctx, `SELECT id, name, email FROM users WHERE id=$1`, userID).Scan(&u.UserID, &u.Name, &u.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, biddingerrors.ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, err)
	}
	return u, nil
}

func (r *PostgresRepo) GetRatingSummary(ctx context.Context, userID string) (model.RatingSummary, error) {
	var s model.RatingSummary
	err := r.DB.QueryRow(ctx, `
		SELECT count(*) FILTER (WHERE score > 0), count(*)
		FROM ratings WHERE rated_user_id=$1`, userID).Scan(&s.Positive, &s.Total)
	if err != nil {
		return model.RatingSummary{}, fmt.Errorf("get rating summary %s: %w", userID, err)
	}
	return s, nil
}

func (r *PostgresRepo) ListValidBids(ctx context.Context, productID string) ([]model.Bid, error) {
	return listValidBids(ctx, r.DB, productID)
}

func (r *PostgresRepo) GetHighestValidBid(ctx context.Context, productID string) (model.Bid, bool, error) {
	return highestValidBid(ctx, r.DB, productID)
}

func (r *PostgresRepo) ListPendingEvents(ctx context.Context, limit int) ([]model.AuctionEvent, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+eventColumns+` FROM auction_events
		WHERE status='PENDING' ORDER BY created_at ASC, id ASC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending events: %w", err)
	}
	defer rows.Close()

	var out []model.AuctionEvent
	for rows.Next() {
		var (
			ev      model.AuctionEvent
			payload []byte
		)
		if err := rows.Scan(&ev.EventID, &ev.Type, &payload, &ev.Status, &ev.RetryCount, &ev.LastError, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Payload = payload
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) ClaimEvent(ctx context.Context, eventID string, now time.Time) (bool, error) {
	ct, err := r.DB.Exec(ctx, `UPDATE auction_events SET status='PROCESSING', updated_at=$2
		WHERE id=$1 AND status='PENDING'`, eventID, now)
	if err != nil {
		return false, fmt.Errorf("claim event %s: %w", eventID, err)
	}
	return ct.RowsAffected() == 1, nil
}

func (r *PostgresRepo) RequeueEvent(ctx context.Context, eventID string, retryCount int, lastError string, now time.Time) error {
	ct, err := r.DB.Exec(ctx, `UPDATE auction_events SET status='PENDING', retry_count=$2, last_error=$3, updated_at=$4
		WHERE id=$1 AND status='PROCESSING'`, eventID, retryCount, lastError, now)
	if err != nil {
		return fmt.Errorf("requeue event %s: %w", eventID, err)
	}
	if ct.RowsAffected() != 1 {
		return fmt.Errorf("requeue event %s: %w", eventID, biddingerrors.ErrEventNotClaimed)
	}
	return nil
}

func (r *PostgresRepo) FailEvent(ctx context.Context, eventID string, lastError string, now time.Time) error {
	ct, err := r.DB.Exec(ctx, `UPDATE auction_events SET status='FAILED', last_error=$2, updated_at=$3
		WHERE id=$1 AND status='PROCESSING'`, eventID, lastError, now)
	if err != nil {
		return fmt.Errorf("fail event %s: %w", eventID, err)
	}
	if ct.RowsAffected() != 1 {
		return fmt.Errorf("fail event %s: %w", eventID, biddingerrors.ErrEventNotClaimed)
	}
	return nil
}

func (r *PostgresRepo) ReleaseStaleEvents(ctx context.Context, before, now time.Time, maxRetry int) (int64, int64, error) {
	// SET expressions all see the pre-update retry_count
	rows, err := r.DB.Query(ctx, `
		UPDATE auction_events SET
			status = CASE WHEN retry_count < $3 THEN 'PENDING' ELSE 'FAILED' END,
			retry_count = CASE WHEN retry_count < $3 THEN retry_count + 1 ELSE retry_count END,
			last_error = $4,
			updated_at = $2
		WHERE status='PROCESSING' AND updated_at < $1
		RETURNING status`, before, now, maxRetry, StaleEventError)
	if err != nil {
		return 0, 0, fmt.Errorf("release stale events: %w", err)
	}
	defer rows.Close()

	var released, failed int64
	for rows.Next() {
		var status model.EventStatus
		if err := rows.Scan(&status); err != nil {
			return 0, 0, fmt.Errorf("release stale events: %w", err)
		}
		if status == model.EventFailed {
			failed++
		} else {
			released++
		}
	}
	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("release stale events: %w", err)
	}
	return released, failed, nil
}

func (r *PostgresRepo) ListExpiredProducts(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := r.DB.Query(ctx, `SELECT id FROM products
		WHERE status='ACTIVE' AND end_time <= $1 ORDER BY end_time ASC, id ASC`, now)
	if err != nil {
		return nil, fmt.Errorf("list expired products: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// pgTx implements Tx on a pgx transaction
type pgTx struct {
	q querier
}

func (t *pgTx) GetProductForUpdate(ctx context.Context, productID string) (model.Product, error) {
	return scanProduct(t.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1 FOR UPDATE`, productID), productID)
}

func (t *pgTx) UpdateProductBidState(ctx context.Context, productID string, currentPrice decimal.Decimal, endTime time.Time) error {
	ct, err := t.q.Exec(ctx, `UPDATE products SET current_price=$2, end_time=$3 WHERE id=$1`, productID, currentPrice, endTime)
	if err != nil {
		return fmt.Errorf("update product %s: %w", productID, err)
	}
	if ct.RowsAffected() != 1 {
		return fmt.Errorf("update product %s: %w", productID, biddingerrors.ErrProductNotFound)
	}
	return nil
}

func (t *pgTx) EndProduct(ctx context.Context, productID string, now time.Time) (bool, error) {
	ct, err := t.q.Exec(ctx, `UPDATE products SET status='ENDED'
		WHERE id=$1 AND status='ACTIVE' AND end_time <= $2`, productID, now)
	if err != nil {
		return false, fmt.Errorf("end product %s: %w", productID, err)
	}
	return ct.RowsAffected() == 1, nil
}

func (t *pgTx) InsertBid(ctx context.Context, bid model.Bid) error {
	_, err := t.q.Exec(ctx, `INSERT INTO bids(`+bidColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		bid.BidID, bid.ProductID, bid.BidderID, bid.Amount, bid.CreatedAt, bid.IsValid, bid.IsAuto)
	if err != nil {
		return fmt.Errorf("record bid for product %s: %w", bid.ProductID, err)
	}
	return nil
}

func (t *pgTx) GetHighestValidBid(ctx context.Context, productID string) (model.Bid, bool, error) {
	return highestValidBid(ctx, t.q, productID)
}

func (t *pgTx) ListValidBids(ctx context.Context, productID string) ([]model.Bid, error) {
	return listValidBids(ctx, t.q, productID)
}

func (t *pgTx) InvalidateBidderBids(ctx context.Context, productID, bidderID string) (int64, error) {
	ct, err := t.q.Exec(ctx, `UPDATE bids SET is_valid=false
		WHERE product_id=$1 AND bidder_id=$2 AND is_valid`, productID, bidderID)
	if err != nil {
		return 0, fmt.Errorf("invalidate bids of %s on %s: %w", bidderID, productID, err)
	}
	return ct.RowsAffected(), nil
}

func (t *pgTx) ListAutoBids(ctx context.Context, productID string) ([]model.AutoBid, error) {
	rows, err := t.q.Query(ctx, `
		SELECT a.user_id, a.product_id, a.max_amount, a.created_at, a.updated_at
		FROM auto_bids a
		WHERE a.product_id=$1
		  AND NOT EXISTS (SELECT 1 FROM bidder_blocks b WHERE b.product_id=a.product_id AND b.bidder_id=a.user_id)
		ORDER BY a.max_amount DESC, a.created_at ASC, a.user_id ASC`, productID)
	if err != nil {
		return nil, fmt.Errorf("list auto-bids for %s: %w", productID, err)
	}
	defer rows.Close()

	var out []model.AutoBid
	for rows.Next() {
		var a model.AutoBid
		if err := rows.Scan(&a.UserID, &a.ProductID, &a.MaxAmount, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan auto-bid: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (t *pgTx) UpsertAutoBid(ctx context.Context, a model.AutoBid) (model.AutoBid, error) {
	var out model.AutoBid
	err := t.q.QueryRow(ctx, `
		INSERT INTO auto_bids(user_id, product_id, max_amount, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET max_amount=EXCLUDED.max_amount, updated_at=EXCLUDED.updated_at
		RETURNING user_id, product_id, max_amount, created_at, updated_at`,
		a.UserID, a.ProductID, a.MaxAmount, a.CreatedAt, a.UpdatedAt,
	).Scan(&out.UserID, &out.ProductID, &out.MaxAmount, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return model.AutoBid{}, fmt.Errorf("upsert auto-bid: %w", err)
	}
	return out, nil
}

func (t *pgTx) IsBidderBlocked(ctx context.Context, productID, bidderID string) (bool, error) {
	var blocked bool
	err := t.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bidder_blocks WHERE product_id=$1 AND bidder_id=$2)`,
		productID, bidderID).Scan(&blocked)
	if err != nil {
		return false, fmt.Errorf("check bidder block: %w", err)
	}
	return blocked, nil
}

func (t *pgTx) InsertBidderBlock(ctx context.Context, b model.BidderBlock) error {
	_, err := t.q.Exec(ctx, `INSERT INTO bidder_blocks(seller_id, bidder_id, product_id, created_at)
		VALUES ($1,$2,$3,$4) ON CONFLICT (product_id, bidder_id) DO NOTHING`,
		b.SellerID, b.BidderID, b.ProductID, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert bidder block: %w", err)
	}
	return nil
}

func (t *pgTx) InsertEvent(ctx context.Context, ev model.AuctionEvent) error {
	_, err := t.q.Exec(ctx, `INSERT INTO auction_events(`+eventColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		ev.EventID, ev.Type, []byte(ev.Payload), ev.Status, ev.RetryCount, ev.LastError, ev.CreatedAt, ev.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (t *pgTx) CompleteEvent(ctx context.Context, eventID string, now time.Time) error {
	ct, err := t.q.Exec(ctx, `UPDATE auction_events SET status='COMPLETED', updated_at=$2
		WHERE id=$1 AND status='PROCESSING'`, eventID, now)
	if err != nil {
		return fmt.Errorf("complete event %s: %w", eventID, err)
	}
	if ct.RowsAffected() != 1 {
		return fmt.Errorf("complete event %s: %w", eventID, biddingerrors.ErrEventNotClaimed)
	}
	return nil
}

func (t *pgTx) InsertOrder(ctx context.Context, o model.Order) error {
	ct, err := t.q.Exec(ctx, `INSERT INTO orders(id, product_id, buyer_id, seller_id, final_price, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7) ON CONFLICT (product_id) DO NOTHING`,
		o.OrderID, o.ProductID, o.BuyerID, o.SellerID, o.FinalPrice, o.Status, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if ct.RowsAffected() != 1 {
		return fmt.Errorf("insert order for product %s: %w", o.ProductID, biddingerrors.ErrOrderExists)
	}
	return nil
}

func scanProduct(row pgx.Row, productID string) (model.Product, error) {
	var (
		p                model.Product
		buyNow           decimal.NullDecimal
		triggerMs, durMs int64
	)
	err := row.Scan(&p.ProductID, &p.SellerID, &p.Title, &p.StartPrice, &p.CurrentPrice, &p.BidStep, &buyNow,
		&p.EndTime, &p.AutoExtend, &triggerMs, &durMs, &p.Status, &p.AllowNewBidders, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, fmt.Errorf("get product %s: %w", productID, biddingerrors.ErrProductNotFound)
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("get product %s: %w", productID, err)
	}
	if buyNow.Valid {
		v := buyNow.Decimal
		p.BuyNowPrice = &v
	}
	p.ExtensionTriggerWindow = time.Duration(triggerMs) * time.Millisecond
	p.ExtensionDuration = time.Duration(durMs) * time.Millisecond
	return p, nil
}

func listValidBids(ctx context.Context, q querier, productID string) ([]model.Bid, error) {
	rows, err := q.Query(ctx, `SELECT `+bidColumns+` FROM bids
		WHERE product_id=$1 AND is_valid ORDER BY amount DESC, created_at ASC`, productID)
	if err != nil {
		return nil, fmt.Errorf("get bids for product %s: %w", productID, err)
	}
	defer rows.Close()

	var out []model.Bid
	for rows.Next() {
		var b model.Bid
		if err := rows.Scan(&b.BidID, &b.ProductID, &b.BidderID, &b.Amount, &b.CreatedAt, &b.IsValid, &b.IsAuto); err != nil {
			return nil, fmt.Errorf("scan bid: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func highestValidBid(ctx context.Context, q querier, productID string) (model.Bid, bool, error) {
	var b model.Bid
	err := q.QueryRow(ctx, `SELECT `+bidColumns+` FROM bids
		WHERE product_id=$1 AND is_valid ORDER BY amount DESC, created_at ASC LIMIT 1`, productID).
		Scan(&b.BidID, &b.ProductID, &b.BidderID, &b.Amount, &b.CreatedAt, &b.IsValid, &b.IsAuto)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Bid{}, false, nil
	}
	if err != nil {
		return model.Bid{}, false, fmt.Errorf("get winning bid for product %s: %w", productID, err)
	}
	return b, true, nil
}
