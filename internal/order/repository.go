package order

import (
	"context"
	"database/sql"

	"storefront-be/internal/cart"
	"storefront-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, userID uint, items []cart.Item, totalPrice float64, status string) (uint, error)
	ListByUser(ctx context.Context, userID uint) ([]Order, error)
	GetByID(ctx context.Context, orderID, userID uint) (*Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status string) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrderTx persists the order header, one order_items row per cart line
// and empties the user's cart, all inside a single transaction. A failure at
// any step rolls back every prior step, so the cart is never left partially
// drained and no order exists without its full item set.
func (r *repository) CreateOrderTx(
	ctx context.Context,
	userID uint,
	items []cart.Item,
	totalPrice float64,
	status string,
) (uint, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.Uint("user_id", userID),
		zap.Int("item_count", len(items)),
	)

	log.Debug("starting order transaction")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return 0, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			} else {
				log.Debug("transaction rolled back")
			}
		}
	}()

	// 1. Insert order header
	var orderID uint
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total_price, status)
		VALUES ($1, $2, $3)
		RETURNING order_id
	`, userID, totalPrice, status).Scan(&orderID)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return 0, err
	}

	// 2. Insert order items with snapshot prices
	for i, item := range items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
		`, orderID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.Uint("product_id", item.ProductID),
				zap.Error(err),
			)
			return 0, err
		}
	}

	// 3. Empty the cart
	_, err = tx.ExecContext(ctx, `DELETE FROM cart WHERE user_id = $1`, userID)
	if err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return 0, err
	}

	committed = true
	log.Info("order transaction committed",
		zap.Uint("order_id", orderID),
		zap.Float64("total_price", totalPrice),
		zap.String("status", status),
	)

	return orderID, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByUser"),
		zap.Uint("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, user_id, total_price, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	ids := make([]int64, 0)
	byID := make(map[uint]int)

	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalPrice, &o.Status, &o.CreatedAt); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		o.Items = []Item{}
		byID[o.ID] = len(orders)
		orders = append(orders, o)
		ids = append(ids, int64(o.ID))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT oi.order_item_id, oi.order_id, oi.product_id, oi.quantity, oi.price, COALESCE(p.name, '')
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_item_id
	`, pq.Array(ids))
	if err != nil {
		log.Error("failed to query order items", zap.Error(err))
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it Item
		if err := itemRows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price, &it.Name); err != nil {
			log.Error("failed to scan order item row", zap.Error(err))
			return nil, err
		}
		if idx, ok := byID[it.OrderID]; ok {
			orders[idx].Items = append(orders[idx].Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	log.Info("orders fetched", zap.Int("count", len(orders)))
	return orders, nil
}

// GetByID loads one order scoped to its owner. Callers that already verified
// admin rights can pass the order's own user id.
func (r *repository) GetByID(ctx context.Context, orderID, userID uint) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT order_id, user_id, total_price, status, created_at
		FROM orders
		WHERE order_id = $1 AND user_id = $2
	`, orderID, userID).Scan(&o.ID, &o.UserID, &o.TotalPrice, &o.Status, &o.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.order_item_id, oi.order_id, oi.product_id, oi.quantity, oi.price, COALESCE(p.name, '')
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.order_item_id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	o.Items = []Item{}
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price, &it.Name); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}

	return &o, rows.Err()
}

// UpdateStatus overwrites the status string. Items and total are immutable
// after creation; this is the only mutable column.
func (r *repository) UpdateStatus(ctx context.Context, orderID uint, status string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		UPDATE orders SET status = $1
		WHERE order_id = $2
		RETURNING order_id, user_id, total_price, status, created_at
	`, status, orderID).Scan(&o.ID, &o.UserID, &o.TotalPrice, &o.Status, &o.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	return &o, nil
}
