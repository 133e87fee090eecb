package cart

import (
	"context"
	"database/sql"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	AddItem(ctx context.Context, params AddParams) (*Line, error)
	GetItems(ctx context.Context, userID uint) ([]Item, error)
	RemoveItem(ctx context.Context, userID, productID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// AddItem inserts a cart line, or bumps the quantity when the (user, product)
// pair already exists.
func (r *repository) AddItem(ctx context.Context, params AddParams) (*Line, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "AddItem"),
		zap.Uint("user_id", params.UserID),
		zap.Uint("product_id", params.ProductID),
	)

	log.Debug("start add cart item")

	query := `
	INSERT INTO cart (user_id, product_id, quantity)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id, product_id)
	DO UPDATE SET quantity = cart.quantity + EXCLUDED.quantity
	RETURNING cart_id, user_id, product_id, quantity, created_at
	`

	var line Line
	err := r.db.QueryRowContext(ctx, query,
		params.UserID, params.ProductID, params.Quantity,
	).Scan(
		&line.CartID,
		&line.UserID,
		&line.ProductID,
		&line.Quantity,
		&line.CreatedAt,
	)
	if err != nil {
		log.Error("failed to add cart item", zap.Error(err))
		return nil, err
	}

	log.Info("cart item added",
		zap.Uint("cart_id", line.CartID),
		zap.Int("quantity", line.Quantity),
	)

	return &line, nil
}

// GetItems joins the user's cart lines with current product name and price,
// ordered by insertion. An empty cart yields an empty slice, not an error;
// checkout treats that as its precondition failure.
func (r *repository) GetItems(ctx context.Context, userID uint) ([]Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetItems"),
		zap.Uint("user_id", userID),
	)

	query := `
	SELECT c.cart_id, p.product_id, p.name, p.price, c.quantity
	FROM cart c
	JOIN products p ON c.product_id = p.product_id
	WHERE c.user_id = $1
	ORDER BY c.cart_id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.CartID, &it.ProductID, &it.Name, &it.Price, &it.Quantity); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	log.Debug("cart items fetched", zap.Int("count", len(items)))
	return items, nil
}

func (r *repository) RemoveItem(ctx context.Context, userID, productID uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrLineNotFound
	}

	return nil
}
