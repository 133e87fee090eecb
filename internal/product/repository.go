package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, params ListParams) ([]Product, int, error)
	Categories(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, params CreateParams) (*Product, error)
	Update(ctx context.Context, id uint, params UpdateParams) (*Product, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// sortColumns whitelists the caller-facing sort keys.
var sortColumns = map[string]string{
	"product_id": "product_id",
	"name":       "name",
	"price":      "price",
	"created_at": "created_at",
}

func (r *repository) List(ctx context.Context, params ListParams) ([]Product, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	start := time.Now()

	// ---------- pagination ----------
	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = 12
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	// ---------- where ----------
	where := []string{}
	args := []any{}

	if params.Search != "" {
		idx := len(args) + 1
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", idx, idx))
		args = append(args, "%"+params.Search+"%")
	}
	if params.MinPrice != nil {
		where = append(where, fmt.Sprintf("price >= $%d", len(args)+1))
		args = append(args, *params.MinPrice)
	}
	if params.MaxPrice != nil {
		where = append(where, fmt.Sprintf("price <= $%d", len(args)+1))
		args = append(args, *params.MaxPrice)
	}
	if params.Category != "" {
		where = append(where, fmt.Sprintf("category ILIKE $%d", len(args)+1))
		args = append(args, "%"+params.Category+"%")
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	// ---------- sort ----------
	sortCol, ok := sortColumns[params.Sort]
	if !ok {
		sortCol = "product_id"
	}
	sortDir := "ASC"
	if strings.EqualFold(params.Order, "desc") {
		sortDir = "DESC"
	}

	// ---------- count ----------
	countQuery := "SELECT COUNT(*) FROM products " + whereSQL
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	// ---------- query ----------
	query := fmt.Sprintf(`
		SELECT product_id, name, description, price, category, image_url, stock_quantity, created_at
		FROM products
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`,
		whereSQL, sortCol, sortDir, len(args)+1, len(args)+2,
	)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, 0, err
	}
	defer rows.Close()

	result := make([]Product, 0, pageSize)
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.Category,
			&p.ImageURL,
			&p.StockQuantity,
			&p.CreatedAt,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, 0, err
	}

	log.Info("query success",
		zap.Int("rows", len(result)),
		zap.Int("total", total),
		zap.Duration("duration", time.Since(start)),
	)

	return result, total, nil
}

func (r *repository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT category
		FROM products
		WHERE category IS NOT NULL
		ORDER BY category
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var cat string
		if err := rows.Scan(&cat); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		SELECT product_id, name, description, price, category, image_url, stock_quantity, created_at
		FROM products
		WHERE product_id = $1
	`, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.ImageURL,
		&p.StockQuantity,
		&p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Create(ctx context.Context, params CreateParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("name", params.Name),
	)

	var p Product
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, category, image_url, stock_quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING product_id, name, description, price, category, image_url, stock_quantity, created_at
	`,
		params.Name,
		params.Description,
		params.Price,
		params.Category,
		params.ImageURL,
		params.StockQuantity,
	).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.ImageURL,
		&p.StockQuantity,
		&p.CreatedAt,
	)

	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.Uint("product_id", p.ID))
	return &p, nil
}

func (r *repository) Update(ctx context.Context, id uint, params UpdateParams) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = COALESCE($1, name),
		    description = COALESCE($2, description),
		    price = COALESCE($3, price),
		    category = COALESCE($4, category),
		    image_url = COALESCE($5, image_url),
		    stock_quantity = COALESCE($6, stock_quantity)
		WHERE product_id = $7
		RETURNING product_id, name, description, price, category, image_url, stock_quantity, created_at
	`,
		params.Name,
		params.Description,
		params.Price,
		params.Category,
		params.ImageURL,
		params.StockQuantity,
		id,
	).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.ImageURL,
		&p.StockQuantity,
		&p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
