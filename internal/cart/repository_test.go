package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_AddItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	params := AddParams{UserID: 1, ProductID: 2, Quantity: 3}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"cart_id", "user_id", "product_id", "quantity", "created_at"}).
			AddRow(10, 1, 2, 3, time.Now())

		mock.ExpectQuery("INSERT INTO cart").
			WithArgs(params.UserID, params.ProductID, params.Quantity).
			WillReturnRows(rows)

		line, err := repo.AddItem(context.Background(), params)
		assert.NoError(t, err)
		assert.NotNil(t, line)
		assert.Equal(t, uint(10), line.CartID)
		assert.Equal(t, 3, line.Quantity)
	})

	t.Run("Conflict bumps quantity", func(t *testing.T) {
		// Upsert path: the row comes back with the summed quantity.
		rows := sqlmock.NewRows([]string{"cart_id", "user_id", "product_id", "quantity", "created_at"}).
			AddRow(10, 1, 2, 6, time.Now())

		mock.ExpectQuery("INSERT INTO cart").
			WithArgs(params.UserID, params.ProductID, params.Quantity).
			WillReturnRows(rows)

		line, err := repo.AddItem(context.Background(), params)
		assert.NoError(t, err)
		assert.Equal(t, 6, line.Quantity)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO cart").
			WillReturnError(errors.New("db error"))

		_, err := repo.AddItem(context.Background(), params)
		assert.Error(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	userID := uint(1)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"cart_id", "product_id", "name", "price", "quantity"}).
			AddRow(1, 1, "Widget", 10.00, 2).
			AddRow(2, 2, "Gadget", 5.50, 1)

		mock.ExpectQuery("SELECT c.cart_id, p.product_id, p.name, p.price, c.quantity").
			WithArgs(userID).
			WillReturnRows(rows)

		items, err := repo.GetItems(context.Background(), userID)
		assert.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, "Widget", items[0].Name)
		assert.Equal(t, 10.00, items[0].Price)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("Empty cart yields empty slice", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"cart_id", "product_id", "name", "price", "quantity"})

		mock.ExpectQuery("SELECT c.cart_id, p.product_id, p.name, p.price, c.quantity").
			WithArgs(userID).
			WillReturnRows(rows)

		items, err := repo.GetItems(context.Background(), userID)
		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("SELECT c.cart_id").
			WillReturnError(errors.New("db error"))

		_, err := repo.GetItems(context.Background(), userID)
		assert.Error(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RemoveItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cart").
			WithArgs(uint(1), uint(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.RemoveItem(context.Background(), 1, 2)
		assert.NoError(t, err)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cart").
			WithArgs(uint(1), uint(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RemoveItem(context.Background(), 1, 99)
		assert.ErrorIs(t, err, ErrLineNotFound)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cart").
			WillReturnError(errors.New("db error"))

		err := repo.RemoveItem(context.Background(), 1, 2)
		assert.Error(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
