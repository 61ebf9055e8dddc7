package cart

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestRepositoryGetCart_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, updated_at FROM carts WHERE user_id = $1`)).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "updated_at"}).AddRow("c1", "u1", now))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT item_id, name, price, quantity FROM cart_items WHERE cart_id = $1 ORDER BY position`)).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "name", "price", "quantity"}).
			AddRow("m1", "Margherita", 10.0, 2).
			AddRow("m2", "Garlic Bread", 5.0, 1))

	c, err := repo.GetCart(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, "c1", c.ID)
	require.Len(t, c.Items, 2)
	require.Equal(t, "m1", c.Items[0].ItemID)
	require.Equal(t, 25.0, c.Snapshot().Subtotal)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetCart_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, updated_at FROM carts WHERE user_id = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "updated_at"}))

	c, err := repo.GetCart(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, c)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpsertCart_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	c := &Cart{
		ID:     "c1",
		UserID: "u1",
		Items: []Item{
			{ItemID: "m1", Name: "Margherita", Price: 10, Quantity: 2},
			{ItemID: "m2", Name: "Garlic Bread", Price: 5, Quantity: 1},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO carts (id, user_id, updated_at)`)).
		WithArgs("c1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "updated_at"}).AddRow("c1", now))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items WHERE cart_id = $1`)).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	prep := mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO cart_items (id, cart_id, item_id, name, price, quantity, position) VALUES ($1, $2, $3, $4, $5, $6, $7)`))
	prep.ExpectExec().
		WithArgs(sqlmock.AnyArg(), "c1", "m1", "Margherita", 10.0, 2, 0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().
		WithArgs(sqlmock.AnyArg(), "c1", "m2", "Garlic Bread", 5.0, 1, 1).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectCommit()

	require.NoError(t, repo.UpsertCart(context.Background(), c))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpsertCart_AssignsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	c := &Cart{UserID: "u1"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO carts (id, user_id, updated_at)`)).
		WithArgs(sqlmock.AnyArg(), "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "updated_at"}).AddRow("generated", now))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items WHERE cart_id = $1`)).
		WithArgs("generated").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, repo.UpsertCart(context.Background(), c))
	require.Equal(t, "generated", c.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpsertCart_InsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	c := &Cart{ID: "c1", UserID: "u1"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO carts (id, user_id, updated_at)`)).
		WithArgs("c1", "u1").
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	require.Error(t, repo.UpsertCart(context.Background(), c))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryClearCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM carts WHERE user_id = $1`)).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ClearCart(context.Background(), "u1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
