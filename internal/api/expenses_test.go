package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spese-client/internal/api"
	"spese-client/internal/apitest"
	"spese-client/internal/core"
	applog "spese-client/internal/log"
)

func newExpense(name, amount, description string) core.CreateExpenseData {
	return core.CreateExpenseData{Name: name, Amount: amount, Description: description}
}

func newClient(t *testing.T, srv *apitest.Server, opts ...api.Option) *api.Client {
	t.Helper()
	opts = append([]api.Option{api.WithLogger(applog.Discard())}, opts...)
	c, err := api.New(srv.BaseURL(), opts...)
	require.NoError(t, err)
	return c
}

func TestExpenses_List(t *testing.T) {
	srv := apitest.Start(t)
	srv.SeedExpenses(
		core.Expense{Name: "Groceries", Amount: "42.1", Description: "weekly"},
		core.Expense{Name: "Rent", Amount: "900", Description: "march"},
		core.Expense{Name: "Grocery bag", Amount: "1", Description: "paper"},
	)
	exp := newClient(t, srv).Expenses()
	ctx := context.Background()

	all, err := exp.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	got, err := exp.List(ctx, "  groc ")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Groceries", got[0].Name)
	assert.Equal(t, "Grocery bag", got[1].Name)
}

func TestExpenses_ListNoMatchIsEmpty(t *testing.T) {
	srv := apitest.Start(t)
	srv.SeedExpenses(core.Expense{Name: "Rent", Amount: "900", Description: "march"})
	exp := newClient(t, srv).Expenses()

	got, err := exp.List(context.Background(), "zzz")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExpenses_ListUnfiltered404IsError(t *testing.T) {
	srv := apitest.Start(t)
	srv.FailNext(apitest.RouteListExpenses, http.StatusNotFound)

	_, err := newClient(t, srv).Expenses().List(context.Background(), "")
	require.ErrorIs(t, err, api.ErrNotFound)
}

func TestExpenses_ListEmptyCollection(t *testing.T) {
	srv := apitest.Start(t)
	got, err := newClient(t, srv).Expenses().List(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExpenses_CreateGetDelete(t *testing.T) {
	srv := apitest.Start(t)
	exp := newClient(t, srv).Expenses()
	ctx := context.Background()

	created, err := exp.Create(ctx, newExpense("Coffee", "2.5", "espresso"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, "Coffee", created.Name)
	assert.Equal(t, "2.5", created.Amount)

	got, err := exp.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "espresso", got.Description)

	require.NoError(t, exp.Delete(ctx, created.ID))
	assert.Empty(t, srv.Expenses())

	_, err = exp.Get(ctx, created.ID)
	assert.ErrorIs(t, err, api.ErrNotFound)
	assert.ErrorIs(t, exp.Delete(ctx, created.ID), api.ErrNotFound)
}

func TestExpenses_RequestsCarryIDs(t *testing.T) {
	srv := apitest.Start(t)
	exp := newClient(t, srv).Expenses()
	ctx := context.Background()

	_, err := exp.List(ctx, "")
	require.NoError(t, err)
	_, err = exp.Create(ctx, newExpense("Coffee", "2.5", "espresso"))
	require.NoError(t, err)

	ids := srv.RequestIDs()
	require.Len(t, ids, 2)
	assert.NotEmpty(t, ids[0])
	assert.NotEmpty(t, ids[1])
	assert.NotEqual(t, ids[0], ids[1])
}

func TestExpenses_EmptyID(t *testing.T) {
	srv := apitest.Start(t)
	exp := newClient(t, srv).Expenses()

	_, err := exp.Get(context.Background(), " ")
	assert.ErrorIs(t, err, core.ErrEmptyID)
	assert.ErrorIs(t, exp.Delete(context.Background(), ""), core.ErrEmptyID)
	assert.Zero(t, srv.Hits(apitest.RouteGetExpense))
	assert.Zero(t, srv.Hits(apitest.RouteDeleteExpense))
}

func TestExpenses_CreateWithoutIDIsInvalid(t *testing.T) {
	srv, _ := captureServer(t, http.StatusCreated, `{"name":"x"}`)
	c, err := api.New(srv.URL, api.WithLogger(applog.Discard()))
	require.NoError(t, err)

	_, err = c.Expenses().Create(context.Background(), newExpense("x", "1", "abc"))
	assert.ErrorIs(t, err, api.ErrInvalidResponse)
}
