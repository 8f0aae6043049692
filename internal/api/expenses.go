package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"spese-client/internal/core"
	"spese-client/internal/resource"
)

var _ resource.Service[core.Expense, core.CreateExpenseData] = (*Expenses)(nil)

// Expenses implements the expense endpoints. It satisfies
// resource.Service[core.Expense, core.CreateExpenseData].
type Expenses struct {
	c *Client
}

// List returns the expenses whose name contains filter, or all expenses when
// filter is blank. The service answers 404 when a filter matches nothing;
// that is reported as an empty list.
func (e *Expenses) List(ctx context.Context, filter string) ([]core.Expense, error) {
	var query url.Values
	if f := strings.TrimSpace(filter); f != "" {
		query = url.Values{"name": {f}}
	}
	var out []core.Expense
	if err := e.c.do(ctx, http.MethodGet, e.c.endpoint(query, "expenses"), nil, &out); err != nil {
		if query != nil && errors.Is(err, ErrNotFound) {
			return []core.Expense{}, nil
		}
		return nil, err
	}
	if out == nil {
		out = []core.Expense{}
	}
	return out, nil
}

// Get returns one expense. A missing expense yields an error matching
// ErrNotFound.
func (e *Expenses) Get(ctx context.Context, id string) (core.Expense, error) {
	if strings.TrimSpace(id) == "" {
		return core.Expense{}, core.ErrEmptyID
	}
	var out core.Expense
	if err := e.c.do(ctx, http.MethodGet, e.c.endpoint(nil, "expenses", id), nil, &out); err != nil {
		return core.Expense{}, err
	}
	return out, nil
}

// Create posts a new expense and returns it with the server-assigned id.
func (e *Expenses) Create(ctx context.Context, data core.CreateExpenseData) (core.Expense, error) {
	var out core.Expense
	if err := e.c.do(ctx, http.MethodPost, e.c.endpoint(nil, "expenses"), data, &out); err != nil {
		return core.Expense{}, err
	}
	if out.ID == "" {
		return core.Expense{}, ErrInvalidResponse
	}
	return out, nil
}

// Delete removes an expense.
func (e *Expenses) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return core.ErrEmptyID
	}
	return e.c.do(ctx, http.MethodDelete, e.c.endpoint(nil, "expenses", id), nil, nil)
}
