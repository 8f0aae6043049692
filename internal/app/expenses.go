package app

import (
	"context"
	"errors"
	"strings"

	"spese-client/internal/api"
	"spese-client/internal/core"
	"spese-client/internal/forms"
	"spese-client/internal/resource"
	"spese-client/internal/services"
	"spese-client/internal/tui"
)

const (
	msgNoExpenses = "No expenses yet. Add your first expense!"
	msgNoMatches  = "No expenses found matching your search"
	menuRemove    = "Delete"
	menuNewSearch = "New search"
)

func requireID(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("ID is required")
	}
	return nil
}

func (a *App) dashboard(ctx context.Context) error {
	m := a.newManager("", &resource.Recorder{})
	if err := m.Refetch(ctx); err != nil {
		return a.driver.Info(ctx, "Error: "+m.Snapshot().Err)
	}
	return a.driver.Info(ctx, a.renderSummary(core.Summarize(m.Snapshot().Items)))
}

// list shows every expense and lets the user open one.
func (a *App) list(ctx context.Context) error {
	rec := &resource.Recorder{}
	m := a.newManager("", rec)
	_ = m.Refetch(ctx)

	for {
		again, err := a.browse(ctx, m, rec, "Expenses", menuRefresh)
		if err != nil || !again {
			return err
		}
		_ = m.Refetch(ctx)
	}
}

// search refetches the collection each time the query changes.
func (a *App) search(ctx context.Context) error {
	rec := &resource.Recorder{}
	m := a.newManager("", rec)
	form := forms.New(forms.Search)

	for {
		query, err := a.driver.Input(ctx, tui.InputConfig{
			Message:   "Search expenses",
			Validator: form.Validator(forms.FieldSearch),
		})
		if err != nil {
			return err
		}
		_ = m.SetFilter(ctx, strings.TrimSpace(query))

		again, err := a.browse(ctx, m, rec, "Results", menuNewSearch)
		if err != nil || !again {
			return err
		}
	}
}

// browse renders the manager's items and asks the user to pick one, choose
// extra or go back. It reports whether extra was chosen.
func (a *App) browse(ctx context.Context, m *expenseManager, rec *resource.Recorder, title, extra string) (bool, error) {
	for {
		s := m.Snapshot()
		text := a.renderList(s.Items, msgNoExpenses)
		switch {
		case s.Err != "":
			text = "Error: " + s.Err
		case s.Filter != "" && len(s.Items) == 0:
			text = msgNoMatches
		}
		if err := a.driver.Info(ctx, text); err != nil {
			return false, err
		}

		labels, ids := a.options(s.Items)
		options := append(labels, extra, menuBack)
		idx, err := a.driver.Select(ctx, tui.SelectConfig{Message: title, Options: options})
		if err != nil {
			return false, err
		}
		switch options[idx] {
		case menuBack:
			return false, nil
		case extra:
			return true, nil
		}
		if err := a.detail(ctx, m, rec, ids[idx]); err != nil {
			return false, err
		}
	}
}

func (a *App) add(ctx context.Context) error {
	var in services.ExpenseInput
	if err := a.ask(ctx, forms.New(forms.NewExpense),
		field{&in.Name, "Name", forms.FieldName},
		field{&in.Amount, "Amount", forms.FieldAmount},
		field{&in.Description, "Description", forms.FieldDescription},
	); err != nil {
		return err
	}

	m := a.newManager("", &resource.Recorder{})
	svc := services.NewExpenseService(m, a.logger)
	if _, err := svc.Create(ctx, in); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		text := m.Snapshot().Err
		if fe, ok := services.AsFormError(err); ok {
			text = fe.Error()
		}
		if text == "" {
			text = api.Message(err)
		}
		return a.failure(ctx, "Error", text)
	}
	return a.success(ctx, "Success", "Expense created successfully")
}

func (a *App) show(ctx context.Context) error {
	id, err := a.driver.Input(ctx, tui.InputConfig{Message: "Expense ID", Validator: requireID})
	if err != nil {
		return err
	}
	rec := &resource.Recorder{}
	return a.detail(ctx, a.newManager("", rec), rec, strings.TrimSpace(id))
}

func (a *App) deleteByID(ctx context.Context) error {
	id, err := a.driver.Input(ctx, tui.InputConfig{Message: "Expense ID", Validator: requireID})
	if err != nil {
		return err
	}
	return a.confirmDelete(ctx, a.newManager("", &resource.Recorder{}), strings.TrimSpace(id))
}

// detail fetches one expense through m and offers to delete it. A failed
// fetch shows the manager's notice and goes back.
func (a *App) detail(ctx context.Context, m *expenseManager, rec *resource.Recorder, id string) error {
	e, err := m.GetOne(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return a.flush(ctx, rec)
	}
	if err := a.driver.Info(ctx, a.renderDetail(e)); err != nil {
		return err
	}

	options := []string{menuRemove, menuBack}
	idx, err := a.driver.Select(ctx, tui.SelectConfig{Message: e.Name, Options: options})
	if err != nil {
		return err
	}
	if options[idx] == menuRemove {
		return a.confirmDelete(ctx, m, id)
	}
	return nil
}

func (a *App) confirmDelete(ctx context.Context, m *expenseManager, id string) error {
	ok, err := a.driver.Confirm(ctx, tui.ConfirmConfig{Message: "Delete expense " + id + "?"})
	if err != nil || !ok {
		return err
	}
	if err := m.Delete(ctx, id); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return a.failure(ctx, "Failed to delete expense", m.Snapshot().Err)
	}
	return a.success(ctx, "Expense deleted successfully", "")
}

func (a *App) logout(ctx context.Context) error {
	ok, err := a.driver.Confirm(ctx, tui.ConfirmConfig{Message: "Are you sure you want to logout?"})
	if err != nil || !ok {
		return err
	}
	name := a.user.DisplayName()
	a.user = nil
	return a.success(ctx, "Logged out", "Goodbye, "+name)
}

// options returns one select label per item and the matching ids.
func (a *App) options(items []core.Expense) (labels, ids []string) {
	for _, e := range items {
		labels = append(labels, a.label(e))
		ids = append(ids, e.ID)
	}
	return labels, ids
}
