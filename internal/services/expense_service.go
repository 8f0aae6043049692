package services

import (
	"context"
	"fmt"
	"strings"

	"spese-client/internal/core"
	"spese-client/internal/forms"
	applog "spese-client/internal/log"
)

// ExpenseCreator is the part of the expense manager the service needs.
type ExpenseCreator interface {
	Create(ctx context.Context, data core.CreateExpenseData) (core.Expense, error)
}

// ExpenseInput is what the user typed on the new expense screen.
type ExpenseInput struct {
	Name        string
	Amount      string
	Description string
}

func (in ExpenseInput) values() map[string]string {
	return map[string]string{
		forms.FieldName:        in.Name,
		forms.FieldAmount:      in.Amount,
		forms.FieldDescription: in.Description,
	}
}

// ExpenseService validates new expenses and hands them to the manager.
type ExpenseService struct {
	manager ExpenseCreator
	logger  *applog.Logger
}

func NewExpenseService(manager ExpenseCreator, logger *applog.Logger) *ExpenseService {
	if logger == nil {
		logger = applog.FromContext(context.Background())
	}
	return &ExpenseService{
		manager: manager,
		logger:  logger.WithComponent(applog.ComponentService),
	}
}

// Create validates in, normalizes the amount and creates the expense. A
// validation failure returns *FormError and sends nothing.
func (s *ExpenseService) Create(ctx context.Context, in ExpenseInput) (core.Expense, error) {
	form := forms.New(forms.NewExpense)
	if !form.Submit(in.values()) {
		return core.Expense{}, rejectForm(ctx, s.logger, 0, form)
	}

	amount, err := core.NormalizeAmount(in.Amount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("normalize amount: %w", err)
	}
	data := core.CreateExpenseData{
		Name:        strings.TrimSpace(in.Name),
		Amount:      amount,
		Description: strings.TrimSpace(in.Description),
	}

	created, err := s.manager.Create(ctx, data)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	s.logger.InfoContext(ctx, "expense created",
		applog.NewFields().
			WithOperation(applog.OpCreate).
			WithExpense(created.ID, created.Name, created.Amount).
			ToSlice()...)
	return created, nil
}
