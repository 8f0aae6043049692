// Package app runs the terminal screens: an auth menu until a user logs in,
// then the main menu. Every screen builds its own expense manager and drops
// it when the screen returns.
package app

import (
	"context"
	"errors"
	"fmt"

	"spese-client/internal/api"
	"spese-client/internal/core"
	applog "spese-client/internal/log"
	"spese-client/internal/resource"
	"spese-client/internal/services"
	"spese-client/internal/tui"
)

type expenseManager = resource.Manager[core.Expense, core.CreateExpenseData]

// Config wires the app to its collaborators.
type Config struct {
	Driver   tui.Driver
	Expenses resource.Service[core.Expense, core.CreateExpenseData]
	Auth     services.Authenticator
	Logger   *applog.Logger
	Locale   string
}

// App is one interactive session. The logged-in user lives only in memory.
type App struct {
	driver   tui.Driver
	expenses resource.Service[core.Expense, core.CreateExpenseData]
	auth     *services.AuthService
	logger   *applog.Logger
	locale   string
	user     *core.User
}

var errQuit = errors.New("quit")

func New(cfg Config) (*App, error) {
	if cfg.Driver == nil {
		return nil, errors.New("new app: driver is required")
	}
	if cfg.Expenses == nil {
		return nil, errors.New("new app: expense service is required")
	}
	if cfg.Auth == nil {
		return nil, errors.New("new app: auth service is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = applog.FromContext(context.Background())
	}
	locale := cfg.Locale
	if locale == "" {
		locale = "en"
	}
	return &App{
		driver:   cfg.Driver,
		expenses: cfg.Expenses,
		auth:     services.NewAuthService(cfg.Auth, logger),
		logger:   logger.WithComponent(applog.ComponentApp),
		locale:   locale,
	}, nil
}

// User returns the logged-in user, if any.
func (a *App) User() (core.User, bool) {
	if a.user == nil {
		return core.User{}, false
	}
	return *a.user, true
}

// Run shows menus until the user quits, input ends or ctx is canceled. Those
// all return nil; only driver failures are reported.
func (a *App) Run(ctx context.Context) error {
	a.logger.InfoContext(ctx, "session started")
	defer a.logger.InfoContext(ctx, "session ended")

	for {
		var err error
		if a.user == nil {
			err = a.authMenu(ctx)
		} else {
			err = a.mainMenu(ctx)
		}
		switch {
		case err == nil:
		case errors.Is(err, errQuit), errors.Is(err, tui.ErrAborted),
			errors.Is(err, context.Canceled), ctx.Err() != nil:
			return nil
		default:
			return fmt.Errorf("run: %w", err)
		}
	}
}

const (
	menuLogin     = "Login"
	menuRegister  = "Register"
	menuDashboard = "Dashboard"
	menuList      = "Expenses"
	menuSearch    = "Search"
	menuAdd       = "Add expense"
	menuShow      = "Show expense"
	menuDelete    = "Delete expense"
	menuLogout    = "Logout"
	menuQuit      = "Quit"
	menuBack      = "Back"
	menuRefresh   = "Refresh"
)

func (a *App) authMenu(ctx context.Context) error {
	options := []string{menuLogin, menuRegister, menuQuit}
	idx, err := a.driver.Select(ctx, tui.SelectConfig{Message: "Welcome", Options: options})
	if err != nil {
		return err
	}
	switch options[idx] {
	case menuLogin:
		return a.login(ctx)
	case menuRegister:
		return a.register(ctx)
	default:
		return errQuit
	}
}

func (a *App) mainMenu(ctx context.Context) error {
	options := []string{menuDashboard, menuList, menuSearch, menuAdd, menuShow, menuDelete, menuLogout, menuQuit}
	idx, err := a.driver.Select(ctx, tui.SelectConfig{
		Message: fmt.Sprintf("Hello, %s", a.user.DisplayName()),
		Options: options,
	})
	if err != nil {
		return err
	}

	a.logger.WithComponent(applog.ComponentTUI).DebugContext(ctx, "screen opened", applog.FieldScreen, options[idx])
	switch options[idx] {
	case menuDashboard:
		return a.dashboard(ctx)
	case menuList:
		return a.list(ctx)
	case menuSearch:
		return a.search(ctx)
	case menuAdd:
		return a.add(ctx)
	case menuShow:
		return a.show(ctx)
	case menuDelete:
		return a.deleteByID(ctx)
	case menuLogout:
		return a.logout(ctx)
	default:
		return errQuit
	}
}

// newManager builds a manager for one screen. Notices raised by the manager
// are collected in rec and printed with flush.
func (a *App) newManager(filter string, rec *resource.Recorder) *expenseManager {
	return resource.NewManager[core.Expense, core.CreateExpenseData](a.expenses, resource.Config{
		Filter:   filter,
		Messages: resource.DefaultMessages("expense", "expenses"),
		Message:  api.Message,
		Classify: api.ErrorType,
		Notifier: rec,
		Logger:   a.logger,
	})
}

func (a *App) notify(ctx context.Context, n resource.Notice) error {
	return a.driver.Info(ctx, formatNotice(n))
}

func (a *App) flush(ctx context.Context, rec *resource.Recorder) error {
	for _, n := range rec.Drain() {
		if err := a.notify(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) success(ctx context.Context, title, text string) error {
	return a.notify(ctx, resource.Notice{Level: resource.LevelSuccess, Title: title, Text: text})
}

func (a *App) failure(ctx context.Context, title, text string) error {
	return a.notify(ctx, resource.Notice{Level: resource.LevelError, Title: title, Text: text})
}
