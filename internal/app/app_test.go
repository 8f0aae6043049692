package app_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"spese-client/internal/api"
	"spese-client/internal/apitest"
	"spese-client/internal/app"
	"spese-client/internal/core"
	applog "spese-client/internal/log"
	"spese-client/internal/tui"
)

type harness struct {
	srv    *apitest.Server
	script *tui.Script
	app    *app.App
}

func newHarness(t *testing.T, answers ...string) *harness {
	t.Helper()
	srv := apitest.Start(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	srv.SeedUsers(core.User{Username: "anna@example.com", Password: string(hash), Name: "Anna"})

	client, err := api.New(srv.BaseURL(), api.WithLogger(applog.Discard()), api.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)

	script := tui.NewScript(answers...)
	a, err := app.New(app.Config{
		Driver:   script,
		Expenses: client.Expenses(),
		Auth:     client.Auth(),
		Logger:   applog.Discard(),
		Locale:   "en",
	})
	require.NoError(t, err)
	return &harness{srv: srv, script: script, app: a}
}

func (h *harness) run(t *testing.T) {
	t.Helper()
	require.NoError(t, h.app.Run(context.Background()))
	assert.Zero(t, h.script.Remaining(), "unused answers")
}

func loggedIn(answers ...string) []string {
	return append([]string{"Login", "anna@example.com", "secret1"}, answers...)
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := app.New(app.Config{})
	assert.Error(t, err)
}

func TestApp_QuitFromAuthMenu(t *testing.T) {
	h := newHarness(t, "Quit")
	h.run(t)
	_, ok := h.app.User()
	assert.False(t, ok)
}

func TestApp_EndOfInputStops(t *testing.T) {
	h := newHarness(t)
	h.run(t)
}

func TestApp_CanceledContextStops(t *testing.T) {
	h := newHarness(t, "Login")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, h.app.Run(ctx))
}

func TestApp_LoginValidatesEachEntry(t *testing.T) {
	h := newHarness(t, "Login", "anna", "anna@example.com", "123", "secret1", "Quit")
	h.run(t)

	assert.Equal(t, []string{
		"Please enter a valid email address",
		"Password must be at least 6 characters",
	}, h.script.Rejected())
	assert.Contains(t, h.script.Transcript(), "[success] Welcome: Logged in as Anna")

	user, ok := h.app.User()
	require.True(t, ok)
	assert.Equal(t, "anna@example.com", user.Username)
}

func TestApp_LoginFailures(t *testing.T) {
	h := newHarness(t,
		"Login", "bob@example.com", "secret1",
		"Login", "anna@example.com", "wrong12",
		"Quit")
	h.run(t)

	out := h.script.Transcript()
	assert.Contains(t, out, "[error] Login failed: User not found")
	assert.Contains(t, out, "[error] Login failed: Invalid password")
	_, ok := h.app.User()
	assert.False(t, ok)
}

func TestApp_Register(t *testing.T) {
	h := newHarness(t,
		"Register",
		"Bruno", "bruno@", "bruno@example.com", "+55 11 90000-0000",
		"Vet Center", "", "12.345.678/0001-90", "Rua A, 1",
		"secret1", "secret2",
		"secret1", "secret1",
		"Login", "bruno@example.com", "secret1",
		"Quit")
	h.run(t)

	assert.Equal(t, []string{"Please enter a valid email address", "Please enter the clinic CNPJ"}, h.script.Rejected())
	out := h.script.Transcript()
	assert.Contains(t, out, "Step 1 of 3: personal details")
	assert.Contains(t, out, "Step 3 of 3: password")
	assert.Contains(t, out, "[error] Registration failed: Passwords do not match")
	assert.Contains(t, out, "[success] Success: Registration successful! Please log in.")
	assert.Contains(t, out, "[success] Welcome: Logged in as Bruno")
	assert.Len(t, h.srv.Users(), 2)
}

func TestApp_RegisterExistingEmail(t *testing.T) {
	h := newHarness(t,
		"Register",
		"Anna", "anna@example.com", "+55 11 90000-0000",
		"Vet Center", "12.345.678/0001-90", "Rua A, 1",
		"secret1", "secret1",
		"Quit")
	h.run(t)

	assert.Contains(t, h.script.Transcript(), "[error] Registration failed: Email already exists")
	assert.Zero(t, h.srv.Hits(apitest.RouteCreateUser))
}

func TestApp_Dashboard(t *testing.T) {
	h := newHarness(t, loggedIn("Dashboard", "Quit")...)
	h.srv.SeedExpenses(
		core.Expense{Name: "Coffee", Amount: "2.5", Description: "espresso"},
		core.Expense{Name: "Rent", Amount: "900", Description: "march"},
		core.Expense{Name: "Groceries", Amount: "42.1", Description: "weekly"},
		core.Expense{Name: "Book", Amount: "15", Description: "novel"},
	)
	h.run(t)

	out := h.script.Transcript()
	assert.Contains(t, out, "Total Expenses: 4")
	assert.Contains(t, out, "Total Amount: $959.60")
	assert.Contains(t, out, "Top Expenses:\n  1. Rent $900.00\n  2. Groceries $42.10\n  3. Book $15.00")
	assert.NotContains(t, out, "4. Coffee")
}

func TestApp_DashboardEmptyAndFailing(t *testing.T) {
	h := newHarness(t, loggedIn("Dashboard", "Dashboard", "Quit")...)
	h.srv.FailNext(apitest.RouteListExpenses, http.StatusBadGateway)
	h.run(t)

	out := h.script.Transcript()
	assert.Contains(t, out, "Error: Request failed with status code 502")
	assert.Contains(t, out, "No expenses yet. Add your first expense!")
}

func TestApp_AddExpense(t *testing.T) {
	h := newHarness(t, loggedIn(
		"Add expense",
		"", "Coffee",
		"abc", "2.50",
		"ab", "espresso",
		"Quit")...)
	h.run(t)

	assert.Equal(t, []string{
		"Name is required",
		"Please enter a valid amount (e.g. 10.50)",
		"Description must be at least 3 characters",
	}, h.script.Rejected())
	assert.Contains(t, h.script.Transcript(), "[success] Success: Expense created successfully")

	stored := h.srv.Expenses()
	require.Len(t, stored, 1)
	assert.Equal(t, "Coffee", stored[0].Name)
	assert.Equal(t, "2.5", stored[0].Amount)
}

func TestApp_AddExpenseRemoteFailure(t *testing.T) {
	h := newHarness(t, loggedIn("Add expense", "Coffee", "2.50", "espresso", "Quit")...)
	h.srv.FailNext(apitest.RouteCreateExpense, http.StatusInternalServerError)
	h.run(t)

	assert.Contains(t, h.script.Transcript(), "[error] Error: Request failed with status code 500")
	assert.Empty(t, h.srv.Expenses())
}

func TestApp_ListOpenAndDelete(t *testing.T) {
	h := newHarness(t)
	seeded := h.srv.SeedExpenses(
		core.Expense{Name: "Coffee", Amount: "2.5", Description: "espresso"},
		core.Expense{Name: "Rent", Amount: "900", Description: "march"},
	)
	coffee := "Coffee $2.50 [" + seeded[0].ID + "]"
	h.script.Push(loggedIn("Expenses", coffee, "Delete", "y", "Back", "Quit")...)
	h.run(t)

	out := h.script.Transcript()
	assert.Contains(t, out, "Amount: $2.50\nDescription: espresso")
	assert.Contains(t, out, "[success] Expense deleted successfully")

	stored := h.srv.Expenses()
	require.Len(t, stored, 1)
	assert.Equal(t, "Rent", stored[0].Name)
}

func TestApp_ShowMissingExpense(t *testing.T) {
	h := newHarness(t, loggedIn("Show expense", " ", "nope", "Quit")...)
	h.run(t)

	assert.Equal(t, []string{"ID is required"}, h.script.Rejected())
	assert.Contains(t, h.script.Transcript(), "[error] Failed to fetch expense details: Not found")
}

func TestApp_DeleteMissingExpense(t *testing.T) {
	h := newHarness(t, loggedIn("Delete expense", "nope", "y", "Delete expense", "nope", "n", "Quit")...)
	h.run(t)

	out := h.script.Transcript()
	assert.Contains(t, out, "[error] Failed to delete expense: Not found")
	assert.Equal(t, 1, h.srv.Hits(apitest.RouteDeleteExpense), "declined confirm sends nothing")
}

func TestApp_Search(t *testing.T) {
	h := newHarness(t, loggedIn(
		"Search", "zzz", "New search", "rent", "Back",
		"Quit")...)
	h.srv.SeedExpenses(
		core.Expense{Name: "Coffee", Amount: "2.5", Description: "espresso"},
		core.Expense{Name: "Rent", Amount: "900", Description: "march"},
	)
	h.run(t)

	out := h.script.Transcript()
	assert.Contains(t, out, "No expenses found matching your search")
	assert.Contains(t, out, "Rent")
	assert.NotContains(t, out, "espresso")
	assert.Equal(t, 2, h.srv.Hits(apitest.RouteListExpenses))
}

func TestApp_SearchTooLong(t *testing.T) {
	long := "abcdefghijabcdefghijabcdefghijabcdefghijabcdefghijx"
	h := newHarness(t, loggedIn("Search", long, "", "Back", "Quit")...)
	h.run(t)

	assert.Equal(t, []string{"Search query is too long"}, h.script.Rejected())
	assert.Contains(t, h.script.Transcript(), "No expenses yet. Add your first expense!")
}

func TestApp_Logout(t *testing.T) {
	h := newHarness(t, loggedIn("Logout", "n", "Logout", "y", "Quit")...)
	h.run(t)

	assert.Contains(t, h.script.Transcript(), "[success] Logged out: Goodbye, Anna")
	_, ok := h.app.User()
	assert.False(t, ok)
}
