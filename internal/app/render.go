package app

import (
	"fmt"
	"strings"
	"time"

	"spese-client/internal/core"
	"spese-client/internal/resource"
)

const dateLayout = "2006-01-02"

func formatNotice(n resource.Notice) string {
	if n.Text == "" {
		return fmt.Sprintf("[%s] %s", n.Level, n.Title)
	}
	return fmt.Sprintf("[%s] %s: %s", n.Level, n.Title, n.Text)
}

func (a *App) amount(m core.Money) string {
	return "$" + m.Format(a.locale)
}

func (a *App) renderSummary(s core.Summary) string {
	var b strings.Builder
	b.WriteString("Dashboard\n")
	fmt.Fprintf(&b, "Total Expenses: %d\n", s.Count)
	fmt.Fprintf(&b, "Total Amount: %s\n", a.amount(s.Total))
	if len(s.Top) == 0 {
		b.WriteString("No expenses yet. Add your first expense!")
		return b.String()
	}
	b.WriteString("Top Expenses:")
	for i, e := range s.Top {
		fmt.Fprintf(&b, "\n  %d. %s %s", i+1, e.Name, a.amount(e.Money()))
	}
	return b.String()
}

func (a *App) renderList(items []core.Expense, empty string) string {
	if len(items) == 0 {
		return empty
	}
	lines := make([]string, 0, len(items))
	for _, e := range items {
		lines = append(lines, fmt.Sprintf("%s  %-20s %10s  %s",
			formatDate(e.CreatedAt), e.Name, a.amount(e.Money()), e.Description))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderDetail(e core.Expense) string {
	return strings.Join([]string{
		e.Name,
		"Amount: " + a.amount(e.Money()),
		"Description: " + e.Description,
		"Created: " + formatDate(e.CreatedAt),
		"ID: " + e.ID,
	}, "\n")
}

// formatDate renders t, or a dash when the server sent no usable date.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

// label is the select option for e. The id keeps labels unique.
func (a *App) label(e core.Expense) string {
	return fmt.Sprintf("%s %s [%s]", e.Name, a.amount(e.Money()), e.ID)
}
