package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

type (
	// Expense is the resource managed by the client. ID and CreatedAt are
	// assigned by the remote service.
	Expense struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Amount      string    `json:"amount"` // decimal as string, e.g. "10.5"
		Description string    `json:"description"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	// CreateExpenseData is the payload of a create request.
	CreateExpenseData struct {
		Name        string `json:"name"`
		Amount      string `json:"amount"`
		Description string `json:"description"`
	}

	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}

	LoginCredentials struct {
		Username string
		Password string
	}

	// RegisterData is collected across the three registration steps. Only
	// Email, Password and Name are sent to the remote service.
	RegisterData struct {
		Name       string
		Email      string
		WhatsApp   string
		ClinicName string
		CNPJ       string
		Address    string
		Password   string
	}
)

var ErrEmptyID = errors.New("empty id")

// ResourceID implements resource.Resource.
func (e Expense) ResourceID() string {
	return e.ID
}

// Money returns the parsed amount. Amounts that do not parse count as zero.
func (e Expense) Money() Money {
	cents, err := ParseDecimalToCents(e.Amount)
	if err != nil {
		return Money{}
	}
	return Money{Cents: cents}
}

// UnmarshalJSON decodes an expense without failing on createdAt. Servers
// send RFC 3339 strings, bare dates, epoch seconds or milliseconds, or
// nothing at all; anything unrecognised decodes as the zero time.
func (e *Expense) UnmarshalJSON(data []byte) error {
	type plain Expense
	aux := struct {
		*plain
		CreatedAt json.RawMessage `json:"createdAt"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.CreatedAt = parseTimestamp(aux.CreatedAt)
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// epochMillisThreshold separates epoch seconds from epoch milliseconds.
const epochMillisThreshold = 1e11

func parseTimestamp(raw json.RawMessage) time.Time {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return time.Time{}
		}
		text = strings.TrimSpace(text)
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, text); err == nil {
				return t
			}
		}
	}

	n, err := strconv.ParseFloat(text, 64)
	if err != nil || n <= 0 {
		return time.Time{}
	}
	if n >= epochMillisThreshold {
		return time.UnixMilli(int64(n)).UTC()
	}
	return time.Unix(int64(n), 0).UTC()
}

// DisplayName returns the user's name, falling back to the username.
func (u User) DisplayName() string {
	if n := strings.TrimSpace(u.Name); n != "" {
		return n
	}
	return u.Username
}
