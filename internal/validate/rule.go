// Package validate implements a small declarative validation engine for form
// input. A Schema maps field names to a single Rule; Validate evaluates every
// rule in the schema against a record of raw string values and reports one
// message per failing field.
//
// The engine is pure. It never returns an error for bad input, it never
// touches I/O, and the same inputs always produce the same Result, so it can
// run on every keystroke as well as on submit.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Kind is the expected shape of a field value.
type Kind string

const (
	KindString Kind = "string"
	KindEmail  Kind = "email"
	KindNumber Kind = "number"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindString, KindEmail, KindNumber:
		return true
	default:
		return false
	}
}

// Rule describes the constraints on one field. Zero MinLength/MaxLength and a
// nil Pattern mean the constraint is not set. Message is reported for every
// failure of the rule.
type Rule struct {
	Kind      Kind
	Required  bool
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
	Message   string
}

// Schema maps a field name to its rule.
type Schema map[string]Rule

var (
	ErrUnknownKind   = errors.New("unknown rule kind")
	ErrInvalidBounds = errors.New("invalid length bounds")
	ErrEmptyMessage  = errors.New("empty rule message")
)

// Validate checks that the schema itself is well formed. It is meant to be
// called once when a schema is declared, not on every evaluation.
func (s Schema) Validate() error {
	var errs []string
	for _, name := range s.Fields() {
		r := s[name]
		if !r.Kind.Valid() {
			errs = append(errs, fmt.Sprintf("%s: %v %q", name, ErrUnknownKind, r.Kind))
		}
		if r.MinLength < 0 || r.MaxLength < 0 || (r.MaxLength > 0 && r.MinLength > r.MaxLength) {
			errs = append(errs, fmt.Sprintf("%s: %v min=%d max=%d", name, ErrInvalidBounds, r.MinLength, r.MaxLength))
		}
		if strings.TrimSpace(r.Message) == "" {
			errs = append(errs, fmt.Sprintf("%s: %v", name, ErrEmptyMessage))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid schema:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// Fields returns the schema field names in sorted order.
func (s Schema) Fields() []string {
	fields := make([]string, 0, len(s))
	for name := range s {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

// MustSchema panics if s is malformed. Use it for package-level schema
// declarations.
func MustSchema(s Schema) Schema {
	if err := s.Validate(); err != nil {
		panic(err)
	}
	return s
}
