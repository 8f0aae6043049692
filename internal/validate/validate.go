package validate

import (
	"fmt"
	"math"
	"net/mail"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Result is the outcome of validating a record against a schema. Errors has
// exactly one entry per schema field; an empty string means the field is valid.
type Result struct {
	IsValid bool
	Errors  map[string]string
}

// Validate evaluates every rule in schema against data. Fields present in data
// but absent from schema are ignored; schema fields missing from data are
// treated as empty.
func Validate(data map[string]string, schema Schema) Result {
	res := Result{IsValid: true, Errors: make(map[string]string, len(schema))}
	for name, rule := range schema {
		msg := check(data[name], rule)
		res.Errors[name] = msg
		if msg != "" {
			res.IsValid = false
		}
	}
	return res
}

// ValidateField evaluates a single field. It returns "" when the value is
// valid or when the field is not part of schema.
func ValidateField(name, value string, schema Schema) string {
	rule, ok := schema[name]
	if !ok {
		return ""
	}
	return check(value, rule)
}

// Message returns the message recorded for field, or "".
func (r Result) Message(field string) string {
	return r.Errors[field]
}

// Failed returns the names of failing fields in sorted order.
func (r Result) Failed() []string {
	var out []string
	for name, msg := range r.Errors {
		if msg != "" {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Err converts the result to an error value, or nil when the record is valid.
func (r Result) Err() error {
	if r.IsValid {
		return nil
	}
	failed := r.Failed()
	errs := make(ValidationErrors, 0, len(failed))
	for _, name := range failed {
		errs = append(errs, FieldError{Field: name, Message: r.Errors[name]})
	}
	return errs
}

// check applies one rule: required, then kind, then length, then pattern.
// The first failing constraint wins and the rule's message is returned.
func check(raw string, rule Rule) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		if rule.Required {
			return rule.Message
		}
		return ""
	}
	if !matchesKind(value, rule.Kind) {
		return rule.Message
	}
	n := utf8.RuneCountInString(value)
	if rule.MinLength > 0 && n < rule.MinLength {
		return rule.Message
	}
	if rule.MaxLength > 0 && n > rule.MaxLength {
		return rule.Message
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
		return rule.Message
	}
	return ""
}

func matchesKind(value string, kind Kind) bool {
	switch kind {
	case KindEmail:
		return isEmail(value)
	case KindNumber:
		f, err := strconv.ParseFloat(value, 64)
		return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
	default:
		return true
	}
}

// isEmail accepts the plain local@domain.tld shape. Display names and
// comments that net/mail would otherwise tolerate are rejected.
func isEmail(value string) bool {
	if strings.ContainsAny(value, " \t<>") {
		return false
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	at := strings.LastIndex(value, "@")
	if at <= 0 {
		return false
	}
	domain := value[at+1:]
	if !strings.Contains(domain, ".") {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return false
		}
	}
	return true
}

// FieldError is a single field failure.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is the error form of a failed Result.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(ve))
	for _, e := range ve {
		parts = append(parts, e.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
