package forms

import (
	"errors"
	"maps"

	"spese-client/internal/validate"
)

// Form is the error state of one screen. Check is called as the user types,
// Submit when the user confirms.
type Form struct {
	schema validate.Schema
	errors map[string]string
	match  *match
}

type match struct {
	field, other, message string
}

// New returns a form with no errors for schema.
func New(schema validate.Schema) *Form {
	errs := make(map[string]string, len(schema))
	for name := range schema {
		errs[name] = ""
	}
	return &Form{schema: schema, errors: errs}
}

// RequireMatch makes Submit fail with message on field when data[field]
// differs from data[other]. The schema is not run in that case.
func (f *Form) RequireMatch(field, other, message string) *Form {
	f.match = &match{field: field, other: other, message: message}
	return f
}

// Schema returns the form's schema.
func (f *Form) Schema() validate.Schema {
	return f.schema
}

// Check validates one field, records the result and returns it.
func (f *Form) Check(name, value string) string {
	msg := validate.ValidateField(name, value, f.schema)
	if _, ok := f.schema[name]; ok {
		f.errors[name] = msg
	}
	return msg
}

// Validator returns a func suitable for prompt libraries: it runs Check and
// turns a message into an error.
func (f *Form) Validator(name string) func(string) error {
	return func(value string) error {
		if msg := f.Check(name, value); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}

// Submit validates data against the whole schema and replaces the error
// state. It reports whether the form may be sent.
func (f *Form) Submit(data map[string]string) bool {
	if m := f.match; m != nil && data[m.field] != data[m.other] {
		f.errors[m.field] = m.message
		return false
	}
	res := validate.Validate(data, f.schema)
	f.errors = res.Errors
	return res.IsValid
}

// Error returns the current message for name.
func (f *Form) Error(name string) string {
	return f.errors[name]
}

// Errors returns a copy of the current error state.
func (f *Form) Errors() map[string]string {
	return maps.Clone(f.errors)
}

// Valid reports whether no field currently has an error.
func (f *Form) Valid() bool {
	for _, msg := range f.errors {
		if msg != "" {
			return false
		}
	}
	return true
}
