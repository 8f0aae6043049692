package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"spese-client/internal/forms"
	applog "spese-client/internal/log"
)

// FormError reports a submission rejected before any request was sent.
// Errors holds one message per failing field.
type FormError struct {
	Step   int // registration step, 0 for single-step forms
	Errors map[string]string
}

func newFormError(step int, f *forms.Form) *FormError {
	errs := make(map[string]string)
	for name, msg := range f.Errors() {
		if msg != "" {
			errs[name] = msg
		}
	}
	return &FormError{Step: step, Errors: errs}
}

// rejectForm builds the FormError for f and logs the rejection.
func rejectForm(ctx context.Context, logger *applog.Logger, step int, f *forms.Form) *FormError {
	fe := newFormError(step, f)
	fields := applog.NewFields().
		WithOperation(applog.OpValidate).
		WithError(fe).
		WithErrorType(applog.ErrorTypeValidation)
	if step != 0 {
		fields[applog.FieldStep] = step
	}
	logger.InfoContext(ctx, "form rejected", fields.ToSlice()...)
	return fe
}

func (e *FormError) Error() string {
	names := make([]string, 0, len(e.Errors))
	for name := range e.Errors {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Errors[name])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Field returns the message for name, or "".
func (e *FormError) Field(name string) string {
	return e.Errors[name]
}

// AsFormError unwraps err to a *FormError.
func AsFormError(err error) (*FormError, bool) {
	var fe *FormError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
