package forms_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spese-client/internal/forms"
)

func TestSchemasAreWellFormed(t *testing.T) {
	for name, s := range map[string]interface{ Validate() error }{
		"login":             forms.Login,
		"register personal": forms.RegisterPersonal,
		"register clinic":   forms.RegisterClinic,
		"register password": forms.RegisterPassword,
		"new expense":       forms.NewExpense,
		"search":            forms.Search,
	} {
		assert.NoError(t, s.Validate(), name)
	}
}

func TestForm_CheckIsIncremental(t *testing.T) {
	f := forms.New(forms.Login)
	assert.True(t, f.Valid())

	assert.Equal(t, "Please enter a valid email address", f.Check(forms.FieldUsername, "anna@"))
	assert.Equal(t, "", f.Error(forms.FieldPassword), "other fields untouched")
	assert.False(t, f.Valid())

	assert.Equal(t, "", f.Check(forms.FieldUsername, "anna@example.com"))
	assert.True(t, f.Valid())

	assert.Equal(t, "", f.Check("nickname", "x"))
	assert.NotContains(t, f.Errors(), "nickname")
}

func TestForm_Submit(t *testing.T) {
	f := forms.New(forms.NewExpense)
	ok := f.Submit(map[string]string{"name": "Coffee", "amount": "2.505", "description": "ab"})
	assert.False(t, ok)

	want := map[string]string{
		"name":        "",
		"amount":      "Please enter a valid amount (e.g. 10.50)",
		"description": "Description must be at least 3 characters",
	}
	if diff := cmp.Diff(want, f.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	require.True(t, f.Submit(map[string]string{"name": "Coffee", "amount": "2.50", "description": "espresso"}))
	assert.True(t, f.Valid())
}

func TestForm_Validator(t *testing.T) {
	f := forms.New(forms.Search)
	v := f.Validator(forms.FieldSearch)

	assert.NoError(t, v(""))
	assert.NoError(t, v(strings.Repeat("a", 50)))

	err := v(strings.Repeat("a", 51))
	require.EqualError(t, err, "Search query is too long")
	assert.Equal(t, "Search query is too long", f.Error(forms.FieldSearch))
}

func TestForm_RequireMatch(t *testing.T) {
	f := forms.New(forms.RegisterPassword).
		RequireMatch(forms.FieldConfirmPassword, forms.FieldPassword, forms.MsgPasswordsDoNotMatch)

	ok := f.Submit(map[string]string{"password": "123", "confirmPassword": "1234"})
	assert.False(t, ok)
	assert.Equal(t, forms.MsgPasswordsDoNotMatch, f.Error(forms.FieldConfirmPassword))
	assert.Equal(t, "", f.Error(forms.FieldPassword), "schema does not run on mismatch")

	ok = f.Submit(map[string]string{"password": "123", "confirmPassword": "123"})
	assert.False(t, ok)
	assert.Equal(t, "Password must be at least 6 characters", f.Error(forms.FieldPassword))
	assert.Equal(t, "", f.Error(forms.FieldConfirmPassword))

	assert.True(t, f.Submit(map[string]string{"password": "123456", "confirmPassword": "123456"}))
}

func TestRegisterSteps(t *testing.T) {
	personal := forms.New(forms.RegisterPersonal)
	assert.False(t, personal.Submit(map[string]string{"name": "Anna", "email": "anna@example", "whatsapp": " "}))
	assert.Equal(t, []string{"email", "whatsapp"}, failed(personal))

	clinic := forms.New(forms.RegisterClinic)
	assert.True(t, clinic.Submit(map[string]string{
		"clinicName": "Vet", "cnpj": "12.345.678/0001-90", "address": "Rua A, 1",
	}))
}

func failed(f *forms.Form) []string {
	var out []string
	for _, name := range f.Schema().Fields() {
		if f.Error(name) != "" {
			out = append(out, name)
		}
	}
	return out
}
