package app

import (
	"context"
	"errors"
	"sort"
	"strings"

	"spese-client/internal/api"
	"spese-client/internal/forms"
	"spese-client/internal/services"
	"spese-client/internal/tui"
)

func (a *App) login(ctx context.Context) error {
	form := forms.New(forms.Login)
	username, err := a.driver.Input(ctx, tui.InputConfig{
		Message:   "Email",
		Validator: form.Validator(forms.FieldUsername),
	})
	if err != nil {
		return err
	}
	password, err := a.driver.Password(ctx, tui.InputConfig{
		Message:   "Password",
		Validator: form.Validator(forms.FieldPassword),
	})
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, services.LoginInput{Username: username, Password: password})
	if err != nil {
		return a.reportAuthError(ctx, "Login failed", err)
	}
	a.user = &user
	return a.success(ctx, "Welcome", "Logged in as "+user.DisplayName())
}

func (a *App) register(ctx context.Context) error {
	var in services.RegisterInput

	if err := a.driver.Info(ctx, stepTitle(services.StepPersonal)); err != nil {
		return err
	}
	if err := a.ask(ctx, forms.New(forms.RegisterPersonal),
		field{&in.Name, "Name", forms.FieldName},
		field{&in.Email, "Email", forms.FieldEmail},
		field{&in.WhatsApp, "WhatsApp", forms.FieldWhatsApp},
	); err != nil {
		return err
	}

	if err := a.driver.Info(ctx, stepTitle(services.StepClinic)); err != nil {
		return err
	}
	if err := a.ask(ctx, forms.New(forms.RegisterClinic),
		field{&in.ClinicName, "Clinic name", forms.FieldClinicName},
		field{&in.CNPJ, "CNPJ", forms.FieldCNPJ},
		field{&in.Address, "Address", forms.FieldAddress},
	); err != nil {
		return err
	}

	if err := a.driver.Info(ctx, stepTitle(services.StepPassword)); err != nil {
		return err
	}
	passwords := forms.New(forms.RegisterPassword)
	for {
		var err error
		in.Password, err = a.driver.Password(ctx, tui.InputConfig{
			Message:   "Password",
			Validator: passwords.Validator(forms.FieldPassword),
		})
		if err != nil {
			return err
		}
		in.ConfirmPassword, err = a.driver.Password(ctx, tui.InputConfig{
			Message:   "Confirm password",
			Validator: passwords.Validator(forms.FieldConfirmPassword),
		})
		if err != nil {
			return err
		}
		err = a.auth.ValidateStep(ctx, services.StepPassword, in)
		if err == nil {
			break
		}
		if err := a.reportAuthError(ctx, "Registration failed", err); err != nil {
			return err
		}
	}

	if _, err := a.auth.Register(ctx, in); err != nil {
		return a.reportAuthError(ctx, "Registration failed", err)
	}
	return a.success(ctx, "Success", "Registration successful! Please log in.")
}

// field is one text prompt whose answer is stored in dst.
type field struct {
	dst   *string
	label string
	name  string
}

// ask prompts for each field in turn, validating every answer with form.
func (a *App) ask(ctx context.Context, form *forms.Form, fields ...field) error {
	for _, f := range fields {
		v, err := a.driver.Input(ctx, tui.InputConfig{Message: f.label, Validator: form.Validator(f.name)})
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

func stepTitle(step int) string {
	switch step {
	case services.StepPersonal:
		return "Step 1 of 3: personal details"
	case services.StepClinic:
		return "Step 2 of 3: clinic details"
	default:
		return "Step 3 of 3: password"
	}
}

// reportAuthError shows err as a notice. Cancellation is returned so Run can
// stop.
func (a *App) reportAuthError(ctx context.Context, title string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	var fe *services.FormError
	if errors.As(err, &fe) {
		names := make([]string, 0, len(fe.Errors))
		for name := range fe.Errors {
			names = append(names, name)
		}
		sort.Strings(names)
		msgs := make([]string, 0, len(names))
		for _, name := range names {
			msgs = append(msgs, fe.Errors[name])
		}
		return a.failure(ctx, title, strings.Join(msgs, "; "))
	}
	return a.failure(ctx, title, api.Message(err))
}
