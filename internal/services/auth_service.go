package services

import (
	"context"
	"fmt"
	"strings"

	"spese-client/internal/core"
	"spese-client/internal/forms"
	applog "spese-client/internal/log"
)

// Registration steps.
const (
	StepPersonal = 1
	StepClinic   = 2
	StepPassword = 3
)

// Authenticator is the remote side of login and registration.
type Authenticator interface {
	Login(ctx context.Context, creds core.LoginCredentials) (core.User, error)
	Register(ctx context.Context, data core.RegisterData) (core.User, error)
}

// LoginInput is what the user typed on the login screen.
type LoginInput struct {
	Username string
	Password string
}

// RegisterInput collects the three registration steps.
type RegisterInput struct {
	Name            string
	Email           string
	WhatsApp        string
	ClinicName      string
	CNPJ            string
	Address         string
	Password        string
	ConfirmPassword string
}

// AuthService validates credentials before they reach the remote service.
type AuthService struct {
	auth   Authenticator
	logger *applog.Logger
}

func NewAuthService(auth Authenticator, logger *applog.Logger) *AuthService {
	if logger == nil {
		logger = applog.FromContext(context.Background())
	}
	return &AuthService{
		auth:   auth,
		logger: logger.WithComponent(applog.ComponentAuth),
	}
}

// Login validates in and authenticates. A validation failure returns
// *FormError.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (core.User, error) {
	form := forms.New(forms.Login)
	if !form.Submit(map[string]string{
		forms.FieldUsername: in.Username,
		forms.FieldPassword: in.Password,
	}) {
		return core.User{}, rejectForm(ctx, s.logger, 0, form)
	}

	username := strings.TrimSpace(in.Username)
	user, err := s.auth.Login(ctx, core.LoginCredentials{Username: username, Password: in.Password})
	if err != nil {
		s.logger.WarnContext(ctx, "login failed",
			applog.NewFields().WithOperation(applog.OpLogin).WithError(err).ToSlice()...)
		return core.User{}, fmt.Errorf("login: %w", err)
	}
	s.logger.InfoContext(ctx, "user logged in", applog.FieldUsername, user.Username)
	return user, nil
}

// ValidateStep checks one registration step. Step three also requires the
// passwords to match.
func (s *AuthService) ValidateStep(ctx context.Context, step int, in RegisterInput) error {
	var form *forms.Form
	var data map[string]string
	switch step {
	case StepPersonal:
		form = forms.New(forms.RegisterPersonal)
		data = map[string]string{
			forms.FieldName:     in.Name,
			forms.FieldEmail:    in.Email,
			forms.FieldWhatsApp: in.WhatsApp,
		}
	case StepClinic:
		form = forms.New(forms.RegisterClinic)
		data = map[string]string{
			forms.FieldClinicName: in.ClinicName,
			forms.FieldCNPJ:       in.CNPJ,
			forms.FieldAddress:    in.Address,
		}
	case StepPassword:
		form = forms.New(forms.RegisterPassword).
			RequireMatch(forms.FieldConfirmPassword, forms.FieldPassword, forms.MsgPasswordsDoNotMatch)
		data = map[string]string{
			forms.FieldPassword:        in.Password,
			forms.FieldConfirmPassword: in.ConfirmPassword,
		}
	default:
		return fmt.Errorf("validate step: unknown step %d", step)
	}
	if !form.Submit(data) {
		return rejectForm(ctx, s.logger, step, form)
	}
	return nil
}

// Register validates every step in order and creates the user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (core.User, error) {
	for _, step := range []int{StepPersonal, StepClinic, StepPassword} {
		if err := s.ValidateStep(ctx, step, in); err != nil {
			return core.User{}, err
		}
	}

	user, err := s.auth.Register(ctx, core.RegisterData{
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		WhatsApp:   strings.TrimSpace(in.WhatsApp),
		ClinicName: strings.TrimSpace(in.ClinicName),
		CNPJ:       strings.TrimSpace(in.CNPJ),
		Address:    strings.TrimSpace(in.Address),
		Password:   in.Password,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "registration failed",
			applog.NewFields().WithOperation(applog.OpRegister).WithError(err).ToSlice()...)
		return core.User{}, fmt.Errorf("register: %w", err)
	}
	s.logger.InfoContext(ctx, "user registered", applog.FieldUsername, user.Username)
	return user, nil
}
