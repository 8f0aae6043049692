package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"spese-client/internal/core"
)

// Auth implements the user endpoints.
//
// Users are looked up by username and the password is checked on the client.
// Only bcrypt hashes are ever stored or compared; a stored plaintext password
// never matches.
type Auth struct {
	c *Client
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// Login returns the user matching creds. The returned user has its password
// field cleared.
func (a *Auth) Login(ctx context.Context, creds core.LoginCredentials) (core.User, error) {
	user, found, err := a.lookup(ctx, creds.Username)
	if err != nil {
		return core.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if !found {
		return core.User{}, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		return core.User{}, ErrInvalidPassword
	}
	user.Password = ""
	return user, nil
}

// Register creates a user after checking the username is free.
func (a *Auth) Register(ctx context.Context, data core.RegisterData) (core.User, error) {
	_, found, err := a.lookup(ctx, data.Email)
	if err != nil {
		return core.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if found {
		return core.User{}, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), a.c.bcryptCost)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}

	var out core.User
	req := createUserRequest{
		Username: strings.TrimSpace(data.Email),
		Password: string(hash),
		Name:     strings.TrimSpace(data.Name),
	}
	if err := a.c.do(ctx, http.MethodPost, a.c.endpoint(nil, "users"), req, &out); err != nil {
		if StatusCode(err) == http.StatusConflict {
			return core.User{}, ErrEmailExists
		}
		return core.User{}, fmt.Errorf("create user: %w", err)
	}
	out.Password = ""
	return out, nil
}

// lookup fetches the user with exactly this username. The service filters by
// substring and answers 404 when nothing matches.
func (a *Auth) lookup(ctx context.Context, username string) (core.User, bool, error) {
	username = strings.TrimSpace(username)
	var users []core.User
	err := a.c.do(ctx, http.MethodGet, a.c.endpoint(url.Values{"username": {username}}, "users"), nil, &users)
	if errors.Is(err, ErrNotFound) {
		return core.User{}, false, nil
	}
	if err != nil {
		return core.User{}, false, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return u, true, nil
		}
	}
	return core.User{}, false, nil
}
