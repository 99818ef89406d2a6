package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/nao1215/housepred/internal/model"
)

// Signup validation errors. Nothing is written when Validate fails.
var (
	ErrNameRequired     = errors.New("name is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrTermsNotAccepted = errors.New("the terms of service must be accepted")
)

// SignupForm is the input of the signup flow. The password is only
// compared with its confirmation; it is never stored.
type SignupForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	TermsAccepted   bool
}

// Validate checks the form before anything is written. Name, email and
// password must be non-blank, the confirmation must match the password and
// the terms must be accepted.
func (f SignupForm) Validate() error {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return ErrNameRequired
	case strings.TrimSpace(f.Email) == "":
		return ErrEmailRequired
	case f.Password == "":
		return ErrPasswordRequired
	case f.Password != f.ConfirmPassword:
		return ErrPasswordMismatch
	case !f.TermsAccepted:
		return ErrTermsNotAccepted
	}
	return nil
}

// Register validates form and, if it is valid, creates the profile.
func (s *Store) Register(ctx context.Context, form SignupForm) (model.UserProfile, error) {
	if err := form.Validate(); err != nil {
		return model.UserProfile{}, err
	}
	return s.Signup(ctx, form.Name, form.Email)
}
