package handler

import (
	"context"
	"errors"

	"clinic-api/internal/auth"
	"clinic-api/internal/model"
	"clinic-api/internal/store"
	"clinic-api/internal/validation"
)

type signupRequest struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	Phone    string `mapstructure:"phone"`
	Password string `mapstructure:"password"`
	Location string `mapstructure:"location"`
}

// Register creates an account. Uniqueness of the email is left to the
// store's unique index, so concurrent signups cannot both succeed.
func (h *Handler) Register(ctx context.Context, body []byte) (*Ack, error) {
	var req signupRequest
	if err := validation.Account.Decode(body, &req); err != nil {
		return nil, validationFailed(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, persistenceFailed(err)
	}

	a := &model.Account{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Location:     req.Location,
	}
	if err := h.store.CreateAccount(ctx, a); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, &Error{Kind: KindDuplicateEmail, Detail: msgDuplicateEmail, Err: err}
		}
		h.log.ErrorContext(ctx, "create account", "err", err)
		return nil, persistenceFailed(err)
	}

	h.log.InfoContext(ctx, "account created", "account_id", a.ID)
	return &Ack{Message: "Account created successfully."}, nil
}

// Authenticate checks email and password and returns the public profile.
// Unknown email and wrong password are indistinguishable to the caller.
func (h *Handler) Authenticate(ctx context.Context, email, password string) (*model.Profile, error) {
	if email == "" || password == "" {
		return nil, &Error{Kind: KindMissingCredentials, Detail: msgMissingCredentials}
	}

	a, err := h.store.AccountByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &Error{Kind: KindInvalidCredentials, Detail: msgInvalidCredentials}
	}
	if err != nil {
		h.log.ErrorContext(ctx, "account lookup", "err", err)
		return nil, persistenceFailed(err)
	}

	if !auth.CheckPassword(a.PasswordHash, password) {
		return nil, &Error{Kind: KindInvalidCredentials, Detail: msgInvalidCredentials}
	}

	p := a.Profile()
	return &p, nil
}
