package store

import (
	"context"
	"fmt"

	"clinic-api/internal/model"
)

// CreateAccount inserts a and sets its ID. An existing account with the
// same email yields an error wrapping ErrDuplicate.
func (s *Store) CreateAccount(ctx context.Context, a *model.Account) error {
	doc, err := toDocument(a)
	if err != nil {
		return err
	}
	id, err := s.db.InsertOne(ctx, Users, doc)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	a.ID = id
	return nil
}

func (s *Store) AccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	doc, err := s.db.FindOne(ctx, Users, Filter{"email": email})
	if err != nil {
		return nil, fmt.Errorf("account by email: %w", err)
	}
	a := &model.Account{}
	if err := fromDocument(doc, a); err != nil {
		return nil, err
	}
	return a, nil
}
