package store

import (
	"context"
	"fmt"

	"clinic-api/internal/model"
)

func (s *Store) CreateContact(ctx context.Context, c *model.Contact) error {
	doc, err := toDocument(c)
	if err != nil {
		return err
	}
	id, err := s.db.InsertOne(ctx, Contacts, doc)
	if err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	c.ID = id
	return nil
}
