package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

const (
	Database = "clinic"

	Users        = "users"
	Appointments = "appointments"
	Contacts     = "contacts"

	// IDField holds the store-generated id, always rendered as a string.
	IDField = "_id"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

type Document map[string]any

// Filter matches documents whose fields equal every given value.
type Filter map[string]any

type CollectionSpec struct {
	Name   string
	Unique []string
}

// Collections lists every collection the clinic uses. users.email is the
// only uniqueness constraint.
var Collections = []CollectionSpec{
	{Name: Users, Unique: []string{"email"}},
	{Name: Appointments},
	{Name: Contacts},
}

// Backend is a document database. FindOne returns ErrNotFound when nothing
// matches, InsertOne returns ErrDuplicate when a unique index rejects the
// document, and FindMany returns documents in insertion order.
type Backend interface {
	Prepare(ctx context.Context, specs []CollectionSpec) error
	InsertOne(ctx context.Context, collection string, doc Document) (string, error)
	FindOne(ctx context.Context, collection string, filter Filter) (Document, error)
	FindMany(ctx context.Context, collection string, filter Filter) ([]Document, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type Store struct {
	db Backend
}

func New(db Backend) *Store {
	return &Store{db: db}
}

// Init creates collections and unique indexes. Safe to call on every start.
func (s *Store) Init(ctx context.Context) error {
	return s.db.Prepare(ctx, Collections)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.db.Close(ctx)
}

func toDocument(v any) (Document, error) {
	doc := Document{}
	if err := mapstructure.Decode(v, &doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	delete(doc, IDField)
	return doc, nil
}

func fromDocument(doc Document, out any) error {
	if err := mapstructure.Decode(map[string]any(doc), out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
