package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// Postgres keeps each collection in its own table of JSONB documents.
// seq preserves insertion order.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return NewPostgres(pool), nil
}

func (p *Postgres) Prepare(ctx context.Context, specs []CollectionSpec) error {
	for _, spec := range specs {
		table := pgx.Identifier{spec.Name}.Sanitize()
		_, err := p.pool.Exec(ctx, fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %s (
				seq BIGSERIAL PRIMARY KEY,
				id  TEXT NOT NULL UNIQUE,
				doc JSONB NOT NULL
			)`, table))
		if err != nil {
			return fmt.Errorf("postgres create %s: %w", spec.Name, err)
		}

		for _, field := range spec.Unique {
			index := pgx.Identifier{spec.Name + "_" + field + "_key"}.Sanitize()
			_, err := p.pool.Exec(ctx, fmt.Sprintf(
				`CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s ((doc->>%s))`,
				index, table, quoteLiteral(field)))
			if err != nil {
				return fmt.Errorf("postgres unique index %s.%s: %w", spec.Name, field, err)
			}
		}
	}
	return nil
}

func (p *Postgres) InsertOne(ctx context.Context, collection string, doc Document) (string, error) {
	body, err := json.Marshal(withoutID(doc))
	if err != nil {
		return "", fmt.Errorf("postgres encode %s: %w", collection, err)
	}

	id := uuid.New().String()
	_, err = p.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, pgx.Identifier{collection}.Sanitize()),
		id, string(body),
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return "", fmt.Errorf("postgres insert %s: %w", collection, ErrDuplicate)
	}
	if err != nil {
		return "", fmt.Errorf("postgres insert %s: %w", collection, err)
	}
	return id, nil
}

func (p *Postgres) FindOne(ctx context.Context, collection string, filter Filter) (Document, error) {
	match, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("postgres encode filter: %w", err)
	}

	var (
		id  string
		raw []byte
	)
	err = p.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT id, doc FROM %s WHERE doc @> $1 ORDER BY seq LIMIT 1`,
			pgx.Identifier{collection}.Sanitize()),
		string(match),
	).Scan(&id, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres find %s: %w", collection, err)
	}
	return decodeRow(id, raw)
}

func (p *Postgres) FindMany(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	match, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("postgres encode filter: %w", err)
	}

	rows, err := p.pool.Query(ctx,
		fmt.Sprintf(`SELECT id, doc FROM %s WHERE doc @> $1 ORDER BY seq`,
			pgx.Identifier{collection}.Sanitize()),
		string(match),
	)
	if err != nil {
		return nil, fmt.Errorf("postgres find %s: %w", collection, err)
	}
	defer rows.Close()

	out := []Document{}
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		doc, err := decodeRow(id, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close(context.Context) error {
	p.pool.Close()
	return nil
}

// decodeRow keeps numbers as json.Number so integers beyond 2^53 survive.
func decodeRow(id string, raw []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	doc := Document{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("postgres decode: %w", err)
	}
	doc[IDField] = id
	return doc, nil
}

func withoutID(doc Document) Document {
	if _, ok := doc[IDField]; !ok {
		return doc
	}
	out := make(Document, len(doc))
	for k, v := range doc {
		if k != IDField {
			out[k] = v
		}
	}
	return out
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
