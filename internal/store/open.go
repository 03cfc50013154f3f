package store

import (
	"context"
	"fmt"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Options struct {
	Driver      string
	MongoURI    string
	PostgresURL string
}

// Open connects the backend selected by opts.Driver.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Driver {
	case DriverMongo, "":
		return OpenMongo(ctx, opts.MongoURI, Database)
	case DriverPostgres:
		return OpenPostgres(ctx, opts.PostgresURL)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
