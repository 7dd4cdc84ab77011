// Package repomanager selects the storage backend from the database URI and
// vends repositories bound to it.
package repomanager

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/technotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/technotes/internal/server/repositories/users"
)

type RepositoryManager interface {
	// RunMigrations prepares the schema: unique indexes on Mongo, goose
	// migrations on Postgres.
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	Users() users.Repository
	Notes() notes.Repository
}

// New opens a RepositoryManager for uri. mongodb:// and mongodb+srv:// pick
// MongoDB, postgres:// and postgresql:// pick PostgreSQL. For Mongo the
// database named in the URI path wins over dbName.
func New(ctx context.Context, uri, dbName string) (RepositoryManager, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse database uri: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		if name := strings.Trim(u.Path, "/"); name != "" {
			dbName = name
		}
		return NewMongoRepositoryManager(ctx, uri, dbName)
	case "postgres", "postgresql":
		return NewPostgresRepositoryManager(uri)
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
}
