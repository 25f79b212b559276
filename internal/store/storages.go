package store

import (
	"context"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/logger"
)

// Storages aggregates every repository of the Directory Store behind a single
// construction point.
type Storages struct {
	UserRepository  UserRepository
	GroupRepository GroupRepository
	StateRepository StateRepository
}

// NewStorages connects to PostgreSQL, applies pending migrations, and wires
// all repositories onto the shared connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:  NewUserRepository(db, log),
		GroupRepository: NewGroupRepository(db, log),
		StateRepository: NewStateRepository(db, log),
	}, nil
}
