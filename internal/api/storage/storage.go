package storage

import (
	"log/slog"

	"github.com/anyhire/anyhire-be/shared/postgresql"
	"github.com/jmoiron/sqlx"
)

// Storage holds the database handle for all API queries.
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewStorage(pg *postgresql.Client, logger *slog.Logger) *Storage {
	return &Storage{
		db:     pg.GetDB(),
		logger: logger,
	}
}
