package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/tripmate/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tripmate/internal/common"
	"github.com/dmitrijs2005/tripmate/internal/dbx"
)

// SQLite persists values in the metadata table of the local database.
type SQLite struct {
	db   *sql.DB
	repo metadata.Repository
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db, repo: metadata.NewSQLiteRepository(db)}
}

func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.repo.Get(ctx, key)
	if errors.Is(err, common.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(v), true, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, []byte(value))
}

// SetMany writes all values in one transaction.
func (s *SQLite) SetMany(ctx context.Context, values map[string]string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for k, v := range values {
			if err := repo.Set(ctx, k, []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLite) Remove(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

func (s *SQLite) IsAvailable() bool { return s.db != nil }
