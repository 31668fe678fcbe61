package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"pepgate/internal/pep/models"
)

// PostgresStore implements Store against the users table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindSuitability(ctx context.Context, uniqueID string) (bool, error) {
	var suitability sql.NullBool
	query := `SELECT suitability FROM users WHERE unique_id = $1`
	err := s.db.QueryRowContext(ctx, query, uniqueID).Scan(&suitability)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrUserNotFound
	}
	if err != nil {
		return false, fmt.Errorf("read suitability for %s: %w", uniqueID, err)
	}
	return suitability.Valid && suitability.Bool, nil
}

func (s *PostgresStore) UpdateDeclaration(ctx context.Context, record models.Record) error {
	query := `
		UPDATE users
		SET is_politically_exposed = $2,
		    politically_exposed_names = $3,
		    updated_at = now()
		WHERE unique_id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		record.UniqueID,
		record.IsExposed,
		pq.Array(record.ExposedNames),
	)
	if err != nil {
		return fmt.Errorf("update declaration for %s: %w", record.UniqueID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update declaration rows affected: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
