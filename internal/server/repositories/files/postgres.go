package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/dbx"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// PostgresRepository implements file storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the row; the unique constraint on name turns a duplicate
// into zero affected rows, reported as common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (id, user_id, name, description, encrypted_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query,
		file.ID, nullString(file.UserID), file.Name, file.Description, file.EncryptedData, file.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorAlreadyExists
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

// List returns all files ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.File, error) {
	query := `SELECT id, user_id, name, description, encrypted_data, created_at FROM files
		ORDER BY created_at, seq
		`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	result := make([]*models.File, 0)
	for rows.Next() {
		item, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByName returns the named file or common.ErrorNotFound.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.File, error) {
	query := `SELECT id, user_id, name, description, encrypted_data, created_at FROM files
		WHERE name=$1
		`
	item, err := scanFile(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select file: %w", err)
	}
	return item, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(s scanner) (*models.File, error) {
	var item models.File
	var userID sql.NullString
	if err := s.Scan(&item.ID, &userID, &item.Name, &item.Description, &item.EncryptedData, &item.CreatedAt); err != nil {
		return nil, err
	}
	item.UserID = userID.String
	return &item, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
