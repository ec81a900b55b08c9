package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fileshare/internal/common"
	"github.com/dmitrijs2005/fileshare/internal/dbx"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
)

// PostgresRepository stores users in the users table.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create relies on the primary key: a conflicting email inserts nothing and
// the zero row count is reported as common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (email, password_hash)
		 VALUES ($1, $2)
		 ON CONFLICT (email) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, user.Email, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorAlreadyExists
	}

	return nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return getUserByEmail(ctx, r.db, email, false)
}

func getUserByEmail(ctx context.Context, db dbx.DBTX, email string, forUpdate bool) (*models.User, error) {
	query :=
		`SELECT email, password_hash, created_at FROM users
		 WHERE email = $1
		 `
	if forUpdate {
		query += "FOR UPDATE"
	}

	user := &models.User{}
	err := db.QueryRowContext(ctx, query, email).Scan(&user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, email string, passwordHash string) error {
	return updatePassword(ctx, r.db, email, passwordHash)
}

func updatePassword(ctx context.Context, db dbx.DBTX, email string, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2 WHERE email = $1`

	res, err := db.ExecContext(ctx, query, email, passwordHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// UpdatePasswordIf locks the row with SELECT ... FOR UPDATE, runs check and
// updates inside one transaction.
func (r *PostgresRepository) UpdatePasswordIf(ctx context.Context, email string, check PasswordCheck, passwordHash string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := getUserByEmail(ctx, tx, email, true)
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(user.PasswordHash); err != nil {
				return err
			}
		}
		return updatePassword(ctx, tx, email, passwordHash)
	})
}
