package repository

import (
	"context"
	"digiroots/internal/logger"
	"digiroots/internal/models"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

const accountColumns = `id, name, email, password_hash, role, reset_token_hash, reset_token_expiry, created_at`

type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.PasswordHash,
		&a.Role,
		&a.ResetTokenHash,
		&a.ResetTokenExpiry,
		&a.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) Create(ctx context.Context, a *models.Account) error {
	logger.Log.Info("Creating account (repo)", zap.String("email", a.Email))
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	query := `
	INSERT INTO accounts (id, name, email, password_hash, role)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at`
	err := r.db.QueryRow(ctx, query, a.ID, a.Name, a.Email, a.PasswordHash, a.Role).Scan(&a.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateEmail
	}
	if err != nil {
		logger.Log.Error("Failed to create account (repo)", zap.Error(err))
	}
	return err
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	logger.Log.Debug("Fetching account by email (repo)", zap.String("email", email))
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE lower(email) = lower($1)`
	return scanAccount(r.db.QueryRow(ctx, query, email))
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	logger.Log.Debug("Fetching account by id (repo)", zap.String("account_id", id))
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(r.db.QueryRow(ctx, query, id))
}

// SetResetToken stores hash and expiry in one update, replacing any earlier token.
func (r *AccountRepository) SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE accounts SET reset_token_hash = $2, reset_token_expiry = $3 WHERE id = $1`,
		id, tokenHash, expiresAt,
	)
	if err != nil {
		logger.Log.Error("Failed to store reset token (repo)", zap.String("account_id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearResetToken clears the reset fields only while tokenHash is still the stored one,
// so a rollback never wipes a newer request.
func (r *AccountRepository) ClearResetToken(ctx context.Context, id, tokenHash string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE accounts SET reset_token_hash = NULL, reset_token_expiry = NULL WHERE id = $1 AND reset_token_hash = $2`,
		id, tokenHash,
	)
	if err != nil {
		logger.Log.Error("Failed to clear reset token (repo)", zap.String("account_id", id), zap.Error(err))
	}
	return err
}

func (r *AccountRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE reset_token_hash = $1
		  AND reset_token_expiry > $2`
	return scanAccount(r.db.QueryRow(ctx, query, tokenHash, now))
}

// ResetPassword replaces the hash and clears the reset fields in a single update,
// guarded by the token still being stored and unexpired.
func (r *AccountRepository) ResetPassword(ctx context.Context, id, tokenHash, passwordHash string, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET password_hash = $3, reset_token_hash = NULL, reset_token_expiry = NULL
		WHERE id = $1
		  AND reset_token_hash = $2
		  AND reset_token_expiry > $4`,
		id, tokenHash, passwordHash, now,
	)
	if err != nil {
		logger.Log.Error("Failed to reset password (repo)", zap.String("account_id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
