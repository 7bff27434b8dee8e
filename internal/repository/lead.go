package repository

import (
	"context"
	"digiroots/internal/logger"
	"digiroots/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type LeadRepository struct {
	db *pgxpool.Pool
}

func NewLeadRepository(db *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) Create(ctx context.Context, l *models.Lead) error {
	query := `
	INSERT INTO leads (name, company_name, email, phone, service_interested, message)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		l.Name,
		l.CompanyName,
		l.Email,
		l.Phone,
		l.ServiceInterested,
		l.Message,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		logger.Log.Error("Failed to store lead (repo)", zap.String("email", l.Email), zap.Error(err))
	}
	return err
}

// List returns a page of leads, newest first, and the total count.
func (r *LeadRepository) List(ctx context.Context, limit, offset int) ([]*models.Lead, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&total); err != nil {
		logger.Log.Error("Failed to count leads (repo)", zap.Error(err))
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, company_name, email, phone, service_interested, message, created_at
		FROM leads
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		logger.Log.Error("Failed to list leads (repo)", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	leads := make([]*models.Lead, 0, limit)
	for rows.Next() {
		var l models.Lead
		if err := rows.Scan(
			&l.ID,
			&l.Name,
			&l.CompanyName,
			&l.Email,
			&l.Phone,
			&l.ServiceInterested,
			&l.Message,
			&l.CreatedAt,
		); err != nil {
			logger.Log.Error("Failed to scan lead (repo)", zap.Error(err))
			return nil, 0, err
		}
		leads = append(leads, &l)
	}
	return leads, total, rows.Err()
}
