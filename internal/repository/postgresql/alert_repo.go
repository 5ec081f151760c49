package postgresql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/piyukr2/Bed-Manager/internal/domain"
	"github.com/piyukr2/Bed-Manager/internal/repository"
)

type pgAlertRepository struct {
	db *sql.DB
}

func NewPgAlertRepository(db *sql.DB) repository.AlertRepository {
	return &pgAlertRepository{db: db}
}

func (r *pgAlertRepository) Create(ctx context.Context, alert *domain.Alert) (*domain.Alert, error) {
	query := `INSERT INTO alerts (type, message, ward, bed_id, priority, timestamp)
	           VALUES ($1, $2, $3, $4, $5, NOW())
	           RETURNING id, timestamp`
	err := r.db.QueryRowContext(ctx, query,
		alert.Type, alert.Message, alert.Ward, alert.BedID, alert.Priority,
	).Scan(&alert.ID, &alert.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("AlertRepository.Create: %w", err)
	}
	return alert, nil
}
