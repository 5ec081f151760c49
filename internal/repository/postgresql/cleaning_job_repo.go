package postgresql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/piyukr2/Bed-Manager/internal/domain"
	"github.com/piyukr2/Bed-Manager/internal/repository"
)

type pgCleaningJobRepository struct {
	db *sql.DB
}

func NewPgCleaningJobRepository(db *sql.DB) repository.CleaningJobRepository {
	return &pgCleaningJobRepository{db: db}
}

func (r *pgCleaningJobRepository) Create(ctx context.Context, job *domain.CleaningJob) (*domain.CleaningJob, error) {
	query := `INSERT INTO cleaning_jobs (bed_id, bed_number, ward, floor, section, room_number, status, created_at)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	           RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		job.BedID, job.BedNumber, job.Ward, job.Floor, job.Section, job.RoomNumber, job.Status,
	).Scan(&job.ID, &job.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("CleaningJobRepository.Create: %w", err)
	}
	return job, nil
}
