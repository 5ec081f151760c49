package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/piyukr2/Bed-Manager/internal/domain"
	"github.com/piyukr2/Bed-Manager/internal/repository"
)

const bedColumns = `id, bed_number, ward, floor, section, room_number, equipment_type, status, patient_id, notes, last_updated, last_cleaned, created_at`

type pgBedRepository struct {
	db *sql.DB
}

func NewPgBedRepository(db *sql.DB) repository.BedRepository {
	return &pgBedRepository{db: db}
}

type bedScanner interface {
	Scan(dest ...any) error
}

func scanBed(row bedScanner) (*domain.Bed, error) {
	bed := &domain.Bed{}
	var equipmentType, notes sql.NullString
	err := row.Scan(
		&bed.ID, &bed.BedNumber, &bed.Ward, &bed.Location.Floor, &bed.Location.Section,
		&bed.Location.RoomNumber, &equipmentType, &bed.Status, &bed.PatientID,
		&notes, &bed.LastUpdated, &bed.LastCleaned, &bed.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if equipmentType.Valid {
		bed.EquipmentType = equipmentType.String
	}
	if notes.Valid {
		bed.Notes = notes.String
	}
	return bed, nil
}

func collectBeds(rows *sql.Rows) ([]domain.Bed, error) {
	var beds []domain.Bed
	for rows.Next() {
		bed, err := scanBed(rows)
		if err != nil {
			return nil, err
		}
		beds = append(beds, *bed)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return beds, nil
}

func (r *pgBedRepository) FindAll(ctx context.Context, filter domain.BedFilter) ([]domain.Bed, error) {
	query := `SELECT ` + bedColumns + ` FROM beds`
	var conditions []string
	var args []any

	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.Ward != "" {
		addCondition("ward = $%d", filter.Ward)
	}
	if filter.Status != "" {
		addCondition("status = $%d", filter.Status)
	}
	if filter.Floor != nil {
		addCondition("floor = $%d", *filter.Floor)
	}
	if filter.EquipmentType != "" {
		addCondition("equipment_type = $%d", filter.EquipmentType)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY bed_number ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("BedRepository.FindAll: %w", err)
	}
	defer rows.Close()

	beds, err := collectBeds(rows)
	if err != nil {
		return nil, fmt.Errorf("BedRepository.FindAll (scanning rows): %w", err)
	}
	return beds, nil
}

func (r *pgBedRepository) FindByID(ctx context.Context, id int) (*domain.Bed, error) {
	query := `SELECT ` + bedColumns + ` FROM beds WHERE id = $1`
	bed, err := scanBed(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("BedRepository.FindByID: %w", err)
	}
	return bed, nil
}

// Transition locks the bed row, captures the status it had at that moment and
// applies the update in the same transaction. The row lock is what serializes
// concurrent transitions on one bed.
func (r *pgBedRepository) Transition(ctx context.Context, id int, upd repository.TransitionUpdate) (*repository.BedTransition, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("BedRepository.Transition (begin): %w", err)
	}
	defer tx.Rollback()

	var previous domain.BedStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM beds WHERE id = $1 FOR UPDATE`, id).Scan(&previous)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("BedRepository.Transition (lock): %w", err)
	}

	query := `UPDATE beds
	           SET status = $2,
	               notes = $3,
	               last_updated = NOW(),
	               last_cleaned = CASE WHEN $4 THEN NOW() ELSE last_cleaned END,
	               patient_id = CASE WHEN $5 THEN NULL ELSE patient_id END
	           WHERE id = $1
	           RETURNING ` + bedColumns
	bed, err := scanBed(tx.QueryRowContext(ctx, query,
		id, upd.Status, sql.NullString{String: upd.Notes, Valid: upd.Notes != ""},
		upd.SetLastCleaned, upd.ClearPatient,
	))
	if err != nil {
		return nil, fmt.Errorf("BedRepository.Transition (update): %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("BedRepository.Transition (commit): %w", err)
	}
	return &repository.BedTransition{Bed: bed, PreviousStatus: previous}, nil
}

func (r *pgBedRepository) FindAvailable(ctx context.Context, ward, equipmentType string) ([]domain.Bed, error) {
	query := `SELECT ` + bedColumns + ` FROM beds WHERE status = $1`
	args := []any{domain.StatusAvailable}
	if ward != "" {
		args = append(args, ward)
		query += fmt.Sprintf(" AND ward = $%d", len(args))
	}
	if equipmentType != "" {
		args = append(args, equipmentType)
		query += fmt.Sprintf(" AND equipment_type = $%d", len(args))
	}
	query += " ORDER BY bed_number ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("BedRepository.FindAvailable: %w", err)
	}
	defer rows.Close()

	beds, err := collectBeds(rows)
	if err != nil {
		return nil, fmt.Errorf("BedRepository.FindAvailable (scanning rows): %w", err)
	}
	return beds, nil
}

func (r *pgBedRepository) FindFirstAvailable(ctx context.Context, ward, equipmentType string) (*domain.Bed, error) {
	query := `SELECT ` + bedColumns + ` FROM beds WHERE status = $1`
	args := []any{domain.StatusAvailable}
	if ward != "" {
		args = append(args, ward)
		query += fmt.Sprintf(" AND ward = $%d", len(args))
	}
	if equipmentType != "" {
		args = append(args, equipmentType)
		query += fmt.Sprintf(" AND equipment_type = $%d", len(args))
	}
	// Oldest update first so the longest-idle bed is handed out.
	query += " ORDER BY last_updated ASC LIMIT 1"

	bed, err := scanBed(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("BedRepository.FindFirstAvailable: %w", err)
	}
	return bed, nil
}

func (r *pgBedRepository) FindCleaningAlternatives(ctx context.Context, equipmentType string, limit int) ([]domain.Bed, error) {
	query := `SELECT ` + bedColumns + ` FROM beds WHERE status = $1`
	args := []any{domain.StatusCleaning}
	if equipmentType != "" {
		args = append(args, equipmentType)
		query += fmt.Sprintf(" AND equipment_type = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY last_cleaned DESC NULLS LAST LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("BedRepository.FindCleaningAlternatives: %w", err)
	}
	defer rows.Close()

	beds, err := collectBeds(rows)
	if err != nil {
		return nil, fmt.Errorf("BedRepository.FindCleaningAlternatives (scanning rows): %w", err)
	}
	return beds, nil
}

func (r *pgBedRepository) FindReservedAlternatives(ctx context.Context, limit int) ([]domain.Bed, error) {
	query := `SELECT ` + bedColumns + ` FROM beds WHERE status = $1 ORDER BY last_updated ASC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, domain.StatusReserved, limit)
	if err != nil {
		return nil, fmt.Errorf("BedRepository.FindReservedAlternatives: %w", err)
	}
	defer rows.Close()

	beds, err := collectBeds(rows)
	if err != nil {
		return nil, fmt.Errorf("BedRepository.FindReservedAlternatives (scanning rows): %w", err)
	}
	return beds, nil
}

func (r *pgBedRepository) CountStatuses(ctx context.Context, ward string) (*repository.StatusCounts, error) {
	query := `SELECT COUNT(*),
	                 COUNT(*) FILTER (WHERE status = 'occupied'),
	                 COUNT(*) FILTER (WHERE status = 'available'),
	                 COUNT(*) FILTER (WHERE status = 'cleaning'),
	                 COUNT(*) FILTER (WHERE status = 'reserved'),
	                 COUNT(*) FILTER (WHERE status = 'maintenance')
	           FROM beds WHERE ($1 = '' OR ward = $1)`

	counts := &repository.StatusCounts{}
	err := r.db.QueryRowContext(ctx, query, ward).Scan(
		&counts.Total, &counts.Occupied, &counts.Available,
		&counts.Cleaning, &counts.Reserved, &counts.Maintenance,
	)
	if err != nil {
		return nil, fmt.Errorf("BedRepository.CountStatuses: %w", err)
	}
	return counts, nil
}

func (r *pgBedRepository) WardBreakdown(ctx context.Context, ward string) ([]domain.WardOccupancy, error) {
	query := `SELECT ward,
	                 COUNT(*),
	                 COUNT(*) FILTER (WHERE status = 'occupied'),
	                 COUNT(*) FILTER (WHERE status = 'available'),
	                 COUNT(*) FILTER (WHERE status = 'cleaning')
	           FROM beds WHERE ($1 = '' OR ward = $1)
	           GROUP BY ward ORDER BY ward ASC`

	rows, err := r.db.QueryContext(ctx, query, ward)
	if err != nil {
		return nil, fmt.Errorf("BedRepository.WardBreakdown: %w", err)
	}
	defer rows.Close()

	var stats []domain.WardOccupancy
	for rows.Next() {
		var ws domain.WardOccupancy
		if err := rows.Scan(&ws.Ward, &ws.Total, &ws.Occupied, &ws.Available, &ws.Cleaning); err != nil {
			return nil, fmt.Errorf("BedRepository.WardBreakdown (scanning row): %w", err)
		}
		stats = append(stats, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("BedRepository.WardBreakdown (rows error): %w", err)
	}
	return stats, nil
}

func (r *pgBedRepository) EquipmentBreakdown(ctx context.Context, ward string) ([]domain.EquipmentOccupancy, error) {
	query := `SELECT COALESCE(equipment_type, ''),
	                 COUNT(*),
	                 COUNT(*) FILTER (WHERE status = 'available'),
	                 COUNT(*) FILTER (WHERE status = 'occupied')
	           FROM beds WHERE ($1 = '' OR ward = $1)
	           GROUP BY equipment_type ORDER BY equipment_type ASC`

	rows, err := r.db.QueryContext(ctx, query, ward)
	if err != nil {
		return nil, fmt.Errorf("BedRepository.EquipmentBreakdown: %w", err)
	}
	defer rows.Close()

	var stats []domain.EquipmentOccupancy
	for rows.Next() {
		var es domain.EquipmentOccupancy
		if err := rows.Scan(&es.EquipmentType, &es.Total, &es.Available, &es.Occupied); err != nil {
			return nil, fmt.Errorf("BedRepository.EquipmentBreakdown (scanning row): %w", err)
		}
		stats = append(stats, es)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("BedRepository.EquipmentBreakdown (rows error): %w", err)
	}
	return stats, nil
}
