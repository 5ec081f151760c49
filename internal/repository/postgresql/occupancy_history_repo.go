package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/piyukr2/Bed-Manager/internal/domain"
	"github.com/piyukr2/Bed-Manager/internal/repository"
)

type pgOccupancyHistoryRepository struct {
	db *sql.DB
}

func NewPgOccupancyHistoryRepository(db *sql.DB) repository.OccupancyHistoryRepository {
	return &pgOccupancyHistoryRepository{db: db}
}

func (r *pgOccupancyHistoryRepository) Create(ctx context.Context, snapshot *domain.OccupancySnapshot) error {
	wardStats, err := json.Marshal(snapshot.WardStats)
	if err != nil {
		return fmt.Errorf("OccupancyHistoryRepository.Create (marshal ward stats): %w", err)
	}

	query := `INSERT INTO occupancy_history
	           (timestamp, total_beds, occupied, available, cleaning, reserved, maintenance, occupancy_rate, peak_hour, ward_stats)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	           RETURNING id`
	err = r.db.QueryRowContext(ctx, query,
		snapshot.Timestamp, snapshot.TotalBeds, snapshot.Occupied, snapshot.Available,
		snapshot.Cleaning, snapshot.Reserved, snapshot.Maintenance,
		snapshot.OccupancyRate, snapshot.PeakHour, wardStats,
	).Scan(&snapshot.ID)
	if err != nil {
		return fmt.Errorf("OccupancyHistoryRepository.Create: %w", err)
	}
	return nil
}

func (r *pgOccupancyHistoryRepository) FindSince(ctx context.Context, since time.Time, limit int) ([]domain.OccupancySnapshot, error) {
	// Keep the newest rows inside the window, then flip back to ascending
	// order for the caller.
	query := `SELECT id, timestamp, total_beds, occupied, available, cleaning, reserved, maintenance, occupancy_rate, peak_hour, ward_stats
	           FROM (
	               SELECT id, timestamp, total_beds, occupied, available, cleaning, reserved, maintenance, occupancy_rate, peak_hour, ward_stats
	               FROM occupancy_history
	               WHERE timestamp >= $1
	               ORDER BY timestamp DESC
	               LIMIT $2
	           ) recent
	           ORDER BY timestamp ASC`

	rows, err := r.db.QueryContext(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("OccupancyHistoryRepository.FindSince: %w", err)
	}
	defer rows.Close()

	var snapshots []domain.OccupancySnapshot
	for rows.Next() {
		var snap domain.OccupancySnapshot
		var wardStats []byte
		if err := rows.Scan(
			&snap.ID, &snap.Timestamp, &snap.TotalBeds, &snap.Occupied, &snap.Available,
			&snap.Cleaning, &snap.Reserved, &snap.Maintenance,
			&snap.OccupancyRate, &snap.PeakHour, &wardStats,
		); err != nil {
			return nil, fmt.Errorf("OccupancyHistoryRepository.FindSince (scanning row): %w", err)
		}
		if len(wardStats) > 0 {
			if err := json.Unmarshal(wardStats, &snap.WardStats); err != nil {
				return nil, fmt.Errorf("OccupancyHistoryRepository.FindSince (unmarshal ward stats): %w", err)
			}
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("OccupancyHistoryRepository.FindSince (rows error): %w", err)
	}
	return snapshots, nil
}
