package repository

import (
	"context"
	"errors"
	"time"

	"github.com/piyukr2/Bed-Manager/internal/domain"
)

var ErrNotFound = errors.New("record not found")
var ErrDuplicateEntry = errors.New("record already exists")

// TransitionUpdate describes a single status transition to apply to a bed.
// SetLastCleaned and ClearPatient are derived from the target status by the
// service layer so the repository stays policy-free.
type TransitionUpdate struct {
	Status         domain.BedStatus
	Notes          string
	SetLastCleaned bool
	ClearPatient   bool
}

// BedTransition is the result of an applied transition. PreviousStatus is read
// under the same row lock as the write, so it is consistent with the update.
type BedTransition struct {
	Bed            *domain.Bed
	PreviousStatus domain.BedStatus
}

// StatusCounts are the per-status bed counts within a scope.
type StatusCounts struct {
	Total       int
	Occupied    int
	Available   int
	Cleaning    int
	Reserved    int
	Maintenance int
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type BedRepository interface {
	FindAll(ctx context.Context, filter domain.BedFilter) ([]domain.Bed, error)
	FindByID(ctx context.Context, id int) (*domain.Bed, error)
	// Transition applies the update atomically and returns the bed together
	// with the status it had immediately before the write. Concurrent
	// transitions on the same bed serialize on the bed row.
	Transition(ctx context.Context, id int, upd TransitionUpdate) (*BedTransition, error)
	// FindAvailable lists available beds ordered by bed number. Empty ward or
	// equipmentType means "any".
	FindAvailable(ctx context.Context, ward, equipmentType string) ([]domain.Bed, error)
	// FindFirstAvailable returns the available bed with the oldest
	// last_updated matching the given criteria, or ErrNotFound.
	FindFirstAvailable(ctx context.Context, ward, equipmentType string) (*domain.Bed, error)
	// FindCleaningAlternatives lists beds under cleaning, most recently
	// cleaned first.
	FindCleaningAlternatives(ctx context.Context, equipmentType string, limit int) ([]domain.Bed, error)
	// FindReservedAlternatives lists reserved beds, oldest update first.
	FindReservedAlternatives(ctx context.Context, limit int) ([]domain.Bed, error)
	// CountStatuses counts beds per status. Empty ward means all wards.
	CountStatuses(ctx context.Context, ward string) (*StatusCounts, error)
	// WardBreakdown aggregates occupancy per ward, ordered by ward name.
	WardBreakdown(ctx context.Context, ward string) ([]domain.WardOccupancy, error)
	// EquipmentBreakdown aggregates occupancy per equipment type, ordered by type.
	EquipmentBreakdown(ctx context.Context, ward string) ([]domain.EquipmentOccupancy, error)
}

type OccupancyHistoryRepository interface {
	Create(ctx context.Context, snapshot *domain.OccupancySnapshot) error
	// FindSince returns at most limit snapshots taken at or after since,
	// keeping the most recent ones, ordered ascending by timestamp.
	FindSince(ctx context.Context, since time.Time, limit int) ([]domain.OccupancySnapshot, error)
}

type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) (*domain.Alert, error)
}

type CleaningJobRepository interface {
	Create(ctx context.Context, job *domain.CleaningJob) (*domain.CleaningJob, error)
}
