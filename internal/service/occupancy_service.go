package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/piyukr2/Bed-Manager/internal/domain"
	"github.com/piyukr2/Bed-Manager/internal/repository"

	"go.uber.org/zap"
)

// peakHourRate is the occupancy rate at which a snapshot is flagged as peak.
const peakHourRate = 85.0

const historyLimit = 100

type OccupancyService struct {
	bedRepo     repository.BedRepository
	historyRepo repository.OccupancyHistoryRepository
	alertRepo   repository.AlertRepository
	logger      *zap.Logger
}

func NewOccupancyService(
	bedRepo repository.BedRepository,
	historyRepo repository.OccupancyHistoryRepository,
	alertRepo repository.AlertRepository,
	logger *zap.Logger,
) *OccupancyService {
	return &OccupancyService{
		bedRepo:     bedRepo,
		historyRepo: historyRepo,
		alertRepo:   alertRepo,
		logger:      logger,
	}
}

// RoundRate computes occupied/total as a percentage rounded to one decimal.
// Zero total means zero rate.
func RoundRate(occupied, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(occupied)/float64(total)*1000) / 10
}

// ComputeStats is the pure read half of the stats operation: no history row,
// no alert.
func (s *OccupancyService) ComputeStats(ctx context.Context, scope domain.AccessScope) (*domain.BedStats, error) {
	ward := ""
	if scope.Restricted() {
		ward = scope.Ward()
	}

	counts, err := s.bedRepo.CountStatuses(ctx, ward)
	if err != nil {
		return nil, err
	}
	wardStats, err := s.bedRepo.WardBreakdown(ctx, ward)
	if err != nil {
		return nil, err
	}
	for i := range wardStats {
		wardStats[i].OccupancyRate = RoundRate(wardStats[i].Occupied, wardStats[i].Total)
	}
	equipmentStats, err := s.bedRepo.EquipmentBreakdown(ctx, ward)
	if err != nil {
		return nil, err
	}

	rate := RoundRate(counts.Occupied, counts.Total)
	return &domain.BedStats{
		TotalBeds:      counts.Total,
		Occupied:       counts.Occupied,
		Available:      counts.Available,
		Cleaning:       counts.Cleaning,
		Reserved:       counts.Reserved,
		Maintenance:    counts.Maintenance,
		OccupancyRate:  rate,
		PeakHour:       rate >= peakHourRate,
		WardStats:      wardStats,
		EquipmentStats: equipmentStats,
		Timestamp:      time.Now().UTC(),
	}, nil
}

// RecordSnapshot appends the stats to the occupancy history.
func (s *OccupancyService) RecordSnapshot(ctx context.Context, stats *domain.BedStats) error {
	snapshot := &domain.OccupancySnapshot{
		Timestamp:     stats.Timestamp,
		TotalBeds:     stats.TotalBeds,
		Occupied:      stats.Occupied,
		Available:     stats.Available,
		Cleaning:      stats.Cleaning,
		Reserved:      stats.Reserved,
		Maintenance:   stats.Maintenance,
		OccupancyRate: stats.OccupancyRate,
		PeakHour:      stats.PeakHour,
		WardStats:     stats.WardStats,
	}
	return s.historyRepo.Create(ctx, snapshot)
}

// EvaluateOccupancyAlert maps a computed occupancy rate to at most one alert.
// Thresholds are evaluated highest first; below the lowest there is no alert.
func EvaluateOccupancyAlert(rate float64, occupied, total int) *domain.Alert {
	switch {
	case rate >= 95:
		return &domain.Alert{
			Type:     domain.AlertCritical,
			Message:  fmt.Sprintf("CRITICAL: %.1f%% occupancy! Immediate action required (%d/%d beds)", rate, occupied, total),
			Priority: 5,
		}
	case rate >= 90:
		return &domain.Alert{
			Type:     domain.AlertCritical,
			Message:  fmt.Sprintf("Critical occupancy: %.1f%% (%d/%d beds occupied)", rate, occupied, total),
			Priority: 4,
		}
	case rate >= 80:
		return &domain.Alert{
			Type:     domain.AlertWarning,
			Message:  fmt.Sprintf("High occupancy: %.1f%% (%d/%d beds occupied)", rate, occupied, total),
			Priority: 3,
		}
	}
	return nil
}

// ComputeAndRecordStats backs the stats endpoint. On top of the pure read it
// appends a history snapshot and persists a threshold alert when one fires;
// both writes are best-effort so a storage hiccup never hides the numbers.
func (s *OccupancyService) ComputeAndRecordStats(ctx context.Context, scope domain.AccessScope) (*domain.BedStats, *domain.Alert, error) {
	stats, err := s.ComputeStats(ctx, scope)
	if err != nil {
		return nil, nil, err
	}

	alert := EvaluateOccupancyAlert(stats.OccupancyRate, stats.Occupied, stats.TotalBeds)
	if alert != nil {
		alert.Ward = "All"
		if scope.Restricted() {
			alert.Ward = scope.Ward()
		}
		alert.Timestamp = stats.Timestamp
		if _, err := s.alertRepo.Create(ctx, alert); err != nil {
			s.logger.Error("failed to record occupancy alert", zap.Error(err))
		}
	}

	if err := s.RecordSnapshot(ctx, stats); err != nil {
		s.logger.Error("failed to record occupancy snapshot", zap.Error(err))
	}
	return stats, alert, nil
}

var historyWindows = map[string]time.Duration{
	"24h": 24 * time.Hour,
	"7d":  168 * time.Hour,
	"30d": 720 * time.Hour,
}

// GetHistory returns the snapshot series for the period (24h when unknown),
// ascending, capped to the most recent 100 entries in the window.
func (s *OccupancyService) GetHistory(ctx context.Context, period string) ([]domain.OccupancySnapshot, error) {
	window, ok := historyWindows[period]
	if !ok {
		window = historyWindows["24h"]
	}
	return s.historyRepo.FindSince(ctx, time.Now().UTC().Add(-window), historyLimit)
}
