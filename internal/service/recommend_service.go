package service

import (
	"context"
	"errors"

	"github.com/piyukr2/Bed-Manager/internal/domain"
	"github.com/piyukr2/Bed-Manager/internal/repository"

	"go.uber.org/zap"
)

var ErrNoBedsAvailable = errors.New("no available beds matching criteria")

const (
	MatchPerfect      = "perfect"
	MatchEquipment    = "equipment_match"
	MatchWard         = "ward_match"
	MatchAnyAvailable = "any_available"
)

const (
	cleaningAlternativesLimit = 5
	reservedAlternativesLimit = 3
)

type BedRecommendation struct {
	Bed        *domain.Bed `json:"bed"`
	MatchLevel string      `json:"match_level"`
	Message    string      `json:"message"`
}

// RecommendationAlternatives is the fallback payload when no bed can be
// recommended: beds that may free up soon.
type RecommendationAlternatives struct {
	Cleaning []domain.Bed `json:"cleaning"`
	Reserved []domain.Bed `json:"reserved"`
}

// AvailabilityResult is the availability-search answer. Alternatives is only
// populated by the high-urgency cleaning fallback.
type AvailabilityResult struct {
	Available    []domain.Bed `json:"available"`
	Alternatives []domain.Bed `json:"alternatives,omitempty"`
	Message      string       `json:"message,omitempty"`
}

type RecommendService struct {
	bedRepo repository.BedRepository
	logger  *zap.Logger
}

func NewRecommendService(bedRepo repository.BedRepository, logger *zap.Logger) *RecommendService {
	return &RecommendService{bedRepo: bedRepo, logger: logger}
}

// MatchLevel classifies how well a bed satisfies the requested criteria,
// checked in order: both, equipment, ward, anything. Equipment compares as a
// plain string, so a request without equipment counts a bed with none on
// record as an equipment match.
func MatchLevel(bed *domain.Bed, ward, equipmentType string) string {
	switch {
	case bed.Ward == ward && bed.EquipmentType == equipmentType:
		return MatchPerfect
	case bed.EquipmentType == equipmentType:
		return MatchEquipment
	case bed.Ward == ward:
		return MatchWard
	}
	return MatchAnyAvailable
}

// Recommend selects one available bed by strict priority fallthrough:
// ward+equipment, equipment only, ward only, any. Each tier takes the bed
// idle the longest. When every tier misses it returns ErrNoBedsAvailable
// together with the alternatives.
func (s *RecommendService) Recommend(ctx context.Context, req domain.RecommendRequestDTO) (*BedRecommendation, *RecommendationAlternatives, error) {
	var bed *domain.Bed
	var err error

	// Priority 1: both ward and equipment match.
	if req.Ward != "" && req.EquipmentType != "" {
		bed, err = s.firstAvailable(ctx, req.Ward, req.EquipmentType)
		if err != nil {
			return nil, nil, err
		}
	}
	// Priority 2: equipment match, any ward.
	if bed == nil && req.EquipmentType != "" {
		bed, err = s.firstAvailable(ctx, "", req.EquipmentType)
		if err != nil {
			return nil, nil, err
		}
	}
	// Priority 3: ward match, any equipment.
	if bed == nil && req.Ward != "" {
		bed, err = s.firstAvailable(ctx, req.Ward, "")
		if err != nil {
			return nil, nil, err
		}
	}
	// Priority 4: any available bed.
	if bed == nil {
		bed, err = s.firstAvailable(ctx, "", "")
		if err != nil {
			return nil, nil, err
		}
	}

	if bed == nil {
		alternatives, err := s.findAlternatives(ctx)
		if err != nil {
			return nil, nil, err
		}
		return nil, alternatives, ErrNoBedsAvailable
	}

	s.logger.Info("bed recommended",
		zap.String("bed_number", bed.BedNumber),
		zap.String("ward", bed.Ward),
		zap.String("match_level", MatchLevel(bed, req.Ward, req.EquipmentType)),
	)
	return &BedRecommendation{
		Bed:        bed,
		MatchLevel: MatchLevel(bed, req.Ward, req.EquipmentType),
		Message:    "Bed recommended based on availability and requirements",
	}, nil, nil
}

// firstAvailable turns the repository's ErrNotFound into a nil bed so the
// tier fallthrough stays readable.
func (s *RecommendService) firstAvailable(ctx context.Context, ward, equipmentType string) (*domain.Bed, error) {
	bed, err := s.bedRepo.FindFirstAvailable(ctx, ward, equipmentType)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return bed, nil
}

func (s *RecommendService) findAlternatives(ctx context.Context) (*RecommendationAlternatives, error) {
	cleaning, err := s.bedRepo.FindCleaningAlternatives(ctx, "", cleaningAlternativesLimit)
	if err != nil {
		return nil, err
	}
	reserved, err := s.bedRepo.FindReservedAlternatives(ctx, reservedAlternativesLimit)
	if err != nil {
		return nil, err
	}
	return &RecommendationAlternatives{Cleaning: cleaning, Reserved: reserved}, nil
}

// FindAvailable lists available beds for the criteria. With urgency=high an
// empty result escalates: first dropping the ward restriction (keeping
// equipment), then falling back to beds under cleaning as alternatives.
func (s *RecommendService) FindAvailable(ctx context.Context, scope domain.AccessScope, ward, equipmentType, urgency string) (*AvailabilityResult, error) {
	if scope.Restricted() {
		ward = scope.Ward()
	}

	beds, err := s.bedRepo.FindAvailable(ctx, ward, equipmentType)
	if err != nil {
		return nil, err
	}

	if urgency == "high" && len(beds) == 0 && equipmentType != "" {
		beds, err = s.bedRepo.FindAvailable(ctx, "", equipmentType)
		if err != nil {
			return nil, err
		}
	}

	if urgency == "high" && len(beds) == 0 {
		cleaning, err := s.bedRepo.FindCleaningAlternatives(ctx, equipmentType, cleaningAlternativesLimit)
		if err != nil {
			return nil, err
		}
		return &AvailabilityResult{
			Available:    []domain.Bed{},
			Alternatives: cleaning,
			Message:      "No available beds. These beds are under cleaning and may be ready soon.",
		}, nil
	}

	return &AvailabilityResult{Available: beds}, nil
}
