package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/piyukr2/Bed-Manager/internal/domain"
	"github.com/piyukr2/Bed-Manager/internal/notify"
	"github.com/piyukr2/Bed-Manager/internal/queue"
	"github.com/piyukr2/Bed-Manager/internal/repository"

	"go.uber.org/zap"
	"gopkg.in/guregu/null.v4"
)

var ErrForbidden = errors.New("access to this ward is denied")
var ErrInvalidStatus = errors.New("invalid bed status")
var ErrInvalidTransition = errors.New("status transition not allowed")

// BedService is the bed registry: reads, the transition use-case, and the
// side effects a transition composes (cleaning dispatch, audit alert,
// notification fan-out, housekeeping queue).
type BedService struct {
	bedRepo      repository.BedRepository
	cleaningRepo repository.CleaningJobRepository
	alertRepo    repository.AlertRepository
	publisher    notify.Publisher
	jobQueue     queue.JobPublisher
	policy       TransitionPolicy
	writeTimeout time.Duration
	logger       *zap.Logger
}

// NewBedService wires the registry. jobQueue may be nil when no housekeeping
// queue is configured.
func NewBedService(
	bedRepo repository.BedRepository,
	cleaningRepo repository.CleaningJobRepository,
	alertRepo repository.AlertRepository,
	publisher notify.Publisher,
	jobQueue queue.JobPublisher,
	policy TransitionPolicy,
	writeTimeout time.Duration,
	logger *zap.Logger,
) *BedService {
	return &BedService{
		bedRepo:      bedRepo,
		cleaningRepo: cleaningRepo,
		alertRepo:    alertRepo,
		publisher:    publisher,
		jobQueue:     jobQueue,
		policy:       policy,
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// ListBeds returns beds visible to the scope, ordered by bed number. A ward
// filter of "All" means no ward restriction; a restricted scope overrides any
// requested ward.
func (s *BedService) ListBeds(ctx context.Context, scope domain.AccessScope, filter domain.BedFilter) ([]domain.Bed, error) {
	if filter.Ward == "All" {
		filter.Ward = ""
	}
	if scope.Restricted() {
		filter.Ward = scope.Ward()
	}
	return s.bedRepo.FindAll(ctx, filter)
}

func (s *BedService) GetBed(ctx context.Context, scope domain.AccessScope, id int) (*domain.Bed, error) {
	bed, err := s.bedRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.CanAccess(bed.Ward) {
		return nil, ErrForbidden
	}
	return bed, nil
}

// UpdateBedStatus validates and applies a status transition, then runs the
// downstream reactions. Validation and scope checks happen before any
// mutation; once the transition is committed, reaction failures are logged
// and never surfaced to the caller.
func (s *BedService) UpdateBedStatus(ctx context.Context, scope domain.AccessScope, actor domain.Actor, id int, dto domain.UpdateBedStatusDTO) (*domain.Bed, error) {
	newStatus := domain.BedStatus(dto.Status)
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, dto.Status)
	}

	bed, err := s.bedRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.CanAccess(bed.Ward) {
		return nil, ErrForbidden
	}
	if !s.policy.Allowed(bed.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s (policy %s)", ErrInvalidTransition, bed.Status, newStatus, s.policy.Name())
	}

	upd := repository.TransitionUpdate{
		Status:         newStatus,
		Notes:          dto.Notes,
		SetLastCleaned: newStatus == domain.StatusCleaning,
		ClearPatient:   newStatus == domain.StatusAvailable,
	}

	// Writes must fail fast rather than hang on a contended row.
	writeCtx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()
	result, err := s.bedRepo.Transition(writeCtx, id, upd)
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, result, actor)
	return result.Bed, nil
}

// afterTransition runs the best-effort reactions to a committed transition.
func (s *BedService) afterTransition(ctx context.Context, result *repository.BedTransition, actor domain.Actor) {
	bed := result.Bed

	if result.PreviousStatus == domain.StatusOccupied && bed.Status != domain.StatusOccupied {
		s.dispatchCleaning(ctx, bed)
	}

	alert := &domain.Alert{
		Type:     domain.AlertInfo,
		Message:  fmt.Sprintf("Bed %s status changed to %s by %s", bed.BedNumber, bed.Status, actor.DisplayName()),
		Ward:     bed.Ward,
		BedID:    null.IntFrom(int64(bed.ID)),
		Priority: 2,
	}
	if _, err := s.alertRepo.Create(ctx, alert); err != nil {
		s.logger.Error("failed to record transition alert",
			zap.Int("bed_id", bed.ID),
			zap.Error(err),
		)
	}

	s.publisher.Publish(notify.TopicAll, domain.NewBedEvent(domain.EventBedUpdated, bed))
	s.publisher.Publish(notify.BedTopic(bed.ID), domain.NewBedEvent(domain.EventBedStatusChanged, bed))
	s.publisher.Publish(notify.WardTopic(bed.Ward), domain.NewBedEvent(domain.EventWardBedUpdated, bed))
}

// dispatchCleaning creates the pending job for a vacated bed and announces it.
func (s *BedService) dispatchCleaning(ctx context.Context, bed *domain.Bed) {
	job := &domain.CleaningJob{
		BedID:      bed.ID,
		BedNumber:  bed.BedNumber,
		Ward:       bed.Ward,
		Floor:      bed.Location.Floor,
		Section:    bed.Location.Section,
		RoomNumber: bed.Location.RoomNumber,
		Status:     domain.CleaningPending,
	}
	created, err := s.cleaningRepo.Create(ctx, job)
	if err != nil {
		s.logger.Error("failed to create cleaning job",
			zap.Int("bed_id", bed.ID),
			zap.String("bed_number", bed.BedNumber),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("cleaning job created",
		zap.Int("job_id", created.ID),
		zap.String("bed_number", created.BedNumber),
	)

	s.publisher.Publish(notify.TopicAll, domain.NewCleaningJobEvent(created))

	if s.jobQueue != nil {
		if err := s.jobQueue.PublishJob(ctx, created); err != nil {
			s.logger.Error("failed to publish cleaning job to queue",
				zap.Int("job_id", created.ID),
				zap.Error(err),
			)
		}
	}
}
