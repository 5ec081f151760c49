package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/piyukr2/Bed-Manager/internal/domain"
	"github.com/piyukr2/Bed-Manager/internal/notify"
	"github.com/piyukr2/Bed-Manager/internal/repository"
)

// fakeBedRepository is an in-memory BedRepository with the same observable
// behavior as the Postgres implementation, including transition serialization.
type fakeBedRepository struct {
	mu   sync.Mutex
	beds map[int]*domain.Bed
}

func newFakeBedRepository(beds ...domain.Bed) *fakeBedRepository {
	repo := &fakeBedRepository{beds: make(map[int]*domain.Bed)}
	for i := range beds {
		bed := beds[i]
		repo.beds[bed.ID] = &bed
	}
	return repo
}

func (r *fakeBedRepository) snapshot() []domain.Bed {
	var beds []domain.Bed
	for _, bed := range r.beds {
		beds = append(beds, *bed)
	}
	return beds
}

func (r *fakeBedRepository) FindAll(_ context.Context, filter domain.BedFilter) ([]domain.Bed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Bed
	for _, bed := range r.snapshot() {
		if filter.Ward != "" && bed.Ward != filter.Ward {
			continue
		}
		if filter.Status != "" && bed.Status != filter.Status {
			continue
		}
		if filter.Floor != nil && bed.Location.Floor != *filter.Floor {
			continue
		}
		if filter.EquipmentType != "" && bed.EquipmentType != filter.EquipmentType {
			continue
		}
		result = append(result, bed)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].BedNumber < result[j].BedNumber })
	return result, nil
}

func (r *fakeBedRepository) FindByID(_ context.Context, id int) (*domain.Bed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bed, ok := r.beds[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *bed
	return &copied, nil
}

func (r *fakeBedRepository) Transition(_ context.Context, id int, upd repository.TransitionUpdate) (*repository.BedTransition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bed, ok := r.beds[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	previous := bed.Status
	bed.Status = upd.Status
	bed.Notes = upd.Notes
	bed.LastUpdated = time.Now().UTC()
	if upd.SetLastCleaned {
		bed.LastCleaned.SetValid(bed.LastUpdated)
	}
	if upd.ClearPatient {
		bed.PatientID.Valid = false
		bed.PatientID.String = ""
	}
	copied := *bed
	return &repository.BedTransition{Bed: &copied, PreviousStatus: previous}, nil
}

func (r *fakeBedRepository) FindAvailable(_ context.Context, ward, equipmentType string) ([]domain.Bed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Bed
	for _, bed := range r.snapshot() {
		if bed.Status != domain.StatusAvailable {
			continue
		}
		if ward != "" && bed.Ward != ward {
			continue
		}
		if equipmentType != "" && bed.EquipmentType != equipmentType {
			continue
		}
		result = append(result, bed)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].BedNumber < result[j].BedNumber })
	return result, nil
}

func (r *fakeBedRepository) FindFirstAvailable(_ context.Context, ward, equipmentType string) (*domain.Bed, error) {
	beds, _ := r.FindAvailable(context.Background(), ward, equipmentType)
	if len(beds) == 0 {
		return nil, repository.ErrNotFound
	}
	sort.Slice(beds, func(i, j int) bool { return beds[i].LastUpdated.Before(beds[j].LastUpdated) })
	return &beds[0], nil
}

func (r *fakeBedRepository) FindCleaningAlternatives(_ context.Context, equipmentType string, limit int) ([]domain.Bed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Bed
	for _, bed := range r.snapshot() {
		if bed.Status != domain.StatusCleaning {
			continue
		}
		if equipmentType != "" && bed.EquipmentType != equipmentType {
			continue
		}
		result = append(result, bed)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].LastCleaned.ValueOrZero().After(result[j].LastCleaned.ValueOrZero())
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeBedRepository) FindReservedAlternatives(_ context.Context, limit int) ([]domain.Bed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Bed
	for _, bed := range r.snapshot() {
		if bed.Status == domain.StatusReserved {
			result = append(result, bed)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LastUpdated.Before(result[j].LastUpdated) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeBedRepository) CountStatuses(_ context.Context, ward string) (*repository.StatusCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := &repository.StatusCounts{}
	for _, bed := range r.beds {
		if ward != "" && bed.Ward != ward {
			continue
		}
		counts.Total++
		switch bed.Status {
		case domain.StatusOccupied:
			counts.Occupied++
		case domain.StatusAvailable:
			counts.Available++
		case domain.StatusCleaning:
			counts.Cleaning++
		case domain.StatusReserved:
			counts.Reserved++
		case domain.StatusMaintenance:
			counts.Maintenance++
		}
	}
	return counts, nil
}

func (r *fakeBedRepository) WardBreakdown(_ context.Context, ward string) ([]domain.WardOccupancy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byWard := make(map[string]*domain.WardOccupancy)
	for _, bed := range r.beds {
		if ward != "" && bed.Ward != ward {
			continue
		}
		ws, ok := byWard[bed.Ward]
		if !ok {
			ws = &domain.WardOccupancy{Ward: bed.Ward}
			byWard[bed.Ward] = ws
		}
		ws.Total++
		switch bed.Status {
		case domain.StatusOccupied:
			ws.Occupied++
		case domain.StatusAvailable:
			ws.Available++
		case domain.StatusCleaning:
			ws.Cleaning++
		}
	}
	var stats []domain.WardOccupancy
	for _, ws := range byWard {
		stats = append(stats, *ws)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Ward < stats[j].Ward })
	return stats, nil
}

func (r *fakeBedRepository) EquipmentBreakdown(_ context.Context, ward string) ([]domain.EquipmentOccupancy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byType := make(map[string]*domain.EquipmentOccupancy)
	for _, bed := range r.beds {
		if ward != "" && bed.Ward != ward {
			continue
		}
		es, ok := byType[bed.EquipmentType]
		if !ok {
			es = &domain.EquipmentOccupancy{EquipmentType: bed.EquipmentType}
			byType[bed.EquipmentType] = es
		}
		es.Total++
		switch bed.Status {
		case domain.StatusAvailable:
			es.Available++
		case domain.StatusOccupied:
			es.Occupied++
		}
	}
	var stats []domain.EquipmentOccupancy
	for _, es := range byType {
		stats = append(stats, *es)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].EquipmentType < stats[j].EquipmentType })
	return stats, nil
}

type fakeCleaningJobRepository struct {
	mu   sync.Mutex
	jobs []domain.CleaningJob
}

func (r *fakeCleaningJobRepository) Create(_ context.Context, job *domain.CleaningJob) (*domain.CleaningJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job.ID = len(r.jobs) + 1
	job.CreatedAt = time.Now().UTC()
	r.jobs = append(r.jobs, *job)
	return job, nil
}

func (r *fakeCleaningJobRepository) all() []domain.CleaningJob {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.CleaningJob(nil), r.jobs...)
}

type fakeAlertRepository struct {
	mu     sync.Mutex
	alerts []domain.Alert
}

func (r *fakeAlertRepository) Create(_ context.Context, alert *domain.Alert) (*domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	alert.ID = len(r.alerts) + 1
	if alert.Timestamp.IsZero() {
		alert.Timestamp = time.Now().UTC()
	}
	r.alerts = append(r.alerts, *alert)
	return alert, nil
}

func (r *fakeAlertRepository) all() []domain.Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Alert(nil), r.alerts...)
}

type fakeHistoryRepository struct {
	mu        sync.Mutex
	snapshots []domain.OccupancySnapshot
}

func (r *fakeHistoryRepository) Create(_ context.Context, snapshot *domain.OccupancySnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot.ID = len(r.snapshots) + 1
	r.snapshots = append(r.snapshots, *snapshot)
	return nil
}

func (r *fakeHistoryRepository) FindSince(_ context.Context, since time.Time, limit int) ([]domain.OccupancySnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var inWindow []domain.OccupancySnapshot
	for _, snap := range r.snapshots {
		if !snap.Timestamp.Before(since) {
			inWindow = append(inWindow, snap)
		}
	}
	sort.Slice(inWindow, func(i, j int) bool { return inWindow[i].Timestamp.Before(inWindow[j].Timestamp) })
	if len(inWindow) > limit {
		inWindow = inWindow[len(inWindow)-limit:]
	}
	return inWindow, nil
}

type publishedEvent struct {
	topic notify.Topic
	event domain.BedEvent
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) Publish(topic notify.Topic, event domain.BedEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{topic: topic, event: event})
}

func (p *fakePublisher) byTopic(topic notify.Topic) []domain.BedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var events []domain.BedEvent
	for _, pe := range p.events {
		if pe.topic == topic {
			events = append(events, pe.event)
		}
	}
	return events
}
