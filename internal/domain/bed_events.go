package domain

import (
	"time"

	"github.com/google/uuid"
)

type BedEventType string

const (
	EventBedUpdated       BedEventType = "bed-updated"
	EventBedStatusChanged BedEventType = "bed-status-changed"
	EventWardBedUpdated   BedEventType = "ward-bed-updated"
	EventNewCleaningJob   BedEventType = "newCleaningJob"
)

// BedEvent - event pushed to subscribers over WebSocket.
type BedEvent struct {
	EventID     string       `json:"event_id"`
	Type        BedEventType `json:"type"`
	Bed         *Bed         `json:"bed,omitempty"`
	CleaningJob *CleaningJob `json:"cleaning_job,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}

func NewBedEvent(eventType BedEventType, bed *Bed) BedEvent {
	return BedEvent{EventID: uuid.NewString(), Type: eventType, Bed: bed, Timestamp: time.Now().UTC()}
}

func NewCleaningJobEvent(job *CleaningJob) BedEvent {
	return BedEvent{EventID: uuid.NewString(), Type: EventNewCleaningJob, CleaningJob: job, Timestamp: time.Now().UTC()}
}
