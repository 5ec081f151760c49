package domain

import "time"

type CleaningJobStatus string

const (
	CleaningPending    CleaningJobStatus = "pending"
	CleaningInProgress CleaningJobStatus = "in_progress"
	CleaningDone       CleaningJobStatus = "done"
)

// CleaningJob is spawned when an occupied bed vacates. The registry only ever
// creates jobs in "pending"; housekeeping moves them through the other states.
type CleaningJob struct {
	ID         int               `json:"id"`
	BedID      int               `json:"bed_id"`
	BedNumber  string            `json:"bed_number"`
	Ward       string            `json:"ward"`
	Floor      int               `json:"floor"`
	Section    string            `json:"section"`
	RoomNumber string            `json:"room_number"`
	Status     CleaningJobStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}
