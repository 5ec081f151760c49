package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type BedStatus string

const (
	StatusAvailable   BedStatus = "available"
	StatusOccupied    BedStatus = "occupied"
	StatusCleaning    BedStatus = "cleaning"
	StatusReserved    BedStatus = "reserved"
	StatusMaintenance BedStatus = "maintenance"
)

// Valid reports whether s is one of the known bed statuses.
func (s BedStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusCleaning, StatusReserved, StatusMaintenance:
		return true
	}
	return false
}

type BedLocation struct {
	Floor      int    `json:"floor"`
	Section    string `json:"section"`
	RoomNumber string `json:"room_number"`
}

type Bed struct {
	ID            int         `json:"id"`
	BedNumber     string      `json:"bed_number"`
	Ward          string      `json:"ward"`
	Location      BedLocation `json:"location"`
	EquipmentType string      `json:"equipment_type,omitempty"`
	Status        BedStatus   `json:"status"`
	PatientID     null.String `json:"patient_id"`
	Notes         string      `json:"notes,omitempty"`
	LastUpdated   time.Time   `json:"last_updated"`
	LastCleaned   null.Time   `json:"last_cleaned"`
	CreatedAt     time.Time   `json:"created_at"`
}

// BedFilter narrows a bed listing. Zero values mean "no restriction".
type BedFilter struct {
	Ward          string
	Status        BedStatus
	Floor         *int
	EquipmentType string
}

type UpdateBedStatusDTO struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

type RecommendRequestDTO struct {
	Ward          string `json:"ward"`
	EquipmentType string `json:"equipment_type"`
	Urgency       string `json:"urgency"`
}
