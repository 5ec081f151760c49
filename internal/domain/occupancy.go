package domain

import "time"

type WardOccupancy struct {
	Ward          string  `json:"ward"`
	Total         int     `json:"total"`
	Occupied      int     `json:"occupied"`
	Available     int     `json:"available"`
	Cleaning      int     `json:"cleaning"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

type EquipmentOccupancy struct {
	EquipmentType string `json:"equipment_type"`
	Total         int    `json:"total"`
	Available     int    `json:"available"`
	Occupied      int    `json:"occupied"`
}

// BedStats is the aggregate occupancy view computed over the beds visible to a scope.
type BedStats struct {
	TotalBeds      int                  `json:"total_beds"`
	Occupied       int                  `json:"occupied"`
	Available      int                  `json:"available"`
	Cleaning       int                  `json:"cleaning"`
	Reserved       int                  `json:"reserved"`
	Maintenance    int                  `json:"maintenance"`
	OccupancyRate  float64              `json:"occupancy_rate"`
	PeakHour       bool                 `json:"peak_hour"`
	WardStats      []WardOccupancy      `json:"ward_stats"`
	EquipmentStats []EquipmentOccupancy `json:"equipment_stats"`
	Timestamp      time.Time            `json:"timestamp"`
}

// OccupancySnapshot is one appended history row. Immutable once written.
type OccupancySnapshot struct {
	ID            int             `json:"id"`
	Timestamp     time.Time       `json:"timestamp"`
	TotalBeds     int             `json:"total_beds"`
	Occupied      int             `json:"occupied"`
	Available     int             `json:"available"`
	Cleaning      int             `json:"cleaning"`
	Reserved      int             `json:"reserved"`
	Maintenance   int             `json:"maintenance"`
	OccupancyRate float64         `json:"occupancy_rate"`
	PeakHour      bool            `json:"peak_hour"`
	WardStats     []WardOccupancy `json:"ward_stats"`
}
