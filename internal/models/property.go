package models

// OccupancyStatus is the letting state of a property
type OccupancyStatus string

const (
	StatusOccupied       OccupancyStatus = "occupied"
	StatusVacant         OccupancyStatus = "vacant"
	StatusPendingRenewal OccupancyStatus = "pending_renewal"
)

// Valid reports whether s is one of the known statuses
func (s OccupancyStatus) Valid() bool {
	switch s {
	case StatusOccupied, StatusVacant, StatusPendingRenewal:
		return true
	}
	return false
}

// Label returns the human readable status shown on property cards
func (s OccupancyStatus) Label() string {
	switch s {
	case StatusOccupied:
		return "Occupied"
	case StatusVacant:
		return "Vacant"
	default:
		return "Pending Renewal"
	}
}

type Property struct {
	ID            int64           `json:"id" yaml:"id" gorm:"primaryKey"`
	Name          string          `json:"name" yaml:"name"`
	Address       string          `json:"address" yaml:"address"`
	Units         int             `json:"units" yaml:"units"`
	Status        OccupancyStatus `json:"status" yaml:"status" gorm:"index"`
	CurrentRent   float64         `json:"currentRent" yaml:"currentRent"`
	LastRenoDate  Date            `json:"lastRenoDate" yaml:"lastRenoDate"`
	OccupancyRate float64         `json:"occupancyRate" yaml:"occupancyRate"`
}

type DashboardStats struct {
	TotalProperties int     `json:"total_properties"`
	OccupancyRate   float64 `json:"occupancy_rate"`
	AverageRent     float64 `json:"average_rent"`
	TotalUnits      int     `json:"total_units"`
}
