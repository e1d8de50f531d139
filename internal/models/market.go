package models

type MarketDataPoint struct {
	ID              int64   `json:"id" yaml:"id" gorm:"primaryKey"`
	Month           Date    `json:"month" yaml:"month"`
	AvgPrice        float64 `json:"avgPrice" yaml:"avgPrice"`
	AvgRent         float64 `json:"avgRent" yaml:"avgRent"`
	VacancyRate     float64 `json:"vacancyRate" yaml:"vacancyRate"`
	InventoryCount  int     `json:"inventoryCount" yaml:"inventoryCount"`
	AvgDaysOnMarket int     `json:"avgDaysOnMarket" yaml:"avgDaysOnMarket"`
}

type Competitor struct {
	ID            int64    `json:"id" yaml:"id" gorm:"primaryKey"`
	Name          string   `json:"name" yaml:"name"`
	AvgRent       float64  `json:"avgRent" yaml:"avgRent"`
	Units         int      `json:"units" yaml:"units"`
	OccupancyRate float64  `json:"occupancyRate" yaml:"occupancyRate"`
	Amenities     []string `json:"amenities" yaml:"amenities" gorm:"serializer:json"`
	Proximity     float64  `json:"proximity" yaml:"proximity"`
	LastUpdated   Date     `json:"lastUpdated" yaml:"lastUpdated"`
}
