package sampledata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"propinsight/server/internal/models"
)

// Dataset is the full set of entities a session starts with
type Dataset struct {
	Properties       []models.Property        `yaml:"properties"`
	FinancialRecords []models.FinancialRecord `yaml:"financial_records"`
	MarketData       []models.MarketDataPoint `yaml:"market_data"`
	Competitors      []models.Competitor      `yaml:"competitors"`
}

// Load returns the built-in dataset when path is empty, otherwise the dataset in the YAML file at path
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample data file: %w", err)
	}

	var dataset Dataset
	if err := yaml.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("failed to parse sample data: %w", err)
	}
	if err := dataset.Validate(); err != nil {
		return nil, err
	}
	return &dataset, nil
}

// Validate rejects values the dashboard cannot represent. Financial records
// pointing at unknown properties are allowed and shown as "Unknown".
func (d *Dataset) Validate() error {
	for _, p := range d.Properties {
		if !p.Status.Valid() {
			return fmt.Errorf("property %d: invalid status %q", p.ID, p.Status)
		}
		if p.OccupancyRate < 0 || p.OccupancyRate > 1 {
			return fmt.Errorf("property %d: occupancy rate %v out of range", p.ID, p.OccupancyRate)
		}
	}
	for _, r := range d.FinancialRecords {
		if !r.Type.Valid() {
			return fmt.Errorf("financial record %d: invalid type %q", r.ID, r.Type)
		}
		if r.Amount < 0 {
			return fmt.Errorf("financial record %d: negative amount", r.ID)
		}
	}
	return nil
}

// Default returns a fresh copy of the built-in dataset
func Default() *Dataset {
	return &Dataset{
		Properties: []models.Property{
			{
				ID:            1,
				Name:          "Lakeside Apartments",
				Address:       "123 Lake Drive, Laketown",
				Units:         24,
				Status:        models.StatusOccupied,
				CurrentRent:   1800,
				LastRenoDate:  models.NewDate(2022, 5, 15),
				OccupancyRate: 0.92,
			},
			{
				ID:            2,
				Name:          "Highland Towers",
				Address:       "456 Mountain View, Highland",
				Units:         16,
				Status:        models.StatusOccupied,
				CurrentRent:   2100,
				LastRenoDate:  models.NewDate(2021, 8, 10),
				OccupancyRate: 0.88,
			},
			{
				ID:            3,
				Name:          "Meadow Gardens",
				Address:       "789 Green Valley, Meadowville",
				Units:         12,
				Status:        models.StatusVacant,
				CurrentRent:   1650,
				LastRenoDate:  models.NewDate(2023, 1, 20),
				OccupancyRate: 0.75,
			},
			{
				ID:            4,
				Name:          "Sunset Condos",
				Address:       "101 Sunset Boulevard, Westside",
				Units:         8,
				Status:        models.StatusPendingRenewal,
				CurrentRent:   2300,
				LastRenoDate:  models.NewDate(2022, 11, 5),
				OccupancyRate: 0.95,
			},
		},
		FinancialRecords: []models.FinancialRecord{
			{ID: 1, PropertyID: 1, Date: models.NewDate(2023, 1, 15), Type: models.RecordIncome, Amount: 43200, Category: "rent", Description: "January rent collection"},
			{ID: 2, PropertyID: 1, Date: models.NewDate(2023, 1, 25), Type: models.RecordExpense, Amount: 5500, Category: "maintenance", Description: "HVAC system repair"},
			{ID: 3, PropertyID: 2, Date: models.NewDate(2023, 1, 15), Type: models.RecordIncome, Amount: 33600, Category: "rent", Description: "January rent collection"},
			{ID: 4, PropertyID: 2, Date: models.NewDate(2023, 1, 20), Type: models.RecordExpense, Amount: 2800, Category: "utilities", Description: "Water and electricity"},
		},
		MarketData: []models.MarketDataPoint{
			{ID: 1, Month: models.NewDate(2023, 1, 1), AvgPrice: 255000, AvgRent: 1850, VacancyRate: 0.05, InventoryCount: 120, AvgDaysOnMarket: 35},
			{ID: 2, Month: models.NewDate(2023, 2, 1), AvgPrice: 258000, AvgRent: 1870, VacancyRate: 0.045, InventoryCount: 115, AvgDaysOnMarket: 32},
			{ID: 3, Month: models.NewDate(2023, 3, 1), AvgPrice: 262000, AvgRent: 1890, VacancyRate: 0.042, InventoryCount: 110, AvgDaysOnMarket: 30},
			{ID: 4, Month: models.NewDate(2023, 4, 1), AvgPrice: 265000, AvgRent: 1900, VacancyRate: 0.04, InventoryCount: 105, AvgDaysOnMarket: 28},
		},
		Competitors: []models.Competitor{
			{
				ID:            1,
				Name:          "Horizon Properties",
				AvgRent:       2100,
				Units:         45,
				OccupancyRate: 0.95,
				Amenities:     []string{"Pool", "Gym", "Covered Parking"},
				Proximity:     2.5,
				LastUpdated:   models.NewDate(2023, 4, 1),
			},
			{
				ID:            2,
				Name:          "Prestige Rentals",
				AvgRent:       1950,
				Units:         32,
				OccupancyRate: 0.90,
				Amenities:     []string{"Pool", "Pet Friendly", "On-site Laundry"},
				Proximity:     1.8,
				LastUpdated:   models.NewDate(2023, 3, 25),
			},
			{
				ID:            3,
				Name:          "Urban Living",
				AvgRent:       2200,
				Units:         50,
				OccupancyRate: 0.93,
				Amenities:     []string{"Gym", "Rooftop Terrace", "Smart Home Features"},
				Proximity:     3.2,
				LastUpdated:   models.NewDate(2023, 4, 5),
			},
		},
	}
}
