package database

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"propinsight/server/internal/models"
	"propinsight/server/internal/sampledata"
)

// Database is one session's catalog of sample entities. It lives in an
// in-memory SQLite database and is gone once closed.
type Database struct {
	db *gorm.DB
}

func NewMemoryDatabase(name string) (*Database, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// An in-memory database only lives as long as a connection to it is open
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return &Database{db: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Seed inserts a copy of the dataset in a single transaction. The dataset is
// shared by every session, so gorm must not write primary keys back into it.
func (d *Database) Seed(data *sampledata.Dataset) error {
	properties := append([]models.Property(nil), data.Properties...)
	records := append([]models.FinancialRecord(nil), data.FinancialRecords...)
	points := append([]models.MarketDataPoint(nil), data.MarketData...)
	competitors := append([]models.Competitor(nil), data.Competitors...)

	return d.db.Transaction(func(tx *gorm.DB) error {
		if len(properties) > 0 {
			if err := tx.Create(&properties).Error; err != nil {
				return fmt.Errorf("failed to seed properties: %w", err)
			}
		}
		if len(records) > 0 {
			if err := tx.Create(&records).Error; err != nil {
				return fmt.Errorf("failed to seed financial records: %w", err)
			}
		}
		if len(points) > 0 {
			if err := tx.Create(&points).Error; err != nil {
				return fmt.Errorf("failed to seed market data: %w", err)
			}
		}
		if len(competitors) > 0 {
			if err := tx.Create(&competitors).Error; err != nil {
				return fmt.Errorf("failed to seed competitors: %w", err)
			}
		}
		return nil
	})
}

// GetAllProperties returns every property, or only those with the given status when it is set
func (d *Database) GetAllProperties(status models.OccupancyStatus) ([]models.Property, error) {
	query := d.db.Order("id")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	properties := []models.Property{}
	if err := query.Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// GetProperty returns nil without error when no property has the id
func (d *Database) GetProperty(id int64) (*models.Property, error) {
	var property models.Property
	err := d.db.First(&property, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (d *Database) GetFinancialRecords(filter models.FinancialFilter) ([]models.FinancialRecordView, error) {
	query := d.db.Table("financial_records AS r").
		Select("r.*, COALESCE(p.name, 'Unknown') AS property_name").
		Joins("LEFT JOIN properties p ON p.id = r.property_id").
		Order("r.date, r.id")

	if filter.PropertyID != 0 {
		query = query.Where("r.property_id = ?", filter.PropertyID)
	}
	if filter.Type != "" {
		query = query.Where("r.type = ?", filter.Type)
	}

	records := []models.FinancialRecordView{}
	if err := query.Scan(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetFinancialSummary totals all records regardless of any listing filter
func (d *Database) GetFinancialSummary() (models.FinancialSummary, error) {
	var summary models.FinancialSummary
	err := d.db.Model(&models.FinancialRecord{}).
		Select(`
            COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS total_income,
            COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS total_expenses
        `).
		Scan(&summary).Error
	if err != nil {
		return models.FinancialSummary{}, err
	}

	summary.NetIncome = summary.TotalIncome - summary.TotalExpenses
	return summary, nil
}

// GetDashboardStats computes the headline numbers. OccupancyRate is the
// percentage of properties whose status is occupied.
func (d *Database) GetDashboardStats() (models.DashboardStats, error) {
	properties, err := d.GetAllProperties("")
	if err != nil {
		return models.DashboardStats{}, err
	}

	stats := models.DashboardStats{TotalProperties: len(properties)}
	if len(properties) == 0 {
		return stats, nil
	}

	var occupied int
	var rentSum float64
	for _, p := range properties {
		if p.Status == models.StatusOccupied {
			occupied++
		}
		rentSum += p.CurrentRent
		stats.TotalUnits += p.Units
	}
	stats.OccupancyRate = float64(occupied) / float64(len(properties)) * 100
	stats.AverageRent = rentSum / float64(len(properties))
	return stats, nil
}

func (d *Database) GetMarketData() ([]models.MarketDataPoint, error) {
	points := []models.MarketDataPoint{}
	if err := d.db.Order("month, id").Find(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}

func (d *Database) GetCompetitors() ([]models.Competitor, error) {
	competitors := []models.Competitor{}
	if err := d.db.Order("id").Find(&competitors).Error; err != nil {
		return nil, err
	}
	return competitors, nil
}
