package database

import "propinsight/server/internal/models"

func (d *Database) RunMigrations() error {
	return d.db.AutoMigrate(
		&models.Property{},
		&models.FinancialRecord{},
		&models.MarketDataPoint{},
		&models.Competitor{},
	)
}
