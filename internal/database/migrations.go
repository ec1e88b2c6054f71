package database

import (
	"villabook/internal/models"
	"villabook/pkg/logger"
)

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []interface{}{
		&models.Settings{},
		&models.CalendarDay{},
		&models.BookingRequest{},
		&models.Reservation{},
		&models.Workorder{},
		&models.ChecklistItem{},
		&models.StatEvent{},
	}

	for _, model := range modelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			log.Error("Failed to migrate model", "model", model, "error", err)
			return err
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates additional indexes that GORM doesn't create automatically
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_calendar_days_status_day ON calendar_days(status, day)",
		"CREATE INDEX IF NOT EXISTS idx_booking_requests_status_created ON booking_requests(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_reservations_dates ON reservations(start_date, end_date)",
		"CREATE INDEX IF NOT EXISTS idx_stat_events_event_date ON stat_events(event, event_date DESC)",
	}

	for _, indexSQL := range indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
			// Continue with other indexes even if one fails
		}
	}

	log.Info("Additional database indexes created")
	return nil
}
