package seed

import (
	"time"
	"villabook/config"
	. "villabook/internal/models"
	"villabook/pkg/logger"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	if err := seedSettings(db, log); err != nil {
		return err
	}

	if err := seedChecklist(db, log); err != nil {
		return err
	}

	return seedCalendar(db, log)
}

func seedSettings(db *gorm.DB, log logger.Logger) error {
	settings := DefaultSettings()
	settings.MinNights = 2
	settings.CleaningHourPrice = decimal.NewFromInt(12)
	settings.TaxPercentage = decimal.RequireFromString("10")
	settings.KeyDeliveryPrice = decimal.NewFromInt(15)
	settings.LinenCleaningPrice = decimal.NewFromInt(25)
	settings.ManagementPercentage = decimal.RequireFromString("20")
	settings.Platforms = datatypes.NewJSONType([]PlatformFee{
		{Name: "airbnb", Percentage: decimal.RequireFromString("15")},
		{Name: "booking", Percentage: decimal.RequireFromString("18")},
	})
	settings.NotifyEmails = "owner@example.com"

	if err := db.Save(&settings).Error; err != nil {
		return log.Err("failed to seed settings", err)
	}

	log.Info("Seeded settings")
	return nil
}

func seedChecklist(db *gorm.DB, log logger.Logger) error {
	items := []ChecklistItem{
		{Title: "Check towels and toiletries", Scope: TaskScopeEntry, Location: "bathroom", SortOrder: 1},
		{Title: "Stock fridge basics", Scope: TaskScopeEntry, Location: "kitchen", SortOrder: 1},
		{Title: "Prepare welcome note", Scope: TaskScopeEntry, Location: "general", SortOrder: 1},
		{Title: "Empty all bins", Scope: TaskScopeExit, Location: "general", SortOrder: 1},
		{Title: "Run dishwasher", Scope: TaskScopeExit, Location: "kitchen", SortOrder: 2},
		{Title: "Strip and wash linen", Scope: TaskScopeExit, Location: "bedroom", SortOrder: 1},
		{Title: "Check for damage", Scope: TaskScopeBoth, Location: "general", SortOrder: 2},
		{Title: "Ventilate all rooms", Scope: TaskScopeBoth, Location: "general", SortOrder: 3},
	}

	for _, item := range items {
		var existing ChecklistItem
		if err := db.First(&existing, "title = ?", item.Title).Error; err == nil {
			continue
		}
		if err := db.Create(&item).Error; err != nil {
			log.Er("failed to seed checklist item", err, "title", item.Title)
		}
	}

	log.Info("Seeded checklist catalog", "items", len(items))
	return nil
}

// seedCalendar prices the next 90 days so the quote flow works out of the
// box in development.
func seedCalendar(db *gorm.DB, log logger.Logger) error {
	price := decimal.NewFromInt(120)
	weekendPrice := decimal.NewFromInt(150)

	start := Day(time.Now().UTC())
	var days []CalendarDay
	for i := 0; i < 90; i++ {
		day := start.AddDate(0, 0, i)

		nightly := price
		if day.Weekday() == time.Friday || day.Weekday() == time.Saturday {
			nightly = weekendPrice
		}

		days = append(days, CalendarDay{
			Day:    day,
			Status: DayStatusAvailable,
			Price:  &nightly,
		})
	}

	if err := db.Create(&days).Error; err != nil {
		return log.Err("failed to seed calendar days", err)
	}

	log.Info("Seeded calendar days", "days", len(days))
	return nil
}
