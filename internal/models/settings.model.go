package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PlatformFee is one row of the external-platform commission table.
type PlatformFee struct {
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Settings is the singleton operational configuration row. ID is always 1.
type Settings struct {
	ID                   int                              `gorm:"type:int;primaryKey"         json:"-"`
	MinNights            int                              `gorm:"type:int;not null;default:1" json:"min_nights"`
	CleaningHourPrice    decimal.Decimal                  `gorm:"type:decimal(10,2);not null;default:0" json:"cleaning_hour_price"`
	TaxPercentage        decimal.Decimal                  `gorm:"type:decimal(5,2);not null;default:0"  json:"tax_percentage"`
	KeyDeliveryPrice     decimal.Decimal                  `gorm:"type:decimal(10,2);not null;default:0" json:"key_delivery_price"`
	LinenCleaningPrice   decimal.Decimal                  `gorm:"type:decimal(10,2);not null;default:0" json:"linen_cleaning_price"`
	ManagementPercentage decimal.Decimal                  `gorm:"type:decimal(5,2);not null;default:0"  json:"management_percentage"`
	Platforms            datatypes.JSONType[[]PlatformFee] `gorm:"type:jsonb"                  json:"platforms"`
	NotifyEmails         string                           `gorm:"type:text"                   json:"notify_emails"`
	AssistantEmail       string                           `gorm:"type:text"                   json:"assistant_email"`
	UpdatedAt            time.Time                        `gorm:"autoUpdateTime"              json:"updated_at"`
}

// SettingsID is the fixed primary key of the singleton row.
const SettingsID = 1

// DefaultSettings returns the row written on first access.
func DefaultSettings() Settings {
	return Settings{
		ID:        SettingsID,
		MinNights: 1,
	}
}

// PlatformPercentage looks up the commission percentage for a platform name.
// Stored names are always lowercase, so the lookup is case-insensitive.
// Returns false when no platform is selected or the name has no match.
func (s *Settings) PlatformPercentage(name string) (decimal.Decimal, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return decimal.Zero, false
	}
	for _, p := range s.Platforms.Data() {
		if p.Name == name {
			return p.Percentage, true
		}
	}
	return decimal.Zero, false
}
