package settingsController

import (
	"context"
	"errors"
	"strings"
	"villabook/config"
	"villabook/internal/database"
	. "villabook/internal/models"
	"villabook/internal/repositories"
	"villabook/internal/services"
	"villabook/pkg/logger"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var ErrValidation = errors.New("validation error")

type UpdateSettingsRequest struct {
	MinNights            *int              `json:"min_nights,omitempty"`
	CleaningHourPrice    *decimal.Decimal  `json:"cleaning_hour_price,omitempty"`
	TaxPercentage        *decimal.Decimal  `json:"tax_percentage,omitempty"`
	KeyDeliveryPrice     *decimal.Decimal  `json:"key_delivery_price,omitempty"`
	LinenCleaningPrice   *decimal.Decimal  `json:"linen_cleaning_price,omitempty"`
	ManagementPercentage *decimal.Decimal  `json:"management_percentage,omitempty"`
	Platforms            *[]PlatformFee    `json:"platforms,omitempty"`
	NotifyEmails         *string           `json:"notify_emails,omitempty"`
	AssistantEmail       *string           `json:"assistant_email,omitempty"`
}

type SettingsControllerInterface interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, request *UpdateSettingsRequest) (*Settings, error)
}

type SettingsController struct {
	settingsRepo repositories.SettingsRepository
	db           database.DB
	Config       config.Config
	log          logger.Logger
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) SettingsControllerInterface {
	return &SettingsController{
		settingsRepo: repos.Settings,
		db:           db,
		Config:       config,
		log:          logger.New("settingsController"),
	}
}

func (c *SettingsController) Get(ctx context.Context) (*Settings, error) {
	log := c.log.Function("Get")

	settings, err := c.settingsRepo.Get(ctx, c.db.SQL)
	if err != nil {
		return nil, log.Err("failed to get settings", err)
	}

	return settings, nil
}

// Update merges the provided fields into the singleton row. Every field is
// optional; only what the admin sent changes.
func (c *SettingsController) Update(
	ctx context.Context,
	request *UpdateSettingsRequest,
) (*Settings, error) {
	log := c.log.Function("Update")

	settings, err := c.settingsRepo.Get(ctx, c.db.SQL)
	if err != nil {
		return nil, log.Err("failed to get settings", err)
	}

	if request.MinNights != nil {
		if *request.MinNights < 1 {
			return nil, log.ErrorWithType(ErrValidation, "min_nights must be at least 1")
		}
		settings.MinNights = *request.MinNights
	}

	prices := map[string]*decimal.Decimal{
		"cleaning_hour_price":  request.CleaningHourPrice,
		"key_delivery_price":   request.KeyDeliveryPrice,
		"linen_cleaning_price": request.LinenCleaningPrice,
	}
	for field, price := range prices {
		if price != nil && price.IsNegative() {
			return nil, log.ErrorWithType(ErrValidation, "price cannot be negative", "field", field)
		}
	}
	if request.CleaningHourPrice != nil {
		settings.CleaningHourPrice = *request.CleaningHourPrice
	}
	if request.KeyDeliveryPrice != nil {
		settings.KeyDeliveryPrice = *request.KeyDeliveryPrice
	}
	if request.LinenCleaningPrice != nil {
		settings.LinenCleaningPrice = *request.LinenCleaningPrice
	}

	if request.TaxPercentage != nil {
		if !validPercentage(*request.TaxPercentage) {
			return nil, log.ErrorWithType(ErrValidation, "tax_percentage must be between 0 and 100")
		}
		settings.TaxPercentage = *request.TaxPercentage
	}
	if request.ManagementPercentage != nil {
		if !validPercentage(*request.ManagementPercentage) {
			return nil, log.ErrorWithType(ErrValidation, "management_percentage must be between 0 and 100")
		}
		settings.ManagementPercentage = *request.ManagementPercentage
	}

	if request.Platforms != nil {
		platforms, err := SanitizePlatforms(*request.Platforms)
		if err != nil {
			return nil, log.ErrorWithType(ErrValidation, err.Error())
		}
		settings.Platforms = datatypes.NewJSONType(platforms)
	}

	if request.NotifyEmails != nil {
		settings.NotifyEmails = strings.TrimSpace(*request.NotifyEmails)
	}
	if request.AssistantEmail != nil {
		settings.AssistantEmail = strings.TrimSpace(*request.AssistantEmail)
	}

	if err := c.settingsRepo.Update(ctx, c.db.SQL, settings); err != nil {
		return nil, log.Err("failed to update settings", err)
	}

	log.Info("Settings updated")
	return settings, nil
}

// SanitizePlatforms normalizes platform names and validates every
// percentage. Duplicate names are rejected since lookups are by name.
func SanitizePlatforms(platforms []PlatformFee) ([]PlatformFee, error) {
	seen := make(map[string]bool)
	sanitized := make([]PlatformFee, 0, len(platforms))

	for _, platform := range platforms {
		name := strings.TrimSpace(strings.ToLower(platform.Name))
		if name == "" {
			return nil, errors.New("platform name is required")
		}
		if seen[name] {
			return nil, errors.New("duplicate platform name: " + name)
		}
		if !validPercentage(platform.Percentage) {
			return nil, errors.New("platform percentage must be between 0 and 100")
		}

		seen[name] = true
		sanitized = append(sanitized, PlatformFee{Name: name, Percentage: platform.Percentage})
	}

	return sanitized, nil
}

func validPercentage(value decimal.Decimal) bool {
	return !value.IsNegative() && value.LessThanOrEqual(decimal.NewFromInt(100))
}
