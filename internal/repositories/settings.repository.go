package repositories

import (
	"context"
	"time"
	"villabook/internal/database"
	. "villabook/internal/models"
	"villabook/pkg/logger"

	"gorm.io/gorm"
)

const (
	SETTINGS_CACHE_KEY    = "singleton"
	SETTINGS_CACHE_PREFIX = "settings"
	SETTINGS_CACHE_EXPIRY = 24 * time.Hour
)

type SettingsRepository interface {
	// Get returns the singleton row, creating it with defaults on first
	// access.
	Get(ctx context.Context, tx *gorm.DB) (*Settings, error)
	Update(ctx context.Context, tx *gorm.DB, settings *Settings) error
}

type settingsRepository struct {
	cache database.CacheClient
}

func NewSettingsRepository(db database.DB) SettingsRepository {
	return &settingsRepository{
		cache: db.Cache.Settings,
	}
}

func (r *settingsRepository) Get(ctx context.Context, tx *gorm.DB) (*Settings, error) {
	log := logger.NewWithContext(ctx, "settingsRepository").Function("Get")

	var cached Settings
	found, err := database.NewCacheBuilder(r.cache, SETTINGS_CACHE_KEY).
		WithContext(ctx).
		WithHash(SETTINGS_CACHE_PREFIX).
		Get(&cached)
	if err != nil {
		log.Warn("failed to get settings from cache", "error", err)
	}
	if found {
		return &cached, nil
	}

	var settings Settings
	if err := tx.WithContext(ctx).First(&settings, SettingsID).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, log.Err("failed to get settings", err)
		}

		settings = DefaultSettings()
		if err := tx.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, log.Err("failed to create default settings", err)
		}
		log.Info("Default settings row created")
	}

	r.cacheSettings(ctx, &settings)

	return &settings, nil
}

func (r *settingsRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	settings *Settings,
) error {
	log := logger.NewWithContext(ctx, "settingsRepository").Function("Update")

	settings.ID = SettingsID
	if err := tx.WithContext(ctx).Save(settings).Error; err != nil {
		return log.Err("failed to update settings", err)
	}

	r.cacheSettings(ctx, settings)

	log.Info("Settings updated", "minNights", settings.MinNights)
	return nil
}

func (r *settingsRepository) cacheSettings(ctx context.Context, settings *Settings) {
	log := logger.NewWithContext(ctx, "settingsRepository").Function("cacheSettings")

	if err := database.NewCacheBuilder(r.cache, SETTINGS_CACHE_KEY).
		WithContext(ctx).
		WithHash(SETTINGS_CACHE_PREFIX).
		WithStruct(settings).
		WithTTL(SETTINGS_CACHE_EXPIRY).
		Set(); err != nil {
		log.Warn("failed to cache settings", "error", err)
	}
}
