package database

import (
	"fmt"
	"villabook/config"

	"github.com/valkey-io/valkey-go"
)

// Valkey database index organization. Each index provides logical separation
// for a cache category.
const (
	// GENERAL_CACHE_INDEX (DB 0) - miscellaneous cache operations.
	GENERAL_CACHE_INDEX = iota

	// CALENDAR_CACHE_INDEX (DB 1) - rendered month views of the
	// availability calendar, invalidated by range updates and approvals.
	CALENDAR_CACHE_INDEX

	// SETTINGS_CACHE_INDEX (DB 2) - the settings singleton.
	SETTINGS_CACHE_INDEX
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		return log.ErrMsg("failed to initialize cache database: address or port is empty")
	}

	initAddress := []string{fmt.Sprintf("%s:%d", address, port)}

	var cacheDB Cache
	var err error

	cacheDB.General, err = valkey.NewClient(valkey.ClientOption{
		InitAddress: initAddress,
		SelectDB:    GENERAL_CACHE_INDEX,
	})
	if err != nil {
		return log.Err("failed to create general cache client", err)
	}

	cacheDB.Calendar, err = valkey.NewClient(valkey.ClientOption{
		InitAddress: initAddress,
		SelectDB:    CALENDAR_CACHE_INDEX,
	})
	if err != nil {
		return log.Err("failed to create calendar cache client", err)
	}

	cacheDB.Settings, err = valkey.NewClient(valkey.ClientOption{
		InitAddress: initAddress,
		SelectDB:    SETTINGS_CACHE_INDEX,
	})
	if err != nil {
		return log.Err("failed to create settings cache client", err)
	}

	s.Cache = cacheDB
	log.Info("cache database initialized")

	return nil
}
