package database

import (
	"testing"
	"villabook/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestCacheConstants(t *testing.T) {
	assert.Equal(t, 0, GENERAL_CACHE_INDEX)
	assert.Equal(t, 1, CALENDAR_CACHE_INDEX)
	assert.Equal(t, 2, SETTINGS_CACHE_INDEX)
}

func TestDB_StructCreation(t *testing.T) {
	log := logger.New("test")

	db := &DB{
		log: log,
	}

	assert.NotNil(t, db)
	assert.Equal(t, log, db.log)
	assert.Nil(t, db.SQL)
}

// Cache builder paths need a live valkey client and are covered by
// integration runs against a real cache server.
func TestCacheBuilder_SkippedTests(t *testing.T) {
	t.Skip("cache builder requires a real valkey client")
}
