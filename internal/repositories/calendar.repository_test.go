package repositories

import (
	"context"
	"testing"
	"time"
	. "villabook/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupCalendarDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUpsertDaysAssignsAllDayFields(t *testing.T) {
	gormDB, mock := setupCalendarDB(t)

	// An existing row must take the incoming notes too, not just status and
	// price.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "calendar_days" .+ ON CONFLICT \("day"\) DO UPDATE SET .*"notes"=.+`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectCommit()

	price := decimal.RequireFromString("120")
	notes := "late checkout agreed"
	days := []CalendarDay{
		{Day: mustDay(t, "2026-09-01"), Status: DayStatusAvailable, Price: &price, Notes: &notes},
		{Day: mustDay(t, "2026-09-02"), Status: DayStatusAvailable, Price: &price, Notes: &notes},
	}

	repo := &calendarRepository{}
	err := repo.UpsertDays(context.Background(), gormDB, days)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertDaysSkipsEmptyBatch(t *testing.T) {
	gormDB, mock := setupCalendarDB(t)

	repo := &calendarRepository{}
	err := repo.UpsertDays(context.Background(), gormDB, nil)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func mustDay(t *testing.T, value string) (day time.Time) {
	t.Helper()

	day, err := ParseDay(value)
	require.NoError(t, err)
	return day
}
