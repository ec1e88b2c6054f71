package bookingController

import (
	"context"
	"testing"
	"time"
	"villabook/internal/database"
	. "villabook/internal/models"
	"villabook/internal/services"
	"villabook/pkg/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type stubRequestRepository struct {
	request *BookingRequest
}

func (s *stubRequestRepository) Create(ctx context.Context, tx *gorm.DB, request *BookingRequest) error {
	request.ID = 1
	return nil
}

func (s *stubRequestRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*BookingRequest, error) {
	if s.request == nil || s.request.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.request, nil
}

func (s *stubRequestRepository) List(ctx context.Context, tx *gorm.DB) ([]BookingRequest, error) {
	return nil, nil
}

func (s *stubRequestRepository) TransitionStatus(
	ctx context.Context,
	tx *gorm.DB,
	id int,
	from, to RequestStatus,
) (bool, error) {
	if s.request == nil || s.request.ID != id || s.request.Status != from {
		return false, nil
	}
	s.request.Status = to
	return true, nil
}

func (s *stubRequestRepository) Delete(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	if s.request == nil || s.request.ID != id {
		return false, nil
	}
	s.request = nil
	return true, nil
}

type stubReservationRepository struct {
	created []*Reservation
}

func (s *stubReservationRepository) Create(ctx context.Context, tx *gorm.DB, reservation *Reservation) error {
	reservation.ID = len(s.created) + 1
	s.created = append(s.created, reservation)
	return nil
}

func (s *stubReservationRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Reservation, error) {
	for _, r := range s.created {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubReservationRepository) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*Reservation, error) {
	for _, r := range s.created {
		if r.PublicToken == token {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubReservationRepository) List(ctx context.Context, tx *gorm.DB) ([]Reservation, error) {
	reservations := make([]Reservation, 0, len(s.created))
	for _, r := range s.created {
		reservations = append(reservations, *r)
	}
	return reservations, nil
}

func (s *stubReservationRepository) TokenExists(ctx context.Context, tx *gorm.DB, token string) (bool, error) {
	return false, nil
}

type stubCalendarRepository struct {
	upserted    []CalendarDay
	invalidated int
}

func (s *stubCalendarRepository) GetRange(ctx context.Context, tx *gorm.DB, start, end time.Time) ([]CalendarDay, error) {
	return nil, nil
}

func (s *stubCalendarRepository) GetMonth(ctx context.Context, tx *gorm.DB, year int, month time.Month) ([]CalendarDay, error) {
	return nil, nil
}

func (s *stubCalendarRepository) UpsertDays(ctx context.Context, tx *gorm.DB, days []CalendarDay) error {
	s.upserted = append(s.upserted, days...)
	return nil
}

func (s *stubCalendarRepository) InvalidateMonths(ctx context.Context, start, end time.Time) {
	s.invalidated++
}

type stubWorkorderRepository struct {
	ensured []int
}

func (s *stubWorkorderRepository) EnsureExists(ctx context.Context, tx *gorm.DB, reservationID int) error {
	s.ensured = append(s.ensured, reservationID)
	return nil
}

func (s *stubWorkorderRepository) GetByReservation(ctx context.Context, tx *gorm.DB, reservationID int) (*Workorder, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubWorkorderRepository) Update(ctx context.Context, tx *gorm.DB, reservationID int, updates map[string]any) error {
	return nil
}

func day(value string) time.Time {
	t, err := ParseDay(value)
	if err != nil {
		panic(err)
	}
	return t
}

func pendingRequest() *BookingRequest {
	price := decimal.RequireFromString("300")
	return &BookingRequest{
		BaseModel:  BaseModel{ID: 1},
		StartDate:  day("2026-09-10"),
		EndDate:    day("2026-09-12"),
		Nights:     2,
		PriceTotal: &price,
		Status:     RequestStatusPending,
		Payload:    datatypes.NewJSONType(validGuest()),
	}
}

type approveFixture struct {
	controller   *BookingController
	requests     *stubRequestRepository
	reservations *stubReservationRepository
	calendar     *stubCalendarRepository
	workorders   *stubWorkorderRepository
	mock         sqlmock.Sqlmock
}

func newApproveFixture(t *testing.T, request *BookingRequest) *approveFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	wrapper := database.DB{SQL: gormDB}
	fixture := &approveFixture{
		requests:     &stubRequestRepository{request: request},
		reservations: &stubReservationRepository{},
		calendar:     &stubCalendarRepository{},
		workorders:   &stubWorkorderRepository{},
		mock:         mock,
	}
	fixture.controller = &BookingController{
		requestRepo:     fixture.requests,
		reservationRepo: fixture.reservations,
		workorderRepo:   fixture.workorders,
		calendarRepo:    fixture.calendar,
		transaction:     services.NewTransactionService(wrapper),
		db:              wrapper,
		log:             logger.New("bookingController"),
	}
	return fixture
}

func validGuest() GuestPayload {
	return GuestPayload{
		Name:          "Maria",
		Surname:       "Gonzalez",
		Email:         "maria@example.com",
		Phone:         "+34600000000",
		People:        2,
		AcceptPrivacy: true,
	}
}

func TestValidateGuest(t *testing.T) {
	t.Run("accepts a complete guest", func(t *testing.T) {
		guest := validGuest()
		assert.NoError(t, ValidateGuest(&guest))
	})

	t.Run("rejects missing name", func(t *testing.T) {
		guest := validGuest()
		guest.Name = "   "
		assert.Error(t, ValidateGuest(&guest))
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		guest := validGuest()
		guest.Email = "not-an-email"
		assert.Error(t, ValidateGuest(&guest))
	})

	t.Run("rejects zero guests", func(t *testing.T) {
		guest := validGuest()
		guest.People = 0
		assert.Error(t, ValidateGuest(&guest))
	})

	t.Run("rejects unaccepted privacy policy", func(t *testing.T) {
		guest := validGuest()
		guest.AcceptPrivacy = false
		assert.Error(t, ValidateGuest(&guest))
	})
}

func TestNewPublicToken(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		token, err := NewPublicToken()
		require.NoError(t, err)

		assert.Len(t, token, 32)
		assert.NotContains(t, token, "+")
		assert.NotContains(t, token, "/")
		assert.NotContains(t, token, "=")

		assert.False(t, seen[token], "token collision")
		seen[token] = true
	}
}

func TestApproveRequest(t *testing.T) {
	t.Run("approval creates the reservation, blocks the stay and opens a workorder", func(t *testing.T) {
		fixture := newApproveFixture(t, pendingRequest())
		fixture.mock.ExpectBegin()
		fixture.mock.ExpectCommit()

		view, err := fixture.controller.ApproveRequest(context.Background(), 1)

		require.NoError(t, err)
		assert.Len(t, view.PublicToken, 32)
		assert.Equal(t, RequestStatusApproved, fixture.requests.request.Status)

		require.Len(t, fixture.calendar.upserted, 3)
		for _, blocked := range fixture.calendar.upserted {
			assert.Equal(t, DayStatusBlocked, blocked.Status)
			assert.Nil(t, blocked.Price)
		}

		require.Len(t, fixture.reservations.created, 1)
		assert.Equal(t, []int{fixture.reservations.created[0].ID}, fixture.workorders.ensured)
		assert.Equal(t, 1, fixture.calendar.invalidated)
		assert.NoError(t, fixture.mock.ExpectationsWereMet())
	})

	t.Run("second approval of the same request is rejected", func(t *testing.T) {
		fixture := newApproveFixture(t, pendingRequest())
		fixture.mock.ExpectBegin()
		fixture.mock.ExpectCommit()
		fixture.mock.ExpectBegin()
		fixture.mock.ExpectRollback()

		_, err := fixture.controller.ApproveRequest(context.Background(), 1)
		require.NoError(t, err)

		_, err = fixture.controller.ApproveRequest(context.Background(), 1)

		assert.ErrorIs(t, err, ErrAlreadyDecided)
		assert.Len(t, fixture.reservations.created, 1, "no second reservation")
		assert.NoError(t, fixture.mock.ExpectationsWereMet())
	})

	t.Run("approving a rejected request is a conflict", func(t *testing.T) {
		request := pendingRequest()
		request.Status = RequestStatusRejected
		fixture := newApproveFixture(t, request)
		fixture.mock.ExpectBegin()
		fixture.mock.ExpectRollback()

		_, err := fixture.controller.ApproveRequest(context.Background(), 1)

		assert.ErrorIs(t, err, ErrAlreadyDecided)
		assert.Empty(t, fixture.reservations.created)
	})

	t.Run("unknown request is not found", func(t *testing.T) {
		fixture := newApproveFixture(t, nil)
		fixture.mock.ExpectBegin()
		fixture.mock.ExpectRollback()

		_, err := fixture.controller.ApproveRequest(context.Background(), 42)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRejectRequest(t *testing.T) {
	t.Run("rejecting a pending request flips its status", func(t *testing.T) {
		fixture := newApproveFixture(t, pendingRequest())

		err := fixture.controller.RejectRequest(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, RequestStatusRejected, fixture.requests.request.Status)
	})

	t.Run("rejecting an approved request is a conflict", func(t *testing.T) {
		request := pendingRequest()
		request.Status = RequestStatusApproved
		fixture := newApproveFixture(t, request)

		err := fixture.controller.RejectRequest(context.Background(), 1)

		assert.ErrorIs(t, err, ErrAlreadyDecided)
	})
}

func TestParseDayRange(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		start, end, err := ParseDayRange("2026-09-01", "2026-09-05")

		require.NoError(t, err)
		assert.Equal(t, "2026-09-01", FormatDay(start))
		assert.Equal(t, "2026-09-05", FormatDay(end))
	})

	t.Run("reversed range", func(t *testing.T) {
		_, _, err := ParseDayRange("2026-09-05", "2026-09-01")
		assert.Error(t, err)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, _, err := ParseDayRange("soon", "later")
		assert.Error(t, err)
	})
}
