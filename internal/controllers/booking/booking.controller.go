package bookingController

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"villabook/config"
	"villabook/internal/database"
	. "villabook/internal/models"
	"villabook/internal/repositories"
	"villabook/internal/services"
	"villabook/pkg/logger"

	availabilityController "villabook/internal/controllers/availability"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("not found")
	ErrAlreadyDecided = errors.New("request already decided")
)

const tokenAttempts = 5

type CreateRequestRequest struct {
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	Guest     GuestPayload `json:"guest"`
}

type BookingControllerInterface interface {
	CreateRequest(ctx context.Context, request *CreateRequestRequest) (*RequestView, error)
	ListRequests(ctx context.Context) ([]RequestView, error)
	ApproveRequest(ctx context.Context, id int) (*ReservationView, error)
	RejectRequest(ctx context.Context, id int) error
	DeleteRequest(ctx context.Context, id int) error
	ListReservations(ctx context.Context) ([]ReservationView, error)
	GetReservation(ctx context.Context, id int) (*ReservationView, error)
}

type BookingController struct {
	requestRepo     repositories.RequestRepository
	reservationRepo repositories.ReservationRepository
	workorderRepo   repositories.WorkorderRepository
	calendarRepo    repositories.CalendarRepository
	settingsRepo    repositories.SettingsRepository
	statRepo        repositories.StatRepository
	availability    availabilityController.AvailabilityControllerInterface
	transaction     *services.TransactionService
	notification    *services.NotificationService
	db              database.DB
	Config          config.Config
	log             logger.Logger
}

func New(
	repos repositories.Repository,
	services services.Service,
	availability availabilityController.AvailabilityControllerInterface,
	config config.Config,
	db database.DB,
) BookingControllerInterface {
	return &BookingController{
		requestRepo:     repos.Request,
		reservationRepo: repos.Reservation,
		workorderRepo:   repos.Workorder,
		calendarRepo:    repos.Calendar,
		settingsRepo:    repos.Settings,
		statRepo:        repos.Stat,
		availability:    availability,
		transaction:     services.Transaction,
		notification:    services.Notification,
		db:              db,
		Config:          config,
		log:             logger.New("bookingController"),
	}
}

// CreateRequest validates and stores a guest submission with the quoted price
// snapshotted at submission time. The form_submission event and the manager
// email are best effort; the request stands even if both fail.
func (c *BookingController) CreateRequest(
	ctx context.Context,
	request *CreateRequestRequest,
) (*RequestView, error) {
	log := c.log.Function("CreateRequest")

	if err := ValidateGuest(&request.Guest); err != nil {
		return nil, log.ErrorWithType(ErrValidation, err.Error())
	}

	start, end, err := ParseDayRange(request.StartDate, request.EndDate)
	if err != nil {
		return nil, log.ErrorWithType(availabilityController.ErrInvalidRange, err.Error(),
			"start", request.StartDate, "end", request.EndDate)
	}

	total, nights, err := c.availability.PriceBookableRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	booking := &BookingRequest{
		StartDate:  start,
		EndDate:    end,
		Nights:     nights,
		PriceTotal: &total,
		Status:     RequestStatusPending,
		Payload:    datatypes.NewJSONType(request.Guest),
	}

	if err := c.requestRepo.Create(ctx, c.db.SQL, booking); err != nil {
		return nil, log.Err("failed to create booking request", err)
	}

	c.recordSubmission(ctx, booking)
	c.notifyManagers(ctx, booking)

	view := booking.ToView()
	return &view, nil
}

func (c *BookingController) ListRequests(ctx context.Context) ([]RequestView, error) {
	log := c.log.Function("ListRequests")

	requests, err := c.requestRepo.List(ctx, c.db.SQL)
	if err != nil {
		return nil, log.Err("failed to list requests", err)
	}

	views := make([]RequestView, 0, len(requests))
	for i := range requests {
		views = append(views, requests[i].ToView())
	}

	return views, nil
}

// ApproveRequest turns a pending request into a reservation. The status flip,
// reservation insert, calendar block and workorder creation are one
// transaction; the status flip doubles as the guard, so a request can only
// ever produce one reservation no matter how many admins click at once.
func (c *BookingController) ApproveRequest(
	ctx context.Context,
	id int,
) (*ReservationView, error) {
	log := c.log.Function("ApproveRequest")

	var reservation *Reservation

	err := c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		request, err := c.requestRepo.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return log.ErrorWithType(ErrNotFound, "booking request not found", "requestID", id)
			}
			return err
		}

		changed, err := c.requestRepo.TransitionStatus(
			ctx, tx, id, RequestStatusPending, RequestStatusApproved,
		)
		if err != nil {
			return err
		}
		if !changed {
			return log.ErrorWithType(ErrAlreadyDecided,
				"request was already decided", "requestID", id, "status", string(request.Status))
		}

		token, err := c.generateToken(ctx, tx)
		if err != nil {
			return err
		}

		requestID := request.ID
		reservation = &Reservation{
			RequestID:   &requestID,
			StartDate:   request.StartDate,
			EndDate:     request.EndDate,
			PriceTotal:  request.PriceTotal,
			Payload:     request.Payload,
			PublicToken: token,
		}
		if err := c.reservationRepo.Create(ctx, tx, reservation); err != nil {
			return err
		}

		if err := c.blockRange(ctx, tx, request.StartDate, request.EndDate); err != nil {
			return err
		}

		return c.workorderRepo.EnsureExists(ctx, tx, reservation.ID)
	})
	if err != nil {
		return nil, err
	}

	// The upsert inside the transaction already invalidated the cached
	// months, but a month read before commit can re-cache the old rows.
	// Drop the months again now that the block is visible.
	c.calendarRepo.InvalidateMonths(ctx, reservation.StartDate, reservation.EndDate)

	log.Info("Booking request approved",
		"requestID", id,
		"reservationID", reservation.ID,
	)

	view := reservation.ToView()
	return &view, nil
}

// RejectRequest marks a pending request rejected. Calendar and reservations
// are untouched.
func (c *BookingController) RejectRequest(ctx context.Context, id int) error {
	log := c.log.Function("RejectRequest")

	request, err := c.requestRepo.GetByID(ctx, c.db.SQL, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return log.ErrorWithType(ErrNotFound, "booking request not found", "requestID", id)
		}
		return err
	}

	changed, err := c.requestRepo.TransitionStatus(
		ctx, c.db.SQL, id, RequestStatusPending, RequestStatusRejected,
	)
	if err != nil {
		return err
	}
	if !changed {
		return log.ErrorWithType(ErrAlreadyDecided,
			"request was already decided", "requestID", id, "status", string(request.Status))
	}

	return nil
}

// DeleteRequest removes a request outright. Reservations already created
// from it keep their own copy of the data and survive.
func (c *BookingController) DeleteRequest(ctx context.Context, id int) error {
	log := c.log.Function("DeleteRequest")

	deleted, err := c.requestRepo.Delete(ctx, c.db.SQL, id)
	if err != nil {
		return err
	}
	if !deleted {
		return log.ErrorWithType(ErrNotFound, "booking request not found", "requestID", id)
	}

	return nil
}

func (c *BookingController) ListReservations(ctx context.Context) ([]ReservationView, error) {
	log := c.log.Function("ListReservations")

	reservations, err := c.reservationRepo.List(ctx, c.db.SQL)
	if err != nil {
		return nil, log.Err("failed to list reservations", err)
	}

	views := make([]ReservationView, 0, len(reservations))
	for i := range reservations {
		views = append(views, reservations[i].ToView())
	}

	return views, nil
}

func (c *BookingController) GetReservation(ctx context.Context, id int) (*ReservationView, error) {
	log := c.log.Function("GetReservation")

	reservation, err := c.reservationRepo.GetByID(ctx, c.db.SQL, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "reservation not found", "reservationID", id)
		}
		return nil, err
	}

	view := reservation.ToView()
	return &view, nil
}

// blockRange marks every day of the stay blocked so the quote path stops
// offering it. Prices and notes on blocked days are always cleared.
func (c *BookingController) blockRange(
	ctx context.Context,
	tx *gorm.DB,
	start, end time.Time,
) error {
	var days []CalendarDay
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, CalendarDay{
			Day:    day,
			Status: DayStatusBlocked,
		})
	}

	return c.calendarRepo.UpsertDays(ctx, tx, days)
}

func (c *BookingController) generateToken(ctx context.Context, tx *gorm.DB) (string, error) {
	log := c.log.Function("generateToken")

	for i := 0; i < tokenAttempts; i++ {
		token, err := NewPublicToken()
		if err != nil {
			return "", log.Err("failed to generate token", err)
		}

		exists, err := c.reservationRepo.TokenExists(ctx, tx, token)
		if err != nil {
			return "", err
		}
		if !exists {
			return token, nil
		}
	}

	return "", log.ErrMsg("could not generate a unique public token")
}

// NewPublicToken returns a 32-character URL-safe random token.
func NewPublicToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// ValidateGuest checks the required guest fields of a submission.
func ValidateGuest(guest *GuestPayload) error {
	if strings.TrimSpace(guest.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(guest.Email) == "" || !strings.Contains(guest.Email, "@") {
		return errors.New("a valid email is required")
	}
	if guest.People < 1 {
		return errors.New("at least one guest is required")
	}
	if !guest.AcceptPrivacy {
		return errors.New("the privacy policy must be accepted")
	}
	return nil
}

// ParseDayRange parses a YYYY-MM-DD pair and rejects a reversed range.
func ParseDayRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := ParseDay(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid start date")
	}

	end, err := ParseDay(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid end date")
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end date before start date")
	}

	return start, end, nil
}

func (c *BookingController) recordSubmission(ctx context.Context, booking *BookingRequest) {
	log := c.log.Function("recordSubmission")

	payload, err := json.Marshal(SubmissionPayload{
		RequestID: booking.ID,
		StartDate: FormatDay(booking.StartDate),
		EndDate:   FormatDay(booking.EndDate),
	})
	if err != nil {
		log.Er("failed to marshal submission payload", err)
		return
	}

	event := &StatEvent{Event: EventFormSubmission, Payload: datatypes.JSON(payload)}
	if err := c.statRepo.Insert(ctx, c.db.SQL, event); err != nil {
		log.Er("failed to record form submission", err)
	}
}

func (c *BookingController) notifyManagers(ctx context.Context, booking *BookingRequest) {
	log := c.log.Function("notifyManagers")

	settings, err := c.settingsRepo.Get(ctx, c.db.SQL)
	if err != nil {
		log.Er("failed to load settings for notification", err)
		return
	}

	c.notification.NotifyNewRequest(ctx, settings.NotifyEmails, booking.ID, booking)
}
