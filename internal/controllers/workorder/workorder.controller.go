package workorderController

import (
	"context"
	"errors"
	"villabook/config"
	"villabook/internal/database"
	. "villabook/internal/models"
	"villabook/internal/repositories"
	"villabook/internal/services"
	"villabook/pkg/logger"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

var hundred = decimal.NewFromInt(100)

type UpdateWorkorderRequest struct {
	EntryHours     *decimal.Decimal   `json:"entry_hours,omitempty"`
	ExitHours      *decimal.Decimal   `json:"exit_hours,omitempty"`
	EntryChecklist *ChecklistState    `json:"entry_checklist,omitempty"`
	ExitChecklist  *ChecklistState    `json:"exit_checklist,omitempty"`
	Services       *WorkorderServices `json:"services,omitempty"`
	Purchases      *[]Purchase        `json:"purchases,omitempty"`
	Notes          *string            `json:"notes,omitempty"`
}

type WorkorderControllerInterface interface {
	GetByReservation(ctx context.Context, reservationID int) (*WorkorderView, error)
	// GetByToken resolves the reservation behind a public token and returns
	// it with the workorder and costs embedded. This is the only read path
	// that needs no admin session.
	GetByToken(ctx context.Context, token string) (*ReservationView, error)
	Update(ctx context.Context, reservationID int, request *UpdateWorkorderRequest) (*WorkorderView, error)
}

type WorkorderController struct {
	workorderRepo   repositories.WorkorderRepository
	reservationRepo repositories.ReservationRepository
	settingsRepo    repositories.SettingsRepository
	db              database.DB
	Config          config.Config
	log             logger.Logger
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) WorkorderControllerInterface {
	return &WorkorderController{
		workorderRepo:   repos.Workorder,
		reservationRepo: repos.Reservation,
		settingsRepo:    repos.Settings,
		db:              db,
		Config:          config,
		log:             logger.New("workorderController"),
	}
}

func (c *WorkorderController) GetByReservation(
	ctx context.Context,
	reservationID int,
) (*WorkorderView, error) {
	log := c.log.Function("GetByReservation")

	reservation, err := c.reservationRepo.GetByID(ctx, c.db.SQL, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "reservation not found",
				"reservationID", reservationID)
		}
		return nil, err
	}

	return c.workorderView(ctx, reservation)
}

func (c *WorkorderController) GetByToken(
	ctx context.Context,
	token string,
) (*ReservationView, error) {
	log := c.log.Function("GetByToken")

	if token == "" {
		return nil, log.ErrorWithType(ErrNotFound, "missing token")
	}

	reservation, err := c.reservationRepo.GetByToken(ctx, c.db.SQL, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "no reservation for token")
		}
		return nil, err
	}

	workorder, err := c.workorderView(ctx, reservation)
	if err != nil {
		return nil, err
	}

	view := reservation.ToView()
	view.Workorder = workorder
	return &view, nil
}

// Update merges the provided fields into the workorder and returns the fresh
// state with recomputed costs. Absent fields are left alone, so concurrent
// edits to different fields do not clobber each other.
func (c *WorkorderController) Update(
	ctx context.Context,
	reservationID int,
	request *UpdateWorkorderRequest,
) (*WorkorderView, error) {
	log := c.log.Function("Update")

	if request.Purchases != nil {
		for _, purchase := range *request.Purchases {
			if purchase.Amount.IsNegative() {
				return nil, log.ErrorWithType(ErrValidation,
					"purchase amount cannot be negative", "concept", purchase.Concept)
			}
		}
	}

	reservation, err := c.reservationRepo.GetByID(ctx, c.db.SQL, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "reservation not found",
				"reservationID", reservationID)
		}
		return nil, err
	}

	if err := c.workorderRepo.EnsureExists(ctx, c.db.SQL, reservation.ID); err != nil {
		return nil, err
	}

	updates := make(map[string]any)
	if request.EntryHours != nil {
		updates["entry_hours"] = request.EntryHours
	}
	if request.ExitHours != nil {
		updates["exit_hours"] = request.ExitHours
	}
	if request.EntryChecklist != nil {
		updates["entry_checklist"] = datatypes.NewJSONType(*request.EntryChecklist)
	}
	if request.ExitChecklist != nil {
		updates["exit_checklist"] = datatypes.NewJSONType(*request.ExitChecklist)
	}
	if request.Services != nil {
		updates["services"] = datatypes.NewJSONType(*request.Services)
	}
	if request.Purchases != nil {
		updates["purchases"] = datatypes.NewJSONType(*request.Purchases)
	}
	if request.Notes != nil {
		updates["notes"] = request.Notes
	}

	if err := c.workorderRepo.Update(ctx, c.db.SQL, reservation.ID, updates); err != nil {
		return nil, err
	}

	return c.workorderView(ctx, reservation)
}

func (c *WorkorderController) workorderView(
	ctx context.Context,
	reservation *Reservation,
) (*WorkorderView, error) {
	log := c.log.Function("workorderView")

	workorder, err := c.workorderRepo.GetByReservation(ctx, c.db.SQL, reservation.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "workorder not found",
				"reservationID", reservation.ID)
		}
		return nil, err
	}

	settings, err := c.settingsRepo.Get(ctx, c.db.SQL)
	if err != nil {
		return nil, log.Err("failed to load settings", err)
	}

	view := workorder.ToView()
	costs := ComputeBreakdown(workorder, settings, reservation.PriceTotal).Rounded()
	view.Costs = &costs

	return &view, nil
}

// ComputeBreakdown derives the full cost model of a workorder. Costs are
// never stored; they are recomputed from the workorder, the current settings
// and the reservation total on every read.
//
// The management fee applies to what the owner actually nets: the booking
// total minus the platform commission, the tax hold and the operational
// subtotal, floored at zero.
func ComputeBreakdown(
	workorder *Workorder,
	settings *Settings,
	priceTotal *decimal.Decimal,
) CostBreakdown {
	breakdown := CostBreakdown{}

	if workorder.EntryHours != nil {
		breakdown.EntryCost = workorder.EntryHours.Mul(settings.CleaningHourPrice)
	}
	if workorder.ExitHours != nil {
		breakdown.ExitCost = workorder.ExitHours.Mul(settings.CleaningHourPrice)
	}

	svc := workorder.Services.Data()
	if svc.KeyDelivery {
		breakdown.KeyCost = settings.KeyDeliveryPrice
	}
	if svc.Linen {
		breakdown.LinenCost = settings.LinenCleaningPrice
	}

	for _, purchase := range workorder.Purchases.Data() {
		breakdown.PurchasesCost = breakdown.PurchasesCost.Add(purchase.Amount)
	}

	breakdown.Subtotal = breakdown.EntryCost.
		Add(breakdown.ExitCost).
		Add(breakdown.KeyCost).
		Add(breakdown.LinenCost).
		Add(breakdown.PurchasesCost)

	total := decimal.Zero
	if priceTotal != nil {
		total = *priceTotal
	}

	if pct, ok := settings.PlatformPercentage(svc.Platform); ok {
		breakdown.PlatformFee = total.Mul(pct).Div(hundred)
	}

	breakdown.TaxHold = total.Mul(settings.TaxPercentage).Div(hundred)

	breakdown.ManagementBase = total.
		Sub(breakdown.PlatformFee).
		Sub(breakdown.TaxHold).
		Sub(breakdown.Subtotal)
	if breakdown.ManagementBase.IsNegative() {
		breakdown.ManagementBase = decimal.Zero
	}

	breakdown.ManagementFee = breakdown.ManagementBase.
		Mul(settings.ManagementPercentage).
		Div(hundred)

	breakdown.TotalDue = breakdown.Subtotal.Add(breakdown.ManagementFee)

	return breakdown
}
