package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ChecklistState maps area -> checklist item id -> done. Completion marks
// reference catalog items by id but live entirely on the workorder, so
// catalog edits never rewrite history.
type ChecklistState map[string]map[string]bool

// WorkorderServices are the ancillary service selections for a stay.
type WorkorderServices struct {
	KeyDelivery bool   `json:"key_delivery"`
	Linen       bool   `json:"linen"`
	Platform    string `json:"platform,omitempty"`
}

// Purchase is an ad-hoc expense recorded against a workorder.
type Purchase struct {
	Concept string          `json:"concept"`
	Amount  decimal.Decimal `json:"amount"`
}

// Workorder is the cleaning/operations record attached to one reservation.
// Created empty at approval and mutated repeatedly by cleaning staff.
type Workorder struct {
	BaseModel
	ReservationID  int                                    `gorm:"not null;uniqueIndex:idx_workorders_reservation" json:"reservation_id"`
	EntryHours     *decimal.Decimal                       `gorm:"type:decimal(5,2)" json:"entry_hours"`
	ExitHours      *decimal.Decimal                       `gorm:"type:decimal(5,2)" json:"exit_hours"`
	EntryChecklist datatypes.JSONType[ChecklistState]     `gorm:"type:jsonb"        json:"entry_checklist"`
	ExitChecklist  datatypes.JSONType[ChecklistState]     `gorm:"type:jsonb"        json:"exit_checklist"`
	Services       datatypes.JSONType[WorkorderServices]  `gorm:"type:jsonb"        json:"services"`
	Purchases      datatypes.JSONType[[]Purchase]         `gorm:"type:jsonb"        json:"purchases"`
	Notes          *string                                `gorm:"type:text"         json:"notes,omitempty"`
}

// CostBreakdown is the derived cost model of a workorder, recomputed on
// every read. Values are full precision; rounding to 2 decimals happens at
// the view layer only.
type CostBreakdown struct {
	EntryCost      decimal.Decimal `json:"entry_cost"`
	ExitCost       decimal.Decimal `json:"exit_cost"`
	KeyCost        decimal.Decimal `json:"key_cost"`
	LinenCost      decimal.Decimal `json:"linen_cost"`
	PurchasesCost  decimal.Decimal `json:"purchases_cost"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	PlatformFee    decimal.Decimal `json:"platform_fee"`
	TaxHold        decimal.Decimal `json:"tax_hold"`
	ManagementBase decimal.Decimal `json:"management_base"`
	ManagementFee  decimal.Decimal `json:"management_fee"`
	TotalDue       decimal.Decimal `json:"total_due"`
}

// Rounded returns a presentation copy with every amount rounded to 2
// decimals.
func (b CostBreakdown) Rounded() CostBreakdown {
	return CostBreakdown{
		EntryCost:      b.EntryCost.Round(2),
		ExitCost:       b.ExitCost.Round(2),
		KeyCost:        b.KeyCost.Round(2),
		LinenCost:      b.LinenCost.Round(2),
		PurchasesCost:  b.PurchasesCost.Round(2),
		Subtotal:       b.Subtotal.Round(2),
		PlatformFee:    b.PlatformFee.Round(2),
		TaxHold:        b.TaxHold.Round(2),
		ManagementBase: b.ManagementBase.Round(2),
		ManagementFee:  b.ManagementFee.Round(2),
		TotalDue:       b.TotalDue.Round(2),
	}
}

// WorkorderView is the API shape of a workorder with its cost breakdown.
type WorkorderView struct {
	ReservationID  int               `json:"reservation_id"`
	EntryHours     *decimal.Decimal  `json:"entry_hours"`
	ExitHours      *decimal.Decimal  `json:"exit_hours"`
	EntryChecklist ChecklistState    `json:"entry_checklist"`
	ExitChecklist  ChecklistState    `json:"exit_checklist"`
	Services       WorkorderServices `json:"services"`
	Purchases      []Purchase        `json:"purchases"`
	Notes          *string           `json:"notes,omitempty"`
	Costs          *CostBreakdown    `json:"costs,omitempty"`
}

func (w *Workorder) ToView() WorkorderView {
	entry := w.EntryChecklist.Data()
	if entry == nil {
		entry = ChecklistState{}
	}
	exit := w.ExitChecklist.Data()
	if exit == nil {
		exit = ChecklistState{}
	}
	purchases := w.Purchases.Data()
	if purchases == nil {
		purchases = []Purchase{}
	}

	return WorkorderView{
		ReservationID:  w.ReservationID,
		EntryHours:     w.EntryHours,
		ExitHours:      w.ExitHours,
		EntryChecklist: entry,
		ExitChecklist:  exit,
		Services:       w.Services.Data(),
		Purchases:      purchases,
		Notes:          w.Notes,
	}
}
