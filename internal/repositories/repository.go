package repositories

import (
	"villabook/internal/database"
)

type Repository struct {
	Calendar    CalendarRepository
	Request     RequestRepository
	Reservation ReservationRepository
	Workorder   WorkorderRepository
	Checklist   ChecklistRepository
	Stat        StatRepository
	Settings    SettingsRepository
}

func New(db database.DB) Repository {
	return Repository{
		Calendar:    NewCalendarRepository(db), // caches month views
		Request:     NewRequestRepository(),
		Reservation: NewReservationRepository(),
		Workorder:   NewWorkorderRepository(),
		Checklist:   NewChecklistRepository(),
		Stat:        NewStatRepository(),
		Settings:    NewSettingsRepository(db), // caches the singleton
	}
}
