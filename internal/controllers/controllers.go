package controllers

import (
	"villabook/config"
	"villabook/internal/database"
	"villabook/internal/repositories"
	"villabook/internal/services"

	availabilityController "villabook/internal/controllers/availability"
	bookingController "villabook/internal/controllers/booking"
	checklistController "villabook/internal/controllers/checklist"
	settingsController "villabook/internal/controllers/settings"
	statsController "villabook/internal/controllers/stats"
	workorderController "villabook/internal/controllers/workorder"
)

type Controllers struct {
	Availability availabilityController.AvailabilityControllerInterface
	Booking      bookingController.BookingControllerInterface
	Workorder    workorderController.WorkorderControllerInterface
	Checklist    checklistController.ChecklistControllerInterface
	Stats        statsController.StatsControllerInterface
	Settings     settingsController.SettingsControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) Controllers {
	availability := availabilityController.New(repos, services, config, db)

	return Controllers{
		Availability: availability,
		Booking:      bookingController.New(repos, services, availability, config, db),
		Workorder:    workorderController.New(repos, services, config, db),
		Checklist:    checklistController.New(repos, services, config, db),
		Stats:        statsController.New(repos, services, config, db),
		Settings:     settingsController.New(repos, services, config, db),
	}
}
