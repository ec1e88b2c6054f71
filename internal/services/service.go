package services

import (
	"villabook/config"
	"villabook/internal/database"
)

type Service struct {
	Transaction  *TransactionService
	Scheduler    *SchedulerService
	Notification *NotificationService
}

func New(db database.DB, config config.Config) (Service, error) {
	transactionService := NewTransactionService(db)
	schedulerService := NewSchedulerService()
	notificationService := NewNotificationService(config)

	return Service{
		Transaction:  transactionService,
		Scheduler:    schedulerService,
		Notification: notificationService,
	}, nil
}
