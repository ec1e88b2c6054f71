package middleware

import (
	"villabook/config"
	"villabook/internal/database"
	"villabook/pkg/logger"
)

type Middleware struct {
	DB     database.DB
	Config config.Config
	log    logger.Logger
}

func New(
	db database.DB,
	config config.Config,
) Middleware {
	log := logger.New("middleware")

	return Middleware{
		DB:     db,
		Config: config,
		log:    log,
	}
}
