package http

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/postdesk/internal/config"
	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/internal/service"
)

type Handler struct {
	services *service.Services
	validate *validator.Validate

	cookieMaxAge  time.Duration
	secureCookies bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:      services,
		validate:      newValidator(),
		cookieMaxAge:  cfg.SessionMaxAge,
		secureCookies: cfg.SecureCookies || cfg.IsProduction(),
		logger:        logger,
	}
}
