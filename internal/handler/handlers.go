package handler

import (
	"github.com/MKhiriev/postdesk/internal/config"
	"github.com/MKhiriev/postdesk/internal/handler/grpc"
	"github.com/MKhiriev/postdesk/internal/handler/http"
	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, app config.App, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, app, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
