// Package grpc exposes the standard gRPC health service. The status of
// [IdentityServiceName] follows the reachability of the identity backend
// and is updated by the health probe worker.
package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/postdesk/internal/logger"
)

// IdentityServiceName is the health service name reporting whether the
// identity backend answers.
const IdentityServiceName = "postdesk.identity"

// Handler is the root gRPC transport handler.
type Handler struct {
	health *health.Server

	logger *logger.Logger
}

// NewHandler builds a Handler. The server itself reports SERVING; the
// identity service starts as NOT_SERVING until the first successful probe.
func NewHandler(logger *logger.Logger) *Handler {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(IdentityServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		health: hs,
		logger: logger,
	}
}

// Register attaches the health service to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// SetIdentityServing records the outcome of an identity backend probe.
func (h *Handler) SetIdentityServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus(IdentityServiceName, status)
}

// Shutdown flips every service to NOT_SERVING so that clients stop
// routing to this instance.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
