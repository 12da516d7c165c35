package service

import (
	"github.com/MKhiriev/postdesk/internal/adapter"
	"github.com/MKhiriev/postdesk/internal/config"
	"github.com/MKhiriev/postdesk/internal/crypto"
	"github.com/MKhiriev/postdesk/internal/logger"
	"github.com/MKhiriev/postdesk/internal/store"
	"github.com/MKhiriev/postdesk/models"
)

type Services struct {
	AuthService     AuthService
	SettingsService SettingsService
	PostService     PostService
	AppInfoService  AppInfoService
}

func NewServices(
	storages *store.Storages,
	provider adapter.IdentityProvider,
	sealer crypto.Sealer,
	cfg config.App,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) *Services {
	return &Services{
		AuthService:     NewAuthService(provider, cfg, logger),
		SettingsService: NewSettingsService(storages.Settings, sealer, logger),
		PostService:     NewPostService(storages.Posts, logger),
		AppInfoService:  NewAppInfoService(buildInfo, logger),
	}
}
