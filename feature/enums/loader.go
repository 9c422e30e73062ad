package enums

import (
	"enum-sync/core/enumdef"
	"enum-sync/core/reconcile"
	"enum-sync/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Enums feature.
func NewFeature(client storage.Client, bucket string, logger *zap.Logger, targets []string, manifest enumdef.Config, cfg reconcile.Config) (*Feature, error) {
	svc, err := NewService(client, bucket, logger, targets, manifest, cfg)
	if err != nil {
		return nil, err
	}
	return &Feature{service: svc, handler: NewHandler(svc)}, nil
}

// Service exposes the underlying service so other features can share its
// definition resolution.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "enums"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
