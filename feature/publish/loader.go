package publish

import (
	"langusta/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the publish feature serving bucket/object.
func NewFeature(client storage.Client, bucket, object string, keepHistory int, logger *zap.Logger, guard fiber.Handler) *Feature {
	svc := NewService(client, bucket, object, keepHistory, logger)
	return &Feature{service: svc, handler: NewHandler(svc, guard)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "publish"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service.client != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
