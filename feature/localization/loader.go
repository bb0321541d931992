package localization

import (
	"langusta/core/langusta"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the localization feature. A nil instance disables it.
func NewFeature(l *langusta.Langusta, logger *zap.Logger, guard fiber.Handler) *Feature {
	if l == nil {
		return &Feature{}
	}
	svc := NewService(l, logger)
	return &Feature{service: svc, handler: NewHandler(svc, guard)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "localization"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
