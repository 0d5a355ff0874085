// internal/app/features/groups/handler.go
package groups

import (
	"github.com/dalemusser/wuwapi/internal/domain/schedule"
	"go.uber.org/zap"
)

// Handler serves the group views derived from the lecture collection.
type Handler struct {
	Facade *schedule.Facade
	Log    *zap.Logger
}

func NewHandler(facade *schedule.Facade, logger *zap.Logger) *Handler {
	return &Handler{
		Facade: facade,
		Log:    logger,
	}
}
