// internal/app/features/lectures/handler.go
package lectures

import (
	"time"

	"github.com/dalemusser/wuwapi/internal/domain/schedule"
	"go.uber.org/zap"
)

// Handler serves the lecture listings.
type Handler struct {
	Facade *schedule.Facade
	Now    func() time.Time
	Log    *zap.Logger
}

func NewHandler(facade *schedule.Facade, logger *zap.Logger) *Handler {
	return &Handler{
		Facade: facade,
		Now:    time.Now,
		Log:    logger,
	}
}
