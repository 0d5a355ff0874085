// internal/app/features/deadlines/handler.go
package deadlines

import (
	"time"

	"github.com/dalemusser/wuwapi/internal/app/system/metrics"
	"github.com/dalemusser/wuwapi/internal/app/system/ratelimit"
	"github.com/dalemusser/wuwapi/internal/domain/schedule"
	"go.uber.org/zap"
)

// Response messages kept stable for existing clients.
const (
	msgCreated = "Deadline created!"
	msgUpdated = "Deadline updated!"
	msgDeleted = "Deadline successfully deleted"
)

// Handler serves deadline reads and writes. Writes pass through
// WriteLimit when it is set.
type Handler struct {
	Facade     *schedule.Facade
	Metrics    *metrics.Metrics
	WriteLimit *ratelimit.Limiter
	Now        func() time.Time
	Log        *zap.Logger
}

func NewHandler(facade *schedule.Facade, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		Facade:  facade,
		Metrics: m,
		Now:     time.Now,
		Log:     logger,
	}
}
