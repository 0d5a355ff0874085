// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"
	"time"

	calendarfeature "github.com/dalemusser/wuwapi/internal/app/features/calendar"
	deadlinesfeature "github.com/dalemusser/wuwapi/internal/app/features/deadlines"
	groupsfeature "github.com/dalemusser/wuwapi/internal/app/features/groups"
	healthfeature "github.com/dalemusser/wuwapi/internal/app/features/health"
	homefeature "github.com/dalemusser/wuwapi/internal/app/features/home"
	lecturesfeature "github.com/dalemusser/wuwapi/internal/app/features/lectures"
	roomsfeature "github.com/dalemusser/wuwapi/internal/app/features/rooms"
	deadlinestore "github.com/dalemusser/wuwapi/internal/app/store/deadlines"
	lecturestore "github.com/dalemusser/wuwapi/internal/app/store/lectures"
	metricsstore "github.com/dalemusser/wuwapi/internal/app/store/metrics"
	"github.com/dalemusser/wuwapi/internal/app/system/htmlsanitize"
	"github.com/dalemusser/wuwapi/internal/app/system/metrics"
	"github.com/dalemusser/wuwapi/internal/app/system/ratelimit"
	"github.com/dalemusser/wuwapi/internal/app/system/reqlog"
	"github.com/dalemusser/wuwapi/internal/app/system/timeouts"
	"github.com/dalemusser/wuwapi/internal/domain/schedule"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The schedule facade is built over the
// Mongo-backed stores and every feature router hangs off it.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	facade := schedule.NewFacade(
		lecturestore.New(deps.WuwMongoDatabase),
		deadlinestore.New(deps.WuwMongoDatabase),
		logger,
		schedule.WithSanitizer(htmlsanitize.PlainText),
	)

	db := deps.WuwMongoDatabase
	m := metrics.New()
	m.TrackSizes(func(ctx context.Context) map[string]int64 {
		return metricsstore.FetchCounts(ctx, db, time.Now()).Gauges()
	}, timeouts.Short())

	return newRouter(appCfg, facade, deps.WuwMongoClient, m, logger), nil
}

// newRouter assembles middleware and feature routes. It takes the facade
// and pinger directly so tests can run it against in-memory repositories.
func newRouter(appCfg AppConfig, facade *schedule.Facade, pinger healthfeature.Pinger, m *metrics.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(reqlog.Middleware(logger))
	r.Use(m.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: appCfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{reqlog.Header},
		MaxAge:         300,
	}))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(pinger, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", m.Handler())

	api := func(r chi.Router) {
		homefeature.Register(r)

		lecturesHandler := lecturesfeature.NewHandler(facade, logger)
		lecturesfeature.Register(r, lecturesHandler)

		roomsHandler := roomsfeature.NewHandler(facade, logger)
		roomsfeature.Register(r, roomsHandler)

		groupsHandler := groupsfeature.NewHandler(facade, logger)
		groupsfeature.Register(r, groupsHandler)

		deadlinesHandler := deadlinesfeature.NewHandler(facade, m, logger)
		if appCfg.DeadlineWriteLimit > 0 {
			limiter := ratelimit.New(appCfg.DeadlineWriteLimit, time.Minute)
			// Validated in ValidateConfig.
			limiter.TrustedProxies, _ = ratelimit.ParseProxies(appCfg.TrustedProxies)
			deadlinesHandler.WriteLimit = limiter
		}
		r.Mount("/deadlines", deadlinesfeature.Routes(deadlinesHandler))

		calendarHandler := calendarfeature.NewHandler(facade, logger)
		calendarfeature.Register(r, calendarHandler)
	}
	if appCfg.APIBasePath == "/" {
		api(r)
	} else {
		r.Route(appCfg.APIBasePath, api)
	}

	return r
}
