// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/wuwapi/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the WUW API.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, api_base_path, etc.
//   - Environment variables: WUW_MONGO_URI, WUW_API_BASE_PATH, etc.
//   - Command-line flags: --mongo_uri, --api_base_path, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "wuw", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size (default: 5)"},
	{Name: "mongo_connect_timeout", Default: "10s", Desc: "MongoDB connect and ping timeout"},

	{Name: "api_base_path", Default: "/api/v0", Desc: "Path prefix of the schedule API"},
	{Name: "cors_allowed_origins", Default: "*", Desc: "Comma-separated CORS origins ('*' allows any)"},
	{Name: "deadline_write_limit", Default: 30, Desc: "Deadline writes allowed per client IP per minute (0 disables)"},
	{Name: "trusted_proxies", Default: "", Desc: "Comma-separated proxy IPs/CIDRs allowed to set X-Forwarded-For"},

	// Timeout overrides (blank keeps the default)
	{Name: "timeout_short", Default: "", Desc: "Budget for single-record reads and writes (e.g., 5s)"},
	{Name: "timeout_medium", Default: "", Desc: "Budget for listings and aggregations (e.g., 10s)"},
	{Name: "timeout_long", Default: "", Desc: "Budget for schema setup (e.g., 30s)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges flags > env (WUW_*) > config
// files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "WUW", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:            appValues.String("mongo_uri"),
		MongoDatabase:       appValues.String("mongo_database"),
		MongoMaxPoolSize:    uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize:    uint64(appValues.Int("mongo_min_pool_size")),
		MongoConnectTimeout: appValues.Duration("mongo_connect_timeout", 10*time.Second),

		APIBasePath:        normalizeBasePath(appValues.String("api_base_path")),
		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),
		DeadlineWriteLimit: appValues.Int("deadline_write_limit"),
		TrustedProxies:     splitList(appValues.String("trusted_proxies")),

		TimeoutShort:  appValues.Duration("timeout_short", 0),
		TimeoutMedium: appValues.Duration("timeout_medium", 0),
		TimeoutLong:   appValues.Duration("timeout_long", 0),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI format is checked to catch configuration errors before
// attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	return validateAppConfig(appCfg)
}

// validateAppConfig holds the checks that need no WAFFLE helpers.
func validateAppConfig(appCfg AppConfig) error {
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if !strings.HasPrefix(appCfg.APIBasePath, "/") {
		return fmt.Errorf("api_base_path must start with '/', got %q", appCfg.APIBasePath)
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	if appCfg.DeadlineWriteLimit < 0 {
		return fmt.Errorf("deadline_write_limit must not be negative")
	}
	if _, err := ratelimit.ParseProxies(appCfg.TrustedProxies); err != nil {
		return fmt.Errorf("trusted_proxies: %w", err)
	}
	if len(appCfg.CORSAllowedOrigins) == 0 {
		return fmt.Errorf("cors_allowed_origins must name at least one origin")
	}
	return nil
}

// normalizeBasePath trims whitespace and a trailing slash; "/" stays "/".
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
