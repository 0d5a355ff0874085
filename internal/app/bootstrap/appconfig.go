// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). Framework-level settings such
// as ports, TLS and log level stay in WAFFLE's CoreConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI            string        // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase       string        // Database holding the lectures and deadlines collections
	MongoMaxPoolSize    uint64        // Upper bound on pooled connections
	MongoMinPoolSize    uint64        // Connections kept warm
	MongoConnectTimeout time.Duration // Connect and initial ping budget

	// HTTP surface
	APIBasePath        string   // Prefix for the schedule API (e.g., /api/v0)
	CORSAllowedOrigins []string // Origins allowed by CORS; "*" allows any
	DeadlineWriteLimit int      // Deadline writes per client IP per minute; 0 disables
	TrustedProxies     []string // Proxy IPs/CIDRs whose X-Forwarded-For is believed

	// Request-scoped I/O budgets (zero keeps the built-in default)
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
