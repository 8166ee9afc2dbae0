// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like ports, TLS,
// logging, CORS, and request body limits. AppConfig carries what is
// specific to collabhub: the MongoDB connection, token signing, and
// per-operation store timeouts.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Upper bound on pooled connections
	MongoMinPoolSize uint64 // Connections kept warm

	// Bearer token configuration
	JWTSecret string        // HS256 signing secret (32+ chars; required in production)
	JWTIssuer string        // "iss" claim written and required on every token
	JWTTTL    time.Duration // Token lifetime

	// Store operation timeouts (zero keeps the built-in default)
	TimeoutShort  time.Duration // single-document reads and writes
	TimeoutMedium time.Duration // lists and multi-collection reads
}
