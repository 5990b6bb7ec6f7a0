package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - database.go: Database and Redis configuration
//   - http.go: HTTP server configuration
//   - services.go: Dispatcher, fraud and pipeline configuration
type AppConfig struct {
	// Postgres configuration
	Postgres DBConfig `envPrefix:"DB_"`

	// Redis configuration (velocity counters)
	Redis RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Dispatcher configuration
	Dispatcher DispatcherConfig

	// Fraud pipeline configuration
	Fraud FraudConfig

	// External collaborator endpoints
	Collaborators CollaboratorConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Dispatcher.Sanitize()
	c.Fraud.Sanitize()
	c.Collaborators.Sanitize()
	c.Observability.Sanitize()
}
