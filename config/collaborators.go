package config

import "time"

// CollaboratorConfig contains the endpoints of the external collaborator
// services (storage gateway, payment gateway, notification and report
// services). Their internals live outside this codebase.
type CollaboratorConfig struct {
	StorageBaseURL string `env:"STORAGE_BASE_URL" envDefault:"http://localhost:9100"`
	PaymentBaseURL string `env:"PAYMENT_BASE_URL" envDefault:"http://localhost:9101"`
	NotifyBaseURL  string `env:"NOTIFY_BASE_URL"  envDefault:"http://localhost:9102"`
	ReportBaseURL  string `env:"REPORT_BASE_URL"  envDefault:"http://localhost:9103"`

	// Token authenticates this service against the collaborators.
	Token string `env:"COLLABORATOR_TOKEN"`

	// Timeout bounds each collaborator call.
	Timeout time.Duration `env:"COLLABORATOR_TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to collaborator configuration values.
func (c *CollaboratorConfig) Sanitize() {
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
}
