package config

import "time"

// DispatcherConfig contains job store and batch dispatcher configuration.
type DispatcherConfig struct {
	// RunToken is the shared bearer secret required by the batch trigger
	// endpoint. Empty disables the endpoint.
	RunToken string `env:"DISPATCHER_RUN_TOKEN"`

	// BatchLimit caps how many jobs one run may claim.
	BatchLimit int `env:"DISPATCHER_BATCH_LIMIT" envDefault:"50"`

	// Concurrency bounds parallel handler execution within a batch.
	Concurrency int `env:"DISPATCHER_CONCURRENCY" envDefault:"4"`

	// LeaseSeconds is how long a claim holds before lease recovery may
	// requeue the job.
	LeaseSeconds int `env:"DISPATCHER_LEASE_SECONDS" envDefault:"60"`

	// RetryBaseDelay is the base of the exponential retry backoff.
	RetryBaseDelay time.Duration `env:"DISPATCHER_RETRY_BASE_DELAY" envDefault:"30s"`

	// RetryMaxDelay caps the retry backoff.
	RetryMaxDelay time.Duration `env:"DISPATCHER_RETRY_MAX_DELAY" envDefault:"1h"`

	// MaxAttempts is the default attempt ceiling for new jobs.
	MaxAttempts int `env:"DISPATCHER_MAX_ATTEMPTS" envDefault:"3"`

	// ResetAttemptsOnRetry controls whether an operator retry zeroes the
	// attempt counter (fresh retry budget) or resumes the remaining one.
	ResetAttemptsOnRetry bool `env:"DISPATCHER_RESET_ATTEMPTS_ON_RETRY" envDefault:"false"`
}

// Sanitize applies guardrails to dispatcher configuration values.
func (d *DispatcherConfig) Sanitize() {
	if d.BatchLimit < 1 {
		d.BatchLimit = 50
	}
	if d.Concurrency < 1 {
		d.Concurrency = 4
	}
	if d.LeaseSeconds < 1 {
		d.LeaseSeconds = 60
	}
	if d.RetryBaseDelay <= 0 {
		d.RetryBaseDelay = 30 * time.Second
	}
	if d.RetryMaxDelay < d.RetryBaseDelay {
		d.RetryMaxDelay = time.Hour
	}
	if d.MaxAttempts < 1 {
		d.MaxAttempts = 3
	}
}

// FraudConfig contains fraud pipeline configuration.
type FraudConfig struct {
	// CheckDelay is how long after submission the aggregation job runs.
	CheckDelay time.Duration `env:"FRAUD_CHECK_DELAY" envDefault:"10s"`

	// RejectThreshold is the score at or above which submissions auto-reject.
	RejectThreshold int `env:"FRAUD_REJECT_THRESHOLD" envDefault:"70"`

	// HammingThreshold is the near-duplicate image bit distance.
	HammingThreshold int `env:"FRAUD_HAMMING_THRESHOLD" envDefault:"10"`

	// TextSimilarityThreshold is the copy/paste feedback similarity.
	TextSimilarityThreshold float64 `env:"FRAUD_TEXT_SIMILARITY_THRESHOLD" envDefault:"0.82"`

	// VelocityRatio is the fraction of the daily cap that fires the
	// velocity signal.
	VelocityRatio float64 `env:"FRAUD_VELOCITY_RATIO" envDefault:"0.8"`
}

// Sanitize applies guardrails to fraud configuration values.
func (f *FraudConfig) Sanitize() {
	if f.CheckDelay <= 0 {
		f.CheckDelay = 10 * time.Second
	}
	// Threshold clamping lives with the scorer config; zero values there fall
	// back to the scorer defaults.
}

// ObservabilityConfig contains metrics configuration.
type ObservabilityConfig struct {
	// StatsdEnabled turns on metric emission.
	StatsdEnabled bool `env:"STATSD_ENABLED" envDefault:"false"`

	// StatsdAddr is the UDP address of the StatsD sink.
	StatsdAddr string `env:"STATSD_ADDR" envDefault:"localhost:8125"`

	// StatsdPrefix is prepended to every metric name.
	StatsdPrefix string `env:"STATSD_PREFIX" envDefault:"betabounty"`
}

// Sanitize applies guardrails to observability configuration values.
func (o *ObservabilityConfig) Sanitize() {
	if o.StatsdAddr == "" {
		o.StatsdEnabled = false
	}
}
