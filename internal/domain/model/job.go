// Package model defines the core data types and structures used throughout the betabounty reward system.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// JobType represents the type of job to be executed.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type JobType string

// JobStatus represents the current status of a job.
type JobStatus string

// JobPriority represents the dispatch priority of a job.
type JobPriority string

const (
	// JobTypeImageHash computes a perceptual hash for a submitted asset.
	JobTypeImageHash JobType = "image_hash"
	// JobTypeTextSimilarity compares a participation's feedback text against other submissions.
	JobTypeTextSimilarity JobType = "text_similarity"
	// JobTypeFraudCheck aggregates fraud signals into a score and routes the participation.
	JobTypeFraudCheck JobType = "fraud_check"
	// JobTypeAIReport generates a narrative campaign report from approved participations.
	JobTypeAIReport JobType = "ai_report"
	// JobTypeSendNotification delivers a templated notification to a recipient.
	JobTypeSendNotification JobType = "send_notification"

	// JobStatusPending indicates a job is waiting to be claimed.
	JobStatusPending JobStatus = "pending"
	// JobStatusProcessing indicates a job has been claimed and is executing.
	JobStatusProcessing JobStatus = "processing"
	// JobStatusCompleted indicates a job finished successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates a job faulted before execution (e.g. undecodable payload)
	// and will not be retried automatically.
	JobStatusFailed JobStatus = "failed"
	// JobStatusDead indicates a job exhausted its retry budget and is parked for operators.
	JobStatusDead JobStatus = "dead"

	// JobPriorityHigh is claimed before medium and low.
	JobPriorityHigh JobPriority = "high"
	// JobPriorityMedium is the default priority.
	JobPriorityMedium JobPriority = "medium"
	// JobPriorityLow is claimed last.
	JobPriorityLow JobPriority = "low"
)

// ErrNoJobsAvailable is returned when no jobs are eligible for claiming.
var ErrNoJobsAvailable = errors.New("no jobs available")

// UnmarshalText implements encoding.TextUnmarshaler for JobType to allow env parsing.
func (t *JobType) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	jt := JobType(v)
	if jt.Valid() {
		*t = jt
		return nil
	}
	return fmt.Errorf("invalid JobType: %q", v)
}

// Valid returns true if the JobType is valid.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeImageHash, JobTypeTextSimilarity, JobTypeFraudCheck, JobTypeAIReport, JobTypeSendNotification:
		return true
	}
	return false
}

// Valid returns true if the JobStatus is valid.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusProcessing, JobStatusCompleted, JobStatusFailed, JobStatusDead:
		return true
	}
	return false
}

// Terminal returns true if no further automatic transitions apply to the status.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed || s == JobStatusDead
}

// Retryable returns true if an operator may reset a job in this status back to pending.
func (s JobStatus) Retryable() bool {
	return s == JobStatusFailed || s == JobStatusDead
}

// Valid returns true if the JobPriority is valid.
func (p JobPriority) Valid() bool {
	return p == JobPriorityHigh || p == JobPriorityMedium || p == JobPriorityLow
}

// Rank maps a priority to its claim ordering weight (higher claims first).
func (p JobPriority) Rank() int {
	switch p {
	case JobPriorityHigh:
		return 3
	case JobPriorityMedium:
		return 2
	case JobPriorityLow:
		return 1
	}
	return 0
}

// Job represents a unit of deferred work with its scheduling and retry state.
type Job struct {
	ID             string          `json:"id"                         db:"id"`
	Type           JobType         `json:"type"                       db:"type"`
	Status         JobStatus       `json:"status"                     db:"status"`
	Priority       JobPriority     `json:"priority"                   db:"priority"`
	Payload        json.RawMessage `json:"payload"                    db:"payload"`
	Attempts       int             `json:"attempts"                   db:"attempts"`
	MaxAttempts    int             `json:"max_attempts"               db:"max_attempts"`
	ScheduledAt    time.Time       `json:"scheduled_at"               db:"scheduled_at"`
	StartedAt      *time.Time      `json:"started_at,omitempty"       db:"started_at"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"     db:"completed_at"`
	FailedAt       *time.Time      `json:"failed_at,omitempty"        db:"failed_at"`
	LastError      *string         `json:"last_error,omitempty"       db:"last_error"`
	LeaseExpiresAt *time.Time      `json:"lease_expires_at,omitempty" db:"lease_expires_at"`
	CreatedAt      time.Time       `json:"created_at"                 db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"                 db:"updated_at"`
}

// EnqueueJobRequest represents a request to enqueue a new job.
type EnqueueJobRequest struct {
	Type        JobType         `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Priority    JobPriority     `json:"priority,omitempty"`
	ScheduledAt *time.Time      `json:"scheduled_at,omitempty"`
	MaxAttempts int             `json:"max_attempts,omitempty"`
}

// Validate validates the EnqueueJobRequest fields.
func (r *EnqueueJobRequest) Validate() error {
	if !r.Type.Valid() {
		return errors.New("invalid job type")
	}
	if len(r.Payload) == 0 {
		return errors.New("payload is required")
	}
	if r.Priority != "" && !r.Priority.Valid() {
		return errors.New("invalid priority")
	}
	if r.MaxAttempts < 0 {
		return errors.New("max attempts must be >= 0")
	}
	return nil
}

// JobStats represents counts of jobs per status.
type JobStats struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
	Dead       int `json:"dead"`
}

// BatchResult summarizes one dispatcher invocation.
type BatchResult struct {
	Processed int      `json:"processed"`
	Failed    int      `json:"failed"`
	Stats     JobStats `json:"stats"`
}
