package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStatus_Lifecycle(t *testing.T) {
	assert.True(t, JobStatusCompleted.Terminal())
	assert.True(t, JobStatusFailed.Terminal())
	assert.True(t, JobStatusDead.Terminal())
	assert.False(t, JobStatusPending.Terminal())
	assert.False(t, JobStatusProcessing.Terminal())

	assert.True(t, JobStatusFailed.Retryable())
	assert.True(t, JobStatusDead.Retryable())
	assert.False(t, JobStatusCompleted.Retryable())
	assert.False(t, JobStatusPending.Retryable())
}

func TestJobPriority_Rank(t *testing.T) {
	assert.Greater(t, JobPriorityHigh.Rank(), JobPriorityMedium.Rank())
	assert.Greater(t, JobPriorityMedium.Rank(), JobPriorityLow.Rank())
	assert.Equal(t, 0, JobPriority("bogus").Rank())
}

func TestJobType_UnmarshalText(t *testing.T) {
	var jt JobType
	require.NoError(t, jt.UnmarshalText([]byte(" Image_Hash ")))
	assert.Equal(t, JobTypeImageHash, jt)

	err := jt.UnmarshalText([]byte("browser"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JobType")
}

func TestEnqueueJobRequest_Validate(t *testing.T) {
	valid := func() *EnqueueJobRequest {
		return &EnqueueJobRequest{
			Type:    JobTypeFraudCheck,
			Payload: json.RawMessage(`{"participation_id": "p1"}`),
		}
	}

	require.NoError(t, valid().Validate())

	req := valid()
	req.Type = "bogus"
	assert.ErrorContains(t, req.Validate(), "invalid job type")

	req = valid()
	req.Payload = nil
	assert.ErrorContains(t, req.Validate(), "payload is required")

	req = valid()
	req.Priority = "urgent"
	assert.ErrorContains(t, req.Validate(), "invalid priority")

	req = valid()
	req.MaxAttempts = -1
	assert.ErrorContains(t, req.Validate(), "max attempts")

	req = valid()
	req.Priority = JobPriorityLow
	now := time.Now()
	req.ScheduledAt = &now
	require.NoError(t, req.Validate())
}
