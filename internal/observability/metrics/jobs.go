package metrics

import (
	"time"

	"github.com/betabounty/betabounty-api/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultDead    = "dead"
)

// JobMetric captures details about a job lifecycle event for metric emission.
type JobMetric struct {
	JobType    string
	Transition string
	Result     string
	Duration   time.Duration
}

// EmitJobLifecycle emits standardised job lifecycle metrics.
func EmitJobLifecycle(sink statsd.Sink, in JobMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"job_type":   in.JobType,
		"transition": in.Transition,
		"result":     in.Result,
	}

	sink.Count("job.transition", 1, tags)
	if in.Duration > 0 {
		sink.Timing("job.duration", in.Duration, tags)
	}
}

// EmitBatch emits the aggregate outcome of one dispatcher batch run.
func EmitBatch(sink statsd.Sink, processed, failed int, duration time.Duration) {
	if sink == nil {
		return
	}
	sink.Count("dispatcher.batch.processed", int64(processed), nil)
	sink.Count("dispatcher.batch.failed", int64(failed), nil)
	sink.Timing("dispatcher.batch.duration", duration, nil)
}
