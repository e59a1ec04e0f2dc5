package monitoring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/dwarvesf/funds-backend/internal/utils/logger"
)

// InstrumentedJob runs a job function under a deadline, turns panics into
// failures, and reports every run to a JobStatusManager.
type InstrumentedJob struct {
	name    string
	run     func(ctx context.Context) error
	status  *JobStatusManager
	logger  *logger.Logger
	timeout time.Duration
}

func NewInstrumentedJob(
	name string,
	run func(ctx context.Context) error,
	status *JobStatusManager,
	logger *logger.Logger,
	timeout time.Duration,
) *InstrumentedJob {
	status.RegisterJob(name)

	return &InstrumentedJob{
		name:    name,
		run:     run,
		status:  status,
		logger:  logger,
		timeout: timeout,
	}
}

// Execute matches the func() signature of cron.AddFunc.
func (j *InstrumentedJob) Execute() {
	j.status.StartJob(j.name)
	j.status.CompleteJob(j.name, j.runWithTimeout())
}

func (j *InstrumentedJob) runWithTimeout() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	result := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				j.logger.Error("[Execute] job panicked", map[string]string{
					"job_name": j.name,
					"panic":    fmt.Sprint(r),
				})
				result <- errors.Errorf("job panicked: %v", r)
			}
		}()
		result <- j.run(ctx)
	}()

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return errors.Errorf("job timeout after %v", j.timeout)
	}
}

// errorKinds is checked in order; the first keyword hit wins.
var errorKinds = []struct {
	kind     string
	keywords []string
}{
	{"timeout", []string{"timeout", "deadline"}},
	{"panic", []string{"panic"}},
	{"database", []string{"database", "sql"}},
	{"network", []string{"connection", "network"}},
}

func classifyJobError(err error) string {
	if err == nil {
		return ""
	}

	msg := strings.ToLower(err.Error())
	for _, k := range errorKinds {
		for _, keyword := range k.keywords {
			if strings.Contains(msg, keyword) {
				return k.kind
			}
		}
	}
	return "unknown"
}
