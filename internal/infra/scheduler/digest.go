// internal/infra/scheduler/digest.go
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DigestSender is the job run on each cron firing.
type DigestSender interface {
	SendDailyDigest(ctx context.Context) error
}

// DigestScheduler fires the end-of-day digest on a cron schedule, alongside
// the punch loop.
type DigestScheduler struct {
	cronEngine *cron.Cron
	digest     DigestSender
	cronSpec   string
	timeout    time.Duration
	logger     *logrus.Logger
}

func NewDigestScheduler(digest DigestSender, cronSpec string, timeout time.Duration, logger *logrus.Logger) *DigestScheduler {
	return &DigestScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local), // Use server's local time for cron
			cron.WithChain(cron.Recover(cronLogger{logger})),
		),
		digest:     digest,
		cronSpec:   cronSpec,
		timeout:    timeout,
		logger:     logger,
	}
}

// Start registers the job and starts the cron engine in its own goroutine.
func (s *DigestScheduler) Start() error {
	s.logger.Info("Starting digest scheduler...")

	if _, err := s.cronEngine.AddFunc(s.cronSpec, s.run); err != nil {
		return fmt.Errorf("could not add digest cron job %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Digest scheduler started.")
	return nil
}

func (s *DigestScheduler) run() {
	s.logger.Info("Cron job triggered for end-of-day digest.")
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.digest.SendDailyDigest(ctx); err != nil {
		s.logger.Errorf("Error during digest: %v", err)
	}
}

func (s *DigestScheduler) Stop() {
	s.logger.Info("Stopping digest scheduler...")
	ctx := s.cronEngine.Stop() // Waits for a running job
	<-ctx.Done()
	s.logger.Info("Digest scheduler gracefully stopped.")
}

// cronLogger routes cron's own messages, including recovered job panics,
// through logrus.
type cronLogger struct {
	logger *logrus.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(fields(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(fields(keysAndValues)).WithError(err).Error(msg)
}

func fields(keysAndValues []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		f[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return f
}
