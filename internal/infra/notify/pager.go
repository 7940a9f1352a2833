// internal/infra/notify/pager.go
package notify

import (
	"context"
	"fmt"
	"time"

	"punchclock/internal/domain/notify"

	"github.com/avast/retry-go/v4"
	"github.com/sirupsen/logrus"
)

const (
	sendAttempts = 3
	sendDelay    = 2 * time.Second
)

// Transport carries a rendered page to its destination.
type Transport interface {
	Name() string
	Send(ctx context.Context, level notify.Level, body string) error
}

// Pager implements notify.Notifier on top of a Transport. Every page is
// logged locally; a nil transport means the log is the only output.
type Pager struct {
	transport Transport
	minLevel  notify.Level
	timeout   time.Duration
	delay     time.Duration
	logger    *logrus.Logger
}

func NewPager(transport Transport, minLevel notify.Level, timeout time.Duration, logger *logrus.Logger) *Pager {
	return &Pager{
		transport: transport,
		minLevel:  minLevel,
		timeout:   timeout,
		delay:     sendDelay,
		logger:    logger,
	}
}

func (p *Pager) Alert(ctx context.Context, message string) {
	p.page(ctx, notify.LevelAlert, message)
}

func (p *Pager) Warning(ctx context.Context, message string) {
	p.page(ctx, notify.LevelWarning, message)
}

func (p *Pager) Info(ctx context.Context, message string) {
	p.page(ctx, notify.LevelInfo, message)
}

func (p *Pager) page(ctx context.Context, level notify.Level, message string) {
	entry := p.logger.WithField("level_page", level.String())
	switch level {
	case notify.LevelAlert:
		entry.Error(message)
	case notify.LevelWarning:
		entry.Warn(message)
	default:
		entry.Info(message)
	}

	if p.transport == nil || level < p.minLevel {
		return
	}

	body := fmt.Sprintf("Level - %s\nMessage - %s", level, message)

	sendCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	err := retry.Do(
		func() error { return p.transport.Send(sendCtx, level, body) },
		retry.Attempts(sendAttempts),
		retry.Delay(p.delay),
		retry.Context(sendCtx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			p.logger.WithField("transport", p.transport.Name()).Debugf("Retrying page (attempt %d): %v", n+1, err)
		}),
	)
	if err != nil {
		p.logger.WithField("transport", p.transport.Name()).Errorf("Failed to deliver %s page: %v", level, err)
	}
}
