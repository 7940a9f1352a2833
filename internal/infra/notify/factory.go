// internal/infra/notify/factory.go
package notify

import (
	"fmt"

	"punchclock/internal/domain/notify"
	"punchclock/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// New builds the pager described by cfg. A transport whose credentials are
// missing falls back to console output with a warning.
func New(cfg config.NotifyConfig, logger *logrus.Logger) (*Pager, error) {
	minLevel, err := notify.ParseLevel(cfg.MinLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFY_MIN_LEVEL: %w", err)
	}

	var transport Transport
	switch cfg.Transport {
	case "telegram":
		if cfg.TelegramToken == "" || cfg.TelegramChat == 0 {
			logger.Warn("Telegram credentials missing, notifications go to the console only.")
			break
		}
		t, err := NewTelegramTransport(cfg.TelegramToken, cfg.TelegramChat, cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("could not create telegram transport: %w", err)
		}
		transport = t
	case "email":
		if cfg.EmailAPIKey == "" || cfg.EmailFrom == "" || cfg.EmailTo == "" {
			logger.Warn("Email credentials missing, notifications go to the console only.")
			break
		}
		transport = NewEmailTransport(cfg.EmailAPIKey, cfg.EmailFrom, cfg.EmailTo)
	case "console":
	default:
		return nil, fmt.Errorf("unknown notification transport %q", cfg.Transport)
	}

	return NewPager(transport, minLevel, cfg.Timeout, logger), nil
}
