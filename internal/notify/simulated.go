package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-screening/internal/config"
)

// SimulatedNotifier stands in for a mail service. It waits Delay, then logs the
// message instead of delivering it.
type SimulatedNotifier struct {
	Delay time.Duration
}

// NewSimulatedNotifier returns a notifier with the default one second latency.
func NewSimulatedNotifier() *SimulatedNotifier {
	return &SimulatedNotifier{Delay: config.SimulatedSendDelay}
}

func (s *SimulatedNotifier) Send(ctx context.Context, to, subject, body string) error {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrNotificationFailure, ctx.Err())
	case <-timer.C:
	}

	slog.Info(config.MsgSimulatedSend,
		config.LogKeyComponent, config.CompNotify,
		config.LogKeyTo, to,
		config.LogKeySubject, subject,
		config.LogKeyBody, body,
	)
	return nil
}
