// Package notify delivers the recommendation digest to an email address.
// The transport is an injected Notifier so the UI and CLI never depend on a
// concrete mail service.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-screening/internal/config"
)

// ErrNotificationFailure is wrapped by every delivery error. Callers treat it as
// non-fatal: the results on screen stay valid.
var ErrNotificationFailure = errors.New(config.ErrNotification)

// Notifier sends a plain-text message to a single recipient.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// New returns the transport selected by mode. Anything other than
// config.MailModeSMTP falls back to the simulated transport.
func New(mode string, settings SMTPSettings) Notifier {
	if mode == config.MailModeSMTP {
		return NewSMTPNotifier(settings)
	}
	return NewSimulatedNotifier()
}

// ValidateAddress checks that addr holds a single well-formed mailbox and returns
// its bare address.
func ValidateAddress(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", fmt.Errorf("%w: %s", ErrNotificationFailure, config.ErrEmptyAddress)
	}

	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotificationFailure, config.ErrBadAddress, err)
	}
	return parsed.Address, nil
}

// Dispatch validates the recipient and runs one Send in the background.
// The returned channel yields exactly one value (nil on success) and is then closed.
func Dispatch(ctx context.Context, n Notifier, to, subject, body string) <-chan error {
	result := make(chan error, 1)

	id := uuid.NewString()
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompNotify),
		slog.String(config.LogKeyNotifyID, id),
	)

	addr, err := ValidateAddress(to)
	if err != nil {
		log.Warn(config.MsgNotifyFailed, config.LogKeyError, err)
		result <- err
		close(result)
		return result
	}

	log.Info(config.MsgNotifyReq, config.LogKeyTo, addr)

	go func() {
		defer close(result)
		start := time.Now()

		err := n.Send(ctx, addr, subject, body)
		if err != nil {
			if !errors.Is(err, ErrNotificationFailure) {
				err = fmt.Errorf("%w: %w", ErrNotificationFailure, err)
			}
			log.Warn(config.MsgNotifyFailed, config.LogKeyError, err)
			result <- err
			return
		}

		log.Info(config.MsgNotifyDone,
			config.LogKeyTo, addr,
			config.LogKeyDuration, time.Since(start).Milliseconds())
		result <- nil
	}()

	return result
}
