package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/tartampluch/go-screening/internal/config"
	"github.com/wneessen/go-mail"
	"github.com/zalando/go-keyring"
)

// SMTPSettings describes the outgoing mail server.
type SMTPSettings struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Addr returns host:port for dialing.
func (s SMTPSettings) Addr() string {
	return fmt.Sprintf(config.MailAddrFormat, s.Host, s.Port)
}

// ResolvePassword fills Pass from the OS keyring when it is empty and a user is set.
func (s SMTPSettings) ResolvePassword() SMTPSettings {
	if s.Pass != "" || s.User == "" {
		return s
	}
	if p, err := keyring.Get(config.KeyringService, s.User); err == nil {
		s.Pass = p
	} else {
		slog.Debug(config.MsgPassFail,
			config.LogKeyComponent, config.CompNotify,
			config.LogKeyUser, s.User,
			config.LogKeyError, err)
	}
	return s
}

// LoadEnv reads the optional dotenv file into the process environment.
// Variables already set are left alone.
func LoadEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		slog.Debug(config.MsgEnvMissing,
			config.LogKeyComponent, config.CompNotify,
			config.LogKeyFile, path)
	}
}

// SettingsFromEnv builds the mail mode and SMTP settings from GO_SCREENING_* variables.
func SettingsFromEnv() (mode string, s SMTPSettings) {
	mode = os.Getenv(config.EnvMailMode)
	if mode == "" {
		mode = config.MailModeSimulate
	}

	s = SMTPSettings{
		Host: os.Getenv(config.EnvSMTPHost),
		Port: config.DefaultSMTPPort,
		User: os.Getenv(config.EnvSMTPUser),
		Pass: os.Getenv(config.EnvSMTPPass),
		From: os.Getenv(config.EnvSMTPFrom),
	}
	if raw := os.Getenv(config.EnvSMTPPort); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil {
			s.Port = port
		}
	}
	return mode, s.ResolvePassword()
}

// deliverFunc hands a composed message to the mail server.
type deliverFunc func(ctx context.Context, settings SMTPSettings, m *mail.Msg) error

// SMTPNotifier delivers through a real mail server.
type SMTPNotifier struct {
	Settings SMTPSettings

	deliver deliverFunc
	now     func() time.Time
}

// NewSMTPNotifier returns a notifier backed by go-mail.
func NewSMTPNotifier(settings SMTPSettings) *SMTPNotifier {
	return &SMTPNotifier{
		Settings: settings,
		deliver:  dialAndSend,
		now:      time.Now,
	}
}

// Send delivers one message to a single recipient.
func (n *SMTPNotifier) Send(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(n.Settings.Host) == "" {
		return fmt.Errorf("%w: %s", ErrNotificationFailure, config.ErrSMTPHostEmpty)
	}

	msgID := fmt.Sprintf(config.MessageIDFormat, uuid.NewString(), config.MessageIDDomain)
	m, err := n.message(msgID, to, subject, body)
	if err != nil {
		return err
	}

	deliver := n.deliver
	if deliver == nil {
		deliver = dialAndSend
	}
	if err := deliver(ctx, n.Settings, m); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrNotificationFailure, ctxErr)
		}
		return fmt.Errorf("%w: %s: %w", ErrNotificationFailure, config.ErrSMTPSend, err)
	}

	slog.Info(config.MsgSMTPSend,
		config.LogKeyComponent, config.CompNotify,
		config.LogKeyTo, to,
		config.LogKeyMessageID, msgID)
	return nil
}

// message builds the MIME message. The From header keeps the configured display
// name while the envelope sender is the bare address.
func (n *SMTPNotifier) message(msgID, to, subject, body string) (*mail.Msg, error) {
	from := n.Settings.From
	if from == "" {
		from = n.Settings.User
	}
	sender, err := ValidateAddress(from)
	if err != nil {
		return nil, err
	}

	now := time.Now
	if n.now != nil {
		now = n.now
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotificationFailure, config.ErrBadAddress, err)
	}
	if err := m.EnvelopeFrom(sender); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotificationFailure, config.ErrBadAddress, err)
	}
	if err := m.To(to); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotificationFailure, config.ErrBadAddress, err)
	}
	m.Subject(subject)
	m.SetDateWithValue(now())
	m.SetMessageIDWithValue(msgID)
	m.SetBodyString(mail.TypeTextPlain, body)
	return m, nil
}

// dialAndSend opens one SMTP session per message. STARTTLS is used when the
// server offers it; PLAIN auth only when a user is configured.
func dialAndSend(ctx context.Context, s SMTPSettings, m *mail.Msg) error {
	opts := []mail.Option{
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
		mail.WithPort(s.Port),
		mail.WithTimeout(config.SMTPDialTimeout),
	}
	if s.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.User),
			mail.WithPassword(s.Pass),
		)
	}

	client, err := mail.NewClient(s.Host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, m)
}
