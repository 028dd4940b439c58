package notify_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-screening/internal/config"
	"github.com/tartampluch/go-screening/internal/engine"
	"github.com/tartampluch/go-screening/internal/notify"
)

// MockNotifier records Send calls.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func recommendations(n int) []engine.Recommendation {
	base := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	all := append(engine.Screenings(), engine.Vaccines()...)
	recs := make([]engine.Recommendation, n)
	for i := range recs {
		recs[i] = engine.Recommendation{Item: all[i], DueDate: base}
	}
	return recs
}

func TestValidateAddress(t *testing.T) {
	addr, err := notify.ValidateAddress("  Jane Doe <jane@example.com> ")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", addr)

	for _, bad := range []string{"", "   ", "not-an-address", "a@b, c@d"} {
		_, err := notify.ValidateAddress(bad)
		require.Error(t, err, bad)
		assert.ErrorIs(t, err, notify.ErrNotificationFailure)
	}
}

func TestDigest(t *testing.T) {
	subject, body := notify.Digest(recommendations(5))

	assert.Equal(t, "Your Preventive Screening Recommendations", subject)
	require.True(t, strings.HasPrefix(body, config.DigestTitle))

	upNext := strings.Index(body, "Up next:")
	future := strings.Index(body, "In the future:")
	require.Greater(t, upNext, 0)
	require.Greater(t, future, upNext)

	head, tail := body[upNext:future], body[future:]
	assert.Equal(t, 3, strings.Count(head, "Due date: "), "at most three entries are up next")
	assert.Equal(t, 2, strings.Count(tail, "Due date: "))

	assert.Contains(t, head, "- Hypertension: Blood Pressure Measurement\n  Due date: 12/1/2024\n  Frequency: Every 1-2 years")
}

func TestDigest_VaccineLabelAndShortList(t *testing.T) {
	vaccine := engine.Recommendation{Item: engine.Vaccines()[0], DueDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)}
	_, body := notify.Digest([]engine.Recommendation{vaccine})

	assert.Contains(t, body, "- Hepatitis B: Vaccine\n  Due date: 1/2/2025")
	future := strings.Index(body, "In the future:")
	require.Greater(t, future, 0)
	assert.NotContains(t, body[future:], "Due date:")
}

func TestDispatch_Success(t *testing.T) {
	ctx := context.Background()
	n := new(MockNotifier)
	n.On("Send", ctx, "jane@example.com", "subj", "body").Return(nil).Once()

	err := <-notify.Dispatch(ctx, n, "jane@example.com", "subj", "body")
	assert.NoError(t, err)
	n.AssertExpectations(t)
}

func TestDispatch_WrapsFailures(t *testing.T) {
	ctx := context.Background()
	n := new(MockNotifier)
	n.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("relay denied"))

	ch := notify.Dispatch(ctx, n, "jane@example.com", "s", "b")
	err := <-ch
	require.Error(t, err)
	assert.ErrorIs(t, err, notify.ErrNotificationFailure)
	assert.Contains(t, err.Error(), "relay denied")

	_, open := <-ch
	assert.False(t, open, "exactly one result is delivered")
}

func TestDispatch_InvalidAddressSkipsSend(t *testing.T) {
	n := new(MockNotifier)

	err := <-notify.Dispatch(context.Background(), n, "", "s", "b")
	require.Error(t, err)
	assert.ErrorIs(t, err, notify.ErrNotificationFailure)
	n.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSimulatedNotifier(t *testing.T) {
	assert.Equal(t, config.SimulatedSendDelay, notify.NewSimulatedNotifier().Delay)

	s := &notify.SimulatedNotifier{Delay: time.Millisecond}
	assert.NoError(t, s.Send(context.Background(), "a@example.com", "s", "b"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	slow := &notify.SimulatedNotifier{Delay: time.Hour}
	err := slow.Send(ctx, "a@example.com", "s", "b")
	assert.ErrorIs(t, err, notify.ErrNotificationFailure)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_SelectsTransport(t *testing.T) {
	assert.IsType(t, &notify.SimulatedNotifier{}, notify.New(config.MailModeSimulate, notify.SMTPSettings{}))
	assert.IsType(t, &notify.SimulatedNotifier{}, notify.New("", notify.SMTPSettings{}))
	assert.IsType(t, &notify.SMTPNotifier{}, notify.New(config.MailModeSMTP, notify.SMTPSettings{Host: "mail"}))
}
