package ui

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-screening/internal/config"
	"github.com/tartampluch/go-screening/internal/engine"
	"github.com/tartampluch/go-screening/internal/notify"
	"github.com/tartampluch/go-screening/internal/server"
	"github.com/zalando/go-keyring"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockNotifier records digests instead of mailing them.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// MockTray implements minimal system tray functionality for headless testing.
type MockTray struct {
	Menu *fyne.Menu
}

func (m *MockTray) SetSystemTrayMenu(menu *fyne.Menu)   { m.Menu = menu }
func (m *MockTray) SetSystemTrayIcon(icon fyne.Resource) {}
func (m *MockTray) SetSystemTrayWindow(w fyne.Window)    {}

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

var today = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

var femaleNonSmoker = engine.Profile{BirthMonth: "Jan", BirthDay: "15", BirthYear: "1972", Sex: engine.SexFemale, Smoker: engine.SmokerNo}

func setupTestApp(t *testing.T) (*ScreeningApp, *MockNotifier, *MockTray) {
	keyring.MockInit()
	a := test.NewApp()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	app := NewScreeningApp(a, ctx, server.NewFeedServer("0"))
	notifier := new(MockNotifier)
	tray := &MockTray{}

	app.Notifier = notifier
	app.Tray = tray
	app.Generator.Clock = MockClock{CurrentTime: today}
	app.Preferences.SetString(config.PrefLanguage, config.DefaultLanguage)
	app.SetupI18n()

	return app, notifier, tray
}

// fillForm types a profile into the main window.
func fillForm(app *ScreeningApp, month, day, year, sex, smoker string) {
	f := app.form
	f.monthSelect.SetSelected(month)
	f.dayEntry.SetText(day)
	f.yearEntry.SetText(year)
	f.sexSelect.SetSelected(sex)
	f.smokerSelect.SetSelected(smoker)
}

// -----------------------------------------------------------------------------
// Localization
// -----------------------------------------------------------------------------

func TestLocalization_Switching(t *testing.T) {
	app, _, _ := setupTestApp(t)
	assert.Equal(t, []string{"en", "fr"}, app.SupportedLanguages)

	assert.Equal(t, "Settings...", app.GetMsg(config.TKeyMenuSettings))

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	assert.Equal(t, "Paramètres...", app.GetMsg(config.TKeyMenuSettings))

	// Unknown keys fall back to the key itself.
	assert.Equal(t, "no_such_key", app.GetMsg("no_such_key"))
}

func TestLocalization_TemplateData(t *testing.T) {
	app, _, _ := setupTestApp(t)
	msg := app.GetMsgData(config.TKeyMsgEmailSent, map[string]any{"Address": "jane@example.com"})
	assert.Equal(t, "Email sent successfully to jane@example.com", msg)
}

func TestTrayMenu_Relabels(t *testing.T) {
	app, _, tray := setupTestApp(t)
	app.setupTrayMenu()
	require.NotNil(t, tray.Menu)
	assert.Equal(t, "Settings...", app.TraySettingsItem.Label)

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	assert.Equal(t, "Paramètres...", app.TraySettingsItem.Label)
}

// -----------------------------------------------------------------------------
// Generate
// -----------------------------------------------------------------------------

func TestGenerate_PublishesToFeed(t *testing.T) {
	app, _, _ := setupTestApp(t)

	recs, err := app.Generate(femaleNonSmoker)
	require.NoError(t, err)
	assert.Len(t, recs, 15)
	assert.Equal(t, recs, app.Results())

	w := httptest.NewRecorder()
	app.Server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, config.RouteRoot, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hypertension")
}

// TestGenerate_RejectsImpossibleDates keeps the previous checklist on screen.
func TestGenerate_RejectsImpossibleDates(t *testing.T) {
	app, _, _ := setupTestApp(t)
	first, err := app.Generate(femaleNonSmoker)
	require.NoError(t, err)

	for _, p := range []engine.Profile{
		{BirthMonth: "Feb", BirthDay: "30", BirthYear: "1990"},
		{BirthMonth: "Jan", BirthDay: "", BirthYear: "1990"},
		{BirthMonth: "Jul", BirthDay: "1", BirthYear: "2030"},
	} {
		_, err := app.Generate(p)
		require.Error(t, err)
		assert.ErrorIs(t, err, engine.ErrInvalidDate)
	}
	assert.Equal(t, first, app.Results())
}

func TestGenerate_LastWriteWins(t *testing.T) {
	app, _, _ := setupTestApp(t)

	_, err := app.Generate(femaleNonSmoker)
	require.NoError(t, err)
	second, err := app.Generate(engine.Profile{BirthMonth: "Feb", BirthDay: "1", BirthYear: "2024"})
	require.NoError(t, err)

	assert.Equal(t, second, app.Results())
	assert.Len(t, app.Results(), 1)
}

// TestGenerate_FeedMatchesResults keeps the feed and the stored checklist in step
// when Generate calls overlap.
func TestGenerate_FeedMatchesResults(t *testing.T) {
	app, _, _ := setupTestApp(t)
	infant := engine.Profile{BirthMonth: "Feb", BirthDay: "1", BirthYear: "2024"}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		p := femaleNonSmoker
		if i%2 == 0 {
			p = infant
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = app.Generate(p)
		}()
	}
	wg.Wait()

	w := httptest.NewRecorder()
	app.Server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, config.RouteRoot, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, len(app.Results()), bytes.Count(w.Body.Bytes(), []byte("BEGIN:VEVENT")))
}

// -----------------------------------------------------------------------------
// Main Window
// -----------------------------------------------------------------------------

func TestMainWindow_SubmitShowsSplitLists(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.ShowMainWindow()
	require.NotNil(t, app.form)

	assert.False(t, app.form.emailSection.Visible(), "email section appears only with results")

	fillForm(app, "Jan", "15", "1972", "Female", "No")
	test.Tap(app.form.generateBtn)

	assert.True(t, app.form.emailSection.Visible())
	assert.True(t, app.form.results.root.Visible())
	assert.Len(t, app.form.results.upNext.Objects, 3)
	assert.Len(t, app.form.results.future.Objects, 12)
	assert.False(t, app.form.results.empty.Visible())
}

func TestMainWindow_InvalidDateLeavesResultsHidden(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.ShowMainWindow()

	fillForm(app, "Jan", "", "1972", "Female", "No")
	test.Tap(app.form.generateBtn)

	assert.False(t, app.form.results.root.Visible())
	assert.False(t, app.form.emailSection.Visible())
	assert.Empty(t, app.Results())
}

func TestMainWindow_EmptyChecklist(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.ShowMainWindow()

	// Born today: age 0, only Hepatitis B applies.
	fillForm(app, "Jun", "1", "2024", "", "")
	test.Tap(app.form.generateBtn)
	assert.Len(t, app.form.results.upNext.Objects, 1)
	assert.False(t, app.form.results.futureHead.Visible())

	app.form.results.show(nil)
	assert.True(t, app.form.results.empty.Visible())
	assert.True(t, app.form.results.exportBtn.Disabled())
}

func TestMainWindow_ImportFillsForm(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.ShowMainWindow()

	path := filepath.Join(t.TempDir(), "me.vcf")
	card := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:John\r\nBDAY:1957-03-09\r\nGENDER:M\r\nEND:VCARD\r\n"
	require.NoError(t, os.WriteFile(path, []byte(card), 0o600))

	app.importFrom(path)

	assert.Equal(t, "Mar", app.form.monthSelect.Selected)
	assert.Equal(t, "9", app.form.dayEntry.Text)
	assert.Equal(t, "1957", app.form.yearEntry.Text)
	assert.Equal(t, "Male", app.form.sexSelect.Selected)
	assert.Equal(t, engine.SexMale, app.form.profile().Sex)
}

// -----------------------------------------------------------------------------
// Notification
// -----------------------------------------------------------------------------

func TestSendDigest_Success(t *testing.T) {
	app, notifier, _ := setupTestApp(t)
	_, err := app.Generate(femaleNonSmoker)
	require.NoError(t, err)

	notifier.On("Send", mock.Anything, "jane@example.com", config.DigestSubject,
		mock.MatchedBy(func(body string) bool {
			return bytes.Contains([]byte(body), []byte("- Hypertension: Blood Pressure Measurement"))
		})).Return(nil).Once()

	assert.NoError(t, <-app.SendDigest("jane@example.com"))
	notifier.AssertExpectations(t)
}

// TestSendDigest_FailureIsNonFatal keeps the results after a delivery error.
func TestSendDigest_FailureIsNonFatal(t *testing.T) {
	app, notifier, _ := setupTestApp(t)
	app.ShowMainWindow()
	fillForm(app, "Jan", "15", "1972", "Female", "No")
	test.Tap(app.form.generateBtn)

	notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	err := <-app.notifyAddress("jane@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, notify.ErrNotificationFailure)

	assert.Len(t, app.Results(), 15)
	assert.True(t, app.form.results.root.Visible())
}

func TestSendDigest_InvalidAddress(t *testing.T) {
	app, notifier, _ := setupTestApp(t)

	err := <-app.SendDigest("not an address")
	assert.ErrorIs(t, err, notify.ErrNotificationFailure)
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifier_FromPreferences(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Notifier = nil

	assert.IsType(t, &notify.SimulatedNotifier{}, app.notifier())

	require.NoError(t, keyring.Set(config.KeyringService, "bot@example.com", "pw"))
	app.Preferences.SetString(config.PrefMailMode, config.MailModeSMTP)
	app.Preferences.SetString(config.PrefSMTPHost, "smtp.example.com")
	app.Preferences.SetInt(config.PrefSMTPPort, 2525)
	app.Preferences.SetString(config.PrefSMTPUser, "bot@example.com")

	n, ok := app.notifier().(*notify.SMTPNotifier)
	require.True(t, ok)
	assert.Equal(t, "smtp.example.com:2525", n.Settings.Addr())
	assert.Equal(t, "pw", n.Settings.Pass)
}

// -----------------------------------------------------------------------------
// Export
// -----------------------------------------------------------------------------

func TestExportCalendar(t *testing.T) {
	app, _, _ := setupTestApp(t)

	var empty bytes.Buffer
	require.NoError(t, app.ExportCalendar(&empty))
	assert.Equal(t, config.StubVCalendar, empty.String())

	_, err := app.Generate(femaleNonSmoker)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, app.ExportCalendar(&buf))
	assert.Equal(t, 15, bytes.Count(buf.Bytes(), []byte("BEGIN:VEVENT")))
}

func TestFeedURL(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Server.Port = "18181"
	assert.Equal(t, "http://127.0.0.1:18181/", app.FeedURL())
}
