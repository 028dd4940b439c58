package ui

import (
	"testing"

	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-screening/internal/config"
	"github.com/zalando/go-keyring"
)

func TestPortValidator(t *testing.T) {
	app, _, _ := setupTestApp(t)
	validate := app.portValidator()

	assert.NoError(t, validate("1"))
	assert.NoError(t, validate("65535"))
	assert.EqualError(t, validate(""), "Port is required")
	assert.EqualError(t, validate("0"), "Port must be between 1 and 65535")
	assert.EqualError(t, validate("70000"), "Port must be between 1 and 65535")
	assert.EqualError(t, validate("12a"), "Port must be a number")
}

func TestShowSettingsWindow_Singleton(t *testing.T) {
	app, _, _ := setupTestApp(t)

	app.ShowSettingsWindow()
	first := app.SettingsWindow
	require.NotNil(t, first)

	app.ShowSettingsWindow()
	assert.Same(t, first, app.SettingsWindow, "a second call focuses the open window")

	first.Close()
	assert.Nil(t, app.SettingsWindow)
}

// TestSaveSettings maps the widgets to preferences and stores the password in the keyring.
func TestSaveSettings(t *testing.T) {
	app, _, _ := setupTestApp(t)

	sw := &settingsWidgets{
		langSelect: widget.NewSelect(app.SupportedLanguages, nil),
		portEntry:  NewNumericalEntry(),
		modeSelect: widget.NewSelect([]string{app.GetMsg(config.TKeyModeSimulate), app.GetMsg(config.TKeyModeSMTP)}, nil),
		hostEntry:  widget.NewEntry(),
		smtpPort:   NewNumericalEntry(),
		userEntry:  widget.NewEntry(),
		passEntry:  widget.NewPasswordEntry(),
		fromEntry:  widget.NewEntry(),
	}
	sw.langSelect.SetSelected("fr")
	sw.portEntry.SetText("19000")
	sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeSMTP))
	sw.hostEntry.SetText("smtp.example.com")
	sw.smtpPort.SetText("465")
	sw.userEntry.SetText("bot@example.com")
	sw.passEntry.SetText("hunter2")
	sw.fromEntry.SetText("noreply@example.com")

	app.saveSettings(sw)

	p := app.Preferences
	assert.Equal(t, "fr", p.String(config.PrefLanguage))
	assert.Equal(t, "19000", p.String(config.PrefServerPort))
	assert.Equal(t, config.MailModeSMTP, p.String(config.PrefMailMode))
	assert.Equal(t, "smtp.example.com", p.String(config.PrefSMTPHost))
	assert.Equal(t, 465, p.Int(config.PrefSMTPPort))
	assert.Equal(t, "noreply@example.com", p.String(config.PrefSMTPFrom))

	pass, err := keyring.Get(config.KeyringService, "bot@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pass)

	// The language switch applies immediately.
	assert.Equal(t, "Paramètres...", app.GetMsg(config.TKeyMenuSettings))
}

func TestSaveSettings_SimulateMode(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefMailMode, config.MailModeSMTP)

	app.ShowSettingsWindow()
	require.NotNil(t, app.SettingsWindow)

	sw := &settingsWidgets{
		langSelect: widget.NewSelect(app.SupportedLanguages, nil),
		portEntry:  NewNumericalEntry(),
		modeSelect: widget.NewSelect([]string{app.GetMsg(config.TKeyModeSimulate), app.GetMsg(config.TKeyModeSMTP)}, nil),
		hostEntry:  widget.NewEntry(),
		smtpPort:   NewNumericalEntry(),
		userEntry:  widget.NewEntry(),
		passEntry:  widget.NewPasswordEntry(),
		fromEntry:  widget.NewEntry(),
	}
	sw.langSelect.SetSelected("en")
	sw.portEntry.SetText(config.DefaultPort)
	sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeSimulate))

	app.saveSettings(sw)
	assert.Equal(t, config.MailModeSimulate, app.Preferences.String(config.PrefMailMode))
}
