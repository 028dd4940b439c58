package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-screening/internal/config"
	"github.com/tartampluch/go-screening/internal/engine"
	"github.com/tartampluch/go-screening/internal/notify"
	"github.com/tartampluch/go-screening/internal/server"
)

// ScreeningApp owns the windows, preferences and collaborators of the desktop app.
type ScreeningApp struct {
	App            fyne.App
	Window         fyne.Window // Main form window.
	SettingsWindow fyne.Window
	Preferences    fyne.Preferences
	I18nBundle     *i18n.Bundle
	Localizer      *i18n.Localizer
	Ctx            context.Context

	Server    *server.FeedServer
	Generator *engine.Generator
	Contacts  engine.ContactSource

	// Notifier overrides the transport configured in preferences.
	Notifier notify.Notifier

	Tray             desktop.App
	Menu             *fyne.Menu
	TrayShowItem     *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string

	// The last successful Generate wins; earlier results are replaced wholesale.
	resultsMut sync.RWMutex
	results    []engine.Recommendation

	form *screeningForm
}

// NewScreeningApp constructs the application and wires its dependencies.
func NewScreeningApp(a fyne.App, ctx context.Context, srv *server.FeedServer) *ScreeningApp {
	a.SetIcon(theme.ListIcon())

	return &ScreeningApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Generator:          engine.NewGenerator(),
		Contacts:           engine.ContactSource{Fetcher: engine.NewHTTPFetcher()},
		SupportedLanguages: config.SupportedLanguages,
	}
}

// Run starts the feed server, the tray and the main window, then blocks in the UI loop.
func (app *ScreeningApp) Run() {
	app.SetupI18n()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, err)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported, config.LogKeyComponent, config.CompUI)
	}

	go func() {
		<-app.Ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompUI)
		fyne.Do(app.App.Quit)
	}()

	app.ShowMainWindow()
	app.App.Run()
}

func (app *ScreeningApp) setupTrayMenu() {
	app.TrayShowItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuShow), app.ShowMainWindow)
	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), app.ShowSettingsWindow)

	app.Menu = fyne.NewMenu(config.AppName, app.TrayShowItem, app.TraySettingsItem)
	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *ScreeningApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayShowItem.Label = app.GetMsg(config.TKeyMenuShow)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// now reads the generator's clock so that validation and projection agree on "today".
func (app *ScreeningApp) now() time.Time {
	if app.Generator != nil && app.Generator.Clock != nil {
		return app.Generator.Clock.Now()
	}
	return time.Now()
}

// FeedURL is the address calendar clients subscribe to.
func (app *ScreeningApp) FeedURL() string {
	return fmt.Sprintf(config.FeedURLFormat, config.LocalhostBindAddr, app.Server.Port)
}

// Results returns a copy of the current checklist.
func (app *ScreeningApp) Results() []engine.Recommendation {
	app.resultsMut.RLock()
	defer app.resultsMut.RUnlock()
	out := make([]engine.Recommendation, len(app.results))
	copy(out, app.results)
	return out
}

// Generate validates the profile, computes its checklist and publishes it.
// On a validation error the previous results are kept.
func (app *ScreeningApp) Generate(p engine.Profile) ([]engine.Recommendation, error) {
	log := slog.With(config.LogKeyComponent, config.CompUI)
	log.Info(config.MsgGenerateReq,
		config.LogKeySex, p.Sex.String(),
		config.LogKeySmoker, p.Smoker.String())

	now := app.now()
	if err := engine.ValidateBirthDate(p.BirthMonth, p.BirthDay, p.BirthYear, now); err != nil {
		log.Warn(config.MsgGenerateReject, config.LogKeyError, err)
		return nil, err
	}

	recs, err := app.Generator.Generate(p)
	if err != nil {
		log.Warn(config.MsgGenerateReject, config.LogKeyError, err)
		return nil, err
	}

	// The stored results and the feed change together.
	app.resultsMut.Lock()
	defer app.resultsMut.Unlock()
	app.results = recs
	if app.Server != nil {
		if err := app.Server.Publish(recs, now); err != nil {
			log.Error(config.ErrICalEncode, config.LogKeyError, err)
		}
	}
	return recs, nil
}

// notifier returns the injected transport or builds one from preferences.
func (app *ScreeningApp) notifier() notify.Notifier {
	if app.Notifier != nil {
		return app.Notifier
	}
	mode := app.Preferences.StringWithFallback(config.PrefMailMode, config.MailModeSimulate)
	return notify.New(mode, app.smtpSettings())
}

// smtpSettings assembles the transport settings from preferences and the keyring.
func (app *ScreeningApp) smtpSettings() notify.SMTPSettings {
	s := notify.SMTPSettings{
		Host: app.Preferences.String(config.PrefSMTPHost),
		Port: app.Preferences.IntWithFallback(config.PrefSMTPPort, config.DefaultSMTPPort),
		User: app.Preferences.String(config.PrefSMTPUser),
		From: app.Preferences.String(config.PrefSMTPFrom),
	}
	return s.ResolvePassword()
}

// SendDigest emails the current checklist to one address. The outcome is shown
// in a dialog and also delivered on the returned channel.
func (app *ScreeningApp) SendDigest(to string) <-chan error {
	subject, body := notify.Digest(app.Results())
	pending := notify.Dispatch(app.Ctx, app.notifier(), to, subject, body)

	done := make(chan error, 1)
	go func() {
		defer close(done)
		err := <-pending
		fyne.Do(func() { app.reportDelivery(to, err) })
		done <- err
	}()
	return done
}

func (app *ScreeningApp) reportDelivery(to string, err error) {
	if app.form != nil {
		app.form.setSending(false)
	}
	if app.Window == nil {
		return
	}
	if err != nil {
		dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrEmailFailed)), app.Window)
		return
	}
	dialog.ShowInformation(config.AppName,
		app.GetMsgData(config.TKeyMsgEmailSent, map[string]any{"Address": to}),
		app.Window)
}

// ImportProfile reads a contact card from a path or URL.
func (app *ScreeningApp) ImportProfile(location string) (engine.Profile, error) {
	p, err := app.Contacts.LoadProfile(app.Ctx, location)
	if err != nil {
		slog.Warn(config.MsgImportFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	}
	return p, err
}

// ExportCalendar writes the current checklist as an iCalendar file.
func (app *ScreeningApp) ExportCalendar(w io.Writer) error {
	data, err := engine.RenderCalendar(app.Results(), app.now())
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%s: %w", config.ErrICSWrite, err)
	}
	slog.Info(config.MsgICSWritten,
		config.LogKeyComponent, config.CompUI,
		config.LogKeySizeBytes, len(data))
	return nil
}
