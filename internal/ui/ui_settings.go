package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-screening/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets keeps references to the editable fields for saveSettings.
type settingsWidgets struct {
	langSelect *widget.Select
	portEntry  *NumericalEntry
	modeSelect *widget.Select
	hostEntry  *widget.Entry
	smtpPort   *NumericalEntry
	userEntry  *widget.Entry
	passEntry  *widget.Entry
	fromEntry  *widget.Entry
}

// ShowSettingsWindow displays the preferences dialog.
func (app *ScreeningApp) ShowSettingsWindow() {
	if app.SettingsWindow != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.SettingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenSettings, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.SettingsWindow = w

	sw := &settingsWidgets{}

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	// --- General ---
	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.portEntry = NewNumericalEntry()
	sw.portEntry.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.portEntry.Validator = app.portValidator()

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)
	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.portEntry)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemPort))

	// --- Mail ---
	mailCard := app.buildMailCard(sw, onLayoutChange)

	// --- Actions ---
	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if err := sw.portEntry.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		if sw.smtpPort.Text != "" {
			if err := sw.smtpPort.Validate(); err != nil {
				dialog.ShowError(err, w)
				return
			}
		}
		app.saveSettings(sw)
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footer := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footer.Alignment = fyne.TextAlignCenter
	footer.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		generalCard,
		mailCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footer,
	))

	refreshLayout = func() {
		content.Refresh()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	}

	w.SetContent(content)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.SettingsWindow = nil })
	refreshLayout()
	w.Show()
}

// portValidator accepts 1..65535.
func (app *ScreeningApp) portValidator() func(string) error {
	return func(s string) error {
		if s == "" {
			return errors.New(app.GetMsg(config.TKeyErrPortReq))
		}
		port, err := strconv.Atoi(s)
		if err != nil {
			return errors.New(app.GetMsg(config.TKeyErrPortNum))
		}
		if port < config.MinPort || port > config.MaxPort {
			return errors.New(app.GetMsg(config.TKeyErrPortRange))
		}
		return nil
	}
}

// buildMailCard shows the SMTP fields only when the SMTP transport is selected.
func (app *ScreeningApp) buildMailCard(sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	sw.modeSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeyModeSimulate),
		app.GetMsg(config.TKeyModeSMTP),
	}, nil)

	sw.hostEntry = widget.NewEntry()
	sw.hostEntry.SetText(app.Preferences.String(config.PrefSMTPHost))

	sw.smtpPort = NewNumericalEntry()
	sw.smtpPort.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefSMTPPort, config.DefaultSMTPPort)))
	sw.smtpPort.Validator = app.portValidator()

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefSMTPUser))

	sw.passEntry = widget.NewPasswordEntry()
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.fromEntry = widget.NewEntry()
	sw.fromEntry.SetText(app.Preferences.String(config.PrefSMTPFrom))

	smtpForm := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblSMTPHost), sw.hostEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblSMTPPort), sw.smtpPort),
		widget.NewFormItem(app.GetMsg(config.TKeyLblSMTPUser), sw.userEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblSMTPPass), sw.passEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblSMTPFrom), sw.fromEntry),
	)

	updateVis := func(selected string) {
		if selected == app.GetMsg(config.TKeyModeSMTP) {
			smtpForm.Show()
		} else {
			smtpForm.Hide()
		}
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}
	sw.modeSelect.OnChanged = updateVis

	if app.Preferences.String(config.PrefMailMode) == config.MailModeSMTP {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeSMTP))
	} else {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeSimulate))
	}
	updateVis(sw.modeSelect.Selected)

	mode := widget.NewForm(widget.NewFormItem(app.GetMsg(config.TKeyLblMailMode), sw.modeSelect))
	return widget.NewCard(app.GetMsg(config.TKeyLblMail), "", container.NewVBox(mode, smtpForm))
}

// saveSettings persists the preferences; the SMTP password goes to the keyring.
func (app *ScreeningApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSaveSettings, config.LogKeyComponent, config.CompUISet)

	mode := config.MailModeSimulate
	if sw.modeSelect.Selected == app.GetMsg(config.TKeyModeSMTP) {
		mode = config.MailModeSMTP
	}

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefServerPort, sw.portEntry.Text)
	app.Preferences.SetString(config.PrefMailMode, mode)
	app.Preferences.SetString(config.PrefSMTPHost, sw.hostEntry.Text)
	app.Preferences.SetString(config.PrefSMTPUser, sw.userEntry.Text)
	app.Preferences.SetString(config.PrefSMTPFrom, sw.fromEntry.Text)
	if p, err := strconv.Atoi(sw.smtpPort.Text); err == nil {
		app.Preferences.SetInt(config.PrefSMTPPort, p)
	}

	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error(config.MsgKeyringSave,
				config.LogKeyComponent, config.CompUISet,
				config.LogKeyError, err)
		}
	}

	app.UpdateLocalizer()
	app.RefreshTrayMenu()
}
