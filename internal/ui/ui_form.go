package ui

import (
	"errors"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-screening/internal/config"
	"github.com/tartampluch/go-screening/internal/engine"
)

// screeningForm holds the input widgets of the main window.
type screeningForm struct {
	monthSelect  *widget.Select
	dayEntry     *NumericalEntry
	yearEntry    *NumericalEntry
	sexSelect    *widget.Select
	smokerSelect *widget.Select
	generateBtn  *widget.Button
	importBtn    *widget.Button

	emailEntry      *widget.Entry
	otherEmailEntry *widget.Entry
	emailMeBtn      *widget.Button
	emailOtherBtn   *widget.Button
	emailSection    *fyne.Container

	results *resultsView

	// Translated option labels mapped to profile values.
	sexOptions    map[string]engine.Sex
	smokerOptions map[string]engine.SmokerStatus
}

// ShowMainWindow opens the form window, or focuses it when already open.
func (app *ScreeningApp) ShowMainWindow() {
	if app.Window != nil {
		app.Window.Show()
		app.Window.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	app.form = app.buildForm(w)
	w.SetContent(container.NewVScroll(app.form.layout(app)))
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))

	if app.Tray != nil {
		// With a tray the app keeps running; closing only hides the form.
		w.SetCloseIntercept(w.Hide)
	} else {
		w.SetOnClosed(func() { app.Window = nil })
	}
	w.Show()
}

func (app *ScreeningApp) buildForm(w fyne.Window) *screeningForm {
	f := &screeningForm{
		sexOptions: map[string]engine.Sex{
			app.GetMsg(config.TKeyOptMale):   engine.SexMale,
			app.GetMsg(config.TKeyOptFemale): engine.SexFemale,
		},
		smokerOptions: map[string]engine.SmokerStatus{
			app.GetMsg(config.TKeyOptYes): engine.SmokerYes,
			app.GetMsg(config.TKeyOptNo):  engine.SmokerNo,
		},
	}

	f.monthSelect = widget.NewSelect(config.Months, nil)
	f.monthSelect.PlaceHolder = app.GetMsg(config.TKeyPhMonth)

	f.dayEntry = NewNumericalEntry()
	f.dayEntry.MaxLen = 2
	f.dayEntry.SetPlaceHolder(app.GetMsg(config.TKeyPhDay))

	f.yearEntry = NewNumericalEntry()
	f.yearEntry.MaxLen = 4
	f.yearEntry.SetPlaceHolder(app.GetMsg(config.TKeyPhYear))

	f.sexSelect = widget.NewSelect([]string{app.GetMsg(config.TKeyOptMale), app.GetMsg(config.TKeyOptFemale)}, nil)
	f.sexSelect.PlaceHolder = app.GetMsg(config.TKeyPhSex)

	f.smokerSelect = widget.NewSelect([]string{app.GetMsg(config.TKeyOptYes), app.GetMsg(config.TKeyOptNo)}, nil)
	f.smokerSelect.PlaceHolder = app.GetMsg(config.TKeyPhSmoker)

	f.generateBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnGenerate), theme.ConfirmIcon(), func() {
		app.submit()
	})
	f.generateBtn.Importance = widget.HighImportance

	f.importBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.AccountIcon(), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err != nil || r == nil {
				return
			}
			_ = r.Close()
			app.importFrom(r.URI().Path())
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	f.emailEntry = widget.NewEntry()
	f.otherEmailEntry = widget.NewEntry()
	f.emailMeBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnEmailMe), theme.MailSendIcon(), func() {
		app.notifyAddress(f.emailEntry.Text)
	})
	f.emailMeBtn.Importance = widget.HighImportance
	f.emailOtherBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnEmailOther), theme.MailForwardIcon(), func() {
		app.notifyAddress(f.otherEmailEntry.Text)
	})

	f.emailSection = container.NewVBox(
		widget.NewLabelWithStyle(app.GetMsg(config.TKeyLblEmail), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		f.emailEntry,
		f.emailMeBtn,
		widget.NewLabelWithStyle(app.GetMsg(config.TKeyLblOtherEmail), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		f.otherEmailEntry,
		f.emailOtherBtn,
	)
	f.emailSection.Hide()

	f.results = app.newResultsView(w)
	return f
}

func (f *screeningForm) layout(app *ScreeningApp) fyne.CanvasObject {
	heading := canvas.NewText(app.GetMsg(config.TKeyHeading), theme.Color(theme.ColorNamePrimary))
	heading.TextSize = theme.TextHeadingSize() * 1.5
	heading.TextStyle = fyne.TextStyle{Bold: true}
	heading.Alignment = fyne.TextAlignCenter

	sub := widget.NewLabelWithStyle(app.GetMsg(config.TKeySubheading), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	bold := fyne.TextStyle{Bold: true}
	dob := container.NewGridWithColumns(config.LayoutColumnsTriple, f.monthSelect, f.dayEntry, f.yearEntry)

	return container.NewPadded(container.NewVBox(
		heading,
		sub,
		widget.NewLabelWithStyle(app.GetMsg(config.TKeyLblDOB), fyne.TextAlignLeading, bold),
		dob,
		widget.NewLabelWithStyle(app.GetMsg(config.TKeyLblSex), fyne.TextAlignLeading, bold),
		f.sexSelect,
		widget.NewLabelWithStyle(app.GetMsg(config.TKeyLblSmoker), fyne.TextAlignLeading, bold),
		f.smokerSelect,
		container.NewGridWithColumns(config.LayoutColumnsDouble, f.importBtn, f.generateBtn),
		f.emailSection,
		f.results.root,
	))
}

// profile reads the current form values.
func (f *screeningForm) profile() engine.Profile {
	return engine.Profile{
		BirthMonth: f.monthSelect.Selected,
		BirthDay:   f.dayEntry.Text,
		BirthYear:  f.yearEntry.Text,
		Sex:        f.sexOptions[f.sexSelect.Selected],
		Smoker:     f.smokerOptions[f.smokerSelect.Selected],
	}
}

// fill pre-populates the form from an imported profile. Smoking status is left as is.
func (f *screeningForm) fill(p engine.Profile) {
	f.monthSelect.SetSelected(p.BirthMonth)
	f.dayEntry.SetText(p.BirthDay)
	f.yearEntry.SetText(p.BirthYear)
	for label, sex := range f.sexOptions {
		if sex == p.Sex {
			f.sexSelect.SetSelected(label)
		}
	}
}

func (f *screeningForm) setSending(sending bool) {
	if sending {
		f.emailMeBtn.Disable()
		f.emailOtherBtn.Disable()
		return
	}
	f.emailMeBtn.Enable()
	f.emailOtherBtn.Enable()
}

// submit runs Generate from the form and refreshes the result lists.
func (app *ScreeningApp) submit() {
	recs, err := app.Generate(app.form.profile())
	if err != nil {
		dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrInvalidDOB)), app.Window)
		return
	}

	app.form.results.show(recs)
	if len(recs) > 0 {
		app.form.emailSection.Show()
	} else {
		app.form.emailSection.Hide()
	}
}

// notifyAddress sends the digest without blocking the UI thread.
func (app *ScreeningApp) notifyAddress(to string) <-chan error {
	app.form.setSending(true)
	return app.SendDigest(to)
}

func (app *ScreeningApp) importFrom(location string) {
	p, err := app.ImportProfile(location)
	if err != nil {
		dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrImport)), app.Window)
		return
	}
	app.form.fill(p)
	slog.Debug(config.MsgProfileLoaded,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyFile, location)
}
