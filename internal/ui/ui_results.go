package ui

import (
	"errors"
	"log/slog"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-screening/internal/config"
	"github.com/tartampluch/go-screening/internal/engine"
)

// resultsView renders the checklist split into "Up next" and "In the future".
type resultsView struct {
	app *ScreeningApp

	root       *fyne.Container
	upNext     *fyne.Container
	future     *fyne.Container
	futureHead *widget.Label
	empty      *widget.Label
	feedLink   *widget.Hyperlink
	exportBtn  *widget.Button
}

func (app *ScreeningApp) newResultsView(w fyne.Window) *resultsView {
	v := &resultsView{app: app}
	bold := fyne.TextStyle{Bold: true}

	v.upNext = container.NewVBox()
	v.future = container.NewVBox()
	v.futureHead = widget.NewLabelWithStyle(app.GetMsg(config.TKeyLblFuture), fyne.TextAlignLeading, bold)
	v.empty = widget.NewLabel(app.GetMsg(config.TKeyLblNoResults))

	feedURL, _ := url.Parse(app.FeedURL())
	v.feedLink = widget.NewHyperlink(app.GetMsgData(config.TKeyLblFeed, map[string]any{"URL": app.FeedURL()}), feedURL)

	v.exportBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExport), theme.DocumentSaveIcon(), func() {
		d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			defer func() { _ = wc.Close() }()
			if err := app.ExportCalendar(wc); err != nil {
				slog.Error(config.MsgExportFailed, config.LogKeyComponent, config.CompUI, config.LogKeyError, err)
				dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrExport)), w)
				return
			}
			dialog.ShowInformation(config.AppName,
				app.GetMsgData(config.TKeyMsgExported, map[string]any{"Path": wc.URI().Path()}), w)
		}, w)
		d.SetFileName(config.CmdRoot + config.ExtICS)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtICS}))
		d.Show()
	})

	v.root = container.NewVBox(
		widget.NewSeparator(),
		widget.NewLabelWithStyle(app.GetMsg(config.TKeyLblUpNext), fyne.TextAlignLeading, bold),
		v.upNext,
		v.futureHead,
		v.future,
		v.empty,
		container.NewBorder(nil, nil, nil, v.exportBtn, v.feedLink),
	)
	v.root.Hide()
	return v
}

// show replaces the rendered checklist.
func (v *resultsView) show(recs []engine.Recommendation) {
	next, later := engine.Split(recs)

	v.upNext.Objects = v.upNext.Objects[:0]
	for _, r := range next {
		v.upNext.Add(v.entry(r))
	}
	v.future.Objects = v.future.Objects[:0]
	for _, r := range later {
		v.future.Add(v.entry(r))
	}

	if len(recs) == 0 {
		v.empty.Show()
		v.exportBtn.Disable()
	} else {
		v.empty.Hide()
		v.exportBtn.Enable()
	}
	if len(later) == 0 {
		v.futureHead.Hide()
	} else {
		v.futureHead.Show()
	}

	v.root.Show()
	v.root.Refresh()
}

// entry renders one recommendation as "Name - Test" plus due date and frequency.
func (v *resultsView) entry(r engine.Recommendation) fyne.CanvasObject {
	title := widget.NewRichText(
		&widget.TextSegment{Text: r.Name, Style: widget.RichTextStyleStrong},
		&widget.TextSegment{Text: " - " + r.Label(), Style: widget.RichTextStyleInline},
	)
	details := widget.NewLabel(
		v.app.GetMsg(config.TKeyLblDueDate) + " " + r.DueDateText() + "\n" +
			v.app.GetMsg(config.TKeyLblFrequency) + " " + r.Frequency)
	details.Wrapping = fyne.TextWrapWord
	details.Importance = widget.LowImportance

	return container.NewVBox(title, details, widget.NewSeparator())
}
