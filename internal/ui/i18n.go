package ui

import (
	"embed"
	"encoding/json"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-screening/internal/config"
	"golang.org/x/text/language"
)

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeSuffix = ".json"
)

//go:embed locales/*.json
var localeFS embed.FS

// SetupI18n loads every embedded active.<lang>.json and selects the preferred language.
func (app *ScreeningApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	app.I18nBundle = bundle

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		app.UpdateLocalizer()
		return
	}

	var detected []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		lang := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeSuffix)
		if lang == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, path.Join(localeDir, name)); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		detected = append(detected, lang)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, lang,
		)
	}

	if len(detected) > 0 {
		sort.Strings(detected)
		app.SupportedLanguages = detected
	}
	app.UpdateLocalizer()
}

// UpdateLocalizer refreshes the translator from the language preference.
func (app *ScreeningApp) UpdateLocalizer() {
	lang := app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
	if app.I18nBundle == nil {
		return
	}
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang, config.DefaultLanguage)
}

// GetMsg translates key, returning the key itself when no translation exists.
func (app *ScreeningApp) GetMsg(key string) string {
	return app.GetMsgData(key, nil)
}

// GetMsgData translates a templated message.
func (app *ScreeningApp) GetMsgData(key string, data map[string]any) string {
	if app.Localizer == nil {
		return key
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}
