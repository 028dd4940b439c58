package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Screening/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Screening"
	AppID             = "com.github.tartampluch.go-screening"
	KeyringService    = "com.github.tartampluch.go-screening"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	EnvFileName       = ".env"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and exported calendars.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	CmdRoot          = "go-screening"
	CmdGenerate      = "generate"
	CmdVersion       = "version"
	CmdDescRoot      = "Preventive screening and vaccine checklist"
	CmdDescGenerate  = "Print the recommendation checklist for a profile"
	CmdDescVersion   = "Show application version and exit"
	MsgVersionOutput = "%s version %s (%s/%s)\n"

	FlagDebug  = "debug"
	FlagMonth  = "month"
	FlagDay    = "day"
	FlagYear   = "year"
	FlagSex    = "sex"
	FlagSmoker = "smoker"
	FlagToday  = "today"
	FlagVCard  = "vcard"
	FlagICS    = "ics"
	FlagEmail  = "email"

	FlagDescDebug  = "Enable debug logging to stdout"
	FlagDescMonth  = "Birth month (Jan..Dec)"
	FlagDescDay    = "Birth day of month"
	FlagDescYear   = "Birth year"
	FlagDescSex    = "Sex: male or female"
	FlagDescSmoker = "Smoker: yes or no"
	FlagDescToday  = "Override today's date (YYYY-MM-DD)"
	FlagDescVCard  = "Import birth date and sex from a vCard file or URL"
	FlagDescICS    = "Write the checklist as an iCalendar file"
	FlagDescEmail  = "Send the checklist digest to this address"
)

// -----------------------------------------------------------------------------
// Profile Values
// -----------------------------------------------------------------------------

const (
	SexMale     = "male"
	SexFemale   = "female"
	SmokerYes   = "yes"
	SmokerNo    = "no"
	VaccineTest = "Vaccine"

	// UpNextCount is how many recommendations the "Up next" section shows.
	UpNextCount = 3
)

// Months lists the birth month choices offered by the form.
var Months = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 640
	MainWindowHeight    = 760
	SettingsWindowWidth = 520

	// Preference Keys
	PrefServerPort   = "server_port"
	PrefMailMode     = "mail_mode"
	PrefSMTPHost     = "smtp_host"
	PrefSMTPPort     = "smtp_port"
	PrefSMTPUser     = "smtp_user"
	PrefSMTPFrom     = "smtp_from"
	PrefLastRun      = "last_run_version"
	PrefLanguage     = "language"
	DefaultLanguage  = "en"
	DefaultPort      = "18181"
	DefaultSMTPPort  = 587
	MailModeSimulate = "simulate"
	MailModeSMTP     = "smtp"

	// Display Formats
	DateFormatDisplay = "1/2/2006"
	DateFormatISO     = "2006-01-02"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinSettings    = "win_settings_title"
	TKeyHeading        = "heading"
	TKeySubheading     = "subheading"
	TKeyMenuShow       = "menu_show"
	TKeyMenuSettings   = "menu_settings"
	TKeyLblDOB         = "lbl_dob"
	TKeyPhMonth        = "ph_month"
	TKeyPhDay          = "ph_day"
	TKeyPhYear         = "ph_year"
	TKeyLblSex         = "lbl_sex"
	TKeyPhSex          = "ph_sex"
	TKeyOptMale        = "opt_male"
	TKeyOptFemale      = "opt_female"
	TKeyLblSmoker      = "lbl_smoker"
	TKeyPhSmoker       = "ph_smoker"
	TKeyOptYes         = "opt_yes"
	TKeyOptNo          = "opt_no"
	TKeyBtnGenerate    = "btn_generate"
	TKeyLblEmail       = "lbl_email"
	TKeyBtnEmailMe     = "btn_email_me"
	TKeyLblOtherEmail  = "lbl_other_email"
	TKeyBtnEmailOther  = "btn_email_other"
	TKeyLblUpNext      = "lbl_up_next"
	TKeyLblFuture      = "lbl_future"
	TKeyLblDueDate     = "lbl_due_date"
	TKeyLblFrequency   = "lbl_frequency"
	TKeyLblNoResults   = "lbl_no_results"
	TKeyErrInvalidDOB  = "err_invalid_dob"
	TKeyMsgEmailSent   = "msg_email_sent"   // Requires Address
	TKeyErrEmailFailed = "err_email_failed" // Non-fatal
	TKeyLblFeed        = "lbl_feed"         // Requires URL
	TKeyLblGeneral     = "lbl_general"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"
	TKeyLblMail        = "lbl_mail"
	TKeyLblMailMode    = "lbl_mail_mode"
	TKeyModeSimulate   = "mode_simulate"
	TKeyModeSMTP       = "mode_smtp"
	TKeyLblSMTPHost    = "lbl_smtp_host"
	TKeyLblSMTPPort    = "lbl_smtp_port"
	TKeyLblSMTPUser    = "lbl_smtp_user"
	TKeyLblSMTPPass    = "lbl_smtp_pass"
	TKeyLblSMTPFrom    = "lbl_smtp_from"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyLblFooter      = "lbl_footer"
	TKeyErrPortReq     = "err_port_required"
	TKeyErrPortNum     = "err_port_number"
	TKeyErrPortRange   = "err_port_range"
	TKeyLblLanguage    = "lbl_language"
	TKeyHelpLanguage   = "help_language"
	TKeyBtnImport      = "btn_import"
	TKeyErrImport      = "err_import"
	TKeyBtnExport      = "btn_export"
	TKeyMsgExported    = "msg_exported" // Requires Path
	TKeyErrExport      = "err_export"
	TKeyMsgSending     = "msg_sending"
)

// SupportedLanguages is the fallback list when locale detection fails.
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Notification Digest
// -----------------------------------------------------------------------------

const (
	DigestSubject       = "Your Preventive Screening Recommendations"
	DigestTitle         = "Preventive Screening Recommendations:"
	DigestUpNext        = "Up next:"
	DigestFuture        = "In the future:"
	DigestItemFormat    = "- %s: %s\n  Due date: %s\n  Frequency: %s"
	DigestItemSeparator = "\n\n"

	SimulatedSendDelay = 1 * time.Second
	SMTPDialTimeout    = 15 * time.Second

	// Environment variables read by the CLI (optionally from .env).
	EnvMailMode = "GO_SCREENING_MAIL_MODE"
	EnvSMTPHost = "GO_SCREENING_SMTP_HOST"
	EnvSMTPPort = "GO_SCREENING_SMTP_PORT"
	EnvSMTPUser = "GO_SCREENING_SMTP_USER"
	EnvSMTPPass = "GO_SCREENING_SMTP_PASS"
	EnvSMTPFrom = "GO_SCREENING_SMTP_FROM"

	// go-mail adds the angle brackets around the Message-ID.
	MessageIDFormat = "%s@%s"
	MessageIDDomain = "go-screening"

	MailAddrFormat = "%s:%d"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Screening//Engine//EN"
	ICalCalName = "Preventive Care"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "goscreening"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropDescription = "DESCRIPTION"
	PropCategories  = "CATEGORIES"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	CategoryScreening = "SCREENING"
	CategoryVaccine   = "VACCINE"
	SummaryFormat     = "%s: %s"

	VCardBDAY   = "BDAY"
	VCardGender = "GENDER"
	VCardMale   = "M"
	VCardFemale = "F"

	DefaultICalRefresh = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// Limits
	MinPort      = 1
	MaxPort      = 65535
	MinBirthYear = 1900

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s@%s"
	UIDSalt         = "go-screening-v1-"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtICS   = ".ics"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 1 * 1024 * 1024 // a single contact card
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteDigest         = "/digest.txt"
	AddrSeparator       = ":"
	FeedURLFormat       = "http://%s:%s/"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeTextPlain       = "text/plain; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidDate      = "invalid date of birth"
	ErrMissingDateField = "month, day and year are required"
	ErrUnknownMonth     = "unknown month"
	ErrDayNotNumber     = "day must be a number"
	ErrYearNotNumber    = "year must be a number"
	ErrDateNotExist     = "date does not exist"
	ErrDateInFuture     = "date of birth is in the future"
	ErrYearTooEarly     = "year is before 1900"
	ErrUnknownSex       = "sex must be male or female"
	ErrUnknownSmoker    = "smoker must be yes or no"
	ErrNoBirthday       = "no contact card with a full birth date"
	ErrNotification     = "notification failure"
	ErrEmptyAddress     = "recipient address is empty"
	ErrBadAddress       = "recipient address is malformed"
	ErrSMTPHostEmpty    = "configuration error: SMTP host is empty"
	ErrSMTPSend         = "SMTP delivery failed"
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrICSWrite         = "failed to write iCalendar file"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrBadToday         = "today must be formatted as YYYY-MM-DD"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "No checklist generated yet, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	// StubVCalendar is the minimal valid iCalendar object used when the checklist is empty.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"
	MsgPortBusy       = "Port %s is busy or unavailable."

	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgGenerated      = "Recommendations generated"
	MsgGenerateReq    = "Generate requested"
	MsgGenerateReject = "Generate rejected: invalid date of birth"
	MsgNotifyReq      = "Notification requested"
	MsgNotifyDone     = "Notification delivered"
	MsgNotifyFailed   = "Notification failed"
	MsgSimulatedSend  = "Email sent (simulated)"
	MsgSMTPSend       = "Email sent via SMTP"
	MsgProfileLoaded  = "Profile imported from contact card"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Checklist feed updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgEnvMissing     = "No .env file loaded"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgEmailWarning   = "Warning: checklist not emailed: %v\n"
	MsgICSWritten     = "Calendar file written"
	MsgOpenSettings   = "Opening settings window"
	MsgSaveSettings   = "Saving preferences"
	MsgSettingsFocus  = "Settings window already open, requesting focus"
	MsgKeyringSave    = "Failed to save credentials to keyring"
	MsgImportFailed   = "Profile import failed"
	MsgExportFailed   = "Calendar export failed"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyUser      = "user"
	LogKeyAge       = "age"
	LogKeySex       = "sex"
	LogKeySmoker    = "smoker"
	LogKeyCount     = "count"
	LogKeyScreening = "screenings"
	LogKeyVaccine   = "vaccines"
	LogKeyTo        = "to"
	LogKeySubject   = "subject"
	LogKeyBody      = "body"
	LogKeyMessageID = "message_id"
	LogKeyMode      = "mode"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyDuration  = "duration_ms"
	LogKeyNotifyID  = "notification_id"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompEngine  = "engine"
	CompNotify  = "notify"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompMain    = "main"
	CompCLI     = "cli"
	CompI18n    = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
	LayoutColumnsTriple = 3
)
