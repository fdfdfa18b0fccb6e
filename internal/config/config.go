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
var UserAgent = "Go-Bongabdo/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Bongabdo"
	AppID             = "com.github.tartampluch.go-bongabdo"
	TUIName           = "punjika"
	KeyringService    = "com.github.tartampluch.go-bongabdo"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	TUILogFileName    = "punjika.log"
	WebsiteURL        = "https://github.com/tartampluch/go-bongabdo"
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
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagOffset       = "offset"
	FlagPrint        = "print"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging with source locations"
	FlagDescConfig   = "Path to a TOML configuration file"
	FlagDescOffset   = "UTC offset mode: legacy (+1h) or bangladesh (+6h)"
	FlagDescPrint    = "Print today's Bangla date and exit"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Calendar: Time Zone Handling
// -----------------------------------------------------------------------------

const (
	// BangladeshUTCOffset is Bangladesh Standard Time.
	BangladeshUTCOffset = 6 * time.Hour

	// LegacyOffsetCorrection is subtracted after the Bangladesh offset in
	// legacy mode, leaving a net UTC+1 for day boundaries.
	LegacyOffsetCorrection = -5 * time.Hour

	OffsetModeLegacy     = "legacy"
	OffsetModeBangladesh = "bangladesh"
	DefaultOffsetMode    = OffsetModeLegacy
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 560

	// WidgetRefreshInterval is how often the displayed date is recomputed.
	WidgetRefreshInterval = time.Minute

	// Preference Keys
	PrefLanguage   = "language"
	PrefOffsetMode = "offset_mode"
	PrefFeedMonths = "feed_months"
	PrefInterval   = "refresh_interval_min"
	PrefServerPort = "server_port"
	PrefCountry    = "country"
	PrefSourceMode = "source_mode"
	PrefLocalPath  = "local_path"
	PrefCardDAVURL = "carddav_url"
	PrefUsername   = "username"
	PrefLastRun    = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"bn", "en"}

// Country selection. Only the Bangladesh calendar is implemented.
const (
	CountryBangladesh = "bd"
	CountryIndia      = "in"
)

// -----------------------------------------------------------------------------
// UI Calendar & Birthdays Windows
// -----------------------------------------------------------------------------

const (
	CalendarWinWidth  = 320
	CalendarWinHeight = 380
	WidgetWinWidth    = 220
	WidgetWinHeight   = 110

	BirthdaysWinWidth  = 560
	BirthdaysWinHeight = 400

	// Table Column IDs
	ColIDName       = 0
	ColIDBanglaDate = 1
	ColIDNextDate   = 2
	ColIDAge        = 3
	ColCount        = 4

	// Table Layout
	ColWidthName       = 200
	ColWidthBanglaDate = 130
	ColWidthNextDate   = 110
	ColWidthAge        = 100

	DateFormatDisplay = "2006-01-02"
	TablePlaceholder  = "Cell Content"
	AgeUnknown        = "-"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"

	GridColumns = 7

	// GridRows fits the longest month starting on the last weekday.
	GridRows = 6

	PlaceholderURL = "https://dav.example.com/addressbooks/user/contacts/"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyAppTitle       = "app_title"
	TKeyWinCalendar    = "win_calendar_title"
	TKeyWinSettings    = "win_settings_title"
	TKeyWinBirthdays   = "win_birthdays_title"
	TKeyMenuCalendar   = "menu_calendar"
	TKeyMenuBirthdays  = "menu_birthdays"
	TKeyMenuSettings   = "menu_settings"
	TKeyMenuCountry    = "menu_country"
	TKeyMenuBangladesh = "menu_country_bd"
	TKeyMenuIndia      = "menu_country_in"
	TKeyMenuWebsite    = "menu_website"
	TKeyMenuRefresh    = "menu_refresh"
	TKeyTrayBirthdays  = "tray_birthdays"      // Plural, requires Count
	TKeyTrayNoBirthday = "tray_birthdays_zero" // Explicit zero label
	TKeyNavPrev        = "nav_prev"
	TKeyNavNext        = "nav_next"
	TKeyNavToday       = "nav_today"
	TKeyNavQuit        = "nav_quit"
	TKeyHoverGregorian = "hover_gregorian" // Requires Date
	TKeyNotifStart     = "notif_sync_start"
	TKeyNotifSuccess   = "notif_sync_success"
	TKeyNotifError     = "notif_err_sync"
	TKeyLblGeneral     = "lbl_general"
	TKeyLblLanguage    = "lbl_language"
	TKeyHelpLanguage   = "help_language"
	TKeyLblOffset      = "lbl_offset_mode"
	TKeyHelpOffset     = "help_offset_mode"
	TKeyOffsetLegacy   = "offset_legacy"
	TKeyOffsetBD       = "offset_bangladesh"
	TKeyLblFeed        = "lbl_feed"
	TKeyLblFeedMonths  = "lbl_feed_months"
	TKeyHelpFeedMonths = "help_feed_months"
	TKeyLblMinutes     = "lbl_minutes_suffix"
	TKeyLblRefresh     = "lbl_refresh_interval"
	TKeyHelpInterval   = "help_interval"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"
	TKeyLblSource      = "lbl_source"
	TKeyModeNone       = "mode_none"
	TKeyModeCardDAV    = "mode_carddav"
	TKeyModeLocal      = "mode_local"
	TKeyLblURL         = "lbl_url"
	TKeyHelpURL        = "help_carddav_url"
	TKeyLblUser        = "lbl_user"
	TKeyLblPass        = "lbl_pass"
	TKeyBtnBrowse      = "btn_browse"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyLblFooter      = "lbl_footer"
	TKeyEvtBirthday    = "event_birthday"     // Requires Name
	TKeyEvtBirthdayAge = "event_birthday_age" // Requires Name, Age

	// Column Headers
	TKeyColName       = "col_name"
	TKeyColBanglaDate = "col_bangla_date"
	TKeyColNextDate   = "col_next_date"
	TKeyColAge        = "col_age"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
	TKeyErrFeedRange = "err_feed_range"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeNone    = "none"
	SourceModeWeb     = "web"
	SourceModeLocal   = "local"
	DefaultPort       = "18081"
	DefaultRefreshMin = 60
	DefaultLanguage   = "bn"
	DefaultCountry    = CountryBangladesh
	DefaultFeedMonths = 3  // Bangla months published on each side of today
	MaxFeedMonths     = 24 // Upper bound accepted from settings
	DefaultLeapYear   = 2000
	UIDSalt           = "go-bongabdo-v1-" // Salt for deterministic UID generation
	DisabledInterval  = 0
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Bongabdo//Feed//BN"
	ICalCalName = "বঙ্গাব্দ"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gobongabdo"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropCategories  = "CATEGORIES"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"
	PropTransp      = "TRANSP"

	ICalTransparent    = "TRANSPARENT"
	CategoryBanglaDate = "BANGLA-DATE"
	CategoryBirthday   = "BIRTHDAY"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 1 * time.Hour
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
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength     = 16
	FormatHashInput   = "%s|%s|%s"
	FormatDayUID      = "bn-%04d-%02d-%02d@%s"
	FormatBirthdayUID = "%s-%d@%s"

	// File Extensions
	ExtVCF   = ".vcf"
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
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"

	RouteCalendar = "/calendar.ics"
	RouteToday    = "/today"
	RouteMonth    = "/month"
	QueryYear     = "year"
	QueryMonth    = "month"
	MinQueryYear  = 1
	MaxQueryYear  = 9999
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
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeVCard           = "text/vcard, text/x-vcard;q=0.9, */*;q=0.1"
	MimeHTML            = "text/html"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrOffsetMode       = "configuration error: unknown offset mode"
	ErrLanguage         = "configuration error: unsupported language"
	ErrConfigRead       = "failed to read configuration file"
	ErrConfigParse      = "failed to parse configuration file"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrRequestBuild     = "failed to create request"
	ErrNetwork          = "network error during fetch"
	ErrHTTPStatus       = "server returned unexpected status"
	ErrHTTPAuth         = "address book rejected the credentials"
	ErrNotVCard         = "address book returned a web page instead of vCards"
	ErrVCardParse       = "failed to read vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrJSONEncode       = "failed to encode JSON response"
	ErrDateParse        = "unable to parse date"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrOpenURL          = "failed to open URL"
	ErrKeyringSave      = "failed to save credentials to keyring"
	ErrTUIFailed        = "terminal calendar failed"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgBadYear      = "year must be an integer between 1 and 9999"
	HTTPMsgBadMonth     = "month must be an integer between 0 and 11"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackBirthday    = "জন্মদিন: %s"
	FallbackBirthdayAge = "জন্মদিন: %s (%s)"
	FallbackTrayLabel   = "Go Bongabdo"
	FallbackTrayError   = "Go Bongabdo (!)"
	FallbackTrayDefault = "Birthdays today: %d"
	FallbackName        = "Unknown"

	TitleStartupError = "Startup Error"
	TitleSyncError    = "Sync Error"

	MsgPortBusy       = "Port %s is busy or unavailable."
	MsgFeedStarted    = "Feed generation started"
	MsgFeedSuccess    = "Feed generation successful"
	MsgDayChanged     = "Bangla date changed"
	MsgWorkerStart    = "Background worker started"
	MsgWorkerStop     = "Worker stopping due to context cancellation"
	MsgUpdateSync     = "Updating refresh interval"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgBirthdaysRead  = "Birthdays loaded"
	MsgBirthdayToday  = "Bangla birthday today"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgFetchStart     = "Initiating vCard download"
	MsgFetchStatus    = "Server returned error status"
	MsgFetchReceiving = "vCards downloading"
	MsgOpenCalendar   = "Opening calendar window"
	MsgOpenBirthdays  = "Opening birthdays window"
	MsgOpenSettings   = "Opening settings window"
	MsgWindowFocus    = "Window already open, requesting focus"
	MsgRefreshOff     = "Auto-refresh disabled via settings"
	MsgSyncReq        = "Sync requested"
	MsgSyncFailed     = "Sync failed"
	MsgSettingsSaved  = "Saving preferences"
	MsgNavigate       = "Calendar navigated"
	MsgConfigDefault  = "Configuration file not found, using defaults"
	MsgConfigLoaded   = "Configuration file loaded"
	MsgSorted         = "Birthdays sorted"
	MsgCountryIgnored = "Country not available yet"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent  = "component"
	LogKeyError      = "error"
	LogKeyURL        = "url"
	LogKeyStatus     = "status_code"
	LogKeyFile       = "file"
	LogKeyLang       = "lang"
	LogKeyPath       = "path"
	LogKeyKey        = "key"
	LogKeyPort       = "port"
	LogKeyMode       = "mode"
	LogKeyOffset     = "offset_mode"
	LogKeyInterval   = "interval"
	LogKeyOld        = "old"
	LogKeyNew        = "new"
	LogKeyUser       = "user"
	LogKeyManual     = "manual"
	LogKeyValue      = "value"
	LogKeyStats      = "stats"
	LogKeyDays       = "days"
	LogKeyTotal      = "total_cards"
	LogKeyFound      = "birthdays_found"
	LogKeyToday      = "birthdays_today"
	LogKeySizeBytes  = "size_bytes"
	LogKeyLength     = "content_length"
	LogKeyETag       = "etag"
	LogKeyBanglaDate = "bangla_date"
	LogKeyMonth      = "month"
	LogKeyYear       = "year"
	LogKeyName       = "name"
	LogKeyDOB        = "date_of_birth"
	LogKeyCount      = "count"
	LogKeySortCol    = "sort_column"
	LogKeySortAsc    = "sort_asc"
	LogKeyDuration   = "duration_ms"

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
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompUICal    = "ui_calendar"
	CompFeed     = "feed"
	CompBirthday = "birthdays"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompWorker   = "worker"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompTUI      = "tui"
	CompConfig   = "config"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)

// -----------------------------------------------------------------------------
// Terminal Calendar
// -----------------------------------------------------------------------------

const (
	TUIKeyPrev  = "left"
	TUIKeyPrevV = "h"
	TUIKeyNext  = "right"
	TUIKeyNextV = "l"
	TUIKeyToday = "t"
	TUIKeyQuit  = "q"
	TUIKeyEsc   = "esc"
	TUIKeyCtrlC = "ctrl+c"

	// Key labels shown by the help line; the descriptions are translated.
	TUIHelpPrevKey  = "←/h"
	TUIHelpNextKey  = "→/l"
	TUIHelpTodayKey = "t"
	TUIHelpQuitKey  = "q"

	// TUIWeekendColumn is Friday in the Sunday-first grid.
	TUIWeekendColumn = 5

	// TUICellWidth is the rendered width of one day column.
	TUICellWidth = 5

	TUIColorTitle  = "99"
	TUIColorToday  = "226"
	TUIColorTodayB = "238"
	TUIColorDim    = "241"
	TUIColorFriday = "203"
)
