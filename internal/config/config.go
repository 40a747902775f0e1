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

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Go Year Dots"
	AppID       = "com.github.tartampluch.go-yeardots"
	LogFileName = "app.log"
	ImageFile   = "yeardots.png"
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
	FlagParams       = "params"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescParams   = "Query-style render parameters, e.g. \"width=1220&height=2712&color=ff5722\""
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Session & Calendar
// -----------------------------------------------------------------------------

const (
	// SessionZoneName labels the fixed civil offset every session is pinned to.
	SessionZoneName = "IST"

	// SessionZoneOffset is UTC+5:30 in seconds.
	SessionZoneOffset = 5*60*60 + 30*60

	DaysInWeek    = 7
	MonthsInYear  = 12
	DaysLeapYear  = 366
	DaysPlainYear = 365
	HoursPerDay   = 24
	PercentScale  = 100
)

// SessionZone is the fixed zone used for all date computation, independent of
// the host's local timezone.
var SessionZone = time.FixedZone(SessionZoneName, SessionZoneOffset)

// MonthAbbreviations are the fixed English month titles.
var MonthAbbreviations = [MonthsInYear]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// -----------------------------------------------------------------------------
// Render Parameters (query-style input)
// -----------------------------------------------------------------------------

const (
	ParamWidth    = "width"
	ParamHeight   = "height"
	ParamColor    = "color"
	ParamSettle   = "settle"
	ParamRenderer = "renderer"
	ParamPadding  = "padding"

	DefaultWidth       = 1220
	DefaultHeight      = 2712
	DefaultAccentHex   = "ff5722"
	DefaultSettleDelay = 500 * time.Millisecond

	// DefaultCaptureTimeout of zero leaves a hanging capture unbounded.
	DefaultCaptureTimeout time.Duration = 0

	RendererNative  = "native"
	RendererChrome  = "chrome"
	DefaultRenderer = RendererNative

	HexPrefix = "#"
)

// -----------------------------------------------------------------------------
// Layout Ratios
// -----------------------------------------------------------------------------

// The fixed-size variant is 1220x2712 with hardcoded pixel values. Every other
// size derives its geometry from these ratios.
const (
	TopPaddingRatio   = 0.295
	ColumnGapRatio    = 60.0 / DefaultWidth
	RowGapRatio       = 70.0 / DefaultHeight
	WrapperWidthRatio = 1000.0 / DefaultWidth

	MonthColumns = 3

	// Sizes below are in reference pixels and are multiplied by the width unit.
	TitleFontSize   = 32.0
	MonthBoxGap     = 20.0
	DayGridGap      = 14.0
	DotSize         = 20.0
	GlowRadius      = 15.0
	FooterMarginTop = 150.0
	FooterFontSize  = 48.0
	LineHeightRatio = 1.2

	// SmallWidthThreshold is the width under which the live tree is scaled up
	// for on-screen legibility.
	SmallWidthThreshold = 600
	SmallWidthScale     = 2.0
)

// -----------------------------------------------------------------------------
// Palette
// -----------------------------------------------------------------------------

const (
	ColorBackground = "161616"
	ColorTitle      = "888888"
	ColorDotFuture  = "333333"
	ColorDotPast    = "e0e0e0"
	ColorFooter     = "666666"

	FormatDaysLeft = "%dd left"
	FormatPercent  = " · %d%%"
)

// -----------------------------------------------------------------------------
// Headless Browser
// -----------------------------------------------------------------------------

const (
	CaptureElementID   = "capture"
	BrowserBlankURL    = "about:blank"
	BrowserFontsReady  = `document.fonts.ready.then(() => true)`
	BrowserFontFamily  = "sans-serif"
	BrowserFontWeight  = 500
	BrowserTimeout     = 60 * time.Second
	BrowserDeviceScale = 1.0
	MimePNG            = "image/png"
	FormatDataURI      = "data:%s;base64,%s"
)

// -----------------------------------------------------------------------------
// UI Constants
// -----------------------------------------------------------------------------

const (
	// Preview window size keeps the default 1220x2712 aspect ratio.
	WindowWidth  = 405
	WindowHeight = 900

	SupportedLanguage = "en"
	LocalesDir        = "locales"
	LocalePrefix      = "active."
	LocaleSuffix      = ".json"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyStatusIdle     = "status_idle"
	TKeyStatusPending  = "status_generating"
	TKeyStatusFailed   = "status_failed"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCopy        = "btn_copy"
	TKeyNotifSaved     = "notif_saved"
	TKeyNotifCopied    = "notif_copied"
	TKeyNotifCopyError = "notif_copy_error"
	TKeyNotifSaveError = "notif_save_error"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrCaptureFailed     = "capture failed"
	ErrCaptureTimeout    = "capture did not complete in time"
	ErrDimensionMismatch = "captured bitmap dimensions do not match the requested size"
	ErrBitmapDecode      = "failed to decode captured bitmap"
	ErrBitmapEncode      = "failed to encode bitmap"
	ErrFontParse         = "failed to parse font"
	ErrFontFace          = "failed to create font face"
	ErrBrowserRun        = "headless browser capture failed"
	ErrNilScene          = "scene root is nil"
	ErrInvalidSize       = "capture size must be positive"
	ErrInvalidColor      = "color must be 3 or 6 hex digits"
	ErrUnknownRenderer   = "unknown renderer"
	ErrNotReady          = "bitmap not ready"
	ErrClipboardInit     = "clipboard unavailable"
	ErrWriteFile         = "failed to write image"
	ErrLogFile           = "failed to open log file"
	ErrCacheDir          = "could not determine user cache dir"
	ErrCreateDir         = "could not create app cache dir"
	ErrAppFailed         = "application failed unexpectedly"
	ErrLocalesAccess     = "failed to access embedded locales"
	ErrLocaleLoad        = "failed to load locale file"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting     = "Starting application"
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgSessionStart    = "Session reference date fixed"
	MsgConfigResolved  = "Render configuration resolved"
	MsgParamFallback   = "Render parameter invalid, using default"
	MsgSceneBuilt      = "Scene built"
	MsgCapturePending  = "Capture scheduled"
	MsgPhaseChange     = "Capture phase changed"
	MsgCaptureSkipped  = "Capture already started, trigger ignored"
	MsgReadinessFailed = "Readiness probe failed, falling back to settle delay"
	MsgCaptureReady    = "Capture completed"
	MsgCaptureFailed   = "Capture failed"
	MsgBrowserStart    = "Launching headless browser"
	MsgBrowserResize   = "Browser screenshot resized to target"
	MsgImageSaved      = "Image saved"
	MsgImageCopied     = "Image copied to clipboard"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
)

// -----------------------------------------------------------------------------
// Fallbacks
// -----------------------------------------------------------------------------

const (
	FallbackStatusPending = "Generating…"
	FallbackStatusFailed  = "Could not generate the wallpaper: %v"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyParam     = "param"
	LogKeyValue     = "value"
	LogKeyWidth     = "width"
	LogKeyHeight    = "height"
	LogKeyColor     = "color"
	LogKeyRenderer  = "renderer"
	LogKeySettle    = "settle"
	LogKeyPadding   = "padding"
	LogKeyReference = "reference"
	LogKeyDaysLeft  = "days_left"
	LogKeyPercent   = "percent_left"
	LogKeyNodes     = "nodes"
	LogKeySizeBytes = "size_bytes"
	LogKeyPhase     = "phase"
	LogKeyDataURI   = "data_uri_bytes"
	LogKeyDuration  = "duration_ms"

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
	CompEngine   = "engine"
	CompScene    = "scene"
	CompCapture  = "capture"
	CompSnapshot = "snapshot"
	CompMain     = "main"
	CompI18n     = "i18n"
)
