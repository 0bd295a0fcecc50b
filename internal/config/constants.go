package config

const (
	// Config discovery
	ConfigPathEnvVar = "PAGEWATCH_CONFIG_PATH"

	// Page limits, mirrored by the max rule on check_every_x_hours
	MaxCheckIntervalHours = 87600

	// Storage Defaults
	DefaultStoragePagesDir = "pages"

	// Fetcher Defaults
	DefaultFetcherUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultFetcherTimeoutSecs    = 30
	DefaultFetcherMaxContentSize = 10 * 1024 * 1024
	DefaultFetcherMaxRedirects   = 10
	StatusPolicyAny              = "any"
	StatusPolicySuccessOnly      = "success_only"

	// Email Defaults
	DefaultEmailSubject     = "notify_on_page_change"
	DefaultEmailPort        = 465
	DefaultEmailTimeoutSecs = 30

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)
