package config

const (
	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Diff Defaults
	DefaultDiffMaxLCSCells         = 0 // derived from available memory
	DefaultDiffMemoryFraction      = 0.25
	DefaultDiffHardMaxLCSCells     = 64 * 1024 * 1024
	DefaultDiffFallbackTimeoutMs   = 1000
	DefaultDiffMinTextLength       = 3
	DefaultDiffMaxConcurrency      = 4
	DefaultDiffMaxSnapshotSizeMB   = 10
	DefaultPreviewContextChars     = 120
	DefaultPreviewDisplayContext   = 80
	DefaultPreviewMaxChangeChars   = 100
	DefaultPreviewNewDocumentChars = 150
	DefaultPreviewNewDocumentAfter = 50
	DefaultPreviewEllipsis         = "..."

	// Reporter Defaults
	DefaultReporterOutputFormat = "text"
	DefaultReporterMode         = "preview"

	// ConfigPathEnv overrides the config file location.
	ConfigPathEnv = "WIKIDIFF_CONFIG_PATH"
)
