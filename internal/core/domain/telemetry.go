package domain

import "strings"

// CacheHit records which cache, if any, satisfied a module build.
type CacheHit string

const (
	// CacheHitNone means the module went through the full pipeline.
	CacheHitNone CacheHit = ""
	// CacheHitTimestamp means the source was unchanged since the cached build.
	CacheHitTimestamp CacheHit = "timestamp"
	// CacheHitContentHash means the transformed content matched the cached build.
	CacheHitContentHash CacheHit = "content"
	// CacheHitDependency means the module was adopted from the cache through a pre-resolved dependency.
	CacheHitDependency CacheHit = "dependency"
)

// IsHit reports whether any cache was used.
func (c CacheHit) IsHit() bool {
	return c != CacheHitNone
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLogLevel converts a configuration value to a LogLevel, defaulting to info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}
