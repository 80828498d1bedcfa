package omnic

import "log/slog"

// logger receives informational decode messages (unknown axis or data
// kinds, missing interferograms, unsupported records) and one-time
// deprecation notices.
var logger = slog.Default()

// SetLogger replaces the package logger. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}
