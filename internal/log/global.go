package log

import (
	"sync"
)

var (
	globalLogger *Logger
	globalMu     sync.RWMutex
)

// SetDefaultLogger installs the process-wide logger. The command setup
// calls this once after the configuration is loaded.
func SetDefaultLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// DefaultLogger returns the process-wide logger, creating one with the
// standard configuration when none was installed yet.
func DefaultLogger() *Logger {
	globalMu.RLock()
	logger := globalLogger
	globalMu.RUnlock()

	if logger == nil {
		logger = Default()
		SetDefaultLogger(logger)
	}

	return logger
}
