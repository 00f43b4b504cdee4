package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

const timeFormat = "15:04:05.000"

var (
	enabled   bool
	enabledMu sync.RWMutex
)

var (
	loggerMu sync.RWMutex
	noColor  bool

	logger *log.Logger = newLogger(os.Stderr)
	output io.Writer   = os.Stderr
)

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
		Prefix:          "tmplstore",
	})
}

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	enabledMu.Lock()
	defer enabledMu.Unlock()
	enabled = enable
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	enabledMu.RLock()
	defer enabledMu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	noColor = disable
	applyColorProfile()
}

// SetOutput redirects debug output. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	output = w
	logger.SetOutput(w)
	applyColorProfile()
}

// applyColorProfile must be called with loggerMu held.
func applyColorProfile() {
	if noColor {
		logger.SetColorProfile(termenv.Ascii)
		return
	}
	logger.SetColorProfile(termenv.NewOutput(output).EnvColorProfile())
}

func current() *log.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...interface{}) {
	if !IsEnabled() {
		return
	}
	current().Debug(fmt.Sprintf(format, args...))
}

// Debugf is an alias for Debug
func Debugf(format string, args ...interface{}) {
	Debug(format, args...)
}

// Debugw prints a structured debug message with key/value pairs.
func Debugw(msg string, keyvals ...interface{}) {
	if !IsEnabled() {
		return
	}
	current().Debug(msg, keyvals...)
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	if !IsEnabled() {
		return
	}
	current().Debug(fmt.Sprintf("=== %s ===", section))
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}
	current().Debug(fmt.Sprintf("%s = %v", key, value))
}

// DebugJSON prints structured data as JSON for debugging
func DebugJSON(key string, v interface{}) {
	if !IsEnabled() {
		return
	}

	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Debug("Failed to marshal %s to JSON: %v", key, err)
		return
	}

	current().Debug(key + ":\n" + string(jsonBytes))
}
