package cli

import (
	"fmt"
	"strings"

	"github.com/tacogips/tmplstore/internal/template/model"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagConfig  = "config"
	FlagState   = "state"
	FlagFormat  = "format"
	FlagStatus  = "status"
	FlagInstall = "install"
	FlagSelect  = "select"
	FlagYes     = "yes"
	FlagNoColor = "no-color"
	FlagQuiet   = "quiet"
	FlagDebug   = "debug"

	// Flag descriptions
	DescConfig  = "Path to config file"
	DescState   = "Path to state file (overrides state.file)"
	DescFormat  = "Output format (json, yaml)"
	DescStatus  = "Collection status to record (NotStarted, Loading, Done, Error)"
	DescInstall = "Whether the dashboard should be installed"
	DescSelect  = "Interactively choose which dashboards to install"
	DescYes     = "Skip confirmation"
	DescNoColor = "Disable colored output"
	DescQuiet   = "Suppress non-error output"
	DescDebug   = "Enable debug logging"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateFormat normalizes and validates an output format.
func ValidateFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format %q (expected %s or %s)", format, FormatJSON, FormatYAML)
	}
}

// ValidateStatus parses a collection status flag value.
func ValidateStatus(status string) (model.RemoteDataState, error) {
	return model.ParseRemoteDataState(status)
}

// ValidateID checks a template or stack id argument.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("id cannot be empty")
	}
	return nil
}
