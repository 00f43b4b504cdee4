package config

// Config represents the global tmplstore configuration.
type Config struct {
	// State configuration for the persisted template state.
	State StateConfig `json:"state" envPrefix:"STATE_"`
	// Source configuration for fetching template payloads.
	Source SourceConfig `json:"source" envPrefix:"SOURCE_"`
	// Install configuration for community template staging.
	Install InstallConfig `json:"install" envPrefix:"INSTALL_"`
	// Output configuration for display and logging.
	Output OutputConfig `json:"output" envPrefix:"OUTPUT_"`
}

// StateConfig represents state file settings.
type StateConfig struct {
	// File is the state file path.
	File string `json:"file" env:"FILE" validate:"required"`
	// LockTimeout is how long to wait for the state file lock, in seconds.
	LockTimeout int `json:"lock_timeout" env:"LOCK_TIMEOUT" validate:"gte=0"`
}

// SourceConfig represents payload source settings.
type SourceConfig struct {
	// Timeout is the HTTP request timeout in seconds.
	Timeout int `json:"timeout" env:"TIMEOUT" validate:"gte=0"`
	// Token is an optional bearer token for HTTP sources.
	Token string `json:"token,omitempty" env:"TOKEN"`
	// UserAgent is sent with HTTP requests.
	UserAgent string `json:"user_agent" env:"USER_AGENT"`
	// BaseDir resolves relative local paths.
	BaseDir string `json:"base_dir,omitempty" env:"BASE_DIR"`
	// GitHubRawURL overrides the raw content host for github: locations.
	GitHubRawURL string `json:"github_raw_url,omitempty" env:"GITHUB_RAW_URL" validate:"omitempty,url"`
}

// InstallConfig represents community template staging settings.
type InstallConfig struct {
	// HonorShouldInstall makes an explicit shouldInstall value on a staged
	// dashboard decide whether it is installed.
	HonorShouldInstall bool `json:"honor_should_install" env:"HONOR_SHOULD_INSTALL"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// Format is the structured output format.
	Format string `json:"format" env:"FORMAT" validate:"oneof=json yaml"`
	// NoColor disables colored terminal output.
	NoColor bool `json:"no_color" env:"NO_COLOR"`
	// Quiet suppresses non-error output.
	Quiet bool `json:"quiet" env:"QUIET"`
}
