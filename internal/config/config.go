// Package config defines the analyzer's configuration and how it is loaded.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a .env file, an optional YAML file and RENTYIELD_* variables on top.
// - External errors are wrapped with this package's sentinels.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// YieldThreshold is the exclusive lower bound, in percent, a listing's
	// rental yield must exceed to be analysed.
	YieldThreshold float64 `koanf:"yield_threshold"`

	// TopN caps the number of suburbs in the report.
	TopN int `koanf:"top_n" validate:"min=1"`

	// RoundPlaces is the number of decimal places kept in reported figures.
	RoundPlaces int `koanf:"round_places" validate:"min=0,max=10"`

	// JSONIndent is the number of spaces per indentation level of the report.
	JSONIndent int `koanf:"json_indent" validate:"min=0,max=8"`

	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		YieldThreshold: 7.0,
		TopN:           5,
		RoundPlaces:    2,
		JSONIndent:     4,
	}
}
