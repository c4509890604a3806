package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/rentyield/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load()

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.YieldThreshold, convey.ShouldEqual, 7.0)
				convey.So(cfg.TopN, convey.ShouldEqual, 5)
				convey.So(cfg.RoundPlaces, convey.ShouldEqual, 2)
				convey.So(cfg.JSONIndent, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("RENTYIELD_LOG_LEVEL", "debug")
			_ = os.Setenv("RENTYIELD_LOG_FORMAT", "json")
			_ = os.Setenv("RENTYIELD_YIELD_THRESHOLD", "8.5")
			_ = os.Setenv("RENTYIELD_TOP_N", "10")
			_ = os.Setenv("RENTYIELD_METRICS_FILE", "/tmp/rentyield.prom")

			cfg, err := config.Load()

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.YieldThreshold, convey.ShouldEqual, 8.5)
				convey.So(cfg.TopN, convey.ShouldEqual, 10)
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/tmp/rentyield.prom")
				convey.So(cfg.RoundPlaces, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(t, "config.yaml", `
# analyzer settings
yield_threshold: 6.5
top_n: 3
round_places: 3  # more precision
json_indent: 2
`)
			_ = os.Setenv("RENTYIELD_CONFIG", tmpFile)

			cfg, err := config.Load()

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.YieldThreshold, convey.ShouldEqual, 6.5)
				convey.So(cfg.TopN, convey.ShouldEqual, 3)
				convey.So(cfg.RoundPlaces, convey.ShouldEqual, 3)
				convey.So(cfg.JSONIndent, convey.ShouldEqual, 2)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, "config.yaml", "top_n: 3\nround_places: 3\n")
			_ = os.Setenv("RENTYIELD_CONFIG", tmpFile)
			_ = os.Setenv("RENTYIELD_TOP_N", "7")

			cfg, err := config.Load()

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TopN, convey.ShouldEqual, 7)        // Overridden by env
				convey.So(cfg.RoundPlaces, convey.ShouldEqual, 3) // From file
			})
		})

		convey.Convey("When a dotenv file is present", func() {
			dotenv := createTempConfigFile(t, ".env",
				"RENTYIELD_TOP_N=4\nRENTYIELD_ROUND_PLACES=1\nRENTYIELD_LOG_FORMAT=json\nOTHER_SETTING=x\n")
			yamlFile := createTempConfigFile(t, "config.yaml", "round_places: 3\n")
			_ = os.Setenv("RENTYIELD_DOTENV", dotenv)
			_ = os.Setenv("RENTYIELD_CONFIG", yamlFile)
			_ = os.Setenv("RENTYIELD_LOG_FORMAT", "text")

			cfg, err := config.Load()

			convey.Convey("Then it sits below the YAML file and the environment", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TopN, convey.ShouldEqual, 4)          // From dotenv
				convey.So(cfg.RoundPlaces, convey.ShouldEqual, 3)   // From file
				convey.So(cfg.LogFormat, convey.ShouldEqual, "text") // From env
			})

			convey.Convey("Then variables are not exported to the process", func() {
				_, ok := os.LookupEnv("RENTYIELD_TOP_N")
				convey.So(ok, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the dotenv file names the YAML file", func() {
			yamlFile := createTempConfigFile(t, "config.yaml", "top_n: 2\n")
			dotenv := createTempConfigFile(t, ".env", "RENTYIELD_CONFIG="+yamlFile+"\n")
			_ = os.Setenv("RENTYIELD_DOTENV", dotenv)

			cfg, err := config.Load()

			convey.Convey("Then the YAML file is loaded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TopN, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, "config.yaml", `invalid: yaml: content: [`)
			_ = os.Setenv("RENTYIELD_CONFIG", tmpFile)

			cfg, err := config.Load()

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("RENTYIELD_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load()

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("RENTYIELD_TOP_N", "not_a_number")

			cfg, err := config.Load()

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with out-of-range values", func() {
			_ = os.Setenv("RENTYIELD_TOP_N", "0")
			_ = os.Setenv("RENTYIELD_LOG_LEVEL", "loud")

			cfg, err := config.Load()

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "top_n")
				convey.So(err.Error(), convey.ShouldContainSubstring, "log_level")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"RENTYIELD_CONFIG",
		"RENTYIELD_LOG_LEVEL",
		"RENTYIELD_LOG_FORMAT",
		"RENTYIELD_YIELD_THRESHOLD",
		"RENTYIELD_TOP_N",
		"RENTYIELD_ROUND_PLACES",
		"RENTYIELD_JSON_INDENT",
		"RENTYIELD_METRICS_FILE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
	// Keep a stray .env in the package directory out of the tests.
	_ = os.Setenv("RENTYIELD_DOTENV", filepath.Join(os.TempDir(), "rentyield-no-such.env"))
}

func createTempConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config fixture: %v", err)
	}
	return path
}
