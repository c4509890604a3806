package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables read by Load.
const (
	EnvPrefix  = "RENTYIELD_"
	EnvConfig  = EnvPrefix + "CONFIG"
	EnvDotenv  = EnvPrefix + "DOTENV"
	defaultEnv = ".env"
)

// Load builds a Config by layering defaults, a dotenv file, an optional YAML
// file and env vars. Order of precedence (low -> high):
//  1. defaults (New())
//  2. dotenv file at RENTYIELD_DOTENV (default .env), skipped when absent
//  3. file (YAML) if RENTYIELD_CONFIG is set
//  4. env (prefix RENTYIELD_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	dotenv, err := readDotenv()
	if err != nil {
		return nil, err
	}
	for key, val := range dotenv {
		if name, ok := keyFor(key); ok {
			if err := k.Set(name, val); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, key, err)
			}
		}
	}

	path := os.Getenv(EnvConfig)
	if path == "" {
		path = dotenv[EnvConfig]
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// RENTYIELD_TOP_N -> top_n; underscores are kept to match the koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		name, _ := keyFor(s)
		return name
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and reports every violation at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

var validate = newValidator()

// newValidator reports koanf key names instead of Go field names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func readDotenv() (map[string]string, error) {
	path := os.Getenv(EnvDotenv)
	if path == "" {
		path = defaultEnv
	}
	vals, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
	}
	return vals, nil
}

// keyFor maps RENTYIELD_TOP_N to top_n.
func keyFor(envKey string) (string, bool) {
	if !strings.HasPrefix(strings.ToUpper(envKey), EnvPrefix) {
		return "", false
	}
	return strings.ToLower(envKey[len(EnvPrefix):]), true
}
