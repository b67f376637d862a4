// Package config loads the application configuration.
//
// Values are layered: built-in defaults, an optional YAML file, an optional
// .env file and finally LEDGER_ prefixed environment variables. Later
// layers win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pocketledger/backend/pkg/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// EnvPrefix is the prefix of all environment variables read.
const EnvPrefix = "LEDGER_"

var ErrInvalid = errors.New("invalid configuration")

// Log formats
const (
	LogFormatJSON  = "json"
	LogFormatHuman = "human"
)

type Config struct {
	API     API     `koanf:"api"`
	Log     Log     `koanf:"log"`
	Gin     Gin     `koanf:"gin"`
	Storage Storage `koanf:"storage"`
	CORS    CORS    `koanf:"cors"`
	Pprof   Pprof   `koanf:"pprof"`
}

type API struct {
	URL    string `koanf:"url"`    // Public URL of the API, used for links in responses
	Listen string `koanf:"listen"` // Address the HTTP server listens on
}

type Log struct {
	Format string `koanf:"format"` // json or human. Empty selects human in gin debug mode, json otherwise
	Level  string `koanf:"level"`
}

type Gin struct {
	Mode string `koanf:"mode"`
}

type Storage struct {
	Backend string `koanf:"backend"` // file or sqlite
	Dir     string `koanf:"dir"`     // Directory of the file backend
	DSN     string `koanf:"dsn"`     // Data source name of the sqlite backend
}

type CORS struct {
	AllowOrigins []string `koanf:"alloworigins"`
}

type Pprof struct {
	Enabled bool `koanf:"enabled"`
}

// Default returns the configuration used when nothing is configured.
func Default() Config {
	return Config{
		API: API{
			URL:    "http://localhost:8080",
			Listen: ":8080",
		},
		Log: Log{
			Level: zerolog.LevelInfoValue,
		},
		Gin: Gin{
			Mode: gin.ReleaseMode,
		},
		Storage: Storage{
			Backend: string(storage.BackendFile),
			Dir:     "data",
			DSN:     "data/ledger.db",
		},
	}
}

// Load reads the configuration. Empty paths and missing files are skipped.
func Load(path, envFile string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("loading %s: %w", path, err)
			}
			log.Info().Str("path", path).Msg("Config file not found, using defaults and environment variables")
		} else {
			log.Debug().Str("path", path).Msg("Loaded configuration file")
		}
	}

	// Variables from the .env file do not override the environment
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnv,
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return c, nil
}

// transformEnv maps LEDGER_STORAGE_DSN to storage.dsn. Lists are separated
// by whitespace.
func transformEnv(k, v string) (string, any) {
	k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, EnvPrefix)), "_", ".")

	if k == "cors.alloworigins" {
		return k, strings.Fields(v)
	}
	return k, v
}

// Validate checks all values and reports every problem found.
func (c Config) Validate() error {
	var problems []string

	u, err := url.Parse(c.API.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		problems = append(problems, fmt.Sprintf("api.url %q must be an absolute http or https URL", c.API.URL))
	}

	if c.API.Listen == "" {
		problems = append(problems, "api.listen must not be empty")
	}

	if c.Log.Format != "" && c.Log.Format != LogFormatJSON && c.Log.Format != LogFormatHuman {
		problems = append(problems, fmt.Sprintf("log.format %q must be %q or %q", c.Log.Format, LogFormatJSON, LogFormatHuman))
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("log.level %q is not a log level", c.Log.Level))
	}

	if !slices.Contains([]string{gin.DebugMode, gin.ReleaseMode, gin.TestMode}, c.Gin.Mode) {
		problems = append(problems, fmt.Sprintf("gin.mode %q must be one of debug, release or test", c.Gin.Mode))
	}

	switch storage.Backend(c.Storage.Backend) {
	case storage.BackendFile:
		if c.Storage.Dir == "" {
			problems = append(problems, "storage.dir must be set for the file backend")
		}
	case storage.BackendSQLite:
		if c.Storage.DSN == "" {
			problems = append(problems, "storage.dsn must be set for the sqlite backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("storage.backend %q must be %q or %q", c.Storage.Backend, storage.BackendFile, storage.BackendSQLite))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}

	return nil
}

// URL returns the parsed API URL. Call Validate first.
func (c Config) URL() *url.URL {
	u, _ := url.Parse(c.API.URL)
	return u
}

// HumanLogs reports whether logs are written for humans instead of as JSON.
func (c Config) HumanLogs() bool {
	if c.Log.Format == "" {
		return c.Gin.Mode == gin.DebugMode
	}
	return c.Log.Format == LogFormatHuman
}
