package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrInvalidSessionDriver = errors.New("unsupported session driver")

const (
	SessionDriverMemory = "memory"
	SessionDriverSQLite = "sqlite"
	SessionDriverRedis  = "redis"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env     string  `mapstructure:"env"`     // local, production
	HTTP    HTTP    `mapstructure:"http"`    // listener and CORS
	Content Content `mapstructure:"content"` // content root and bank file
	Session Session `mapstructure:"session"` // reload flag storage
}

type HTTP struct {
	Addr            string        `mapstructure:"addr"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Content struct {
	Dir      string `mapstructure:"dir"`       // directory served under /<marker>/
	Marker   string `mapstructure:"marker"`    // path segment that starts a page key
	Suffix   string `mapstructure:"suffix"`    // page file suffix appended to keys
	BankFile string `mapstructure:"bank_file"` // question bank file name inside Dir
	Watch    bool   `mapstructure:"watch"`     // reload the bank when the file changes
}

type Session struct {
	Driver     string        `mapstructure:"driver"`
	SQLitePath string        `mapstructure:"sqlite_path"`
	RedisAddr  string        `mapstructure:"redis_addr"`
	TTL        time.Duration `mapstructure:"ttl"`
}

// Load reads configuration from ./config/config.yaml (optional), a .env file (optional)
// and environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("http.addr", "ADDR", "HTTP_ADDR")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	// Comma separated lists arrive from the environment as a single string.
	cfg.HTTP.CORSOrigins = splitCSV(cfg.HTTP.CORSOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Session.Driver {
	case SessionDriverMemory, SessionDriverSQLite:
	case SessionDriverRedis:
		if strings.TrimSpace(c.Session.RedisAddr) == "" {
			return fmt.Errorf("session.redis_addr is required for driver %q", c.Session.Driver)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSessionDriver, c.Session.Driver)
	}
	if strings.TrimSpace(c.Content.Dir) == "" {
		return errors.New("content.dir is required")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.cors_origins", []string{"http://localhost:8080"})
	v.SetDefault("http.shutdown_timeout", "5s")
	v.SetDefault("content.dir", "./content/pages")
	v.SetDefault("content.marker", "pages")
	v.SetDefault("content.suffix", ".html")
	v.SetDefault("content.bank_file", "mcq-data.json")
	v.SetDefault("content.watch", true)
	v.SetDefault("session.driver", SessionDriverMemory)
	v.SetDefault("session.sqlite_path", "sessions.db")
	v.SetDefault("session.ttl", "12h")
}

func splitCSV(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
