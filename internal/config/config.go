package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

var validEnvs = map[string]bool{
	"local": true,
	"alpha": true,
	"beta":  true,
	"prod":  true,
}

const (
	BackendFile     = "file"
	BackendBolt     = "bolt"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

var validBackends = map[string]bool{
	BackendFile:     true,
	BackendBolt:     true,
	BackendPostgres: true,
	BackendS3:       true,
}

type Config struct {
	ServerPort string        `toml:"server_port"`
	AppEnv     string        `toml:"app_env"`
	LogLevel   string        `toml:"log_level"`
	Storage    StorageConfig `toml:"storage"`
	DB         DBConfig      `toml:"db"`
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q: %w", c.ServerPort, err)
	}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of local, alpha, beta, prod", c.AppEnv)
	}
	return c.Storage.validate(c.DB)
}

// StorageConfig selects where the todo document lives.
type StorageConfig struct {
	Backend      string   `toml:"backend"`
	Path         string   `toml:"path"`
	BoltPath     string   `toml:"bolt_path"`
	DocumentName string   `toml:"document_name"`
	S3           S3Config `toml:"s3"`
}

type S3Config struct {
	Region   string `toml:"region"`
	Bucket   string `toml:"bucket"`
	Key      string `toml:"key"`
	Endpoint string `toml:"endpoint"`
}

func (s StorageConfig) validate(db DBConfig) error {
	if !validBackends[s.Backend] {
		return fmt.Errorf("invalid STORAGE_BACKEND %q: must be one of file, bolt, postgres, s3", s.Backend)
	}

	switch s.Backend {
	case BackendFile:
		if s.Path == "" {
			return fmt.Errorf("STORAGE_PATH is required for the file backend")
		}
	case BackendBolt:
		if s.BoltPath == "" {
			return fmt.Errorf("BOLT_PATH is required for the bolt backend")
		}
	case BackendPostgres:
		if db.Host == "" || db.Name == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for the postgres backend")
		}
	case BackendS3:
		if s.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 backend")
		}
		if s.S3.Key == "" {
			return fmt.Errorf("S3_KEY is required for the s3 backend")
		}
	}
	return nil
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
	SSLMode  string `toml:"sslmode"`
}

func (d DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(d.SSLMode)),
	}
	return u.String()
}

func defaults() Config {
	return Config{
		ServerPort: "8080",
		AppEnv:     "local",
		LogLevel:   "info",
		Storage: StorageConfig{
			Backend:      BackendFile,
			Path:         "data/todos.json",
			BoltPath:     "data/todos.bolt",
			DocumentName: "todos",
			S3: S3Config{
				Region: "ap-northeast-1",
				Key:    "todos.json",
			},
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "todo",
			Password: "todo",
			Name:     "todo",
			SSLMode:  "disable",
		},
	}
}

// Load builds the config from defaults, then the TOML file named by
// CONFIG_FILE (if any), then environment variables, each overriding the last.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.ServerPort = envOrDefault("SERVER_PORT", cfg.ServerPort)
	cfg.AppEnv = envOrDefault("APP_ENV", cfg.AppEnv)
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)

	cfg.Storage.Backend = strings.ToLower(envOrDefault("STORAGE_BACKEND", cfg.Storage.Backend))
	cfg.Storage.Path = envOrDefault("STORAGE_PATH", cfg.Storage.Path)
	cfg.Storage.BoltPath = envOrDefault("BOLT_PATH", cfg.Storage.BoltPath)
	cfg.Storage.DocumentName = envOrDefault("DOCUMENT_NAME", cfg.Storage.DocumentName)
	cfg.Storage.S3.Region = envOrDefault("S3_REGION", cfg.Storage.S3.Region)
	cfg.Storage.S3.Bucket = envOrDefault("S3_BUCKET", cfg.Storage.S3.Bucket)
	cfg.Storage.S3.Key = envOrDefault("S3_KEY", cfg.Storage.S3.Key)
	cfg.Storage.S3.Endpoint = envOrDefault("S3_ENDPOINT", cfg.Storage.S3.Endpoint)

	cfg.DB.Host = envOrDefault("DB_HOST", cfg.DB.Host)
	cfg.DB.Port = envOrDefault("DB_PORT", cfg.DB.Port)
	cfg.DB.User = envOrDefault("DB_USER", cfg.DB.User)
	cfg.DB.Password = envOrDefault("DB_PASSWORD", cfg.DB.Password)
	cfg.DB.Name = envOrDefault("DB_NAME", cfg.DB.Name)
	cfg.DB.SSLMode = envOrDefault("DB_SSLMODE", cfg.DB.SSLMode)

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
