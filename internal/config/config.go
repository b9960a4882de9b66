package config

import "time"

// Default configuration values.
const (
	defaultServiceName       = "formsight"
	defaultServiceVersion    = "1.0.0"
	defaultServicePort       = 8074
	defaultReadTimeoutSec    = 15
	defaultWriteTimeoutSec   = 30
	defaultIdleTimeoutSec    = 60
	defaultStoreBackend      = "memory"
	defaultRedisAddress      = "localhost:6379"
	defaultResultTTLHours    = 24
	defaultDatabasePath      = "formsight.db"
	defaultNavigateTimeout   = 30
	defaultCapturesPerSec    = 2.0
	defaultCaptureBurst      = 4
	defaultLogLevel          = "info"
	defaultLogFormat         = "json"
	defaultMaxBatchSnapshots = 50
)

// Config holds all configuration for the formsight service.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Database  DatabaseConfig  `yaml:"database"`
	Collector CollectorConfig `yaml:"collector"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name              string `yaml:"name"`
	Version           string `yaml:"version"`
	Debug             bool   `env:"APP_DEBUG"               yaml:"debug"`
	MaxBatchSnapshots int    `yaml:"max_batch_snapshots"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         int           `env:"FORMSIGHT_PORT" yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// StoreConfig holds classification result store configuration. Backend is
// either "memory" or "redis".
type StoreConfig struct {
	Backend   string        `env:"STORE_BACKEND"  yaml:"backend"`
	Address   string        `env:"REDIS_URL"      yaml:"address"`
	Password  string        `env:"REDIS_PASSWORD" yaml:"password"`
	DB        int           `yaml:"db"`
	ResultTTL time.Duration `yaml:"result_ttl"`
}

// DatabaseConfig holds the SQLite history database configuration.
type DatabaseConfig struct {
	Path string `env:"FORMSIGHT_DB_PATH" yaml:"path"`
}

// CollectorConfig holds the browser snapshot collector configuration.
type CollectorConfig struct {
	Enabled           bool          `env:"COLLECTOR_ENABLED"    yaml:"enabled"`
	RemoteURL         string        `env:"COLLECTOR_REMOTE_URL" yaml:"remote_url"`
	NavigateTimeout   time.Duration `yaml:"navigate_timeout"`
	CapturesPerSecond float64       `yaml:"captures_per_second"`
	CaptureBurst      int           `yaml:"capture_burst"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setServerDefaults(&cfg.Server)
	setStoreDefaults(&cfg.Store)
	setDatabaseDefaults(&cfg.Database)
	setCollectorDefaults(&cfg.Collector)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.MaxBatchSnapshots == 0 {
		s.MaxBatchSnapshots = defaultMaxBatchSnapshots
	}
}

func setServerDefaults(s *ServerConfig) {
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = defaultReadTimeoutSec * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = defaultWriteTimeoutSec * time.Second
	}
	if s.IdleTimeout == 0 {
		s.IdleTimeout = defaultIdleTimeoutSec * time.Second
	}
}

func setStoreDefaults(s *StoreConfig) {
	if s.Backend == "" {
		s.Backend = defaultStoreBackend
	}
	if s.Address == "" {
		s.Address = defaultRedisAddress
	}
	if s.ResultTTL == 0 {
		s.ResultTTL = defaultResultTTLHours * time.Hour
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Path == "" {
		d.Path = defaultDatabasePath
	}
}

func setCollectorDefaults(c *CollectorConfig) {
	if c.NavigateTimeout == 0 {
		c.NavigateTimeout = defaultNavigateTimeout * time.Second
	}
	if c.CapturesPerSecond == 0 {
		c.CapturesPerSecond = defaultCapturesPerSec
	}
	if c.CaptureBurst == 0 {
		c.CaptureBurst = defaultCaptureBurst
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}
