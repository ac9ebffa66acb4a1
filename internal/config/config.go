package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig некорректная конфигурация
var ErrInvalidConfig = errors.New("config: invalid configuration")

// ConfigPathEnv переменная окружения, переопределяющая путь к конфигу
const ConfigPathEnv = "CONFIG_PATH"

// Допустимые драйверы кэша расписаний
const (
	CacheDriverMemory   = "memory"
	CacheDriverPostgres = "postgres"
	CacheDriverRedis    = "redis"
)

type Config struct {
	Server          ServerConfig          `toml:"server"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	ScheduleService ScheduleServiceConfig `toml:"schedule_service"`
	Resilience      ResilienceConfig      `toml:"resilience"`
	Cache           CacheConfig           `toml:"cache"`
	Database        DatabaseConfig        `toml:"database"`
	Redis           RedisConfig           `toml:"redis"`
	Booking         BookingConfig         `toml:"booking"`
	Warmer          WarmerConfig          `toml:"warmer"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды
	IdleTimeout     int `toml:"idle_timeout"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleServiceConfig бэкенд расписаний мастеров
type ScheduleServiceConfig struct {
	URL               string  `toml:"url"`
	Timeout           int     `toml:"timeout"` // секунды, на один HTTP запрос
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// ResilienceConfig повторы и таймауты загрузки расписаний
type ResilienceConfig struct {
	MaxAttempts       int `toml:"max_attempts"`
	BaseDelayMs       int `toml:"base_delay_ms"`
	MaxDelayMs        int `toml:"max_delay_ms"`
	AttemptTimeout    int `toml:"attempt_timeout"` // секунды
	LoopConcurrency   int `toml:"loop_concurrency"`
	RosterTTL         int `toml:"roster_ttl"` // секунды
	RosterMaxAttempts int `toml:"roster_max_attempts"`
}

type CacheConfig struct {
	Driver string `toml:"driver"` // memory | postgres | redis
	TTL    int    `toml:"ttl"`    // секунды; 0 - без ограничения (для redis)
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// BookingConfig правила бронирования
type BookingConfig struct {
	Timezone    string `toml:"timezone"`
	MinLeadDays *int   `toml:"min_lead_days"`
}

// WarmerConfig фоновое обновление кэша расписаний
type WarmerConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // cron выражение
	// MaxCacheAge записи postgres-кэша старше этого удаляются; 0 - не удалять
	MaxCacheAge int `toml:"max_cache_age"` // часы
}

// Load читает конфигурацию из TOML файла. CONFIG_PATH переопределяет путь.
func Load(path string) (*Config, error) {
	if env := os.Getenv(ConfigPathEnv); env != "" {
		path = env
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	minLead := 1
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    60,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "availability-service",
		},
		ScheduleService: ScheduleServiceConfig{
			Timeout:           15,
			RequestsPerSecond: 10,
			Burst:             5,
		},
		Resilience: ResilienceConfig{
			MaxAttempts:       3,
			BaseDelayMs:       500,
			MaxDelayMs:        3000,
			AttemptTimeout:    15,
			LoopConcurrency:   4,
			RosterTTL:         60,
			RosterMaxAttempts: 3,
		},
		Cache: CacheConfig{
			Driver: CacheDriverMemory,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Booking: BookingConfig{
			Timezone:    "Asia/Ho_Chi_Minh",
			MinLeadDays: &minLead,
		},
		Warmer: WarmerConfig{
			Schedule: "*/15 * * * *",
		},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.ScheduleService.URL == "" {
		return fmt.Errorf("%w: schedule_service.url is required", ErrInvalidConfig)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Resilience.MaxAttempts <= 0 {
		return fmt.Errorf("%w: resilience.max_attempts must be positive", ErrInvalidConfig)
	}
	if c.Resilience.BaseDelayMs < 0 || c.Resilience.MaxDelayMs < c.Resilience.BaseDelayMs {
		return fmt.Errorf("%w: resilience delays must satisfy 0 <= base_delay_ms <= max_delay_ms", ErrInvalidConfig)
	}
	if c.Resilience.AttemptTimeout <= 0 {
		return fmt.Errorf("%w: resilience.attempt_timeout must be positive", ErrInvalidConfig)
	}

	switch c.Cache.Driver {
	case CacheDriverMemory, CacheDriverPostgres, CacheDriverRedis:
	default:
		return fmt.Errorf("%w: unknown cache.driver %q", ErrInvalidConfig, c.Cache.Driver)
	}

	if c.Booking.MinLeadDays != nil && *c.Booking.MinLeadDays < 0 {
		return fmt.Errorf("%w: booking.min_lead_days must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}

	if c.Warmer.Enabled && c.Warmer.Schedule == "" {
		return fmt.Errorf("%w: warmer.schedule is required when warmer is enabled", ErrInvalidConfig)
	}

	return nil
}

// Location часовой пояс, определяющий "сегодня"
func (b BookingConfig) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(b.Timezone)
}

// LeadDays минимальное число дней до записи
func (b BookingConfig) LeadDays() int {
	if b.MinLeadDays == nil {
		return 1
	}
	return *b.MinLeadDays
}

func (r ResilienceConfig) BaseDelay() time.Duration {
	return time.Duration(r.BaseDelayMs) * time.Millisecond
}

func (r ResilienceConfig) MaxDelay() time.Duration {
	return time.Duration(r.MaxDelayMs) * time.Millisecond
}
