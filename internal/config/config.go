package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server   Server   `toml:"server"`
	Logs     Logs     `toml:"logs"`
	Metrics  Metrics  `toml:"metrics"`
	Database Database `toml:"database"`
	Redis    Redis    `toml:"redis"`
	Platform Platform `toml:"platform"`
	Media    Media    `toml:"media"`
	Booking  Booking  `toml:"booking"`
}

type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
}

// Platform настройки клиента Roomly API
type Platform struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Media настройки клиента хранилища изображений
type Media struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Booking настройки оркестратора бронирований
type Booking struct {
	OperatingStart  string `toml:"operating_start"` // "06:00"
	OperatingEnd    string `toml:"operating_end"`   // "23:00"
	DefaultTimeZone string `toml:"default_time_zone"`

	// SettleMaxWaitSeconds ограничивает суммарное ожидание видимости
	// созданного блока расписания; 0 — использовать значение по умолчанию
	SettleMaxWaitSeconds int `toml:"settle_max_wait_seconds"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Load читает конфигурацию из TOML файла.
// Секреты можно переопределить переменными окружения
// (DB_PASSWORD, REDIS_PASSWORD), в том числе из .env файла.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	// .env опционален, его отсутствие не ошибка
	_ = godotenv.Load()

	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive, got %d", c.Server.HTTPPort)
	}
	if c.Platform.URL == "" {
		return fmt.Errorf("platform.url is required")
	}
	if c.Media.URL == "" {
		return fmt.Errorf("media.url is required")
	}
	return nil
}
