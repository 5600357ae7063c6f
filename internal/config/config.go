package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MillService/internal/domain"
	"github.com/m04kA/SMC-MillService/pkg/types"
)

// DefaultPath путь к конфигурации, если не задан CONFIG_PATH
const DefaultPath = "config.toml"

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Business  BusinessConfig  `toml:"business"`
	Catalog   CatalogConfig   `toml:"catalog"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Holidays  []HolidayConfig `toml:"holidays"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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

type LogsConfig struct {
	File  string `toml:"file"` // пусто - вывод в stdout
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type BusinessConfig struct {
	Timezone           string  `toml:"timezone"` // IANA, по умолчанию Local
	BusinessOpen       string  `toml:"business_open"`
	BusinessClose      string  `toml:"business_close"`
	DefaultSlotMinutes int     `toml:"default_slot_minutes"`
	MaxImages          int     `toml:"max_images"`
	MaxImageBytes      int64   `toml:"max_image_bytes"`
	MinCubicFeet       float64 `toml:"min_cubic_feet"`
	MaxAdvanceDays     int     `toml:"max_advance_days"` // 0 - без ограничения
}

type CatalogConfig struct {
	URL     string `toml:"url"` // пусто - справочник отключён
	Timeout int    `toml:"timeout"` // секунды
}

type RateLimitConfig struct {
	EnquiriesPerMinute int `toml:"enquiries_per_minute"` // 0 - без ограничения
	Burst              int `toml:"burst"`
}

// HolidayConfig статическое правило; задаётся ровно одно из date, month_day, weekday
type HolidayConfig struct {
	Date        string `toml:"date"`
	MonthDay    string `toml:"month_day"`
	Weekday     string `toml:"weekday"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// Load читает TOML файл, подставляет значения по умолчанию,
// применяет переменные окружения (.env, если есть) и валидирует результат
func Load(path string) (*Config, error) {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		path = p
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "millservice",
		},
		Business: BusinessConfig{
			BusinessOpen:       string(domain.DefaultBusinessOpen),
			BusinessClose:      string(domain.DefaultBusinessClose),
			DefaultSlotMinutes: domain.DefaultSlotMinutes,
			MaxImages:          domain.DefaultMaxImages,
			MaxImageBytes:      domain.DefaultMaxImageBytes,
			MinCubicFeet:       domain.MinTotalCubicFeet.InexactFloat64(),
		},
		Catalog:   CatalogConfig{Timeout: 3},
		RateLimit: RateLimitConfig{EnquiriesPerMinute: 10, Burst: 3},
	}
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v, ok := os.LookupEnv(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("env %s must be a number, got %q", key, v)
		}
		*dst = n
		return nil
	}

	setString("DB_HOST", &c.Database.Host)
	setString("DB_USER", &c.Database.User)
	setString("DB_PASSWORD", &c.Database.Password)
	setString("DB_NAME", &c.Database.DBName)
	setString("LOG_LEVEL", &c.Logs.Level)
	setString("CATALOG_URL", &c.Catalog.URL)

	if err := setInt("DB_PORT", &c.Database.Port); err != nil {
		return err
	}
	return setInt("HTTP_PORT", &c.Server.HTTPPort)
}

// Validate проверяет конфигурацию; ошибка называет ключ
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return errors.New("database.host is required")
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}

	switch strings.ToLower(c.Logs.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logs.level must be one of debug|info|warn|error, got %q", c.Logs.Level)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /, got %q", c.Metrics.Path)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	if err := c.Business.ToBusinessHours().Validate(); err != nil {
		return fmt.Errorf("business: %w", err)
	}
	if c.Business.MaxImages < 0 {
		return fmt.Errorf("business.max_images must not be negative")
	}
	if c.Business.MaxImageBytes <= 0 {
		return fmt.Errorf("business.max_image_bytes must be positive")
	}
	if c.Business.MinCubicFeet <= 0 {
		return fmt.Errorf("business.min_cubic_feet must be positive")
	}
	if c.Business.MaxAdvanceDays < 0 {
		return fmt.Errorf("business.max_advance_days must not be negative")
	}

	if c.RateLimit.EnquiriesPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit values must not be negative")
	}

	if _, err := c.StaticHolidays(); err != nil {
		return err
	}
	return nil
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location часовой пояс, в котором считаются календарные дни
func (c *Config) Location() (*time.Location, error) {
	if c.Business.Timezone == "" || c.Business.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Business.Timezone)
	if err != nil {
		return nil, fmt.Errorf("business.timezone %q: %w", c.Business.Timezone, err)
	}
	return loc, nil
}

// ToBusinessHours часы работы для расчёта слотов
func (b BusinessConfig) ToBusinessHours() domain.BusinessHours {
	return domain.BusinessHours{
		Open:        types.TimeString(b.BusinessOpen),
		Close:       types.TimeString(b.BusinessClose),
		SlotMinutes: b.DefaultSlotMinutes,
	}
}

// ToPolicy ограничения для новых заявок
func (b BusinessConfig) ToPolicy() domain.SubmissionPolicy {
	return domain.SubmissionPolicy{
		MaxImages:         b.MaxImages,
		MaxImageBytes:     b.MaxImageBytes,
		MinTotalCubicFeet: decimal.NewFromFloat(b.MinCubicFeet).Round(2),
		MaxAdvanceDays:    b.MaxAdvanceDays,
	}
}

// MaxBodyBytes верхняя граница тела запроса на создание заявки
func (b BusinessConfig) MaxBodyBytes() int64 {
	return int64(b.MaxImages)*b.MaxImageBytes + 1<<20
}

// StaticHolidays правила выходных дней из конфигурации
func (c *Config) StaticHolidays() ([]domain.Holiday, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	out := make([]domain.Holiday, 0, len(c.Holidays))
	for i, hc := range c.Holidays {
		h := domain.Holiday{
			MonthDay:    strings.TrimSpace(hc.MonthDay),
			Name:        strings.TrimSpace(hc.Name),
			Description: strings.TrimSpace(hc.Description),
		}
		if hc.Date != "" {
			d, err := domain.ParseDate(hc.Date, loc)
			if err != nil {
				return nil, fmt.Errorf("holidays[%d].date: %w", i, err)
			}
			h.Date = &d
		}
		if hc.Weekday != "" {
			wd, err := domain.ParseWeekday(hc.Weekday)
			if err != nil {
				return nil, fmt.Errorf("holidays[%d].weekday: %w", i, err)
			}
			h.Weekday = &wd
		}
		if err := h.Validate(); err != nil {
			return nil, fmt.Errorf("holidays[%d]: %w", i, err)
		}
		out = append(out, h)
	}
	return out, nil
}
