package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Auth       AuthConfig       `toml:"auth"`
	CORS       CORSConfig       `toml:"cors"`
	Redis      RedisConfig      `toml:"redis"`
	RateLimit  RateLimitConfig  `toml:"ratelimit"`
	ChangeFeed ChangeFeedConfig `toml:"changefeed"`
	Slots      SlotsConfig      `toml:"slots"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
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

// DSN возвращает строку подключения для lib/pq
// Значения в кавычках: пустой пароль или пробел в значении не сдвигают остальные параметры
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quoteDSN(d.Host), d.Port, quoteDSN(d.User), quoteDSN(d.Password), quoteDSN(d.DBName), quoteDSN(d.SSLMode))
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteDSN(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig проверка токенов внешнего провайдера аутентификации
// Пустой JWTSecret отключает проверку (только для локальной разработки)
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	Issuer      string `toml:"issuer"`
	AdminRole   string `toml:"admin_role"`
	ServiceRole string `toml:"service_role"` // сервис бронирования, только reserve/release
}

// Enabled возвращает true, если проверка токенов включена
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// CORSConfig настройки CORS для браузерной админки
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// RedisConfig настройки Redis для защиты от повторной отправки форм
type RedisConfig struct {
	Enabled             bool   `toml:"enabled"`
	Addr                string `toml:"addr"`
	Password            string `toml:"password"`
	DB                  int    `toml:"db"`
	SubmissionTTL       int    `toml:"submission_ttl"` // секунды
	SubmissionKeyPrefix string `toml:"submission_key_prefix"`
}

// RateLimitConfig ограничение частоты запросов с одного IP
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// ChangeFeedConfig настройки LISTEN/NOTIFY (интервалы переподключения в секундах)
type ChangeFeedConfig struct {
	Channel              string `toml:"channel"`
	MinReconnectInterval int    `toml:"min_reconnect_interval"`
	MaxReconnectInterval int    `toml:"max_reconnect_interval"`
	PingInterval         int    `toml:"ping_interval"`
}

// SlotsConfig настройки инвентаря слотов
type SlotsConfig struct {
	// Capacity переопределяет ёмкость отдельных категорий, например "AC Services" = 3
	Capacity map[string]int `toml:"capacity"`
}

// Load читает конфигурацию из TOML файла
// Переменные окружения (и .env, если он есть) переопределяют секреты из файла
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse разбирает конфигурацию из строки (используется в тестах)
func Parse(data string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// CapacityTable возвращает итоговую таблицу ёмкости по категориям
func (c *Config) CapacityTable() (domain.CapacityTable, error) {
	return domain.NewCapacityTable(c.Slots.Capacity)
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		problems = append(problems, "redis.addr is required when redis is enabled")
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerSecond <= 0 {
		problems = append(problems, "ratelimit.requests_per_second must be positive")
	}
	if _, err := c.CapacityTable(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("AUTH_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "slot_inventory"
	}

	if c.Auth.AdminRole == "" {
		c.Auth.AdminRole = "admin"
	}
	if c.Auth.ServiceRole == "" {
		c.Auth.ServiceRole = "booking-service"
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}

	if c.Redis.SubmissionTTL == 0 {
		c.Redis.SubmissionTTL = 30
	}
	if c.Redis.SubmissionKeyPrefix == "" {
		c.Redis.SubmissionKeyPrefix = "slots:submission:"
	}

	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}

	if c.ChangeFeed.Channel == "" {
		c.ChangeFeed.Channel = "slots_changed"
	}
	if c.ChangeFeed.MinReconnectInterval == 0 {
		c.ChangeFeed.MinReconnectInterval = 1
	}
	if c.ChangeFeed.MaxReconnectInterval == 0 {
		c.ChangeFeed.MaxReconnectInterval = 30
	}
	if c.ChangeFeed.PingInterval == 0 {
		c.ChangeFeed.PingInterval = 60
	}
}
