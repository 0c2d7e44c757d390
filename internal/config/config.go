package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// EnvConfigPath переменная окружения с путем к конфигу
const EnvConfigPath = "CONFIG_PATH"

// DefaultPath путь к конфигу по умолчанию
const DefaultPath = "config.toml"

// Бэкенды хранилища throttle-ключей
const (
	ThrottleBackendPostgres = "postgres"
	ThrottleBackendMemory   = "memory"
)

type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Booking       BookingConfig       `toml:"booking"`
	Sweepers      SweepersConfig      `toml:"sweepers"`
	Throttle      ThrottleConfig      `toml:"throttle"`
	RabbitMQ      RabbitMQConfig      `toml:"rabbitmq"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" validate:"min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" validate:"min=1"`     // секунды
	WriteTimeout    int `toml:"write_timeout" validate:"min=1"`    // секунды
	IdleTimeout     int `toml:"idle_timeout" validate:"min=1"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout" validate:"min=1"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host" validate:"required"`
	Port            int    `toml:"port" validate:"min=1,max=65535"`
	User            string `toml:"user" validate:"required"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" validate:"required"`
	SSLMode         string `toml:"sslmode" validate:"oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `toml:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" validate:"min=0"` // секунды
}

// DSN строка подключения для lib/pq. Пустой пароль не передается
func (c DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.DBName, c.SSLMode)
	if c.Password != "" {
		dsn += fmt.Sprintf(" password='%s'", strings.ReplaceAll(c.Password, "'", `\'`))
	}
	return dsn
}

type LogsConfig struct {
	File  string `toml:"file"` // пустой путь - только stdout
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name" validate:"required_if=Enabled true"`
	Path        string `toml:"path" validate:"required_if=Enabled true"`
}

// BookingConfig параметры допуска бронирований
type BookingConfig struct {
	LeadTimeMinutes    int      `toml:"lead_time_minutes" validate:"min=0"`
	MinDurationMinutes int      `toml:"min_duration_minutes" validate:"min=1"`
	BlockingStatuses   []string `toml:"blocking_statuses" validate:"min=1,dive,oneof=pending awaiting_payment paid approved"`
}

// BlockingBookingStatuses статусы, занимающие время площадки
func (c BookingConfig) BlockingBookingStatuses() []domain.BookingStatus {
	statuses := make([]domain.BookingStatus, 0, len(c.BlockingStatuses))
	for _, s := range c.BlockingStatuses {
		statuses = append(statuses, domain.BookingStatus(s))
	}
	return statuses
}

// SweepersConfig параметры фоновых задач автоотмены
type SweepersConfig struct {
	RunInServer        bool     `toml:"run_in_server"` // запускать цикл задач внутри HTTP-сервера
	PendingInterval    Duration `toml:"pending_interval"`
	PaymentInterval    Duration `toml:"payment_interval"`
	BatchSize          int      `toml:"batch_size" validate:"min=1,max=500"`
	WarningDedupTTL    Duration `toml:"warning_dedup_ttl"`
	LoopTick           Duration `toml:"loop_tick"`
	LeaseCleanupPeriod Duration `toml:"lease_cleanup_period"`
}

type ThrottleConfig struct {
	Backend string `toml:"backend" validate:"oneof=postgres memory"`
}

type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url" validate:"required_if=Enabled true"`
	Exchange string `toml:"exchange" validate:"required_if=Enabled true"`
}

type NotificationsConfig struct {
	Timeout int `toml:"timeout" validate:"min=1"` // секунды
}

// Duration time.Duration, читаемый из строки TOML ("30s", "2m")
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load читает конфиг из path. Если задан CONFIG_PATH, он имеет приоритет.
// Отсутствующие значения заполняются значениями по умолчанию, затем конфиг валидируется.
func Load(path string) (*Config, error) {
	if env := os.Getenv(EnvConfigPath); env != "" {
		path = env
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: file %s not found", path)
		}
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет конфиг по тегам validate и правилам, не выразимым тегами
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("config: invalid %s: failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("config: %w", err)
	}

	durations := map[string]time.Duration{
		"sweepers.pending_interval":     c.Sweepers.PendingInterval.Duration,
		"sweepers.payment_interval":     c.Sweepers.PaymentInterval.Duration,
		"sweepers.warning_dedup_ttl":    c.Sweepers.WarningDedupTTL.Duration,
		"sweepers.loop_tick":            c.Sweepers.LoopTick.Duration,
		"sweepers.lease_cleanup_period": c.Sweepers.LeaseCleanupPeriod.Duration,
	}
	for name, d := range durations {
		if d <= 0 {
			return fmt.Errorf("config: %s must be positive", name)
		}
	}

	return nil
}

// Default конфиг со значениями по умолчанию
func Default() *Config {
	blocking := make([]string, 0, len(domain.DefaultBlockingStatuses))
	for _, s := range domain.DefaultBlockingStatuses {
		blocking = append(blocking, string(s))
	}

	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "venue_booking_service",
			Path:        "/metrics",
		},
		Booking: BookingConfig{
			LeadTimeMinutes:    domain.DefaultLeadTimeMinutes,
			MinDurationMinutes: domain.DefaultMinDurationMinutes,
			BlockingStatuses:   blocking,
		},
		Sweepers: SweepersConfig{
			PendingInterval:    Duration{domain.DefaultPendingSweepInterval},
			PaymentInterval:    Duration{domain.DefaultPaymentSweepInterval},
			BatchSize:          domain.DefaultSweepBatchSize,
			WarningDedupTTL:    Duration{domain.DefaultWarningDedupTTL},
			LoopTick:           Duration{time.Minute},
			LeaseCleanupPeriod: Duration{time.Hour},
		},
		Throttle: ThrottleConfig{
			Backend: ThrottleBackendPostgres,
		},
		RabbitMQ: RabbitMQConfig{
			Exchange: "venue_bookings",
		},
		Notifications: NotificationsConfig{
			Timeout: 5,
		},
	}
}
