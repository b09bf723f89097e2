package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

var (
	// ErrInvalidConfig is returned when the configuration fails validation
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config is the full service configuration loaded from config.toml.
// Secrets (Vonage credentials, admin token) may be overridden through
// environment variables so they stay out of the file.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	SMS      SMSConfig      `toml:"sms"`
	Booking  BookingConfig  `toml:"booking"`
	Catalog  CatalogConfig  `toml:"catalog"`
}

type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
	AdminToken      string `toml:"admin_token"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN builds the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type SMSConfig struct {
	APIKey    string `toml:"api_key"`
	APISecret string `toml:"api_secret"`
	Sender    string `toml:"sender"`         // alphanumeric sender id
	Phone     string `toml:"business_phone"` // shown in messages for changes/cancellations
	Timeout   int    `toml:"timeout"`        // seconds per outbound call
}

// BookingConfig is the booking policy: business timezone, phone country
// and the reminder window.
type BookingConfig struct {
	Timezone            string `toml:"timezone"`
	PhoneCountryCode    string `toml:"phone_country_code"`
	PhoneNationalLength int    `toml:"phone_national_length"`
	// Reminders fire when a booking is lead_time_minutes away,
	// +/- tolerance_minutes. The scan interval must be shorter than the
	// tolerance or bookings could slip through between scans.
	ReminderLeadMinutes      int `toml:"reminder_lead_minutes"`
	ReminderToleranceMinutes int `toml:"reminder_tolerance_minutes"`
	ReminderScanMinutes      int `toml:"reminder_scan_minutes"`
}

// Location resolves the configured business timezone.
func (b *BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

type CatalogConfig struct {
	File string `toml:"file"`
}

// Load reads, overrides and validates the configuration.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidConfig, path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
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
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "mh-booking-service",
		},
		SMS: SMSConfig{
			Sender:  "MondiHair",
			Timeout: 10,
		},
		Booking: BookingConfig{
			Timezone:                 "Europe/Athens",
			PhoneCountryCode:         "30",
			PhoneNationalLength:      10,
			ReminderLeadMinutes:      120,
			ReminderToleranceMinutes: 15,
			ReminderScanMinutes:      5,
		},
		Catalog: CatalogConfig{File: "catalog.toml"},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VONAGE_API_KEY"); v != "" {
		cfg.SMS.APIKey = v
	}
	if v := os.Getenv("VONAGE_API_SECRET"); v != "" {
		cfg.SMS.APISecret = v
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
}

func (c *Config) validate() error {
	if c.Server.AdminToken == "" {
		return fmt.Errorf("%w: admin token is required (admin_token or ADMIN_TOKEN)", ErrInvalidConfig)
	}
	if c.Booking.PhoneCountryCode == "" || c.Booking.PhoneNationalLength <= 0 {
		return fmt.Errorf("%w: phone country settings are required", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidConfig, c.Booking.Timezone)
	}
	if c.Booking.ReminderLeadMinutes <= 0 {
		return fmt.Errorf("%w: reminder_lead_minutes must be positive", ErrInvalidConfig)
	}
	if c.Booking.ReminderToleranceMinutes <= 0 {
		return fmt.Errorf("%w: reminder_tolerance_minutes must be positive", ErrInvalidConfig)
	}
	// A scan period not shorter than the tolerance can skip the whole
	// window for bookings landing between two scans.
	if c.Booking.ReminderScanMinutes <= 0 || c.Booking.ReminderScanMinutes >= c.Booking.ReminderToleranceMinutes {
		return fmt.Errorf("%w: reminder_scan_minutes must be positive and below reminder_tolerance_minutes", ErrInvalidConfig)
	}
	return nil
}
