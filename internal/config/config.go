package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	FAQ      FAQConfig      `mapstructure:"faq"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Export   ExportConfig   `mapstructure:"export"`
	Admins   []AdminAccount `mapstructure:"admins"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	MiddlewareTimeout time.Duration `mapstructure:"middleware_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// DSN builds the sqlite connection string with WAL and a busy timeout so
// concurrent requests queue instead of failing with SQLITE_BUSY.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", c.Path)
}

type FAQConfig struct {
	Path string `mapstructure:"path"`
}

type SMTPConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	AdminEmail string `mapstructure:"admin_email"`
}

// Configured reports whether enough is set to attempt sending mail
func (c SMTPConfig) Configured() bool {
	return c.Username != "" && c.Password != "" && c.AdminEmail != ""
}

type AuthConfig struct {
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// AdminAccount is one roster entry as configured. The plaintext password is
// consumed by the credential provider at startup and hashed immediately.
type AdminAccount struct {
	Username    string   `mapstructure:"username"`
	Password    string   `mapstructure:"password"`
	Role        string   `mapstructure:"role"`
	Name        string   `mapstructure:"name"`
	Permissions []string `mapstructure:"permissions"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.middleware_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Database
	v.SetDefault("database.path", "./data/chat_history.db")

	// FAQ
	v.SetDefault("faq.path", "./faqs.json")

	// SMTP
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)

	// Auth
	v.SetDefault("auth.session_ttl", "1h")

	// Export
	v.SetDefault("export.dir", "./exports")

	// Admin roster. Override with a config file to change accounts.
	v.SetDefault("admins", []map[string]any{
		{
			"username":    "nelson",
			"password":    "sirnelson",
			"role":        "super_admin",
			"name":        "Nelson",
			"permissions": []string{"read", "write", "delete", "manage_users"},
		},
		{
			"username":    "vani",
			"password":    "vani@123",
			"role":        "admin",
			"name":        "Vani Ma'am",
			"permissions": []string{"read", "write"},
		},
		{
			"username":    "imran",
			"password":    "imran@123",
			"role":        "manager",
			"name":        "Imran",
			"permissions": []string{"read", "write"},
		},
	})

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")

	// Metrics
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "SERVER_PORT")

	// Database
	v.BindEnv("database.path", "DB_PATH")

	// FAQ
	v.BindEnv("faq.path", "FAQ_PATH")

	// SMTP
	v.BindEnv("smtp.host", "SMTP_SERVER")
	v.BindEnv("smtp.port", "SMTP_PORT")
	v.BindEnv("smtp.username", "SMTP_USERNAME")
	v.BindEnv("smtp.password", "SMTP_PASSWORD")
	v.BindEnv("smtp.admin_email", "ADMIN_EMAIL")
}
