package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	SMTP       SMTPConfig
	Mail       MailConfig
	Admin      AdminConfig
	SharePoint SharePointConfig
	Storage    StorageConfig
}

type ServerConfig struct {
	Port          string
	PublicBaseURL string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	UseTLS   bool
}

// Configured reports whether live SMTP delivery can be attempted at all.
// Unconfigured transports fall straight through to the outbox.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

type MailConfig struct {
	FromEmail  string
	PilotEmail string
}

type AdminConfig struct {
	Key string
}

type SharePointConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	DriveID      string
	BaseFolder   string
}

func (c SharePointConfig) Enabled() bool {
	return c.DriveID != ""
}

type StorageConfig struct {
	TicketsDir  string
	ManifestDir string
	OutboxDir   string
	DocsDir     string
	LogoPath    string
	FontDir     string
	CounterDSN  string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:          getEnv("PORT", ":8080"),
			PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
			ReadTimeout:   15 * time.Second,
			WriteTimeout:  60 * time.Second,
			IdleTimeout:   60 * time.Second,
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			UseTLS:   getEnvBool("SMTP_USE_TLS", true),
		},
		Mail: MailConfig{
			FromEmail:  getEnv("FROM_EMAIL", "noreply@bachelicopters.com"),
			PilotEmail: getEnv("PILOT_EMAIL", ""),
		},
		Admin: AdminConfig{
			Key: getEnv("ADMIN_KEY", "bac123"),
		},
		SharePoint: SharePointConfig{
			TenantID:     getEnv("MS_TENANT_ID", ""),
			ClientID:     getEnv("MS_CLIENT_ID", ""),
			ClientSecret: getEnv("MS_CLIENT_SECRET", ""),
			DriveID:      getEnv("SP_DRIVE_ID", ""),
			BaseFolder:   getEnv("SP_BASE_FOLDER", "BAC-Ticketing"),
		},
		Storage: StorageConfig{
			TicketsDir:  getEnv("TICKETS_DIR", "tickets"),
			ManifestDir: getEnv("MANIFEST_DIR", "manifest"),
			OutboxDir:   getEnv("OUTBOX_DIR", "outbox"),
			DocsDir:     getEnv("DOCS_DIR", "docs"),
			LogoPath:    getEnv("LOGO_PATH", "logo.png"),
			FontDir:     getEnv("FONT_DIR", "fonts"),
			CounterDSN:  getEnv("COUNTER_DSN", "file:counter.db"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
