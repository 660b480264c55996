// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Email providers understood by the email package.
const (
	EmailProviderSMTP  = "smtp"
	EmailProviderBrevo = "brevo"
	EmailProviderLog   = "log"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// EmailConfig provides settings for the outbound mail transport.
type EmailConfig interface {
	GetEmailProvider() string
	GetEmailUser() string
	GetEmailPassword() string
	GetSMTPHost() string
	GetSMTPPort() int
	GetBrevoAPIKey() string
	GetShowroomFromName() string
	GetConfirmationFromName() string
}

// BookingConfig provides settings for the test drive booking module.
type BookingConfig interface {
	GetShowroomEmail() string
	GetPhoneDefaultRegion() string
	GetSendEmailRateLimit() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	CORSAllowAll         bool
	CORSOrigins          []string
	EmailProvider        string
	EmailUser            string
	EmailPassword        string
	SMTPHost             string
	SMTPPort             int
	BrevoAPIKey          string
	ShowroomEmail        string
	ShowroomFromName     string
	ConfirmationFromName string
	PhoneDefaultRegion   string
	SendEmailRateLimit   int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// EmailConfig implementation
func (c *Config) GetEmailProvider() string        { return c.EmailProvider }
func (c *Config) GetEmailUser() string            { return c.EmailUser }
func (c *Config) GetEmailPassword() string        { return c.EmailPassword }
func (c *Config) GetSMTPHost() string             { return c.SMTPHost }
func (c *Config) GetSMTPPort() int                { return c.SMTPPort }
func (c *Config) GetBrevoAPIKey() string          { return c.BrevoAPIKey }
func (c *Config) GetShowroomFromName() string     { return c.ShowroomFromName }
func (c *Config) GetConfirmationFromName() string { return c.ConfirmationFromName }

// BookingConfig implementation
func (c *Config) GetShowroomEmail() string      { return c.ShowroomEmail }
func (c *Config) GetPhoneDefaultRegion() string { return c.PhoneDefaultRegion }
func (c *Config) GetSendEmailRateLimit() int    { return c.SendEmailRateLimit }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from the given lookup function.
// A variable that is set but blank counts as unset.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	getEnv := func(key, fallback string) string {
		if val, ok := lookup(key); ok && strings.TrimSpace(val) != "" {
			return val
		}
		return fallback
	}

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "*"))
	emailUser := strings.TrimSpace(getEnv("EMAIL_USER", ""))

	httpAddr := strings.TrimSpace(getEnv("HTTP_ADDR", ""))
	if httpAddr == "" {
		httpAddr = ":" + strings.TrimSpace(getEnv("PORT", "5000"))
	}

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             httpAddr,
		CORSAllowAll:         len(corsOrigins) == 0 || containsWildcard(corsOrigins),
		CORSOrigins:          corsOrigins,
		EmailProvider:        strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", EmailProviderSMTP))),
		EmailUser:            emailUser,
		EmailPassword:        getEnv("EMAIL_PASS", ""),
		SMTPHost:             getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:             mustInt(getEnv("SMTP_PORT", "587")),
		BrevoAPIKey:          getEnv("BREVO_API_KEY", ""),
		ShowroomEmail:        getEnv("SHOWROOM_EMAIL", emailUser),
		ShowroomFromName:     getEnv("SHOWROOM_FROM_NAME", "Test Drive Booking"),
		ConfirmationFromName: getEnv("CONFIRMATION_FROM_NAME", "ElectricDrive Showroom"),
		PhoneDefaultRegion:   strings.ToUpper(getEnv("PHONE_DEFAULT_REGION", "US")),
		SendEmailRateLimit:   mustInt(getEnv("SEND_EMAIL_RATE_LIMIT", "0")),
	}

	switch cfg.EmailProvider {
	case EmailProviderSMTP:
		if cfg.EmailUser == "" || cfg.EmailPassword == "" {
			return nil, fmt.Errorf("EMAIL_USER and EMAIL_PASS are required for the smtp provider")
		}
		if cfg.SMTPPort <= 0 {
			return nil, fmt.Errorf("SMTP_PORT must be a positive number")
		}
	case EmailProviderBrevo:
		if cfg.BrevoAPIKey == "" || cfg.EmailUser == "" {
			return nil, fmt.Errorf("BREVO_API_KEY and EMAIL_USER are required for the brevo provider")
		}
	case EmailProviderLog:
	default:
		return nil, fmt.Errorf("unknown EMAIL_PROVIDER %q", cfg.EmailProvider)
	}

	return cfg, nil
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
