package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envFrom(map[string]string{
		"EMAIL_USER": "showroom@example.com",
		"EMAIL_PASS": "app-password",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.GetHTTPAddr())
	assert.True(t, cfg.GetCORSAllowAll())
	assert.Equal(t, EmailProviderSMTP, cfg.GetEmailProvider())
	assert.Equal(t, "smtp.gmail.com", cfg.GetSMTPHost())
	assert.Equal(t, 587, cfg.GetSMTPPort())
	assert.Equal(t, "showroom@example.com", cfg.GetShowroomEmail())
	assert.Equal(t, "Test Drive Booking", cfg.GetShowroomFromName())
	assert.Equal(t, "ElectricDrive Showroom", cfg.GetConfirmationFromName())
	assert.Equal(t, "US", cfg.GetPhoneDefaultRegion())
	assert.Zero(t, cfg.GetSendEmailRateLimit())
}

func TestFromEnv_PortAndAddr(t *testing.T) {
	cfg, err := FromEnv(envFrom(map[string]string{
		"EMAIL_PROVIDER": "log",
		"PORT":           "8081",
	}))
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.GetHTTPAddr())

	cfg, err = FromEnv(envFrom(map[string]string{
		"EMAIL_PROVIDER": "log",
		"PORT":           "8081",
		"HTTP_ADDR":      "127.0.0.1:9000",
	}))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.GetHTTPAddr())
}

func TestFromEnv_CORSOrigins(t *testing.T) {
	cfg, err := FromEnv(envFrom(map[string]string{
		"EMAIL_PROVIDER": "log",
		"CORS_ORIGINS":   "https://electricdrive.example, https://www.electricdrive.example",
	}))
	require.NoError(t, err)
	assert.False(t, cfg.GetCORSAllowAll())
	assert.Equal(t, []string{"https://electricdrive.example", "https://www.electricdrive.example"}, cfg.GetCORSOrigins())
}

func TestFromEnv_ProviderRequirements(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "smtp without credentials", env: map[string]string{}},
		{name: "smtp without password", env: map[string]string{"EMAIL_USER": "a@example.com"}},
		{name: "brevo without key", env: map[string]string{"EMAIL_PROVIDER": "brevo", "EMAIL_USER": "a@example.com"}},
		{name: "unknown provider", env: map[string]string{"EMAIL_PROVIDER": "carrier-pigeon"}},
		{name: "bad smtp port", env: map[string]string{"EMAIL_USER": "a@example.com", "EMAIL_PASS": "x", "SMTP_PORT": "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(envFrom(tt.env))
			require.Error(t, err)
		})
	}
}

func TestFromEnv_ShowroomOverride(t *testing.T) {
	cfg, err := FromEnv(envFrom(map[string]string{
		"EMAIL_PROVIDER": "brevo",
		"BREVO_API_KEY":  "xkeysib-123",
		"EMAIL_USER":     "noreply@example.com",
		"SHOWROOM_EMAIL": "sales@example.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, "sales@example.com", cfg.GetShowroomEmail())
	assert.Equal(t, "noreply@example.com", cfg.GetEmailUser())
}

func TestFromEnv_BlankValuesUseDefaults(t *testing.T) {
	cfg, err := FromEnv(envFrom(map[string]string{
		"EMAIL_USER":            "showroom@example.com",
		"EMAIL_PASS":            "app-password",
		"PORT":                  "",
		"HTTP_ADDR":             "  ",
		"EMAIL_PROVIDER":        "",
		"SMTP_HOST":             "",
		"SMTP_PORT":             " ",
		"CORS_ORIGINS":          "",
		"SHOWROOM_EMAIL":        "",
		"SEND_EMAIL_RATE_LIMIT": "",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.GetHTTPAddr())
	assert.Equal(t, EmailProviderSMTP, cfg.GetEmailProvider())
	assert.Equal(t, "smtp.gmail.com", cfg.GetSMTPHost())
	assert.Equal(t, 587, cfg.GetSMTPPort())
	assert.True(t, cfg.GetCORSAllowAll())
	assert.Equal(t, "showroom@example.com", cfg.GetShowroomEmail())
	assert.Zero(t, cfg.GetSendEmailRateLimit())
}
