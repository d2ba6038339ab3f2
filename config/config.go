package config

import (
	"os"
	"path/filepath"
)

// Config is everything the app reads from the environment, resolved once at
// startup and passed down explicitly.
type Config struct {
	Port    string
	DataDir string

	GeminiAPIKey string

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string
	TwilioPhoneNumber    string
}

// Load reads the environment. Missing values fall back to defaults that
// work for a single artist running the app on their own device.
func Load() Config {
	cfg := Config{
		Port:                 os.Getenv("PORT"),
		DataDir:              os.Getenv("DATA_DIR"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		TwilioPhoneNumber:    os.Getenv("TWILIO_PHONE_NUMBER"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	return cfg
}

// DatabasePath is where the on-device store lives.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "soulpatterns.db")
}

// RemindersEnabled reports whether Twilio is configured well enough to send
// appointment reminders.
func (c Config) RemindersEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != ""
}
