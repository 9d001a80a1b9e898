package config

import (
	"time"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyAPIBaseURL   = "api_base_url"
	KeyPollInterval = "poll_interval_sec"
	KeyLanguage     = "app_language"
)

// Poll interval clamping bounds in seconds
const (
	MinPollIntervalSec = 15
	MaxPollIntervalSec = 3600
)

// DefaultLanguage follows the system locale until the user picks one
const DefaultLanguage = "system"

// Settings manages user-level overrides persisted via Fyne preferences.
// Unset values fall back to the process Config.
type Settings struct {
	app fyne.App
	cfg *Config
}

// NewSettings creates a new settings manager backed by cfg defaults
func NewSettings(app fyne.App, cfg *Config) *Settings {
	return &Settings{app: app, cfg: cfg}
}

// GetAPIBaseURL returns the backend base URL
func (s *Settings) GetAPIBaseURL() string {
	baseURL := s.app.Preferences().String(KeyAPIBaseURL)
	if baseURL == "" {
		return s.cfg.APIBaseURL
	}
	return baseURL
}

// SetAPIBaseURL persists the backend base URL
func (s *Settings) SetAPIBaseURL(baseURL string) {
	s.app.Preferences().SetString(KeyAPIBaseURL, baseURL)
}

// GetPollIntervalSec returns the poll interval in seconds
func (s *Settings) GetPollIntervalSec() int {
	value := s.app.Preferences().Int(KeyPollInterval)
	if value <= 0 {
		return s.cfg.PollIntervalSec
	}
	return value
}

// SetPollIntervalSec persists the poll interval in seconds, clamped so a
// typo cannot hammer the backend or freeze the dashboard
func (s *Settings) SetPollIntervalSec(seconds int) {
	if seconds < MinPollIntervalSec {
		seconds = MinPollIntervalSec
	}
	if seconds > MaxPollIntervalSec {
		seconds = MaxPollIntervalSec
	}
	s.app.Preferences().SetInt(KeyPollInterval, seconds)
}

// PollInterval returns the poll interval as a duration
func (s *Settings) PollInterval() time.Duration {
	return time.Duration(s.GetPollIntervalSec()) * time.Second
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
