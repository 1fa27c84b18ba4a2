package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Parish data sources.
const (
	ParishSourceSheets   = "sheets"
	ParishSourceAirtable = "airtable"
)

// DefaultSpreadsheetID is the diocese directory workbook.
const DefaultSpreadsheetID = "13GUde5p78ZPFzGS2_OAJNahAgwCcjHwb52o7EtP3pm0"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Sheets   SheetsConfig
	Airtable AirtableConfig
	CORS     CORSConfig
	// MaxSessions bounds the in-memory engagement sessions.
	MaxSessions int
	// ParishSource selects where parish records are read from.
	ParishSource string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
	Env  string
}

// SheetsConfig holds spreadsheet value-range API configuration.
// APIKey and ServiceAccountKeyFile are secrets; either one enables the source.
type SheetsConfig struct {
	APIKey                string
	ServiceAccountKeyFile string
	SpreadsheetID         string
	Endpoint              string
	RequestsPerSecond     float64
}

// AirtableConfig holds tabular-record API configuration.
type AirtableConfig struct {
	Token    string
	BaseID   string
	TableID  string
	Endpoint string
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// HasCredentials reports whether a spreadsheet credential is configured.
func (s SheetsConfig) HasCredentials() bool {
	return s.APIKey != "" || s.ServiceAccountKeyFile != ""
}

// Load reads configuration from environment variables.
// Missing secrets are not an error here; each data source reports its own
// missing credential when it is first used.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:8081,http://localhost:19006")
	v.SetDefault("SHEETS_SPREADSHEET_ID", DefaultSpreadsheetID)
	v.SetDefault("SHEETS_ENDPOINT", "https://sheets.googleapis.com/")
	v.SetDefault("SHEETS_REQUESTS_PER_SECOND", 5.0)
	v.SetDefault("AIRTABLE_BASE_ID", "appg4acMLnyheaLxe")
	v.SetDefault("AIRTABLE_TABLE_ID", "tbly6k8dViZFaB09K")
	v.SetDefault("AIRTABLE_ENDPOINT", "https://api.airtable.com/v0")
	v.SetDefault("PARISH_SOURCE", ParishSourceSheets)
	v.SetDefault("ENGAGEMENT_MAX_SESSIONS", 10000)

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("ENV"),
		},
		Sheets: SheetsConfig{
			APIKey:                strings.TrimSpace(v.GetString("GOOGLE_API_KEY")),
			ServiceAccountKeyFile: strings.TrimSpace(v.GetString("GOOGLE_SERVICE_ACCOUNT_KEY_FILE")),
			SpreadsheetID:         v.GetString("SHEETS_SPREADSHEET_ID"),
			Endpoint:              v.GetString("SHEETS_ENDPOINT"),
			RequestsPerSecond:     v.GetFloat64("SHEETS_REQUESTS_PER_SECOND"),
		},
		Airtable: AirtableConfig{
			Token:    strings.TrimSpace(v.GetString("AIRTABLE_TOKEN")),
			BaseID:   v.GetString("AIRTABLE_BASE_ID"),
			TableID:  v.GetString("AIRTABLE_TABLE_ID"),
			Endpoint: v.GetString("AIRTABLE_ENDPOINT"),
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
		MaxSessions:  v.GetInt("ENGAGEMENT_MAX_SESSIONS"),
		ParishSource: strings.ToLower(strings.TrimSpace(v.GetString("PARISH_SOURCE"))),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that structural configuration is present and valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("SHEETS_SPREADSHEET_ID is required")
	}
	if c.Sheets.Endpoint == "" {
		return fmt.Errorf("SHEETS_ENDPOINT is required")
	}
	if c.Sheets.RequestsPerSecond <= 0 {
		return fmt.Errorf("SHEETS_REQUESTS_PER_SECOND must be positive")
	}

	switch c.ParishSource {
	case ParishSourceSheets:
	case ParishSourceAirtable:
		if c.Airtable.BaseID == "" || c.Airtable.TableID == "" {
			return fmt.Errorf("AIRTABLE_BASE_ID and AIRTABLE_TABLE_ID are required when PARISH_SOURCE=airtable")
		}
		if c.Airtable.Endpoint == "" {
			return fmt.Errorf("AIRTABLE_ENDPOINT is required when PARISH_SOURCE=airtable")
		}
	default:
		return fmt.Errorf("PARISH_SOURCE must be %q or %q, got %q",
			ParishSourceSheets, ParishSourceAirtable, c.ParishSource)
	}

	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	if c.MaxSessions <= 0 {
		return fmt.Errorf("ENGAGEMENT_MAX_SESSIONS must be positive")
	}

	return nil
}

// parseOrigins splits a comma-separated string of origins into a slice.
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
