package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the binaries read from the environment.
type Config struct {
	Telegram   TelegramConfig
	Gemini     GeminiConfig
	Classifier ClassifierConfig
	Sheets     SheetsConfig
	Notion     NotionConfig
	Archive    ArchiveConfig
	Prefs      PrefsConfig
	Logger     LoggerConfig
	Timezone   string
}

type TelegramConfig struct {
	Token        string
	AllowedUsers []int64
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type ClassifierConfig struct {
	// RulesFile optionally overrides the built-in category keyword rules.
	RulesFile string
}

type SheetsConfig struct {
	// CredentialsFile points at a service-account JSON key on disk.
	// CredentialsJSON carries the key inline and wins when both are set.
	CredentialsFile string
	CredentialsJSON string
	SpreadsheetID   string
	SheetName       string
}

type NotionConfig struct {
	Token      string
	DatabaseID string
}

type ArchiveConfig struct {
	Bucket string
}

type PrefsConfig struct {
	DataDir string
}

type LoggerConfig struct {
	Level string
}

var spreadsheetIDPattern = regexp.MustCompile(`/d/([a-zA-Z0-9-_]+)`)

// Load reads configuration from the environment, after loading an optional
// .env file from the working directory.
func Load() (*Config, error) {
	// .env is optional; deployments set real environment variables.
	_ = godotenv.Load()

	allowed, err := ParseAllowedUsers(os.Getenv("AUTHORIZED_USER_ID"))
	if err != nil {
		return nil, fmt.Errorf("parsing AUTHORIZED_USER_ID: %w", err)
	}

	cfg := &Config{
		Telegram: TelegramConfig{
			Token:        os.Getenv("TELEGRAM_TOKEN"),
			AllowedUsers: allowed,
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.0-flash-lite"),
		},
		Classifier: ClassifierConfig{
			RulesFile: os.Getenv("CATEGORY_RULES"),
		},
		Sheets: SheetsConfig{
			CredentialsFile: getEnv("GOOGLE_SHEETS_CREDENTIALS", "credentials.json"),
			CredentialsJSON: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_JSON"),
			SpreadsheetID:   ExtractSpreadsheetID(os.Getenv("SPREADSHEET_ID")),
			SheetName:       getEnv("SHEET_NAME", "Sheet1"),
		},
		Notion: NotionConfig{
			Token:      os.Getenv("NOTION_TOKEN"),
			DatabaseID: os.Getenv("NOTION_DATABASE_ID"),
		},
		Archive: ArchiveConfig{
			Bucket: os.Getenv("RECEIPT_BUCKET"),
		},
		Prefs: PrefsConfig{
			DataDir: getEnv("DATA_DIR", "data"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Timezone: getEnv("TIMEZONE", "Asia/Jakarta"),
	}
	return cfg, nil
}

// Validate checks the keys the bot cannot start without. A missing sheets
// configuration is deliberately not fatal: the bot then runs with the
// ledger disabled and tells users to contact the administrator.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

// ExtractSpreadsheetID accepts either a bare spreadsheet ID or a full
// Google Sheets URL and returns the ID.
func ExtractSpreadsheetID(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := spreadsheetIDPattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

// ParseAllowedUsers parses a comma-separated list of Telegram user IDs.
// An empty value means no allow-list is enforced.
func ParseAllowedUsers(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
