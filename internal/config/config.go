package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFiles are loaded, when present, before the environment is parsed.
// Variables already set in the process environment win.
var DefaultEnvFiles = []string{".env", ".env.local"}

// GoogleOptions holds the spreadsheet side of the sync.
type GoogleOptions struct {
	ServiceAccountJSON string `env:"GOOGLE_SERVICE_ACCOUNT_JSON"`
	SheetID            string `env:"GOOGLE_SHEET_ID"`
}

// SupabaseOptions holds the database side of the sync. URL is the Postgres
// connection URL of the project; ServiceRoleKey is used as its password.
type SupabaseOptions struct {
	URL            string `env:"SUPABASE_URL"`
	ServiceRoleKey string `env:"SUPABASE_SERVICE_ROLE_KEY"`
}

// SnapshotOptions configures the optional raw-sheet archive taken before a migration.
type SnapshotOptions struct {
	Bucket string `env:"SNAPSHOT_BUCKET"`
	Prefix string `env:"SNAPSHOT_PREFIX" envDefault:"ledger-snapshots"`
}

// Configuration is everything the commands read from the environment.
type Configuration struct {
	Google   GoogleOptions
	Supabase SupabaseOptions
	Snapshot SnapshotOptions
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// MissingVarsError lists every required variable that was not set.
type MissingVarsError struct {
	Vars []string
}

func (e *MissingVarsError) Error() string {
	return fmt.Sprintf("missing env vars: [%s]", strings.Join(e.Vars, ", "))
}

// LoadEnv loads whichever of envFiles exist into the process environment.
// It returns how many files were loaded.
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}

	if len(existing) == 0 {
		return 0, nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return 0, fmt.Errorf("LoadEnv: %w", err)
	}
	return len(existing), nil
}

// Load reads .env files and the environment, then validates required settings.
func Load() (*Configuration, error) {
	if _, err := LoadEnv(DefaultEnvFiles); err != nil {
		return nil, err
	}
	return Parse()
}

// Parse builds a Configuration from the current process environment.
func Parse() (*Configuration, error) {
	cfg := &Configuration{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("Parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every missing required variable at once, in a fixed order.
func (c *Configuration) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"GOOGLE_SERVICE_ACCOUNT_JSON", c.Google.ServiceAccountJSON},
		{"GOOGLE_SHEET_ID", c.Google.SheetID},
		{"SUPABASE_URL", c.Supabase.URL},
		{"SUPABASE_SERVICE_ROLE_KEY", c.Supabase.ServiceRoleKey},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}

	if len(missing) > 0 {
		return &MissingVarsError{Vars: missing}
	}
	return nil
}

// IsMissingVars reports whether err is a MissingVarsError.
func IsMissingVars(err error) bool {
	var mv *MissingVarsError
	return errors.As(err, &mv)
}

// SnapshotEnabled reports whether raw sheet snapshots should be archived.
func (c *Configuration) SnapshotEnabled() bool {
	return c.Snapshot.Bucket != ""
}
