package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/sagaworks/sagalint/internal/game"
)

const envPrefix = "SAGALINT_"

// Configuration represents the sagalint configuration
type Configuration struct {
	SchemasDir        string `koanf:"schemas_dir"`
	OutputFormat      string `koanf:"output_format" validate:"oneof=text json yaml"`
	Workers           int    `koanf:"workers" validate:"min=1,max=64"`
	StationLoadPolicy string `koanf:"station_load_policy" validate:"oneof=continue abort"`
	StateDir          string `koanf:"state_dir" validate:"required"`
	HistoryEnabled    bool   `koanf:"history_enabled"`
	HistoryMaxEntries int    `koanf:"history_max_entries" validate:"min=0,max=10000"`
	Color             string `koanf:"color" validate:"oneof=auto always never"`
}

// LoadPolicy returns the station load policy as the loader understands it.
func (c *Configuration) LoadPolicy() game.StationPolicy {
	if c.StationLoadPolicy == "abort" {
		return game.PolicyAbort
	}
	return game.PolicyContinue
}

// Options selects the files Load reads. Empty paths are skipped.
type Options struct {
	GlobalPath string
	LocalPath  string
	EnvFile    string
}

// Load loads configuration from global, local, dotenv and environment sources
// Priority: Environment variables > .env > Local config > Global config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	opts := Options{LocalPath: localConfigPath, EnvFile: EnvFile}
	if globalPath, err := UserConfigPath(); err == nil {
		opts.GlobalPath = globalPath
	}
	return LoadWithOptions(opts)
}

// LoadWithOptions is Load with explicit file locations.
func LoadWithOptions(opts Options) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if err := loadFile(k, opts.GlobalPath); err != nil {
		return nil, fmt.Errorf("failed to load global config: %w", err)
	}
	if err := loadFile(k, opts.LocalPath); err != nil {
		return nil, fmt.Errorf("failed to load local config: %w", err)
	}

	// .env values sit below real environment variables
	if opts.EnvFile != "" {
		if err := loadDotenv(k, opts.EnvFile); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.StateDir = expandHomePath(cfg.StateDir)
	cfg.SchemasDir = expandHomePath(cfg.SchemasDir)

	// NO_COLOR wins over the color setting
	if os.Getenv("NO_COLOR") != "" {
		cfg.Color = "never"
	}

	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := ValidateJSONSyntax(path); err != nil {
		return err
	}
	return k.Load(file.Provider(path), json.Parser())
}

func loadDotenv(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	for name, value := range values {
		if !strings.HasPrefix(name, envPrefix) {
			continue
		}
		k.Set(envTransform(name), value)
	}
	return nil
}

// envTransform converts environment variable names to config keys
// Example: SAGALINT_STATION_LOAD_POLICY -> station_load_policy
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
