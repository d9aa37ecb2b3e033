package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/report"
)

// SheetsConfig points at the Google Sheets roster and the spreadsheet schedules are published to
type SheetsConfig struct {
	RosterSheetID   string `yaml:"rosterSheetID" validate:"required"`
	RosterTab       string `yaml:"rosterTab" validate:"required"`
	ScheduleSheetID string `yaml:"scheduleSheetID" validate:"required"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port int `yaml:"port" validate:"omitempty,min=1,max=65535"`
}

// Config represents the application configuration
type Config struct {
	Weekday        string `yaml:"weekday,omitempty"`
	ServiceTime    string `yaml:"serviceTime,omitempty"`
	PreferNoRepeat *bool  `yaml:"preferNoRepeat,omitempty"`

	// MixedHeadcount is clamped to [1,4] when the schedule is built
	MixedHeadcount          int    `yaml:"mixedHeadcount,omitempty"`
	MixedNonPrivilegedShare *int   `yaml:"mixedNonPrivilegedShare,omitempty" validate:"omitempty,min=0"`
	MixedFallback           string `yaml:"mixedFallback,omitempty" validate:"omitempty,oneof=role population"`

	// Roles replaces the built-in requirement table when set
	Roles        []model.Requirement `yaml:"roles,omitempty" validate:"dive"`
	DisplayOrder []string            `yaml:"displayOrder,omitempty"`

	OutputPath  string        `yaml:"outputPath,omitempty"`
	Sheets      *SheetsConfig `yaml:"sheets,omitempty"`
	DatabaseURL string        `yaml:"databaseURL,omitempty" validate:"omitempty,url"`
	Server      ServerConfig  `yaml:"server,omitempty"`
}

const (
	configFileName = "roster_config"
	defaultPort    = 8080
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "minggu": time.Sunday,
	"monday": time.Monday, "senin": time.Monday,
	"tuesday": time.Tuesday, "selasa": time.Tuesday,
	"wednesday": time.Wednesday, "rabu": time.Wednesday,
	"thursday": time.Thursday, "kamis": time.Thursday,
	"friday": time.Friday, "jumat": time.Friday,
	"saturday": time.Saturday, "sabtu": time.Saturday,
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		Weekday:     "sunday",
		ServiceTime: "Pkl. 07.00 Wib,",
		OutputPath:  "output/Jadwal-Bulanan.xlsx",
		Server:      ServerConfig{Port: defaultPort},
	}
}

// LoadWithEnv loads roster_config.<env>.yaml (or roster_config.yaml when env is empty), falling back
// to defaults when no file exists, then applies .env overrides
func LoadWithEnv(env string) (*Config, error) {
	cfg := Default()

	configPath, err := findConfigFile(env)
	switch {
	case err == nil:
		cfg, err = LoadFromPath(configPath)
		if err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only
	default:
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	if err := loadDotEnv(env); err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct, the weekday name and the role table
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := ParseWeekday(cfg.Weekday); err != nil {
		return err
	}

	seen := make(map[string]bool, len(cfg.Roles))
	for i, role := range cfg.Roles {
		if !role.Policy.IsValid() {
			return fmt.Errorf("invalid policy %q in roles[%d]", role.Policy, i)
		}
		if seen[role.Role] {
			return fmt.Errorf("duplicate role %q in roles[%d]", role.Role, i)
		}
		seen[role.Role] = true
	}

	return nil
}

// ParseWeekday accepts English or Indonesian day names; empty means Sunday
func ParseWeekday(name string) (time.Weekday, error) {
	if strings.TrimSpace(name) == "" {
		return time.Sunday, nil
	}
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("invalid weekday %q", name)
	}
	return wd, nil
}

// ScheduleOptions converts the configuration into allocator options
func (c *Config) ScheduleOptions() (allocator.Options, error) {
	opts := allocator.DefaultOptions()

	wd, err := ParseWeekday(c.Weekday)
	if err != nil {
		return opts, err
	}
	opts.Weekday = wd

	if c.PreferNoRepeat != nil {
		opts.PreferNoRepeat = *c.PreferNoRepeat
	}
	if c.MixedHeadcount != 0 {
		opts.MixedHeadcount = c.MixedHeadcount
	}
	if c.MixedNonPrivilegedShare != nil {
		opts.MixedNonPrivilegedShare = *c.MixedNonPrivilegedShare
	}
	if c.MixedFallback != "" {
		opts.MixedFallback = allocator.FallbackPool(c.MixedFallback)
	}
	opts.Requirements = c.Roles

	return opts, nil
}

// ReportOptions returns the layout used for the xlsx report, the Sheets tab and the console preview
func (c *Config) ReportOptions() report.Options {
	return report.Options{ServiceTime: c.ServiceTime, DisplayOrder: c.DisplayOrder}
}

// findConfigFile searches for the config file in the current directory and the home directory
func findConfigFile(env string) (string, error) {
	name := configFileName + ".yaml"
	if env != "" {
		name = configFileName + "." + env + ".yaml"
	}

	// Check current directory
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory: %w", name, fs.ErrNotExist)
}

// loadDotEnv loads .env.<env> then .env; variables already set are never overwritten
func loadDotEnv(env string) error {
	files := []string{".env"}
	if env != "" {
		files = []string{".env." + env, ".env"}
	}

	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DatabaseURL = url
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}

	return nil
}
