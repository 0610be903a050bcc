// Package config loads and saves allot preferences as TOML.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/theirongolddev/allot/internal/allocation"
)

// Config holds all allot configuration. Only preferences and the starting
// template live here; edits made during a session are never written back.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Allocation AllocationConfig `toml:"allocation"`
	Categories []CategoryConfig `toml:"categories"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds session defaults.
type GeneralConfig struct {
	MonthlyBudget float64 `toml:"monthly_budget"`
}

// AllocationConfig selects the engine behavior.
type AllocationConfig struct {
	AmountMode string `toml:"amount_mode"` // redistributive | direct
	Strictness string `toml:"strictness"`  // lenient | renormalize
}

// CategoryConfig is one entry of the starting category template.
type CategoryConfig struct {
	Name       string  `toml:"name"`
	Emoji      string  `toml:"emoji,omitempty"`
	Percentage float64 `toml:"percentage"`
}

// AppearanceConfig holds TUI presentation settings.
type AppearanceConfig struct {
	Theme        string `toml:"theme"`
	ShowSummary  bool   `toml:"show_summary"`
	CompactWidth int    `toml:"compact_width"` // below this the summary stacks under the list
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	cats := allocation.DefaultCategories()
	categories := make([]CategoryConfig, len(cats))
	for i, c := range cats {
		categories[i] = CategoryConfig{Name: c.Name, Emoji: c.Emoji, Percentage: c.Percentage}
	}

	return Config{
		General: GeneralConfig{
			MonthlyBudget: allocation.DefaultBudget,
		},
		Allocation: AllocationConfig{
			AmountMode: allocation.Redistributive.String(),
			Strictness: allocation.Lenient.String(),
		},
		Categories: categories,
		Appearance: AppearanceConfig{
			Theme:        "flexoki-dark",
			ShowSummary:  true,
			CompactWidth: 110,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "allot")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "allot")
}

// Path returns the full path to the config file. ALLOT_CONFIG overrides
// the XDG location.
func Path() string {
	if p := os.Getenv("ALLOT_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// A file without a [[categories]] table keeps the default categories.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	defaults := cfg.Categories
	cfg.Categories = nil
	if err := toml.Unmarshal(data, &cfg); err != nil {
		cfg.Categories = defaults
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = defaults
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Validate reports every problem in cfg at once.
func (c Config) Validate() error {
	var errs []error

	if math.IsNaN(c.General.MonthlyBudget) || math.IsInf(c.General.MonthlyBudget, 0) || c.General.MonthlyBudget < 0 {
		errs = append(errs, fmt.Errorf("general.monthly_budget must be a non-negative number, got %v", c.General.MonthlyBudget))
	}
	if _, err := allocation.ParseAmountMode(c.Allocation.AmountMode); err != nil {
		errs = append(errs, fmt.Errorf("allocation.amount_mode: %w", err))
	}
	if _, err := allocation.ParseStrictness(c.Allocation.Strictness); err != nil {
		errs = append(errs, fmt.Errorf("allocation.strictness: %w", err))
	}

	seen := make(map[string]int, len(c.Categories))
	for i, cat := range c.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("categories[%d]: name is required", i))
		} else if prev, dup := seen[strings.ToLower(name)]; dup {
			errs = append(errs, fmt.Errorf("categories[%d]: duplicate name %q (also categories[%d])", i, name, prev))
		} else {
			seen[strings.ToLower(name)] = i
		}
		if math.IsNaN(cat.Percentage) || cat.Percentage < 0 || cat.Percentage > 100 {
			errs = append(errs, fmt.Errorf("categories[%d]: percentage must be within 0..100, got %v", i, cat.Percentage))
		}
	}

	return errors.Join(errs...)
}

// EngineCategories converts the category template for allocation.New.
func (c Config) EngineCategories() []allocation.Category {
	out := make([]allocation.Category, len(c.Categories))
	for i, cat := range c.Categories {
		out[i] = allocation.Category{
			Name:       strings.TrimSpace(cat.Name),
			Emoji:      cat.Emoji,
			Percentage: cat.Percentage,
		}
	}
	return out
}

// EngineOptions returns the engine options selected by the allocation
// section. Unknown names fall back to the defaults; Validate reports them.
func (c Config) EngineOptions() []allocation.Option {
	mode, _ := allocation.ParseAmountMode(c.Allocation.AmountMode)
	strict, _ := allocation.ParseStrictness(c.Allocation.Strictness)
	return []allocation.Option{
		allocation.WithAmountMode(mode),
		allocation.WithStrictness(strict),
	}
}

// NewEngine builds an allocation engine from the configured template.
func (c Config) NewEngine(opts ...allocation.Option) (*allocation.Engine, error) {
	all := append(c.EngineOptions(), opts...)
	e, err := allocation.New(c.General.MonthlyBudget, c.EngineCategories(), all...)
	if err != nil {
		return nil, fmt.Errorf("building allocation engine: %w", err)
	}
	return e, nil
}
