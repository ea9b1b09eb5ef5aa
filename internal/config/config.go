// Package config provides configuration management for migration-guard.
//
// Configuration is loaded from:
// 1. Built-in defaults (the add-only rule tables)
// 2. migration-guard.yaml (optional; MIGRATION_GUARD_CONFIG names an explicit file)
// 3. Environment variables prefixed MIGRATION_GUARD_
//
// The loaded Config is read-only after Load returns.
//
// Import Path: migguard.io/guard/internal/config
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	apperrors "migguard.io/guard/internal/pkg/errors"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "MIGRATION_GUARD"

// Config is the root configuration structure.
type Config struct {
	Guard  GuardConfig  `mapstructure:"guard"`
	Report ReportConfig `mapstructure:"report"`
	Log    LogConfig    `mapstructure:"log"`
}

// GuardConfig holds the rule tables and discovery settings.
type GuardConfig struct {
	// Candidates are repository-relative directories or single files.
	Candidates []string `mapstructure:"candidates"`
	Extensions []string `mapstructure:"extensions"`

	// Exclude holds doublestar globs matched against slash-separated
	// repository-relative paths.
	Exclude []string `mapstructure:"exclude"`

	SQLPatterns       []string `mapstructure:"sql_patterns"`
	DataPatterns      []string `mapstructure:"data_patterns"`
	AlembicPatterns   []string `mapstructure:"alembic_patterns"`
	ForbidDataChanges bool     `mapstructure:"forbid_data_changes"`

	Naming    NamingConfig    `mapstructure:"naming"`
	Exception ExceptionConfig `mapstructure:"exception"`
}

// ForbiddenPatterns returns the effective pattern table in report order.
func (g GuardConfig) ForbiddenPatterns() []string {
	out := cloneStrings(g.SQLPatterns)
	if g.ForbidDataChanges {
		out = append(out, g.DataPatterns...)
	}
	return append(out, g.AlembicPatterns...)
}

// NamingConfig describes the timestamp-prefixed filename convention.
type NamingConfig struct {
	RootSegment       string `mapstructure:"root_segment"`
	MigrationsSegment string `mapstructure:"migrations_segment"`
	Pattern           string `mapstructure:"pattern"`
	Format            string `mapstructure:"format"`
	Example           string `mapstructure:"example"`
}

// ExceptionConfig controls the ALLOWED: marker.
type ExceptionConfig struct {
	Reasons []string `mapstructure:"reasons"`

	// Scope is "window" (marker must sit near the match) or "file"
	// (any marker in the file suppresses every match in it).
	Scope string `mapstructure:"scope"`

	// WindowRadius is counted in characters on each side of the match.
	WindowRadius int `mapstructure:"window_radius"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	Format string `mapstructure:"format"` // text, json or yaml
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// Load reads configuration from defaults, an optional file and environment.
func Load() (*Config, error) {
	v := viper.New()

	if explicit := strings.TrimSpace(os.Getenv(EnvPrefix + "_CONFIG")); explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("migration-guard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// guard.exception.window_radius → MIGRATION_GUARD_GUARD_EXCEPTION_WINDOW_RADIUS
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file is optional, use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeConfigInvalid, "invalid configuration")
	}

	return &cfg, nil
}

// Default returns the built-in configuration without consulting viper.
func Default() *Config {
	return &Config{
		Guard: GuardConfig{
			Candidates:        cloneStrings(defaultCandidates),
			Extensions:        cloneStrings(defaultExtensions),
			SQLPatterns:       cloneStrings(defaultSQLPatterns),
			DataPatterns:      cloneStrings(defaultDataPatterns),
			AlembicPatterns:   cloneStrings(defaultAlembicPatterns),
			ForbidDataChanges: true,
			Naming: NamingConfig{
				RootSegment:       "supabase",
				MigrationsSegment: "migrations",
				Pattern:           defaultNamingPattern,
				Format:            defaultNamingFormat,
				Example:           defaultNamingExample,
			},
			Exception: ExceptionConfig{
				Reasons:      cloneStrings(defaultExceptionReasons),
				Scope:        ScopeWindow,
				WindowRadius: 50,
			},
		},
		Report: ReportConfig{Format: FormatText},
		Log:    LogConfig{Level: "warn", Format: "console"},
	}
}

// Validate checks for configuration errors that would make a verdict meaningless.
func (c *Config) Validate() error {
	g := c.Guard
	if len(g.Candidates) == 0 {
		return fmt.Errorf("%w: guard.candidates must not be empty", apperrors.ErrInvalidConfig)
	}
	if len(g.Extensions) == 0 {
		return fmt.Errorf("%w: guard.extensions must not be empty", apperrors.ErrInvalidConfig)
	}
	for _, ext := range g.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: guard.extensions entry %q must start with a dot", apperrors.ErrInvalidConfig, ext)
		}
	}
	if len(g.ForbiddenPatterns()) == 0 {
		return fmt.Errorf("%w: forbidden pattern table is empty", apperrors.ErrInvalidConfig)
	}
	if g.Naming.RootSegment == "" || g.Naming.MigrationsSegment == "" {
		return fmt.Errorf("%w: guard.naming segments must not be empty", apperrors.ErrInvalidConfig)
	}
	if g.Naming.Pattern == "" {
		return fmt.Errorf("%w: guard.naming.pattern must not be empty", apperrors.ErrInvalidConfig)
	}
	if len(g.Exception.Reasons) == 0 {
		return fmt.Errorf("%w: guard.exception.reasons must not be empty", apperrors.ErrInvalidConfig)
	}
	switch g.Exception.Scope {
	case ScopeWindow, ScopeFile:
	default:
		return fmt.Errorf("%w: guard.exception.scope %q (want window or file)", apperrors.ErrInvalidConfig, g.Exception.Scope)
	}
	if g.Exception.WindowRadius <= 0 {
		return fmt.Errorf("%w: guard.exception.window_radius must be positive", apperrors.ErrInvalidConfig)
	}
	switch c.Report.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: report.format %q (want text, json or yaml)", apperrors.ErrInvalidConfig, c.Report.Format)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log.format %q (want console or json)", apperrors.ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	// Discovery
	v.SetDefault("guard.candidates", d.Guard.Candidates)
	v.SetDefault("guard.extensions", d.Guard.Extensions)
	v.SetDefault("guard.exclude", []string{})

	// Forbidden pattern tables
	v.SetDefault("guard.sql_patterns", d.Guard.SQLPatterns)
	v.SetDefault("guard.data_patterns", d.Guard.DataPatterns)
	v.SetDefault("guard.alembic_patterns", d.Guard.AlembicPatterns)
	v.SetDefault("guard.forbid_data_changes", d.Guard.ForbidDataChanges)

	// Naming rule
	v.SetDefault("guard.naming.root_segment", d.Guard.Naming.RootSegment)
	v.SetDefault("guard.naming.migrations_segment", d.Guard.Naming.MigrationsSegment)
	v.SetDefault("guard.naming.pattern", d.Guard.Naming.Pattern)
	v.SetDefault("guard.naming.format", d.Guard.Naming.Format)
	v.SetDefault("guard.naming.example", d.Guard.Naming.Example)

	// Exception marker
	v.SetDefault("guard.exception.reasons", d.Guard.Exception.Reasons)
	v.SetDefault("guard.exception.scope", d.Guard.Exception.Scope)
	v.SetDefault("guard.exception.window_radius", d.Guard.Exception.WindowRadius)

	// Output
	v.SetDefault("report.format", d.Report.Format)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}
