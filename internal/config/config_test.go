package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "migguard.io/guard/internal/pkg/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"migrations",
		"prisma/migrations",
		"backend/migrations",
		"supabase/migrations",
		"supabase/migrations.sql",
	}, cfg.Guard.Candidates)
	assert.Equal(t, []string{".sql", ".py", ".ts", ".js"}, cfg.Guard.Extensions)
	assert.Empty(t, cfg.Guard.Exclude)
	assert.True(t, cfg.Guard.ForbidDataChanges)
	assert.Len(t, cfg.Guard.ForbiddenPatterns(), 16)

	assert.Equal(t, "supabase", cfg.Guard.Naming.RootSegment)
	assert.Equal(t, "migrations", cfg.Guard.Naming.MigrationsSegment)
	assert.Equal(t, `^\d{8}_\d{6}_[a-z0-9_]+\.(?i:sql)$`, cfg.Guard.Naming.Pattern)

	assert.Equal(t, ScopeWindow, cfg.Guard.Exception.Scope)
	assert.Equal(t, 50, cfg.Guard.Exception.WindowRadius)
	assert.Equal(t, []string{"データ移行", "初期化", "マイグレーション"}, cfg.Guard.Exception.Reasons)

	assert.Equal(t, FormatText, cfg.Report.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MIGRATION_GUARD_GUARD_EXCEPTION_SCOPE", "file")
	t.Setenv("MIGRATION_GUARD_GUARD_EXCEPTION_WINDOW_RADIUS", "120")
	t.Setenv("MIGRATION_GUARD_GUARD_FORBID_DATA_CHANGES", "false")
	t.Setenv("MIGRATION_GUARD_REPORT_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ScopeFile, cfg.Guard.Exception.Scope)
	assert.Equal(t, 120, cfg.Guard.Exception.WindowRadius)
	assert.False(t, cfg.Guard.ForbidDataChanges)
	assert.Len(t, cfg.Guard.ForbiddenPatterns(), 14)
	assert.Equal(t, FormatJSON, cfg.Report.Format)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := `
guard:
  candidates:
    - db/migrations
  exclude:
    - "**/*.down.sql"
  naming:
    root_segment: db
report:
  format: yaml
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "migration-guard.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"db/migrations"}, cfg.Guard.Candidates)
	assert.Equal(t, []string{"**/*.down.sql"}, cfg.Guard.Exclude)
	assert.Equal(t, "db", cfg.Guard.Naming.RootSegment)
	assert.Equal(t, "migrations", cfg.Guard.Naming.MigrationsSegment)
	assert.Equal(t, FormatYAML, cfg.Report.Format)
}

func TestLoad_ExplicitConfigPath(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "guard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644))
	t.Setenv("MIGRATION_GUARD_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MIGRATION_GUARD_GUARD_EXCEPTION_SCOPE", "repo")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)

	guardErr, ok := apperrors.IsGuardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConfigInvalid, guardErr.Code)
	assert.Equal(t, apperrors.ExitFailure, guardErr.ExitCode)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no candidates", func(c *Config) { c.Guard.Candidates = nil }},
		{"no extensions", func(c *Config) { c.Guard.Extensions = nil }},
		{"extension without dot", func(c *Config) { c.Guard.Extensions = []string{"sql"} }},
		{"empty pattern table", func(c *Config) {
			c.Guard.SQLPatterns = nil
			c.Guard.DataPatterns = nil
			c.Guard.AlembicPatterns = nil
		}},
		{"empty naming segment", func(c *Config) { c.Guard.Naming.RootSegment = "" }},
		{"empty naming pattern", func(c *Config) { c.Guard.Naming.Pattern = "" }},
		{"no reasons", func(c *Config) { c.Guard.Exception.Reasons = nil }},
		{"unknown scope", func(c *Config) { c.Guard.Exception.Scope = "line" }},
		{"zero radius", func(c *Config) { c.Guard.Exception.WindowRadius = 0 }},
		{"unknown report format", func(c *Config) { c.Report.Format = "xml" }},
		{"unknown log format", func(c *Config) { c.Log.Format = "logfmt" }},
	}

	require.NoError(t, Default().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidConfig)
		})
	}
}

func TestGuardConfig_ForbiddenPatternsOrder(t *testing.T) {
	g := Default().Guard
	got := g.ForbiddenPatterns()

	require.Len(t, got, 16)
	assert.Equal(t, `\bDROP\s+TABLE\b`, got[0])
	assert.Equal(t, `\bDELETE\s+FROM\b`, got[8])
	assert.Equal(t, `\bUPDATE\s+[\p{L}\p{N}_]+\s+SET\b`, got[9])
	assert.Equal(t, `\bop\.drop_table\b`, got[10])

	// The returned slice must not alias the configured table.
	got[0] = "mutated"
	assert.Equal(t, `\bDROP\s+TABLE\b`, g.SQLPatterns[0])
}
