package config

// Default candidate locations, relative to the repository root.
// Prisma, Alembic and plain SQL layouts are covered; one entry names a file.
var defaultCandidates = []string{
	"migrations",
	"prisma/migrations",
	"backend/migrations",
	"supabase/migrations",
	"supabase/migrations.sql",
}

var defaultExtensions = []string{".sql", ".py", ".ts", ".js"}

// SQL statements that break an add-only schema (Postgres dialect).
var defaultSQLPatterns = []string{
	`\bDROP\s+TABLE\b`,
	`\bDROP\s+COLUMN\b`,
	`\bALTER\s+TABLE\b.*\bDROP\s+COLUMN\b`,
	`\bRENAME\s+COLUMN\b`,
	`\bRENAME\s+TABLE\b`,
	`\bALTER\s+COLUMN\b.*\bTYPE\b`,
	`\bALTER\s+COLUMN\b.*\bSET\s+NOT\s+NULL\b`,
	`\bTRUNCATE\b`,
}

// Data rewrites. Enabled unless guard.forbid_data_changes is false.
// Table names may be non-ASCII, so the identifier class is Unicode-aware.
var defaultDataPatterns = []string{
	`\bDELETE\s+FROM\b`,
	`\bUPDATE\s+[\p{L}\p{N}_]+\s+SET\b`,
}

// Alembic operations with the same intent as the SQL table.
var defaultAlembicPatterns = []string{
	`\bop\.drop_table\b`,
	`\bop\.drop_column\b`,
	`\bop\.alter_column\b.*\btype_\b`,
	`\bop\.alter_column\b.*\bnullable\s*=\s*False\b`,
	`\bop\.execute\(\s*["']\s*DROP\s+TABLE\b`,
	`\bop\.execute\(\s*["']\s*ALTER\s+TABLE\b.*\bDROP\s+COLUMN\b`,
}

var defaultExceptionReasons = []string{"データ移行", "初期化", "マイグレーション"}

const (
	defaultNamingPattern = `^\d{8}_\d{6}_[a-z0-9_]+\.(?i:sql)$`
	defaultNamingFormat  = "YYYYMMDD_HHMMSS_description.sql"
	defaultNamingExample = "20250115_120000_add_payment_state.sql"
)

// Suppression scopes for the exception marker.
const (
	ScopeWindow = "window"
	ScopeFile   = "file"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

func cloneStrings(in []string) []string {
	return append([]string(nil), in...)
}
