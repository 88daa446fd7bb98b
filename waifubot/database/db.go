package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"log/slog"

	"github.com/Nikhil2005306/waifu-bot/waifubot/database/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"
)

type DBConfig struct {
	Path string `toml:"path"`
}

type DB struct {
	sqldb *sql.DB
	bunDB *bun.DB
}

// Open creates or opens the SQLite database at cfg.Path.
//
// SQLite allows a single writer, so the pool is pinned to one
// connection; concurrent callers serialize at the connection boundary
// and each store call commits before returning.
func Open(cfg DBConfig) (*DB, error) {
	sqldb, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqldb.Ping(); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)

	if err := applyPragmas(sqldb); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	return &DB{sqldb: sqldb, bunDB: bunDB}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

func (db *DB) Close() error {
	return db.bunDB.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	if err := db.bunDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (db *DB) ExecWithLog(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := db.sqldb.ExecContext(ctx, query, args...)
	duration := time.Since(start)

	if err != nil {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", "exec"),
			slog.String("query", query),
			slog.Any("args", args),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return result, err
	}

	slog.Debug("Query executed",
		slog.String("type", "db"),
		slog.String("operation", "exec"),
		slog.String("query", query),
		slog.Duration("took", duration),
	)
	return result, nil
}

// InitializeSchema creates all required tables and indexes. Safe to run
// on every startup: tables are created IF NOT EXISTS, missing columns
// are patched additively onto pre-existing tables, and nothing is ever
// dropped or renamed. Any failure here is fatal - the store must not
// serve operations against a partial schema.
func (db *DB) InitializeSchema(ctx context.Context) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Group)(nil),
		(*models.EventLog)(nil),
		(*models.UserProfile)(nil),
		(*models.UserRarity)(nil),
		(*models.WaifuCard)(nil),
		(*models.UserWaifu)(nil),
	}

	for _, model := range tables {
		query := db.bunDB.NewCreateTable().
			Model(model).
			IfNotExists()

		if _, err := query.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	// Patch older on-disk schemas before creating indexes
	if err := db.MigrateSchema(ctx); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_logs_event_type ON logs(event_type);",
		"CREATE INDEX IF NOT EXISTS idx_logs_user_id ON logs(user_id);",
		"CREATE INDEX IF NOT EXISTS idx_user_rarities_user_id ON user_rarities(user_id);",
		"CREATE INDEX IF NOT EXISTS idx_user_waifus_user_id ON user_waifus(user_id);",
		"CREATE INDEX IF NOT EXISTS idx_waifu_cards_rarity ON waifu_cards(rarity);",
		"CREATE INDEX IF NOT EXISTS idx_waifu_cards_name ON waifu_cards(name);",
	}

	for _, idx := range indexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

type columnDef struct {
	Name string
	DDL  string
}

// MigrateSchema adds columns that older databases predate. Additive
// only; column order does not matter and reruns are no-ops.
func (db *DB) MigrateSchema(ctx context.Context) error {
	userColumns := []columnDef{
		{"daily_claim", "TEXT"},
		{"weekly_claim", "TEXT"},
		{"monthly_claim", "TEXT"},
		{"first_logged", "INTEGER NOT NULL DEFAULT 0"},
	}
	if err := db.ensureColumns(ctx, "users", userColumns); err != nil {
		return fmt.Errorf("failed to patch users columns: %w", err)
	}

	// SQLite rejects non-constant defaults on ADD COLUMN, so created_at
	// is patched without one; new databases get the default from the
	// model definition.
	cardColumns := []columnDef{
		{"media_type", "TEXT"},
		{"media_file", "TEXT"},
		{"media_file_id", "TEXT"},
		{"created_at", "TIMESTAMP"},
	}
	if err := db.ensureColumns(ctx, "waifu_cards", cardColumns); err != nil {
		return fmt.Errorf("failed to patch waifu_cards columns: %w", err)
	}

	return nil
}

// ensureColumns adds each missing column to the given table. The table
// name is always an internal literal, never caller input.
func (db *DB) ensureColumns(ctx context.Context, table string, columns []columnDef) error {
	existing, err := db.tableColumns(ctx, table)
	if err != nil {
		return err
	}

	for _, col := range columns {
		if existing[col.Name] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, col.Name, col.DDL)
		if _, err := db.ExecWithLog(ctx, stmt); err != nil {
			return fmt.Errorf("failed to add column %s.%s: %w", table, col.Name, err)
		}
		slog.Info("Added missing column",
			slog.String("type", "db"),
			slog.String("table", table),
			slog.String("column", col.Name))
	}

	return nil
}

func (db *DB) tableColumns(ctx context.Context, table string) (map[string]bool, error) {
	rows, err := db.sqldb.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("failed to read table info for %s: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notnull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan table info for %s: %w", table, err)
		}
		columns[name] = true
	}
	return columns, rows.Err()
}
