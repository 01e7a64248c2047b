package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mauv0809/sports-manager/internal/config"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// DB is an open store connection together with the SQL dialect it speaks.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// InitDB opens the configured backend and ensures the schema is up to date.
// The returned teardown closes the connection.
func InitDB(dbCfg config.DBConfig, turso config.TursoConfig) (*DB, func(), error) {
	var (
		db      *sql.DB
		dialect Dialect
		err     error
	)
	switch dbCfg.Driver {
	case config.DriverSQLite, "":
		log.Info("Initializing local SQLite database", "path", dbCfg.Name)
		dialect = SQLite
		db, err = sql.Open("sqlite3", "file:"+dbCfg.Name+"?_foreign_keys=on&_busy_timeout=5000")
		if err == nil {
			// SQLite serializes writers; a single connection avoids SQLITE_BUSY
			// between a transaction and a concurrent statement.
			db.SetMaxOpenConns(1)
		}
	case config.DriverLibSQL:
		if turso.PrimaryURL == "" {
			return nil, nil, fmt.Errorf("libsql driver requires a primary url")
		}
		log.Info("Initializing Turso database", "url", turso.PrimaryURL)
		dialect = LibSQL
		db, err = sql.Open("libsql", turso.PrimaryURL+"?authToken="+turso.AuthToken)
	case config.DriverPostgres:
		log.Info("Initializing PostgreSQL database")
		dialect = Postgres
		db, err = sql.Open("pgx", dbCfg.URL)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", dbCfg.Driver)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to reach %s database: %w", dialect, err)
	}
	if err := migrate(db, dialect); err != nil {
		db.Close()
		return nil, nil, err
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}
	log.Info("Database initialized successfully", "dialect", dialect)
	return &DB{DB: db, Dialect: dialect}, teardown, nil
}

func migrate(db *sql.DB, dialect Dialect) error {
	if dialect == SQLite {
		// Foreign key support is not enabled by default in SQLite
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			log.Error("Error enabling foreign keys:", "error", err)
			return err
		}
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(dialect.gooseDialect()); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
