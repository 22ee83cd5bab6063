package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Postgres driver registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Driver names a supported database backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// ParseDriver maps a user-supplied driver name to a Driver. The empty
// string selects SQLite.
func ParseDriver(name string) (Driver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sqlite", "sqlite3":
		return DriverSQLite, nil
	case "postgres", "postgresql", "pgx", "pg":
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q (want sqlite or postgres)", name)
	}
}

func (d Driver) sqlDriver() string {
	if d == DriverPostgres {
		return "pgx"
	}
	return "sqlite"
}

func (d Driver) dialect() string {
	if d == DriverPostgres {
		return dialect.Postgres
	}
	return dialect.SQLite
}

// Store owns the connection pool and the shared sequence counter.
type Store struct {
	db     *sql.DB
	driver Driver
	seq    *sequenceCounter
}

// sqlitePragmas tune SQLite for one local writer with concurrent readers.
var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA foreign_keys = ON",
}

// Open connects to dsn and brings the schema up to date. An empty driver
// means SQLite.
func Open(driver Driver, dsn string) (*Store, error) {
	if driver == "" {
		driver = DriverSQLite
	}
	db, err := sql.Open(driver.sqlDriver(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	s, err := setup(db, driver)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func setup(db *sql.DB, driver Driver) (*Store, error) {
	if driver == DriverSQLite {
		for _, pragma := range sqlitePragmas {
			if _, err := db.Exec(pragma); err != nil {
				return nil, fmt.Errorf("%s: %w", pragma, err)
			}
		}
	}
	if err := migrate(db, driver); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	seq, err := newSequenceCounter(db, driver)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, driver: driver, seq: seq}, nil
}

func (s *Store) DB() *sql.DB    { return s.db }
func (s *Store) Driver() Driver { return s.driver }
func (s *Store) Close() error   { return s.db.Close() }

// EventRepo returns the repository for quiz results and LLM events.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, driver: s.driver, seq: s.seq}
}

func (d Driver) builder() *entsql.DialectBuilder {
	return entsql.Dialect(d.dialect())
}

// DefaultDBPath is $QUIZDECK_DB when set, else quizdeck/quizdeck.db under
// the XDG data directory (~/.local/share when XDG_DATA_HOME is unset).
// The parent directory is created.
func DefaultDBPath() (string, error) {
	p := os.Getenv("QUIZDECK_DB")
	if p == "" {
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("locate data dir: %w", err)
			}
			base = filepath.Join(home, ".local", "share")
		}
		p = filepath.Join(base, "quizdeck", "quizdeck.db")
	}
	return p, EnsureDir(p)
}

// EnsureDir creates the directory that will hold the file at path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
