// Package repo implements the read side of the comparator on top of GORM:
// database bootstrapping, batched lookups by id with related references
// preloaded, accent-insensitive name search, and fixture seeding.
//
// Functions are context-aware and take a *gorm.DB handle. They follow the
// thin-repository approach: no business rules, only query composition. A
// missing row is never an error here; callers detect absence by id.
package repo

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/votabienperu/comparador/internal/domain"
)

// sqlitePragmas are passed in the DSN so every pooled connection gets them.
var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
	"foreign_keys(1)",
	"busy_timeout(5000)",
}

type poolSize struct{ open, idle int }

var (
	sqlitePool   = poolSize{open: 10, idle: 10}
	postgresPool = poolSize{open: 20, idle: 5}
)

// OpenSQLite opens (or creates) the SQLite file at path. The parent
// directory must exist.
func OpenSQLite(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}
	q := url.Values{"_pragma": sqlitePragmas}
	return open(sqlite.Open(path+"?"+q.Encode()), sqlitePool)
}

// OpenPostgres connects to the hosted Postgres behind the public site using
// a libpq-style DSN or URL.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("postgres: empty DSN")
	}
	return open(postgres.Open(dsn), postgresPool)
}

func open(d gorm.Dialector, pool poolSize) (*gorm.DB, error) {
	db, err := gorm.Open(d, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(pool.open)
	sqlDB.SetMaxIdleConns(pool.idle)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return db, instrument(db)
}

// instrument attaches OpenTelemetry spans to every query. Metrics come from
// the HTTP and service layers, so the plugin's own metrics are disabled.
func instrument(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}

// Models lists every table the comparator reads, in dependency order.
func Models() []any {
	return []any{
		&domain.Person{},
		&domain.Party{},
		&domain.District{},
		&domain.ParliamentaryGroup{},
		&domain.ElectoralProcess{},
		&domain.Legislator{},
		&domain.GroupMembership{},
		&domain.Candidate{},
		&domain.LegislatorMetrics{},
		&domain.CandidateMetrics{},
	}
}

// AutoMigrate creates or updates the read schema. Production tables are
// owned by the admin side; this is used for local SQLite and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
