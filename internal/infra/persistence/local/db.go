// Package local implements the local cache on top of GORM.
// SQLite is the embedded default; PostgreSQL can back the cache for shared deployments.
package local

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"pawsync/config"
	"pawsync/internal/domain/lifecycle"
	"pawsync/internal/errors"
	"pawsync/internal/infra/persistence/model"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond

	sqliteMemoryPath = ":memory:"
	sqliteFileParams = "_busy_timeout=5000&_journal_mode=WAL"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured local database, migrates the cache schema and
// registers the lifecycle hooks.
func New(params Params) (*gorm.DB, error) {
	db, err := open(params.Config, params.Logger)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get local sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping local database")
			}

			go monitorDBPool(monitorCtx, params.Logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// OpenSQLite opens an SQLite cache at path and migrates it. ":memory:" keeps the
// cache in a single private connection.
func OpenSQLite(path string, logger *slog.Logger, debug bool) (*gorm.DB, error) {
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	db, err := openSQLite(path, newGormSlogLogger(logger, cfg))
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the cache tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.FavoriteModel{},
		&model.OwnershipRequestModel{},
		&model.WalkModel{},
		&model.ActivityModel{},
		&model.TombstoneModel{},
	); err != nil {
		return errors.Wrap(err, "failed to migrate local cache schema")
	}

	return nil
}

func open(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormLogger := newGormSlogLogger(logger, cfg)

	switch cfg.Local.Driver {
	case config.LocalDriverPostgres:
		if cfg.Postgres == nil {
			return nil, errors.New("local driver is postgres but the postgres section is missing")
		}

		db, err := pgLib.New(cfg.Postgres)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create PostgreSQL client")
		}
		db.Config.TranslateError = true

		return db.Session(&gorm.Session{
			// Multi-step writes use explicit transactions.
			SkipDefaultTransaction: true,
			Logger:                 gormLogger,
		}), nil

	case config.LocalDriverSQLite:
		return openSQLite(cfg.Local.SQLitePath, gormLogger)

	default:
		return nil, errors.Errorf("unsupported local driver: %s", cfg.Local.Driver)
	}
}

func openSQLite(path string, gormLogger gormlogger.Interface) (*gorm.DB, error) {
	dsn := path
	if path != sqliteMemoryPath && !strings.Contains(path, "?") {
		dsn = path + "?" + sqliteFileParams
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 gormLogger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}
	// SQLite allows a single writer; one connection also pins an in-memory database.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return db, nil
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("waitDurationDelta", waitDurationDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("maxOpenConns", cur.MaxOpenConnections),
					slog.Int("inUseConns", cur.InUse),
					slog.Int("idleConns", cur.Idle),
				}
				if waitDurationDelta >= dbPoolWarnDurationThreshold {
					logger.LogAttrs(ctx, slog.LevelWarn, "Local store pool wait detected", attrs...)
				} else {
					logger.LogAttrs(ctx, slog.LevelDebug, "Local store pool wait observed", attrs...)
				}
			}

			prev = cur
		}
	}
}
