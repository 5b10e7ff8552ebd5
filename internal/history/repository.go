package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"codeberg.org/ashpool/sysbar/internal/errors"
	"codeberg.org/ashpool/sysbar/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

type sqliteRepository struct {
	db *sql.DB
	mu sync.Mutex
}

// NewRepository opens (and if necessary creates) the sample history
// database.
func NewRepository(cfg Config) (Recorder, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	logger.Debug().Msgf("Initializing sample history at: %s", cfg.DBPath)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	return &sqliteRepository{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS samples (
            timestamp INTEGER NOT NULL,
            item TEXT NOT NULL,
            text TEXT,
            stale INTEGER,
            failures INTEGER,
            PRIMARY KEY (timestamp, item)
        )
    `)
	return err
}

func (r *sqliteRepository) Record(ctx context.Context, entry *Entry) error {
	errFactory := errors.New()

	if entry == nil {
		return errFactory.New(ErrInvalidEntry)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO samples (timestamp, item, text, stale, failures)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(timestamp, item) DO UPDATE SET
            text = excluded.text,
            stale = excluded.stale,
            failures = excluded.failures
    `,
		entry.At.Unix(),
		entry.Item,
		entry.Text,
		boolToInt(entry.Stale),
		entry.Failures,
	)
	if err != nil {
		return errFactory.Wrap(ErrStorageAccess, err)
	}

	return nil
}

func (r *sqliteRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.Close(); err != nil {
		return errors.New().Wrap(ErrStorageClose, err)
	}
	return nil
}
