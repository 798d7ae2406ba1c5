package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

const DriverName = "sqlite"

// Open opens the database at path (":memory:" works) and applies the schema.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection serialises writers and keeps :memory: databases alive
	db.SetMaxOpenConns(1)

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("could not load migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

type Persister struct {
	db  *sql.DB
	now func() time.Time
}

func NewPersister(db *sql.DB) *Persister {
	return &Persister{db: db, now: time.Now}
}

func (p *Persister) Load(ctx context.Context, key string) ([]byte, error) {
	var payload string
	err := p.db.QueryRowContext(ctx, `SELECT payload FROM cart_state WHERE storage_key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return []byte(payload), nil
}

func (p *Persister) Save(ctx context.Context, key string, payload []byte) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO cart_state (storage_key, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(storage_key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		key, string(payload), p.now().UTC())
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Purge deletes carts not written since before. Returns how many were removed.
func (p *Persister) Purge(ctx context.Context, before time.Time) (int64, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM cart_state WHERE updated_at < ?`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("purge carts: %w", err)
	}
	return res.RowsAffected()
}
