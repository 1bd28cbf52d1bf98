package migrations

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

//go:embed *.sql
var migrationFiles embed.FS

// lockID serializes concurrent migrators across bookingd instances.
const lockID int64 = 720511001

// Migration is one embedded SQL file and, if it ran, when.
type Migration struct {
	Name      string
	AppliedAt *time.Time
}

func fileNames() ([]string, error) {
	entries, err := migrationFiles.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

const ensureTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	name TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Apply runs pending migrations in filename order and returns the names it ran.
func Apply(ctx context.Context, pool *pgxpool.Pool, log logrus.FieldLogger) ([]string, error) {
	names, err := fileNames()
	if err != nil {
		return nil, err
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire conn: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, lockID); err != nil {
		return nil, fmt.Errorf("acquire migration lock: %w", err)
	}
	defer func() {
		_, _ = conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	if _, err := conn.Exec(ctx, ensureTable); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations: %w", err)
	}

	var ran []string
	for _, name := range names {
		var applied bool
		if err := conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, name).Scan(&applied); err != nil {
			return ran, fmt.Errorf("check migration %s: %w", name, err)
		}
		if applied {
			continue
		}

		body, err := migrationFiles.ReadFile(name)
		if err != nil {
			return ran, fmt.Errorf("read migration %s: %w", name, err)
		}
		sql := strings.TrimSpace(string(body))
		if sql != "" {
			if _, err := conn.Exec(ctx, sql); err != nil {
				return ran, fmt.Errorf("exec migration %s: %w", name, err)
			}
		}
		if _, err := conn.Exec(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
			return ran, fmt.Errorf("record migration %s: %w", name, err)
		}
		if log != nil {
			log.WithField("migration", name).Info("migration applied")
		}
		ran = append(ran, name)
	}
	return ran, nil
}

// Status lists every embedded migration with its applied time, if any.
func Status(ctx context.Context, pool *pgxpool.Pool) ([]Migration, error) {
	names, err := fileNames()
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, ensureTable); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations: %w", err)
	}

	rows, err := pool.Query(ctx, `SELECT name, applied_at FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()

	applied := map[string]time.Time{}
	for rows.Next() {
		var name string
		var at time.Time
		if err := rows.Scan(&name, &at); err != nil {
			return nil, fmt.Errorf("scan migration: %w", err)
		}
		applied[name] = at
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		m := Migration{Name: name}
		if at, ok := applied[name]; ok {
			at := at
			m.AppliedAt = &at
		}
		out = append(out, m)
	}
	return out, nil
}
