package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const migrationsDir = "migrations"

// RunMigrations applies every .sql file under migrations/ in lexical order.
// Files are idempotent (CREATE TABLE IF NOT EXISTS) so re-running on boot is
// safe; there is no version ledger.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("postgres pool not configured, skipping schema migrations")
		return nil
	}

	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("list migrations dir: %w", err)
	}

	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		scripts = append(scripts, entry.Name())
	}
	sort.Strings(scripts)

	for _, script := range scripts {
		statements, err := os.ReadFile(filepath.Join(migrationsDir, script))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", script, err)
		}
		logger.Info("applying schema migration", zap.String("script", script))
		if _, err := pool.Exec(ctx, string(statements)); err != nil {
			return fmt.Errorf("apply migration %s: %w", script, err)
		}
	}

	logger.Info("schema up to date", zap.Int("scripts", len(scripts)))
	return nil
}
