// Package cli implements the one-shot commands the binary exposes next to
// the HTTP server: manual sync runs, connection tests, and catalog helpers.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/worldapptech/woosync/internal/config"
	"github.com/worldapptech/woosync/internal/database"
)

// defaultDatabasePath mirrors the server's database resolution so commands
// operate on the same catalog the server uses.
func defaultDatabasePath() string {
	if fromEnv := os.Getenv("DATABASE_PATH"); fromEnv != "" {
		return fromEnv
	}
	return config.DefaultDatabasePath
}

func openDatabase(path string) (*database.Database, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := database.NewDatabase(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// parseProductIDs turns a comma-separated list like "12,34,56" into IDs.
func parseProductIDs(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid product ID %q", part)
		}
		ids = append(ids, uint(id))
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("no valid product IDs in %q", raw)
	}
	return ids, nil
}
