package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/chatfin/finbot/internal/parser"
	"github.com/chatfin/finbot/internal/storage"
)

// expandPath expands ~ and environment variables in a file path.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

// initStorage opens the database and applies pending migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/finbot/finbot.db"
	}
	dbPath = expandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initParser builds the parser, extended with the configured keyword pack if
// any.
func initParser() (*parser.Parser, error) {
	packPath := viper.GetString("parser.keywords")
	if packPath == "" {
		return parser.New(), nil
	}

	extra, err := parser.LoadKeywordPack(expandPath(packPath))
	if err != nil {
		return nil, err
	}
	return parser.NewWithKeywords(extra), nil
}

// currentUser returns the user id commands act as.
func currentUser() int64 {
	return viper.GetInt64("user.id")
}
