// Package migrations contains all database migration files.
// Each file uses init() to call migration.Register(); the package is
// imported by cmd/pethive/main.go so every migration is registered at CLI
// startup.
package migrations
