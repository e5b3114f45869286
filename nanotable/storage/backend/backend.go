// Package backend opens a storage.Blob from configuration.
package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/nanotable/nanotable/storage"
	"github.com/arthur-debert/nanotable/nanotable/storage/file"
	"github.com/arthur-debert/nanotable/nanotable/storage/memory"
	"github.com/arthur-debert/nanotable/nanotable/storage/postgres"
	"github.com/arthur-debert/nanotable/nanotable/storage/s3"
	"github.com/arthur-debert/nanotable/nanotable/storage/sqlite"
)

// Driver names a storage backend
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverFile     Driver = "file"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverS3       Driver = "s3"
)

// Config selects and configures a backend. Only the fields relevant to the
// chosen driver are read.
type Config struct {
	Driver Driver

	// Path is the data directory for the file driver and the database file
	// for sqlite
	Path string

	// DSN is the postgres connection string
	DSN string

	S3 s3.Config
}

type opener func(ctx context.Context, cfg Config) (storage.Blob, error)

var openers = map[Driver]opener{
	DriverMemory: func(context.Context, Config) (storage.Blob, error) {
		return memory.New(), nil
	},
	DriverFile: func(_ context.Context, cfg Config) (storage.Blob, error) {
		return file.New(cfg.Path)
	},
	DriverSQLite: func(ctx context.Context, cfg Config) (storage.Blob, error) {
		path := cfg.Path
		if path != "" && filepath.Ext(path) == "" {
			path = filepath.Join(path, "nanotable.db")
		}
		return sqlite.New(ctx, path)
	},
	DriverPostgres: func(ctx context.Context, cfg Config) (storage.Blob, error) {
		return postgres.New(ctx, cfg.DSN)
	},
	DriverS3: func(ctx context.Context, cfg Config) (storage.Blob, error) {
		return s3.New(ctx, cfg.S3)
	},
}

// Drivers lists the known driver names
func Drivers() []string {
	names := make([]string, 0, len(openers))
	for d := range openers {
		names = append(names, string(d))
	}
	sort.Strings(names)
	return names
}

// ParseDriver validates a driver name, case-insensitively
func ParseDriver(name string) (Driver, error) {
	d := Driver(strings.ToLower(strings.TrimSpace(name)))
	if d == "" {
		return DriverMemory, nil
	}
	if _, ok := openers[d]; !ok {
		return "", fmt.Errorf("unknown storage driver %q (available: %s)", name, strings.Join(Drivers(), ", "))
	}
	return d, nil
}

// Open creates the backend named by cfg.Driver; an empty driver means memory
func Open(ctx context.Context, cfg Config) (storage.Blob, error) {
	d, err := ParseDriver(string(cfg.Driver))
	if err != nil {
		return nil, err
	}
	blob, err := openers[d](ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", d, err)
	}
	return blob, nil
}
