// Package blob stores rendered packing-code images. Two drivers exist: a local
// directory and an S3-compatible bucket (AWS S3 or MinIO). Keys are flat
// relative paths; both drivers overwrite on Put so a retried render replaces the
// earlier image.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// Driver names a storage backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
)

// ErrInvalidKey is returned for empty, absolute or escaping keys.
var ErrInvalidKey = errors.New("invalid blob key")

// Store is the object storage used by the QR renderer.
type Store interface {
	Driver() Driver

	// Put writes r under key and returns a location that identifies the object.
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)

	// Delete removes key. A missing object is not an error.
	Delete(ctx context.Context, key string) error
}

// Config selects and configures a driver.
type Config struct {
	Driver Driver
	Root   string
	S3     S3Config
}

// Open builds the store named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverFilesystem, "":
		return NewFilesystemStore(cfg.Root)
	case DriverS3:
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
	}
}

func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if strings.HasPrefix(key, "/") || strings.HasPrefix(key, `\`) {
		return "", fmt.Errorf("%w: %q is absolute", ErrInvalidKey, key)
	}
	clean := path.Clean(strings.ReplaceAll(key, `\`, "/"))
	if clean == ".." || strings.HasPrefix(clean, "../") || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q escapes the store", ErrInvalidKey, key)
	}
	return clean, nil
}
