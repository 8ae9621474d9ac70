// Package storage provides blob storage over a local directory tree or Azure Blob Storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/JaimeStill/dossier/pkg/lifecycle"
)

// MaxListCap is the upper bound on a single List page.
const MaxListCap int32 = 5000

// BlobMeta describes a stored object without its content.
type BlobMeta struct {
	Name          string    `json:"name"`
	ContentType   string    `json:"content_type"`
	ContentLength int64     `json:"content_length"`
	LastModified  time.Time `json:"last_modified"`
	ETag          string    `json:"etag,omitempty"`
}

// BlobList is one page of List results. NextMarker is empty on the last page.
type BlobList struct {
	Blobs      []BlobMeta `json:"blobs"`
	NextMarker string     `json:"next_marker,omitempty"`
}

// System manages blob storage operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that prepares the backing container or directory.
	Start(lc *lifecycle.Coordinator) error
	// List returns one page of blobs whose names start with prefix, resuming after marker.
	List(ctx context.Context, prefix, marker string, maxResults int32) (*BlobList, error)
	// Find returns metadata for the blob at key. Returns ErrNotFound if absent.
	Find(ctx context.Context, key string) (*BlobMeta, error)
	// Upload streams data to a blob at the given key with the specified content type.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Download returns a stream for the blob at the given key. The caller must close the reader.
	// Returns ErrNotFound if the blob does not exist.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the blob at the given key. Returns ErrNotFound if the blob does not exist.
	Delete(ctx context.Context, key string) error
	// Exists reports whether a blob exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
	// Walk calls fn for every blob matching the configured pattern, in name order.
	Walk(ctx context.Context, fn func(BlobMeta) error) error
}

// New creates the storage system selected by cfg.Provider. No I/O happens
// until Start's hook runs or an operation is called.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "storage", "provider", cfg.Provider)

	switch cfg.Provider {
	case ProviderFilesystem, "":
		return newFilesystem(cfg, logger), nil
	case ProviderAzure:
		return newAzure(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}

// ParseMaxResults parses a max_results query value. Empty input returns
// fallback; values above MaxListCap are clamped.
func ParseMaxResults(s string, fallback int32) (int32, error) {
	if s == "" {
		return fallback, nil
	}

	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("max_results must be a positive integer")
	}

	return min(int32(n), MaxListCap), nil
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
