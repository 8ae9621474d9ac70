package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/JaimeStill/dossier/pkg/lifecycle"
)

const defaultContentType = "application/octet-stream"

type filesystem struct {
	root    string
	pattern string
	logger  *slog.Logger
}

func newFilesystem(cfg *Config, logger *slog.Logger) *filesystem {
	pattern := cfg.Pattern
	if pattern == "" {
		pattern = "**"
	}
	return &filesystem{
		root:    cfg.Root,
		pattern: pattern,
		logger:  logger,
	}
}

func (f *filesystem) Start(lc *lifecycle.Coordinator) error {
	f.logger.Info("starting storage system", "root", f.root)

	lc.OnStartup(func() error {
		if err := os.MkdirAll(f.root, 0o755); err != nil {
			return fmt.Errorf("create storage root %s: %w", f.root, err)
		}
		f.logger.Info("storage root ready", "root", f.root)
		return nil
	})

	return nil
}

func (f *filesystem) List(ctx context.Context, prefix, marker string, maxResults int32) (*BlobList, error) {
	if maxResults <= 0 {
		maxResults = MaxListCap
	}

	all, err := f.collect(ctx, "**")
	if err != nil {
		return nil, err
	}

	result := &BlobList{Blobs: []BlobMeta{}}
	for _, meta := range all {
		if !strings.HasPrefix(meta.Name, prefix) || meta.Name <= marker {
			continue
		}
		if int32(len(result.Blobs)) == maxResults {
			result.NextMarker = result.Blobs[len(result.Blobs)-1].Name
			break
		}
		result.Blobs = append(result.Blobs, meta)
	}

	return result, nil
}

func (f *filesystem) Find(ctx context.Context, key string) (*BlobMeta, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	info, err := os.Stat(f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("stat blob %s: %w", key, err)
	}
	if info.IsDir() {
		return nil, ErrNotFound
	}

	meta := metaFromInfo(key, info)
	return &meta, nil
}

func (f *filesystem) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dst := f.path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("upload blob %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return fmt.Errorf("upload blob %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return fmt.Errorf("upload blob %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("upload blob %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("upload blob %s: %w", key, err)
	}

	return nil
}

func (f *filesystem) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	file, err := os.Open(f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download blob %s: %w", key, err)
	}

	return file, nil
}

func (f *filesystem) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := os.Remove(f.path(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete blob %s: %w", key, err)
	}

	return nil
}

func (f *filesystem) Exists(ctx context.Context, key string) (bool, error) {
	_, err := f.Find(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (f *filesystem) Walk(ctx context.Context, fn func(BlobMeta) error) error {
	metas, err := f.collect(ctx, f.pattern)
	if err != nil {
		return err
	}

	for _, meta := range metas {
		if err := fn(meta); err != nil {
			return err
		}
	}
	return nil
}

// collect gathers metadata for every regular file under root matching pattern,
// sorted by name. A missing root yields an empty result.
func (f *filesystem) collect(ctx context.Context, pattern string) ([]BlobMeta, error) {
	if _, err := os.Stat(f.root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var metas []BlobMeta
	err := doublestar.GlobWalk(os.DirFS(f.root), pattern, func(name string, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(path.Base(name), ".") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		metas = append(metas, metaFromInfo(name, info))
		return nil
	}, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("walk storage root %s: %w", f.root, err)
	}

	slices.SortFunc(metas, func(a, b BlobMeta) int {
		return strings.Compare(a.Name, b.Name)
	})

	return metas, nil
}

func (f *filesystem) path(key string) string {
	return filepath.Join(f.root, filepath.FromSlash(key))
}

func metaFromInfo(key string, info fs.FileInfo) BlobMeta {
	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = defaultContentType
	}

	return BlobMeta{
		Name:          key,
		ContentType:   contentType,
		ContentLength: info.Size(),
		LastModified:  info.ModTime().UTC(),
	}
}
