package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/JaimeStill/dossier/pkg/pagination"
	"github.com/JaimeStill/dossier/pkg/storage"
)

type repo struct {
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewSystem creates a storage-backed document repository implementing System.
func NewSystem(
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		storage:    store,
		logger:     logger.With("system", "documents"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) All(ctx context.Context) ([]Document, error) {
	var docs []Document
	err := r.storage.Walk(ctx, func(meta storage.BlobMeta) error {
		docs = append(docs, FromBlob(meta))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	slices.SortFunc(docs, func(a, b Document) int {
		return strings.Compare(a.Name, b.Name)
	})

	return docs, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Document], error) {
	page.Normalize(r.pagination)

	docs, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	docs = filter(docs, page.Search, filters)
	sortDocuments(docs, page.Sort)

	result := pagination.Slice(docs, page)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, name string) (*Document, error) {
	meta, err := r.storage.Find(ctx, name)
	if err != nil {
		return nil, mapStorageError(err)
	}

	d := FromBlob(*meta)
	return &d, nil
}

func (r *repo) Open(ctx context.Context, name string) (*Document, io.ReadCloser, error) {
	d, err := r.Find(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	body, err := r.storage.Download(ctx, name)
	if err != nil {
		return nil, nil, mapStorageError(err)
	}

	r.logger.Debug("document opened", "name", name)
	return d, body, nil
}

func mapStorageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, storage.ErrEmptyKey), errors.Is(err, storage.ErrInvalidKey):
		return fmt.Errorf("%w: %w", ErrInvalidName, err)
	default:
		return err
	}
}
