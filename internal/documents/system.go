package documents

import (
	"context"
	"io"

	"github.com/JaimeStill/dossier/pkg/pagination"
)

// System defines the public contract for document domain operations.
type System interface {
	Handler() *Handler

	// All returns every document in the corpus ordered by name.
	All(ctx context.Context) ([]Document, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)

	Find(ctx context.Context, name string) (*Document, error)

	// Open returns the document's metadata and a reader over its contents.
	// The caller closes the reader.
	Open(ctx context.Context, name string) (*Document, io.ReadCloser, error)
}
