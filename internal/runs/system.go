package runs

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/dossier/internal/analysis"
	"github.com/JaimeStill/dossier/pkg/pagination"
)

// System defines the public contract for run history operations.
type System interface {
	Handler() *Handler

	// Record stores a finished report. It satisfies analysis.Recorder.
	Record(ctx context.Context, query string, report *analysis.Report) error

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Run], error)

	Find(ctx context.Context, id uuid.UUID) (*Run, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
