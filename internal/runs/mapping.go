package runs

import (
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/JaimeStill/dossier/internal/analysis"
	"github.com/JaimeStill/dossier/pkg/query"
	"github.com/JaimeStill/dossier/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "runs", "r").
	Project("id", "ID").
	Project("query", "Query").
	Project("scenario", "Scenario").
	Project("model_name", "ModelName").
	Project("ocr_engine", "OCREngine").
	Project("total_count", "TotalCount").
	Project("report", "Report").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for run queries.
// Nil or empty fields are ignored. Scenarios matches any listed scenario;
// ModelName and OCREngine use exact matching; Query uses case-insensitive
// contains matching.
type Filters struct {
	Scenarios []string   `json:"scenarios,omitempty"`
	ModelName *string    `json:"model_name,omitempty"`
	OCREngine *string    `json:"ocr_engine,omitempty"`
	Query     *string    `json:"query,omitempty"`
	Since     *time.Time `json:"since,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	scenarios := make([]any, len(f.Scenarios))
	for i, s := range f.Scenarios {
		scenarios[i] = s
	}

	return b.
		WhereIn("Scenario", scenarios).
		WhereEquals("ModelName", f.ModelName).
		WhereEquals("OCREngine", f.OCREngine).
		WhereContains("Query", f.Query).
		WhereSince("CreatedAt", f.Since)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// scenario may repeat or hold a comma-separated list; since must be RFC 3339.
func FiltersFromQuery(values url.Values) (Filters, error) {
	var f Filters

	scenarios, err := parseScenarios(values["scenario"])
	if err != nil {
		return f, err
	}
	f.Scenarios = scenarios

	if m := values.Get("model_name"); m != "" {
		f.ModelName = &m
	}

	if o := values.Get("ocr_engine"); o != "" {
		f.OCREngine = &o
	}

	if q := values.Get("query"); q != "" {
		f.Query = &q
	}

	if s := values.Get("since"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return f, fmt.Errorf("%w: since: %w", ErrInvalidRequest, err)
		}
		f.Since = &t
	}

	return f, nil
}

// parseScenarios flattens raw scenario values, normalizing case and
// rejecting names the analysis pipeline does not produce.
func parseScenarios(raw []string) ([]string, error) {
	var out []string
	for _, v := range raw {
		for item := range strings.SplitSeq(v, ",") {
			name := strings.ToUpper(strings.TrimSpace(item))
			if name == "" {
				continue
			}
			if !slices.ContainsFunc(analysis.Scenarios(), func(r analysis.Rule) bool {
				return string(r.Scenario) == name
			}) {
				return nil, fmt.Errorf("%w: unknown scenario %q", ErrInvalidRequest, item)
			}
			if !slices.Contains(out, name) {
				out = append(out, name)
			}
		}
	}
	return out, nil
}

func scanRun(s repository.Scanner) (Run, error) {
	var (
		r      Run
		report []byte
	)
	err := s.Scan(
		&r.ID,
		&r.Query,
		&r.Scenario,
		&r.ModelName,
		&r.OCREngine,
		&r.TotalCount,
		&report,
		&r.CreatedAt,
	)
	if err != nil {
		return r, err
	}

	if err := json.Unmarshal(report, &r.Report); err != nil {
		return r, fmt.Errorf("decode report %s: %w", r.ID, err)
	}
	return r, nil
}
