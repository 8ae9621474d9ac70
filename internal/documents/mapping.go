package documents

import (
	"cmp"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/JaimeStill/dossier/pkg/formatting"
	"github.com/JaimeStill/dossier/pkg/query"
)

var defaultSort = query.SortField{Field: "Name"}

// comparators maps sortable field names to document orderings.
var comparators = map[string]func(a, b Document) int{
	"Name":        func(a, b Document) int { return strings.Compare(a.Name, b.Name) },
	"Category":    func(a, b Document) int { return strings.Compare(string(a.Category), string(b.Category)) },
	"SizeBytes":   func(a, b Document) int { return cmp.Compare(a.SizeBytes, b.SizeBytes) },
	"ContentType": func(a, b Document) int { return strings.Compare(a.ContentType, b.ContentType) },
	"ModifiedAt":  func(a, b Document) int { return a.ModifiedAt.Compare(b.ModifiedAt) },
}

// Filters contains optional filtering criteria for document listings.
// Nil fields are ignored. Category uses exact matching; Name uses
// case-insensitive contains matching; MinSize keeps documents of at least
// that many bytes.
type Filters struct {
	Category *Category `json:"category,omitempty"`
	Name     *string   `json:"name,omitempty"`
	MinSize  *int64    `json:"min_size,omitempty"`
}

// Match reports whether d satisfies every set filter.
func (f Filters) Match(d Document) bool {
	if f.Category != nil && d.Category != *f.Category {
		return false
	}
	if f.Name != nil && !containsFold(d.Name, *f.Name) {
		return false
	}
	if f.MinSize != nil && d.SizeBytes < *f.MinSize {
		return false
	}
	return true
}

// FiltersFromQuery extracts filter values from URL query parameters.
// An unknown category is reported as ErrInvalidCategory. min_size takes a
// human-readable size such as "4KB".
func FiltersFromQuery(values url.Values) (Filters, error) {
	var f Filters

	if c := values.Get("category"); c != "" {
		category, err := ParseCategory(c)
		if err != nil {
			return f, err
		}
		f.Category = &category
	}

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if v := values.Get("min_size"); v != "" {
		size, err := ParseSize(v)
		if err != nil {
			return f, err
		}
		f.MinSize = &size
	}

	return f, nil
}

// ParseSize parses a human-readable byte size for the MinSize filter.
func ParseSize(s string) (int64, error) {
	n, err := formatting.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("%w: min_size: %w", ErrInvalidRequest, err)
	}
	return n, nil
}

func filter(docs []Document, search *string, filters Filters) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if search != nil && !containsFold(d.Name, *search) {
			continue
		}
		if filters.Match(d) {
			out = append(out, d)
		}
	}
	return out
}

// sortDocuments orders docs by the given fields, falling back to name.
// Unknown fields are ignored.
func sortDocuments(docs []Document, fields []query.SortField) {
	fields = append(slices.Clone(fields), defaultSort)

	slices.SortStableFunc(docs, func(a, b Document) int {
		for _, f := range fields {
			compare, ok := comparators[f.Field]
			if !ok {
				continue
			}
			c := compare(a, b)
			if f.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
