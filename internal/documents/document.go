// Package documents implements the document domain for Dossier.
// Documents are read from blob storage and categorized by filename marker;
// contents are never inspected.
package documents

import (
	"fmt"
	"strings"
	"time"

	"github.com/JaimeStill/dossier/pkg/storage"
)

// Category is the routing category attached to a document at construction.
// The zero value marks a document that matches no marker.
type Category string

const (
	Invoice Category = "INVOICE"
	Archive Category = "ARCHIVE"
)

// Categories lists the known categories in queue order.
var Categories = []Category{Invoice, Archive}

const (
	invoiceMarker    = "Invoice"
	complianceMarker = "Compliance"
	archiveMarker    = "ARCHIVE"
)

// Categorize derives a category from a document name. Markers are
// case-sensitive substrings and the invoice marker takes precedence.
func Categorize(name string) Category {
	switch {
	case strings.Contains(name, invoiceMarker):
		return Invoice
	case strings.Contains(name, complianceMarker), strings.Contains(name, archiveMarker):
		return Archive
	default:
		return ""
	}
}

// ParseCategory resolves s to a known category, ignoring case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c == Invoice || c == Archive
}

// Filename returns the conventional artifact name for the i-th document of
// category c. Categorize(c.Filename(i)) == c for every known category.
func (c Category) Filename(i int) string {
	switch c {
	case Invoice:
		return fmt.Sprintf("%s_%d.pdf", invoiceMarker, i)
	case Archive:
		return fmt.Sprintf("%s_%s_%d.pdf", complianceMarker, archiveMarker, i)
	default:
		return ""
	}
}

// Document is an immutable view of a stored artifact.
type Document struct {
	Name        string    `json:"name" yaml:"name"`
	Category    Category  `json:"category,omitempty" yaml:"category,omitempty"`
	SizeBytes   int64     `json:"size_bytes" yaml:"size_bytes"`
	ContentType string    `json:"content_type" yaml:"content_type"`
	ModifiedAt  time.Time `json:"modified_at" yaml:"modified_at"`
}

// New builds a Document and attaches its category from the name.
func New(name string, sizeBytes int64, contentType string, modifiedAt time.Time) Document {
	return Document{
		Name:        name,
		Category:    Categorize(name),
		SizeBytes:   sizeBytes,
		ContentType: contentType,
		ModifiedAt:  modifiedAt,
	}
}

// FromBlob builds a Document from storage metadata.
func FromBlob(meta storage.BlobMeta) Document {
	return New(meta.Name, meta.ContentLength, meta.ContentType, meta.LastModified)
}

// Count returns the number of documents in docs with category c.
func Count(docs []Document, c Category) int {
	n := 0
	for _, d := range docs {
		if d.Category == c {
			n++
		}
	}
	return n
}
