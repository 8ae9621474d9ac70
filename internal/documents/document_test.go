package documents_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/dossier/internal/documents"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		want documents.Category
	}{
		{"Invoice_1.pdf", documents.Invoice},
		{"Compliance_ARCHIVE_2.pdf", documents.Archive},
		{"Compliance_report.pdf", documents.Archive},
		{"old_ARCHIVE.pdf", documents.Archive},
		{"Invoice_Compliance_3.pdf", documents.Invoice},
		{"invoice_lowercase.pdf", ""},
		{"archive_lowercase.pdf", ""},
		{"notes.txt", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, documents.Categorize(tt.name))
		})
	}
}

func TestFilenameRoundTrip(t *testing.T) {
	for _, c := range documents.Categories {
		for i := range 5 {
			name := c.Filename(i)
			assert.Equal(t, c, documents.Categorize(name), name)
		}
	}

	assert.Equal(t, "Invoice_7.pdf", documents.Invoice.Filename(7))
	assert.Equal(t, "Compliance_ARCHIVE_7.pdf", documents.Archive.Filename(7))
	assert.Empty(t, documents.Category("").Filename(7))
}

func TestParseCategory(t *testing.T) {
	c, err := documents.ParseCategory(" invoice ")
	require.NoError(t, err)
	assert.Equal(t, documents.Invoice, c)

	_, err = documents.ParseCategory("receipt")
	assert.ErrorIs(t, err, documents.ErrInvalidCategory)
}

func TestNewAttachesCategory(t *testing.T) {
	now := time.Now()
	d := documents.New("Compliance_ARCHIVE_4.pdf", 1024, "application/pdf", now)

	assert.Equal(t, documents.Archive, d.Category)
	assert.Equal(t, int64(1024), d.SizeBytes)
	assert.Equal(t, now, d.ModifiedAt)
}

func TestCount(t *testing.T) {
	docs := []documents.Document{
		documents.New("Invoice_1.pdf", 0, "", time.Time{}),
		documents.New("Invoice_2.pdf", 0, "", time.Time{}),
		documents.New("Compliance_ARCHIVE_3.pdf", 0, "", time.Time{}),
		documents.New("readme.md", 0, "", time.Time{}),
	}

	assert.Equal(t, 2, documents.Count(docs, documents.Invoice))
	assert.Equal(t, 1, documents.Count(docs, documents.Archive))
	assert.Equal(t, 1, documents.Count(docs, ""))
}
