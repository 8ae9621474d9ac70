package corpus_test

import (
	"bytes"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/dossier/internal/corpus"
)

func TestPDFRendererProducesSinglePage(t *testing.T) {
	batch := corpus.Plan(2, 0.5, 2026)

	for _, a := range batch {
		t.Run(a.Name, func(t *testing.T) {
			data, err := corpus.PDFRenderer{}.Render(a)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

			pages, err := api.PageCount(bytes.NewReader(data), nil)
			require.NoError(t, err)
			assert.Equal(t, 1, pages)
		})
	}
}
