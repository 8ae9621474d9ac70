package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Renderer turns an Artifact into document bytes.
type Renderer interface {
	Render(a Artifact) ([]byte, error)
	ContentType() string
}

// PDFRenderer renders each artifact as a single-page PDF using pdfcpu's
// JSON page description.
type PDFRenderer struct{}

type pdfFont struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type pdfText struct {
	Value string     `json:"value"`
	Pos   [2]float64 `json:"pos"`
	Font  pdfFont    `json:"font"`
}

type pdfContent struct {
	Text []pdfText `json:"text"`
}

type pdfPage struct {
	Content pdfContent `json:"content"`
}

type pdfDocument struct {
	Paper  string             `json:"paper"`
	Origin string             `json:"origin"`
	Pages  map[string]pdfPage `json:"pages"`
}

const (
	pdfMargin     = 56.0
	pdfLineHeight = 16.0
	pdfFontSize   = 11
)

func (PDFRenderer) ContentType() string {
	return "application/pdf"
}

func (PDFRenderer) Render(a Artifact) ([]byte, error) {
	page := pdfPage{}
	for i, line := range a.Lines {
		page.Content.Text = append(page.Content.Text, pdfText{
			Value: line,
			Pos:   [2]float64{pdfMargin, pdfMargin + float64(i)*pdfLineHeight},
			Font:  pdfFont{Name: "Helvetica", Size: pdfFontSize},
		})
	}

	desc, err := json.Marshal(pdfDocument{
		Paper:  "A4P",
		Origin: "UpperLeft",
		Pages:  map[string]pdfPage{"1": page},
	})
	if err != nil {
		return nil, fmt.Errorf("encode page description for %s: %w", a.Name, err)
	}

	var buf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(desc), &buf, nil); err != nil {
		return nil, fmt.Errorf("render %s: %w", a.Name, err)
	}

	pages, err := api.PageCount(bytes.NewReader(buf.Bytes()), nil)
	if err != nil {
		return nil, fmt.Errorf("verify %s: %w", a.Name, err)
	}
	if pages != 1 {
		return nil, fmt.Errorf("verify %s: expected 1 page, got %d", a.Name, pages)
	}

	return buf.Bytes(), nil
}
