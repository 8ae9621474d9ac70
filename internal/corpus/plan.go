package corpus

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/JaimeStill/dossier/internal/documents"
	"github.com/JaimeStill/dossier/pkg/formatting"
)

var vendors = []string{"Thermo Fisher", "McKesson", "Cardinal Health"}

const (
	minInvoiceTotal = 15000
	maxInvoiceTotal = 55000
)

// Artifact describes one synthetic document before rendering.
type Artifact struct {
	Index    int
	Category documents.Category
	Name     string
	Lines    []string
}

// Plan lays out a deterministic batch of count artifacts for seed. Exactly
// round(count × ratio) artifacts are archives; their positions are a seeded
// shuffle, the rest are invoices.
func Plan(count int, ratio float64, seed uint64) []Artifact {
	rng := rand.New(rand.NewPCG(seed, seed))

	archives := make(map[int]bool)
	for _, i := range rng.Perm(count)[:archiveCount(count, ratio)] {
		archives[i] = true
	}

	out := make([]Artifact, count)
	for i := range count {
		if archives[i] {
			out[i] = archiveArtifact(i, rng)
		} else {
			out[i] = invoiceArtifact(i, rng)
		}
	}
	return out
}

func invoiceArtifact(i int, rng *rand.Rand) Artifact {
	vendor := vendors[rng.IntN(len(vendors))]
	total := minInvoiceTotal + rng.IntN(maxInvoiceTotal-minInvoiceTotal+1)

	return Artifact{
		Index:    i,
		Category: documents.Invoice,
		Name:     documents.Invoice.Filename(i),
		Lines: []string{
			fmt.Sprintf("ID: INV-%d", i),
			fmt.Sprintf("VENDOR: %s", vendor),
			fmt.Sprintf("TOTAL: %s.00", formatting.FormatUSD(int64(total))),
		},
	}
}

func archiveArtifact(i int, rng *rand.Rand) Artifact {
	year := 2020 + rng.IntN(2)

	return Artifact{
		Index:    i,
		Category: documents.Archive,
		Name:     documents.Archive.Filename(i),
		Lines: []string{
			fmt.Sprintf("ID: QA-%d", i),
			fmt.Sprintf("DATE: %d-05-20", year),
			"STATUS: REVIEW NEEDED",
		},
	}
}

func archiveCount(count int, ratio float64) int {
	n := int(math.Round(float64(count) * ratio))
	return max(0, min(n, count))
}
