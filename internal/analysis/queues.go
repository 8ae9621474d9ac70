package analysis

import "github.com/JaimeStill/dossier/internal/documents"

// Queues holds the routing queue sizes for a corpus.
type Queues struct {
	Finance    int `json:"finance" yaml:"finance"`
	Regulatory int `json:"regulatory" yaml:"regulatory"`
}

// Route counts documents into the finance (invoice) and regulatory (archive)
// queues. Uncategorized documents belong to neither.
func Route(docs []documents.Document) Queues {
	return Queues{
		Finance:    documents.Count(docs, documents.Invoice),
		Regulatory: documents.Count(docs, documents.Archive),
	}
}

// CountViolations returns the number of retention violations in docs.
// Every archived document is a violation of the four-year retention window;
// no dates are compared.
func CountViolations(docs []documents.Document) int {
	return documents.Count(docs, documents.Archive)
}
