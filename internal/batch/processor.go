// Package batch drives the extraction engine over a set of uploaded
// documents, one at a time in upload order, accumulating the result table
// and the error table for the batch.
package batch

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/EliasGomez98/PDF-Scrapping/internal/extract"
	"github.com/EliasGomez98/PDF-Scrapping/internal/registry"
)

// Document is one uploaded file: its name (the document identifier carried
// through records and errors) and its raw bytes.
type Document struct {
	Name string
	Data []byte
}

// TextExtractor converts raw document bytes into text. Implementations must
// degrade to empty text on unreadable input; an error is advisory and is
// treated the same as empty text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// Preview carries a truncated slice of a document's extracted text, for
// operator debugging.
type Preview struct {
	Document string `json:"document"`
	Text     string `json:"text"`
}

// Result is one batch's output. Records preserve submission order regardless
// of which documents failed. A Result is replaced wholesale by the next
// batch, never mutated after Run returns.
type Result struct {
	BatchID   uuid.UUID
	Records   []extract.Record
	Errors    []extract.Error
	Previews  []Preview
	Processed int
	Failed    int
}

// Options are the per-run toggles, passed explicitly rather than held as
// ambient state.
type Options struct {
	// Uppercase converts document text to uppercase before matching. The
	// default rules are authored for the uppercase form.
	Uppercase bool
	// Preview, when positive, retains up to that many bytes of each
	// document's (normalized) text in the result.
	Preview int
}

// Processor coordinates text extraction then field extraction per document.
type Processor struct {
	Extractor TextExtractor
	Registry  *registry.Registry
	Log       *slog.Logger
}

func NewProcessor(tx TextExtractor, reg *registry.Registry, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{Extractor: tx, Registry: reg, Log: log}
}

// Run processes docs sequentially in the given order. Documents are
// independent: a document that yields no text produces a document-level
// error and no record, and processing moves on to the next one.
func (p *Processor) Run(ctx context.Context, docs []Document, opts Options) Result {
	res := Result{BatchID: uuid.New()}

	for i, doc := range docs {
		text, err := p.Extractor.Extract(ctx, doc.Data)
		if err != nil {
			// Unreadable input degrades to the empty-text case.
			p.Log.Warn("batch.textextract.failed", "document", doc.Name, "err", err)
			text = ""
		}
		if opts.Uppercase {
			text = strings.ToUpper(text)
		}
		if opts.Preview > 0 {
			res.Previews = append(res.Previews, Preview{
				Document: doc.Name,
				Text:     truncate(text, opts.Preview),
			})
		}

		rec, errs := extract.Extract(doc.Name, text, p.Registry)
		res.Errors = append(res.Errors, errs...)
		if rec == nil {
			res.Failed++
			p.Log.Warn("batch.document.unreadable", "document", doc.Name, "index", i+1, "total", len(docs))
			continue
		}
		res.Records = append(res.Records, *rec)
		res.Processed++
		p.Log.Info("batch.document.ok",
			"document", doc.Name,
			"index", i+1,
			"total", len(docs),
			"field_errors", len(errs),
		)
	}

	p.Log.Info("batch.done",
		"batch_id", res.BatchID.String(),
		"documents", len(docs),
		"processed", res.Processed,
		"failed", res.Failed,
		"errors", len(res.Errors),
	)
	return res
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
