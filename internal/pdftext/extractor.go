// Package pdftext extracts plain text from PDF bytes. It never fails hard:
// malformed or image-only input degrades to empty text, which callers treat
// as the unreadable-document case.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor pulls text out of a PDF with two backends: the plain-text reader
// first, then a raw content-stream scan for documents the reader cannot
// decode. Mirrors the usual extract-then-fall-back ladder for documents of
// uneven provenance.
type Extractor struct {
	log *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{log: logger}
}

// Extract returns the document's plain text, or empty text when nothing can
// be decoded. The returned error is advisory (for logging); empty text is
// the contract signal for an unreadable document.
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	text, err := extractPlainText(ctx, data)
	if err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}
	if err != nil {
		e.log.Debug("pdftext.plain.failed", "err", err)
	}

	fallback, ferr := extractContentStreams(data)
	if ferr != nil {
		e.log.Debug("pdftext.stream.failed", "err", ferr)
		if err == nil {
			err = ferr
		}
		return "", err
	}
	return fallback, nil
}

// extractPlainText reads page text via the pdf reader, skipping pages it
// cannot decode. The reader panics on some malformed inputs, so the whole
// pass runs under recover.
func extractPlainText(ctx context.Context, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf reader panicked: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue // skip unreadable pages
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(pageText)
	}
	return b.String(), nil
}
