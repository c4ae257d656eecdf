// Package extractor extracts plain text from PDF files using the poppler
// command line tools (pdfinfo, pdftotext).
package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pdf-summary/internal/config"
	"pdf-summary/internal/observability/metrics"
	"pdf-summary/internal/utils/text"
)

// Sentinel errors for extraction failures.
var (
	// ErrTooManyPages indicates the document exceeds the page ceiling.
	ErrTooManyPages = errors.New("document has too many pages")

	// ErrNoTextLayer indicates the document has no extractable text layer,
	// typically a scanned document that would need OCR.
	ErrNoTextLayer = errors.New("document has no extractable text")

	// ErrNotPDF indicates the file could not be read as a PDF.
	ErrNotPDF = errors.New("file is not a readable PDF")
)

var pagesRe = regexp.MustCompile(`(?m)^Pages:\s+(\d+)\s*$`)

// Result holds the outcome of one extraction.
type Result struct {
	// Text is the extracted document text, pages joined with blank lines.
	Text string
	// Pages is the document page count.
	Pages int
}

// Extractor runs poppler subprocesses to pull text out of PDF files.
type Extractor struct {
	cfg config.ExtractorConfig
}

// New creates an extractor with the given configuration.
func New(cfg config.ExtractorConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract reads the PDF at pdfPath and returns its text. Documents over the
// page ceiling are rejected before any text extraction runs. Documents whose
// average text per page falls below the configured minimum are treated as
// scanned: the OCR fallback re-extracts them page by page, and only documents
// that stay below the minimum after OCR are rejected with ErrNoTextLayer.
func (e *Extractor) Extract(ctx context.Context, pdfPath string) (*Result, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	pages, err := e.pageCount(ctx, pdfPath)
	if err != nil {
		return nil, err
	}
	if pages > e.cfg.MaxPages {
		return nil, fmt.Errorf("%w: %d pages (limit %d)", ErrTooManyPages, pages, e.cfg.MaxPages)
	}

	raw, err := e.allText(ctx, pdfPath, pages)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(raw)
	chars := text.CountRunes(trimmed)
	method := "text-layer"
	if pages > 0 && chars/pages < e.cfg.MinTextPerPage {
		if !e.cfg.OCREnabled {
			return nil, fmt.Errorf("%w: %d chars over %d pages", ErrNoTextLayer, chars, pages)
		}

		slog.InfoContext(ctx, "low text density, trying OCR",
			slog.Int("chars", chars),
			slog.Int("pages", pages))
		ocrOut, ocrPages, err := e.ocrText(ctx, pdfPath, pages)
		if err != nil {
			return nil, err
		}
		metrics.RecordOCRPages(ocrPages)

		// Keep whichever extraction found more text.
		if text.CountRunes(ocrOut) > chars {
			trimmed = ocrOut
			chars = text.CountRunes(ocrOut)
			method = "ocr"
		}
		if chars/pages < e.cfg.MinTextPerPage {
			return nil, fmt.Errorf("%w: %d chars over %d pages after OCR", ErrNoTextLayer, chars, pages)
		}
	}

	metrics.RecordExtraction(time.Since(start), pages)
	slog.InfoContext(ctx, "text extracted",
		slog.Int("pages", pages),
		slog.Int("chars", chars),
		slog.String("method", method),
		slog.Duration("duration", time.Since(start)))

	return &Result{Text: trimmed, Pages: pages}, nil
}

// pageCount reads the page count via pdfinfo.
func (e *Extractor) pageCount(ctx context.Context, pdfPath string) (int, error) {
	cmd := exec.CommandContext(ctx, e.cfg.PdfinfoPath, pdfPath)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("%w: pdfinfo: %v", ErrNotPDF, err)
	}

	m := pagesRe.FindStringSubmatch(string(out))
	if len(m) != 2 {
		return 0, fmt.Errorf("%w: pdfinfo: pages not found", ErrNotPDF)
	}
	return strconv.Atoi(m[1])
}

// allText extracts the full document text in one pdftotext run.
// The -layout flag keeps the physical page layout instead of reflowing
// text into reading order, so multi-column pages stay legible. Note that
// pdftotext renders tables as space-aligned columns, not delimited rows.
func (e *Extractor) allText(ctx context.Context, pdfPath string, pages int) (string, error) {
	cmd := exec.CommandContext(ctx,
		e.cfg.PdftotextPath,
		"-f", "1",
		"-l", strconv.Itoa(pages),
		"-layout",
		pdfPath,
		"-",
	)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: pdftotext: %v", ErrNotPDF, err)
	}
	return string(out), nil
}
