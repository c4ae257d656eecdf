package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"pdf-summary/internal/utils/text"
)

// ocrRenderDPI is the rasterization resolution for pages sent to tesseract.
// 150dpi keeps renders small while staying above tesseract's accuracy floor.
const ocrRenderDPI = 150

// ocrText re-extracts the document page by page, running OCR on pages whose
// text layer falls below the per-page minimum. Pages with a usable text layer
// keep it. A per-page OCR failure degrades to that page's text layer rather
// than failing the document.
func (e *Extractor) ocrText(ctx context.Context, pdfPath string, pages int) (string, int, error) {
	tmpDir, err := os.MkdirTemp("", "pdf-ocr-*")
	if err != nil {
		return "", 0, fmt.Errorf("ocr workspace: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	parts := make([]string, 0, pages)
	ocrPages := 0
	for p := 1; p <= pages; p++ {
		pageText, err := e.pageText(ctx, pdfPath, p)
		if err != nil {
			return "", 0, err
		}
		pageText = strings.TrimSpace(pageText)
		if text.CountRunes(pageText) >= e.cfg.MinTextPerPage {
			parts = append(parts, pageText)
			continue
		}

		recognized, err := e.ocrPage(ctx, pdfPath, p, tmpDir)
		if err != nil {
			slog.WarnContext(ctx, "page OCR failed",
				slog.Int("page", p),
				slog.Any("error", err))
			if pageText != "" {
				parts = append(parts, pageText)
			}
			continue
		}

		recognized = strings.TrimSpace(recognized)
		if recognized == "" {
			if pageText != "" {
				parts = append(parts, pageText)
			}
			continue
		}
		ocrPages++
		parts = append(parts, recognized)
		slog.InfoContext(ctx, "page recovered via OCR",
			slog.Int("page", p),
			slog.Int("chars", text.CountRunes(recognized)))
	}

	return strings.Join(parts, "\n\n"), ocrPages, nil
}

// pageText extracts the text layer of a single page.
func (e *Extractor) pageText(ctx context.Context, pdfPath string, page int) (string, error) {
	cmd := exec.CommandContext(ctx,
		e.cfg.PdftotextPath,
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		"-layout",
		pdfPath,
		"-",
	)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: pdftotext page %d: %v", ErrNotPDF, page, err)
	}
	return string(out), nil
}

// ocrPage renders one page to a grayscale PNG with pdftoppm and runs
// tesseract over it.
func (e *Extractor) ocrPage(ctx context.Context, pdfPath string, page int, tmpDir string) (string, error) {
	prefix := filepath.Join(tmpDir, fmt.Sprintf("page-%d", page))
	render := exec.CommandContext(ctx,
		e.cfg.PdftoppmPath,
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		"-r", strconv.Itoa(ocrRenderDPI),
		"-gray",
		"-png",
		"-singlefile",
		pdfPath,
		prefix,
	)
	if err := render.Run(); err != nil {
		return "", fmt.Errorf("pdftoppm: %v", err)
	}

	recognize := exec.CommandContext(ctx,
		e.cfg.TesseractPath,
		prefix+".png",
		"stdout",
		"-l", e.cfg.OCRLanguages,
	)
	out, err := recognize.Output()
	if err != nil {
		return "", fmt.Errorf("tesseract: %v", err)
	}
	return string(out), nil
}
