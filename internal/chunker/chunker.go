// Package chunker splits extracted document text into bounded chunks for
// map-reduce summarization. Splitting prefers natural boundaries (paragraphs,
// then sentences) before falling back to raw character windows, and keeps
// table regions intact whenever possible.
package chunker

import (
	"errors"
	"strings"

	"pdf-summary/internal/utils/text"
)

// ErrEmptyInput indicates the document text contains nothing to chunk.
var ErrEmptyInput = errors.New("document text is empty")

// Chunk is a bounded contiguous excerpt of the source document.
// Chunks are produced once per summarization request and never mutated.
type Chunk struct {
	// Index is the ordinal position of the chunk within the document.
	Index int

	// Text is the chunk content. Concatenating all chunk texts in index
	// order reproduces the original document exactly.
	Text string

	// EstimatedUnits is the unit estimate for Text at the time of splitting.
	EstimatedUnits int

	// Oversize marks a chunk whose single atomic segment (a table region)
	// exceeds the budget and could not be split without breaking the table.
	Oversize bool
}

// Split partitions documentText into ordered chunks of at most maxUnits
// estimated units each.
//
// The walk is greedy: paragraph segments accumulate into the current chunk
// while they fit; when the next segment would overflow, the chunk is closed.
// A single paragraph larger than the budget is hard-split on sentence
// boundaries and, as a last resort, on rune windows, so no text is dropped or
// duplicated and no chunk is empty. Table regions (pipe-delimited rows, as
// found in markdown-style source material) are atomic: a table larger than
// the budget becomes one oversize chunk rather than being broken mid-row.
// Text that comes out of pdftotext has no pipe delimiters, so for PDF input
// this path only triggers on documents that already carried such markup.
//
// Returns ErrEmptyInput if documentText has no content.
func Split(documentText string, maxUnits int) ([]Chunk, error) {
	if strings.TrimSpace(documentText) == "" {
		return nil, ErrEmptyInput
	}
	if maxUnits < 1 {
		maxUnits = 1
	}

	var pieces []piece
	for _, seg := range segment(documentText) {
		if text.EstimateUnits(seg.text) <= maxUnits {
			pieces = append(pieces, seg)
			continue
		}
		if seg.table {
			// Keep the table whole; the overflow is flagged, not hidden.
			pieces = append(pieces, seg)
			continue
		}
		pieces = append(pieces, hardSplit(seg.text, maxUnits)...)
	}

	chunks := assemble(pieces, maxUnits)
	if len(chunks) == 0 {
		return nil, ErrEmptyInput
	}
	return chunks, nil
}

// piece is a unit of text the assembler may place but never split.
type piece struct {
	text  string
	table bool
}

// segment splits the document into paragraph segments. Each segment keeps its
// trailing separator so that concatenation is lossless. A paragraph whose
// first visible character is a pipe is treated as a table region.
func segment(documentText string) []piece {
	parts := strings.SplitAfter(documentText, "\n\n")
	segs := make([]piece, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		segs = append(segs, piece{
			text:  p,
			table: strings.HasPrefix(strings.TrimLeft(p, " \t\n"), "|"),
		})
	}
	return segs
}

// hardSplit breaks an oversized paragraph into pieces that each fit the
// budget, first on sentence boundaries and then on rune windows.
func hardSplit(s string, maxUnits int) []piece {
	var out []piece
	for _, sentence := range strings.SplitAfter(s, ". ") {
		if sentence == "" {
			continue
		}
		if text.EstimateUnits(sentence) <= maxUnits {
			out = append(out, piece{text: sentence})
			continue
		}
		for _, window := range runeWindows(sentence, maxUnits) {
			out = append(out, piece{text: window})
		}
	}
	return out
}

// runeWindows slices s into consecutive windows, each within the unit budget,
// cutting only at rune boundaries.
func runeWindows(s string, maxUnits int) []string {
	var windows []string
	var b strings.Builder
	for _, r := range s {
		if b.Len() > 0 && text.EstimateUnits(b.String()+string(r)) > maxUnits {
			windows = append(windows, b.String())
			b.Reset()
		}
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		windows = append(windows, b.String())
	}
	return windows
}

// assemble greedily packs pieces into chunks within the budget. Oversize table
// pieces always get a chunk of their own.
func assemble(pieces []piece, maxUnits int) []Chunk {
	var chunks []Chunk
	var b strings.Builder

	flush := func(oversize bool) {
		if b.Len() == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Index:          len(chunks),
			Text:           b.String(),
			EstimatedUnits: text.EstimateUnits(b.String()),
			Oversize:       oversize,
		})
		b.Reset()
	}

	for _, p := range pieces {
		if p.table && text.EstimateUnits(p.text) > maxUnits {
			flush(false)
			b.WriteString(p.text)
			flush(true)
			continue
		}
		if b.Len() > 0 && text.EstimateUnits(b.String()+p.text) > maxUnits {
			flush(false)
		}
		b.WriteString(p.text)
	}
	flush(false)

	return chunks
}
