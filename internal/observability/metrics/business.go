package metrics

import (
	"time"
)

// RecordDocumentSummarized records the outcome of one summarization request.
func RecordDocumentSummarized(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	DocumentsSummarizedTotal.WithLabelValues(status).Inc()
}

// RecordSummarizationDuration records the end-to-end time for one request.
// This helps identify performance issues with the map-reduce pipeline.
func RecordSummarizationDuration(duration time.Duration) {
	SummarizationDuration.Observe(duration.Seconds())
}

// RecordChunkCount records how many chunks a document was split into.
func RecordChunkCount(count int) {
	DocumentChunks.Observe(float64(count))
}

// RecordReduceDepth records how many recursive reduce passes a request took.
// Values near the depth ceiling signal pathological document structure.
func RecordReduceDepth(depth int) {
	ReduceDepth.Observe(float64(depth))
}

// RecordChunkSummarized records the result of a single map-phase chunk call.
func RecordChunkSummarized(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	ChunksSummarizedTotal.WithLabelValues(status).Inc()
}

// RecordExtraction records metrics for one PDF extraction.
func RecordExtraction(duration time.Duration, pages int) {
	ExtractionDuration.Observe(duration.Seconds())
	if pages > 0 {
		ExtractedPages.Observe(float64(pages))
	}
}

// RecordOCRPages records how many pages an extraction pushed through OCR.
func RecordOCRPages(count int) {
	if count > 0 {
		OCRPagesTotal.Add(float64(count))
	}
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "insert_document").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
