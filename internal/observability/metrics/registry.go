// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Summarization metrics track the map-reduce pipeline
var (
	// DocumentsSummarizedTotal counts summarization requests by outcome
	DocumentsSummarizedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_summarized_total",
			Help: "Total number of document summarization requests by status",
		},
		[]string{"status"},
	)

	// SummarizationDuration measures end-to-end summarization duration
	SummarizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "document_summarization_duration_seconds",
			Help:    "End-to-end time to produce a document summary",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	// DocumentChunks measures how many chunks each document splits into
	DocumentChunks = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "document_chunks",
			Help:    "Number of chunks produced per summarization request",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34, 55, 89},
		},
	)

	// ReduceDepth measures how many reduce passes each request needed
	ReduceDepth = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summarization_reduce_depth",
			Help:    "Number of reduce passes per summarization request",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)

	// ChunksSummarizedTotal counts per-chunk map calls by outcome
	ChunksSummarizedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chunks_summarized_total",
			Help: "Total number of chunk summarization calls by status",
		},
		[]string{"status"},
	)
)

// Extraction metrics track PDF text extraction
var (
	// ExtractionDuration measures PDF text extraction duration
	ExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pdf_extraction_duration_seconds",
			Help:    "Time taken to extract text from an uploaded PDF",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	// ExtractedPages counts pages extracted per document
	ExtractedPages = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pdf_extracted_pages",
			Help:    "Number of pages extracted per document",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		},
	)

	// OCRPagesTotal counts pages that went through the OCR fallback
	OCRPagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pdf_ocr_pages_total",
			Help: "Total number of pages extracted via the OCR fallback",
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)
)
