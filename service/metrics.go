package service

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type documentMetrics struct {
	processed   *prometheus.CounterVec
	warnings    *prometheus.CounterVec
	ocrFallback prometheus.Counter
	duration    prometheus.Histogram
	inFlight    prometheus.Gauge
}

// Singleton so repeated service construction in tests does not double register.
var (
	docMetricsOnce     sync.Once
	docMetricsInstance *documentMetrics
	docMetricsRegistry = prometheus.DefaultRegisterer
)

func newDocumentMetrics() *documentMetrics {
	docMetricsOnce.Do(func() {
		factory := promauto.With(docMetricsRegistry)
		docMetricsInstance = &documentMetrics{
			processed: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "financial_aid_documents_processed_total",
				Help: "Documents processed, by final status and detected form type",
			}, []string{"status", "form_type"}),
			warnings: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "financial_aid_validation_warnings_total",
				Help: "Validation warnings raised during extraction, by field and severity",
			}, []string{"field", "severity"}),
			ocrFallback: factory.NewCounter(prometheus.CounterOpts{
				Name: "financial_aid_ocr_fallback_total",
				Help: "Pages that were re-recognized by the fallback OCR provider",
			}),
			duration: factory.NewHistogram(prometheus.HistogramOpts{
				Name:    "financial_aid_document_duration_seconds",
				Help:    "Time taken to recognize and extract one document",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			}),
			inFlight: factory.NewGauge(prometheus.GaugeOpts{
				Name: "financial_aid_documents_in_flight",
				Help: "Documents currently being processed",
			}),
		}
	})
	return docMetricsInstance
}

// resetDocumentMetricsForTest points the metrics at a fresh registry
func resetDocumentMetricsForTest() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	docMetricsRegistry = reg
	docMetricsInstance = nil
	docMetricsOnce = sync.Once{}
	return reg
}
