// Package metrics expone contadores Prometheus del motor de documentos.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/inventario-docs/internal/application/inventory"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
)

// Nombres de métricas.
const (
	MetricDocumentsCreated    = "inventario_documents_created_total"
	MetricDocumentScans       = "inventario_document_scans_total"
	MetricDocumentTransitions = "inventario_document_transitions_total"
)

var _ inventory.Recorder = (*PrometheusRecorder)(nil)

// PrometheusRecorder implementa inventory.Recorder con CounterVec.
type PrometheusRecorder struct {
	documentsCreated *prometheus.CounterVec
	scans            *prometheus.CounterVec
	transitions      *prometheus.CounterVec
}

// NewPrometheusRecorder crea y registra los contadores en reg.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	r := &PrometheusRecorder{
		documentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricDocumentsCreated,
			Help: "Documentos creados por tipo.",
		}, []string{"type"}),
		scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricDocumentScans,
			Help: "Escaneos de código de barras por resultado (created, merged, rejected).",
		}, []string{"result"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricDocumentTransitions,
			Help: "Transiciones de estado de documentos por estado destino.",
		}, []string{"status"}),
	}
	for _, c := range []prometheus.Collector{r.documentsCreated, r.scans, r.transitions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *PrometheusRecorder) DocumentCreated(docType entity.DocumentType) {
	r.documentsCreated.WithLabelValues(string(docType)).Inc()
}

func (r *PrometheusRecorder) ItemScanned(result string) {
	r.scans.WithLabelValues(result).Inc()
}

func (r *PrometheusRecorder) StatusChanged(status string) {
	r.transitions.WithLabelValues(status).Inc()
}
