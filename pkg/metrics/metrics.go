// Package metrics define las métricas Prometheus del CRM. Es la única fuente de
// verdad para nombres, labels y textos de ayuda. Las variables promauto se
// registran en el registry por defecto al cargar el paquete; el endpoint
// /metrics las expone vía promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

// HTTPRequestsTotal cuenta las peticiones HTTP atendidas.
// Labels:
//   - method: método HTTP (GET, POST, PATCH, ...)
//   - path: ruta registrada en el router (no la URL cruda, para acotar cardinalidad)
//   - status: código de estado de la respuesta
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total de peticiones HTTP atendidas, por método, ruta y estado.",
	},
	[]string{"method", "path", "status"},
)

// HTTPRequestDuration mide la duración de cada petición.
// Label:
//   - path: ruta registrada en el router
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duración de las peticiones HTTP.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"path"},
)

// LoginsTotal cuenta los intentos de login.
// Label:
//   - result: "ok" o "failed" (sin distinguir causa, igual que la respuesta HTTP)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total de intentos de login, por resultado.",
	},
	[]string{"result"},
)

// LeadMutationsTotal cuenta las mutaciones de leads auditadas.
// Label:
//   - action: "create_lead" o "update_lead"
var LeadMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lead_mutations_total",
		Help:      "Total de mutaciones de leads registradas, por acción.",
	},
	[]string{"action"},
)
