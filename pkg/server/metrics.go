package server

import (
	"net/http"
	"strconv"

	"github.com/getlistd/listd/pkg/metrics"
)

// serverMetrics bundles the daemon's instrumentation.
type serverMetrics struct {
	registry  *metrics.Registry
	requests  *metrics.Counter
	ops       *metrics.Counter
	items     *metrics.Gauge
	itemsDone *metrics.Gauge
}

func newServerMetrics() *serverMetrics {
	reg := metrics.NewRegistry()
	return &serverMetrics{
		registry:  reg,
		requests:  reg.NewCounter("listd_http_requests_total", "HTTP requests served.", "method", "code"),
		ops:       reg.NewCounter("listd_operations_total", "Successful keeper operations by list.", "list", "op"),
		items:     reg.NewGauge("listd_items", "Live items per list.", "list"),
		itemsDone: reg.NewGauge("listd_items_done", "Live items with the done flag set, per list.", "list"),
	}
}

func (m *serverMetrics) observeRequest(method string, status int) {
	if cv, err := m.requests.WithLabels(method, strconv.Itoa(status)); err == nil {
		cv.Inc()
	}
}

func (m *serverMetrics) observeOp(list, op string) {
	if cv, err := m.ops.WithLabels(list, op); err == nil {
		cv.Inc()
	}
}

// metricsHandler refreshes the item gauges from the keeper registry before
// each scrape, then serves the text exposition.
func (s *Server) metricsHandler() http.Handler {
	inner := s.metrics.registry.Handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, info := range s.registry.Overview().Lists {
			if gv, err := s.metrics.items.WithLabels(info.Name); err == nil {
				gv.Set(float64(info.Items))
			}
			if gv, err := s.metrics.itemsDone.WithLabels(info.Name); err == nil {
				gv.Set(float64(info.Done))
			}
		}
		inner.ServeHTTP(w, r)
	})
}
