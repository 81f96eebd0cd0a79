package metrics

import (
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrLabelCountMismatch is returned when the number of label values doesn't
// match the defined labels.
var ErrLabelCountMismatch = fmt.Errorf("label count mismatch")

// MetricType represents the type of a metric.
type MetricType string

const (
	MetricTypeCounter MetricType = "counter"
	MetricTypeGauge   MetricType = "gauge"
)

// Metric is the interface implemented by all metric types.
type Metric interface {
	Name() string
	Help() string
	Type() MetricType
	// Collect returns all metric samples for exposition.
	Collect() []Sample
}

// Sample represents a single metric sample with labels.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// atomicFloat64 stores a float64 as uint64 bits for atomic access.
type atomicFloat64 struct {
	bits uint64
}

func (a *atomicFloat64) Load() float64 {
	return math.Float64frombits(atomic.LoadUint64(&a.bits))
}

func (a *atomicFloat64) Store(val float64) {
	atomic.StoreUint64(&a.bits, math.Float64bits(val))
}

func (a *atomicFloat64) Add(delta float64) {
	for {
		old := atomic.LoadUint64(&a.bits)
		newVal := math.Float64frombits(old) + delta
		if atomic.CompareAndSwapUint64(&a.bits, old, math.Float64bits(newVal)) {
			return
		}
	}
}

// vec holds the value for one label combination.
type vec struct {
	labels map[string]string
	value  atomicFloat64
}

// metricBase is the shared label-vector machinery behind Counter and Gauge.
type metricBase struct {
	name       string
	help       string
	labelNames []string
	mu         sync.RWMutex
	values     map[string]*vec
}

func (m *metricBase) Name() string { return m.name }
func (m *metricBase) Help() string { return m.help }

func (m *metricBase) withLabels(values []string) (*vec, error) {
	if len(values) != len(m.labelNames) {
		return nil, fmt.Errorf("%w: %s expected %d labels, got %d",
			ErrLabelCountMismatch, m.name, len(m.labelNames), len(values))
	}

	key := strings.Join(values, "\x00")
	m.mu.RLock()
	v, ok := m.values[key]
	m.mu.RUnlock()
	if ok {
		return v, nil
	}

	labels := make(map[string]string, len(m.labelNames))
	for i, name := range m.labelNames {
		labels[name] = values[i]
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Double-check after acquiring the write lock.
	if v, ok = m.values[key]; ok {
		return v, nil
	}
	v = &vec{labels: labels}
	m.values[key] = v
	return v, nil
}

func (m *metricBase) collect() []Sample {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	samples := make([]Sample, 0, len(keys))
	for _, k := range keys {
		v := m.values[k]
		samples = append(samples, Sample{Name: m.name, Labels: v.labels, Value: v.value.Load()})
	}
	return samples
}

// Counter is a monotonically increasing metric.
type Counter struct {
	metricBase
}

// Type returns the metric type.
func (c *Counter) Type() MetricType { return MetricTypeCounter }

// Collect returns all samples.
func (c *Counter) Collect() []Sample { return c.collect() }

// Inc increments the unlabeled counter by one.
func (c *Counter) Inc() error { return c.Add(1) }

// Add increases the unlabeled counter. Negative deltas are rejected.
func (c *Counter) Add(delta float64) error {
	if delta < 0 {
		return fmt.Errorf("counter %s cannot be decreased", c.name)
	}
	v, err := c.withLabels(nil)
	if err != nil {
		return err
	}
	v.value.Add(delta)
	return nil
}

// WithLabels returns the counter cell for the given label values.
func (c *Counter) WithLabels(values ...string) (*CounterVec, error) {
	v, err := c.withLabels(values)
	if err != nil {
		return nil, err
	}
	return &CounterVec{v: v}, nil
}

// CounterVec is a counter bound to one label combination.
type CounterVec struct {
	v *vec
}

// Inc increments the cell by one.
func (cv *CounterVec) Inc() { cv.v.value.Add(1) }

// Add increases the cell; negative deltas are ignored.
func (cv *CounterVec) Add(delta float64) {
	if delta >= 0 {
		cv.v.value.Add(delta)
	}
}

// Gauge is a metric that can go up and down.
type Gauge struct {
	metricBase
}

// Type returns the metric type.
func (g *Gauge) Type() MetricType { return MetricTypeGauge }

// Collect returns all samples.
func (g *Gauge) Collect() []Sample { return g.collect() }

// Set sets the unlabeled gauge.
func (g *Gauge) Set(value float64) error {
	v, err := g.withLabels(nil)
	if err != nil {
		return err
	}
	v.value.Store(value)
	return nil
}

// WithLabels returns the gauge cell for the given label values.
func (g *Gauge) WithLabels(values ...string) (*GaugeVec, error) {
	v, err := g.withLabels(values)
	if err != nil {
		return nil, err
	}
	return &GaugeVec{v: v}, nil
}

// GaugeVec is a gauge bound to one label combination.
type GaugeVec struct {
	v *vec
}

// Set sets the cell.
func (gv *GaugeVec) Set(value float64) { gv.v.value.Store(value) }

// Add adjusts the cell by delta.
func (gv *GaugeVec) Add(delta float64) { gv.v.value.Add(delta) }

// Registry holds all registered metrics.
type Registry struct {
	mu      sync.RWMutex
	metrics []Metric
	names   map[string]struct{}
}

// NewRegistry creates a new metric registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// NewCounter creates and registers a new counter.
func (r *Registry) NewCounter(name, help string, labels ...string) *Counter {
	c := &Counter{metricBase{name: name, help: help, labelNames: labels, values: make(map[string]*vec)}}
	r.register(c)
	return c
}

// NewGauge creates and registers a new gauge.
func (r *Registry) NewGauge(name, help string, labels ...string) *Gauge {
	g := &Gauge{metricBase{name: name, help: help, labelNames: labels, values: make(map[string]*vec)}}
	r.register(g)
	return g
}

// register panics on duplicate names, since duplicates produce invalid
// Prometheus output.
func (r *Registry) register(m Metric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.names[m.Name()]; exists {
		panic(fmt.Sprintf("duplicate metric name: %s", m.Name()))
	}
	r.names[m.Name()] = struct{}{}
	r.metrics = append(r.metrics, m)
}

// Handler returns an http.Handler serving the text exposition format.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.mu.RLock()
		metrics := make([]Metric, len(r.metrics))
		copy(metrics, r.metrics)
		r.mu.RUnlock()

		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		for _, m := range metrics {
			writeMetric(w, m)
		}
	})
}

func writeMetric(w http.ResponseWriter, m Metric) {
	samples := m.Collect()
	if len(samples) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "# HELP %s %s\n", m.Name(), escapeHelp(m.Help()))
	_, _ = fmt.Fprintf(w, "# TYPE %s %s\n", m.Name(), m.Type())
	for _, s := range samples {
		if len(s.Labels) == 0 {
			_, _ = fmt.Fprintf(w, "%s %s\n", s.Name, formatFloat(s.Value))
		} else {
			_, _ = fmt.Fprintf(w, "%s{%s} %s\n", s.Name, formatLabels(s.Labels), formatFloat(s.Value))
		}
	}
}

// formatLabels formats labels as key="value",key="value" with sorted keys
// for deterministic output.
func formatLabels(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf(`%s="%s"`, k, escapeLabelValue(labels[k]))
	}
	return strings.Join(parts, ",")
}

func formatFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", v)
}

func escapeHelp(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	return strings.ReplaceAll(s, "\n", "\\n")
}

func escapeLabelValue(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return strings.ReplaceAll(s, "\n", "\\n")
}
