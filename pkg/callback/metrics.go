package callback

import "github.com/prometheus/client_golang/prometheus"

// MetricsConfig configures the Prometheus metrics for a Registry.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "lignin").
	Namespace string

	// Subsystem is the metrics subsystem (default: "callback").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "lignin",
		Subsystem: "callback",
	}
}

// Metrics exposes a Registry's state as a prometheus.Collector.
//
// Gauges are read from the registry on scrape; counters accumulate on
// the registry itself. Register it with a prometheus.Registerer:
//
//	prometheus.MustRegister(callback.NewMetrics(reg))
type Metrics struct {
	registry *Registry

	exhaustion   *prometheus.Desc
	liveEntries  *prometheus.Desc
	registered   *prometheus.Desc
	deregistered *prometheus.Desc
	invoked      *prometheus.Desc
	missed       *prometheus.Desc
	deferred     *prometheus.Desc
}

// NewMetrics creates a collector over registry.
func NewMetrics(registry *Registry, opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	name := func(n string) string {
		return prometheus.BuildFQName(config.Namespace, config.Subsystem, n)
	}
	return &Metrics{
		registry: registry,
		exhaustion: prometheus.NewDesc(name("registry_exhaustion"),
			"Key space saturation on a linear 0-255 scale.",
			nil, config.ConstLabels),
		liveEntries: prometheus.NewDesc(name("registrations_live"),
			"Number of live callback registrations.",
			nil, config.ConstLabels),
		registered: prometheus.NewDesc(name("registrations_total"),
			"Total callback registrations created.",
			nil, config.ConstLabels),
		deregistered: prometheus.NewDesc(name("deregistrations_total"),
			"Total callback registrations disposed.",
			nil, config.ConstLabels),
		invoked: prometheus.NewDesc(name("invocations_total"),
			"Total callback invocations that found a live entry.",
			nil, config.ConstLabels),
		missed: prometheus.NewDesc(name("invocations_missed_total"),
			"Total callback invocations on already-disposed keys.",
			nil, config.ConstLabels),
		deferred: prometheus.NewDesc(name("continuations_deferred_total"),
			"Total continuations deferred by RunWhenUnlocked during dispatch.",
			nil, config.ConstLabels),
	}
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.exhaustion
	ch <- m.liveEntries
	ch <- m.registered
	ch <- m.deregistered
	ch <- m.invoked
	ch <- m.missed
	ch <- m.deferred
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(m.exhaustion, prometheus.GaugeValue, float64(m.registry.Exhaustion()))
	ch <- prometheus.MustNewConstMetric(m.liveEntries, prometheus.GaugeValue, float64(m.registry.Len()))
	ch <- prometheus.MustNewConstMetric(m.registered, prometheus.CounterValue, float64(m.registry.registeredTotal.Load()))
	ch <- prometheus.MustNewConstMetric(m.deregistered, prometheus.CounterValue, float64(m.registry.deregisteredTotal.Load()))
	ch <- prometheus.MustNewConstMetric(m.invoked, prometheus.CounterValue, float64(m.registry.invokedTotal.Load()))
	ch <- prometheus.MustNewConstMetric(m.missed, prometheus.CounterValue, float64(m.registry.missedTotal.Load()))
	ch <- prometheus.MustNewConstMetric(m.deferred, prometheus.CounterValue, float64(m.registry.deferredTotal.Load()))
}
