package callback

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

// gatherValues scrapes m through a fresh prometheus registry and
// returns metric values keyed by fully-qualified name.
func gatherValues(t *testing.T, m *Metrics) map[string]float64 {
	t.Helper()

	promReg := prometheus.NewPedanticRegistry()
	if err := promReg.Register(m); err != nil {
		t.Fatalf("registering collector: %v", err)
	}
	families, err := promReg.Gather()
	if err != nil {
		t.Fatalf("gathering metrics: %v", err)
	}

	values := make(map[string]float64)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			switch {
			case metric.GetGauge() != nil:
				values[family.GetName()] = metric.GetGauge().GetValue()
			case metric.GetCounter() != nil:
				values[family.GetName()] = metric.GetCounter().GetValue()
			}
		}
	}
	return values
}

func TestMetricsCollect(t *testing.T) {
	reg := NewRegistry()
	m := NewMetrics(reg)

	rcv := &receiver{}
	live := Register(reg, rcv, handleString)
	liveRef := live.ToRefThreadBound()
	disposed := Register(reg, rcv, handleString)
	disposedRef := disposed.ToRefThreadBound()
	disposed.Dispose()

	liveRef.Call("click")
	liveRef.Call("click")
	disposedRef.Call("click") // missed

	d := &dispatcher{registry: reg}
	d.run = func(d *dispatcher, _ string) {
		d.registry.RunWhenUnlocked(func() {})
	}
	Register(reg, d, dispatch).ToRefThreadBound().Call("event")

	values := gatherValues(t, m)
	want := map[string]float64{
		"lignin_callback_registry_exhaustion":          0,
		"lignin_callback_registrations_live":           2,
		"lignin_callback_registrations_total":          3,
		"lignin_callback_deregistrations_total":        1,
		"lignin_callback_invocations_total":            3,
		"lignin_callback_invocations_missed_total":     1,
		"lignin_callback_continuations_deferred_total": 1,
	}
	for name, wantValue := range want {
		got, ok := values[name]
		if !ok {
			t.Errorf("metric %s not collected", name)
			continue
		}
		if got != wantValue {
			t.Errorf("%s = %v, want %v", name, got, wantValue)
		}
	}
}

func TestMetricsOptions(t *testing.T) {
	reg := NewRegistry()
	m := NewMetrics(reg,
		WithNamespace("app"),
		WithSubsystem("events"),
		WithConstLabels(prometheus.Labels{"registry": "main"}),
	)

	values := gatherValues(t, m)
	if _, ok := values["app_events_registrations_live"]; !ok {
		t.Errorf("namespaced metric not collected; got %v", values)
	}
}
