package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNoop_NeverPanics(t *testing.T) {
	r := Noop()
	r.IncAdmitted()
	r.IncEvicted()
	r.IncFull()
	r.ObserveWeight(3.14)
}

func TestPrometheus_RecordsAgainstACustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewPrometheus(reg, "test")

	r.IncAdmitted()
	r.IncAdmitted()
	r.IncEvicted()
	r.ObserveWeight(42)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected at least one registered metric family")
	}

	var sawAdmitted, sawWeight bool
	for _, fam := range families {
		switch fam.GetName() {
		case "test_priocache_admitted_total":
			sawAdmitted = true
			if got := fam.GetMetric()[0].GetCounter().GetValue(); got != 2 {
				t.Fatalf("admitted counter = %v, want 2", got)
			}
		case "test_priocache_weight":
			sawWeight = true
			if got := fam.GetMetric()[0].GetGauge().GetValue(); got != 42 {
				t.Fatalf("weight gauge = %v, want 42", got)
			}
		}
	}
	if !sawAdmitted || !sawWeight {
		t.Fatalf("missing expected metric families, got %d families", len(families))
	}
}
