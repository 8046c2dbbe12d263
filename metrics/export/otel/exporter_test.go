package otel

import (
	"context"
	"sync"
	"testing"

	frontdoor "github.com/arkadianet/frontdoor"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type fakeSource struct {
	mu       sync.RWMutex
	snapshot frontdoor.MetricsSnapshot
	dropped  uint64
}

func (f *fakeSource) MetricsSnapshot() frontdoor.MetricsSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := frontdoor.MetricsSnapshot{
		Counters:   make(map[frontdoor.MetricID]uint64, len(f.snapshot.Counters)),
		Histograms: make(map[frontdoor.MetricID][]uint64, len(f.snapshot.Histograms)),
	}
	for k, v := range f.snapshot.Counters {
		out.Counters[k] = v
	}
	for k, buckets := range f.snapshot.Histograms {
		next := make([]uint64, len(buckets))
		copy(next, buckets)
		out.Histograms[k] = next
	}
	return out
}

func (f *fakeSource) AuditDropped() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dropped
}

func TestExporterRegistersAndCollects(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("frontdoor-test")

	src := &fakeSource{
		snapshot: frontdoor.MetricsSnapshot{
			Counters: map[frontdoor.MetricID]uint64{
				frontdoor.MetricSessionIssued: 3,
			},
			Histograms: map[frontdoor.MetricID][]uint64{
				frontdoor.MetricPipelineLatency: {1, 1, 1, 1, 1, 1, 1, 1},
			},
		},
		dropped: 1,
	}

	exp, err := NewOTelExporterFromSource(meter, src)
	if err != nil {
		t.Fatalf("NewOTelExporterFromSource failed: %v", err)
	}
	defer func() {
		if err := exp.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(rm.ScopeMetrics) == 0 {
		t.Fatal("expected collected metrics, got none")
	}
}

func TestExporterRejectsNilSource(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("frontdoor-test")

	if _, err := NewOTelExporterFromSource(meter, nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}

func TestExporterConcurrentCollectNoPanic(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	meter := provider.Meter("frontdoor-test")

	src := &fakeSource{
		snapshot: frontdoor.MetricsSnapshot{
			Counters: map[frontdoor.MetricID]uint64{
				frontdoor.MetricSessionIssued: 1,
			},
			Histograms: map[frontdoor.MetricID][]uint64{
				frontdoor.MetricPipelineLatency: {1, 0, 0, 0, 0, 0, 0, 0},
			},
		},
	}

	exp, err := NewOTelExporterFromSource(meter, src)
	if err != nil {
		t.Fatalf("NewOTelExporterFromSource failed: %v", err)
	}
	defer func() {
		if err := exp.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v uint64) {
			defer wg.Done()
			src.mu.Lock()
			src.snapshot.Counters[frontdoor.MetricSessionIssued] = v
			src.mu.Unlock()

			var rm metricdata.ResourceMetrics
			if err := reader.Collect(context.Background(), &rm); err != nil {
				t.Errorf("Collect failed: %v", err)
			}
		}(uint64(i))
	}
	wg.Wait()
}
