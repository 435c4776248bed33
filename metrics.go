package clustergo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    roundCounter prometheus.Counter
//	    runHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordRound(pairsScanned int, duration time.Duration, err error) {
//	    p.roundCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordRound is called after each merge round.
	// pairsScanned is the number of cluster pairs scored, duration is the
	// round time, err is nil if the round succeeded.
	RecordRound(pairsScanned int, duration time.Duration, err error)

	// RecordRun is called once after a clustering run finishes.
	// rounds is the number of merges performed, clusters is the final
	// cluster count, duration is the total time taken.
	RecordRun(rounds, clusters int, duration time.Duration, err error)

	// RecordLoad is called after a corpus load.
	// images is the number of images loaded, duration is the time taken.
	RecordLoad(images int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRound(int, time.Duration, error)    {}
func (NoopMetricsCollector) RecordRun(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RoundCount      atomic.Int64
	RoundErrors     atomic.Int64
	PairsScanned    atomic.Int64
	RoundTotalNanos atomic.Int64
	RunCount        atomic.Int64
	RunErrors       atomic.Int64
	RunTotalNanos   atomic.Int64
	LoadCount       atomic.Int64
	LoadErrors      atomic.Int64
	ImagesLoaded    atomic.Int64
}

// RecordRound implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRound(pairsScanned int, duration time.Duration, err error) {
	b.RoundCount.Add(1)
	b.PairsScanned.Add(int64(pairsScanned))
	b.RoundTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RoundErrors.Add(1)
	}
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(rounds, clusters int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(images int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.ImagesLoaded.Add(int64(images))
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RoundCount:    b.RoundCount.Load(),
		RoundErrors:   b.RoundErrors.Load(),
		PairsScanned:  b.PairsScanned.Load(),
		RoundAvgNanos: b.getAvgRoundNanos(),
		RunCount:      b.RunCount.Load(),
		RunErrors:     b.RunErrors.Load(),
		RunAvgNanos:   b.getAvgRunNanos(),
		LoadCount:     b.LoadCount.Load(),
		LoadErrors:    b.LoadErrors.Load(),
		ImagesLoaded:  b.ImagesLoaded.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRoundNanos() int64 {
	count := b.RoundCount.Load()
	if count == 0 {
		return 0
	}
	return b.RoundTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RoundCount    int64
	RoundErrors   int64
	PairsScanned  int64
	RoundAvgNanos int64
	RunCount      int64
	RunErrors     int64
	RunAvgNanos   int64
	LoadCount     int64
	LoadErrors    int64
	ImagesLoaded  int64
}
