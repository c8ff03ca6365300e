// Package metrics defines observability hooks for the content service.
// The Recorder interface keeps instrumentation optional: components take
// a Recorder and callers that don't care pass NoopRecorder.
package metrics

import "time"

// CacheResult labels cache lookups.
type CacheResult string

const (
	CacheHit  CacheResult = "hit"
	CacheMiss CacheResult = "miss"
)

// Recorder receives operational events. Implementations must be safe for
// concurrent use.
type Recorder interface {
	IncCacheLookup(key string, result CacheResult)
	IncRender(kind string, success bool)
	ObserveUpstreamDuration(endpoint string, d time.Duration, success bool)
}

// NoopRecorder is the default Recorder when metrics are not configured.
type NoopRecorder struct{}

func (NoopRecorder) IncCacheLookup(string, CacheResult)                  {}
func (NoopRecorder) IncRender(string, bool)                              {}
func (NoopRecorder) ObserveUpstreamDuration(string, time.Duration, bool) {}

var _ Recorder = NoopRecorder{}
