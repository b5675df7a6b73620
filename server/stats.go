package server

import (
	"sync"
	"time"
)

// StatsTracker counts dispatched invocations. Served live through the
// stats://invocations resource.
type StatsTracker struct {
	callsTotal  int64
	errorsTotal int64
	callsByName map[string]int64
	errsByName  map[string]int64
	startTime   time.Time
	mu          sync.RWMutex
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	Timestamp     int64            `json:"timestamp"`
	CallsTotal    int64            `json:"calls_total"`
	ErrorsTotal   int64            `json:"errors_total"`
	CallsByName   map[string]int64 `json:"calls_by_name"`
	ErrorsByName  map[string]int64 `json:"errors_by_name"`
	UptimeSeconds float64          `json:"uptime_seconds"`
}

// NewStatsTracker creates a new tracker starting now.
func NewStatsTracker() *StatsTracker {
	return &StatsTracker{
		callsByName: make(map[string]int64),
		errsByName:  make(map[string]int64),
		startTime:   time.Now(),
	}
}

// Record counts one invocation of name, failed or not.
func (st *StatsTracker) Record(name string, ok bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.callsTotal++
	st.callsByName[name]++
	if !ok {
		st.errorsTotal++
		st.errsByName[name]++
	}
}

// Snapshot returns a copy of the current counters.
func (st *StatsTracker) Snapshot() StatsSnapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return StatsSnapshot{
		Timestamp:     time.Now().Unix(),
		CallsTotal:    st.callsTotal,
		ErrorsTotal:   st.errorsTotal,
		CallsByName:   copyCounts(st.callsByName),
		ErrorsByName:  copyCounts(st.errsByName),
		UptimeSeconds: time.Since(st.startTime).Seconds(),
	}
}

func copyCounts(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
