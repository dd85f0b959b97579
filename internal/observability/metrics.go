package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps per-route request and error counters in memory. The process
// is the unit of aggregation; nothing is exported, counters reset on restart.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]int64
	latency  map[string]time.Duration
	errors   map[string]int64
}

// NewMetrics returns an empty counter set.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]int64),
		latency:  make(map[string]time.Duration),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts one completed request and accumulates its latency
// under a route|method|status key.
func (m *Metrics) RecordRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	key := requestKey(route, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[key]++
	m.latency[key] += elapsed
}

// RecordError counts one rendered error under a route|method|code key.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[route+"|"+method+"|"+code]++
}

func requestKey(route, method string, status int) string {
	return route + "|" + method + "|" + strconv.Itoa(status)
}
