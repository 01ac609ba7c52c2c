package observability

import (
	"strconv"
	"sync"
	"time"
)

// TriageOutcome labels the terminal state of a triage run.
type TriageOutcome string

const (
	TriageOutcomeAutoClosed TriageOutcome = "auto_closed"
	TriageOutcomeHandedOff  TriageOutcome = "handed_off"
	TriageOutcomeFailed     TriageOutcome = "failed"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu            sync.Mutex
	requestCount  map[string]int64
	errorCount    map[string]int64
	triageStarted int64
	triageOutcome map[TriageOutcome]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:  make(map[string]int64),
		errorCount:    make(map[string]int64),
		triageOutcome: make(map[TriageOutcome]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordTriageStarted counts pipeline invocations.
func (m *Metrics) RecordTriageStarted() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triageStarted++
}

// RecordTriageOutcome counts terminal pipeline states.
func (m *Metrics) RecordTriageOutcome(outcome TriageOutcome) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triageOutcome[outcome]++
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
