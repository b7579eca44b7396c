package metrics

import (
	"strconv"
	"sync"
	"time"
)

const maxLatencySamples = 100

// Collector keeps in-process request counters and a sliding window of
// latency samples per route.
type Collector struct {
	mu        sync.RWMutex
	counters  map[string]map[string]int64
	latencies map[string][]time.Duration
}

// Default is the collector wired into the request middleware.
var Default = NewCollector()

func NewCollector() *Collector {
	return &Collector{
		counters:  make(map[string]map[string]int64),
		latencies: make(map[string][]time.Duration),
	}
}

func (c *Collector) IncrementRequest(route string, status int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.counters[route]; !exists {
		c.counters[route] = make(map[string]int64)
	}

	c.counters[route][strconv.Itoa(status)]++
}

func (c *Collector) ObserveLatency(route string, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	samples := append(c.latencies[route], duration)

	if len(samples) > maxLatencySamples {
		samples = samples[len(samples)-maxLatencySamples:]
	}

	c.latencies[route] = samples
}

// Counters returns a copy of request counts keyed by route and status code.
func (c *Collector) Counters() map[string]map[string]int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	counters := make(map[string]map[string]int64, len(c.counters))

	for route, statuses := range c.counters {
		counters[route] = make(map[string]int64, len(statuses))
		for status, count := range statuses {
			counters[route][status] = count
		}
	}

	return counters
}

// Latencies returns the average latency in milliseconds per route.
func (c *Collector) Latencies() map[string]float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]float64)

	for route, samples := range c.latencies {
		if len(samples) == 0 {
			continue
		}

		var sum time.Duration
		for _, sample := range samples {
			sum += sample
		}

		result[route] = float64(sum) / float64(len(samples)) / float64(time.Millisecond)
	}

	return result
}
