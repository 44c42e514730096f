package metrics

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Registry holds in-process counters rendered at /metrics in Prometheus
// exposition format.
type Registry struct {
	requestsTotal  atomic.Int64
	successesTotal atomic.Int64
	failuresTotal  atomic.Int64
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) IncRequests() {
	r.requestsTotal.Add(1)
}

func (r *Registry) IncSuccesses() {
	r.successesTotal.Add(1)
}

func (r *Registry) IncFailures() {
	r.failuresTotal.Add(1)
}

func (r *Registry) Requests() int64 {
	return r.requestsTotal.Load()
}

func (r *Registry) Render() string {
	var b strings.Builder

	writeCounter(&b, "excuse_tool_requests_total", "Total number of excuse generation requests", r.requestsTotal.Load())
	writeCounter(&b, "excuse_tool_successes_total", "Total number of successful excuse generations", r.successesTotal.Load())
	writeCounter(&b, "excuse_tool_failures_total", "Total number of failed excuse generations", r.failuresTotal.Load())

	return b.String()
}

func writeCounter(b *strings.Builder, name string, help string, value int64) {
	fmt.Fprintf(b, "# HELP %s %s\n", name, help)
	fmt.Fprintf(b, "# TYPE %s counter\n", name)
	fmt.Fprintf(b, "%s %d\n", name, value)
}
