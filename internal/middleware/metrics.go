// middleware/metrics.go
// Hitung request per route + status untuk /metrics

package middleware

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
)

type counterKey struct {
	Route  string
	Method string
	Status int
}

// RequestCounter counts finished requests. Routes are labelled with the mux
// path template so that /api/history/3 and /api/history/4 share a series.
type RequestCounter struct {
	mu     sync.Mutex
	counts map[counterKey]uint64
}

func NewRequestCounter() *RequestCounter {
	return &RequestCounter{counts: map[counterKey]uint64{}}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func (c *RequestCounter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		c.mu.Lock()
		c.counts[counterKey{Route: route, Method: r.Method, Status: rec.status}]++
		c.mu.Unlock()
	})
}

// Count returns the current value of one series.
func (c *RequestCounter) Count(route, method string, status int) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[counterKey{Route: route, Method: method, Status: status}]
}

// WriteProm writes the counters in Prometheus text format.
func (c *RequestCounter) WriteProm(w io.Writer) {
	c.mu.Lock()
	keys := make([]counterKey, 0, len(c.counts))
	for k := range c.counts {
		keys = append(keys, k)
	}
	snapshot := make(map[counterKey]uint64, len(keys))
	for _, k := range keys {
		snapshot[k] = c.counts[k]
	}
	c.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Route != keys[j].Route {
			return keys[i].Route < keys[j].Route
		}
		if keys[i].Method != keys[j].Method {
			return keys[i].Method < keys[j].Method
		}
		return keys[i].Status < keys[j].Status
	})

	fmt.Fprint(w, "# HELP http_requests_total Finished HTTP requests.\n# TYPE http_requests_total counter\n")
	for _, k := range keys {
		fmt.Fprintf(w, "http_requests_total{route=%s,method=%s,status=\"%d\"} %d\n",
			strconv.Quote(k.Route), strconv.Quote(k.Method), k.Status, snapshot[k])
	}
}
