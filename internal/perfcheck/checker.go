package perfcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Result is the outcome of one budgeted request.
type Result struct {
	Method     string        `json:"method"`
	Path       string        `json:"path"`
	Status     int           `json:"status"`
	Latency    time.Duration `json:"-"`
	LatencyMS  float64       `json:"latency_ms"`
	MaxLatency time.Duration `json:"-"`
	BudgetMS   float64       `json:"budget_ms"`
	Passed     bool          `json:"passed"`
	Error      string        `json:"error,omitempty"`
}

// Report collects the results of a run in budget order.
type Report struct {
	Results []Result `json:"results"`
	Failed  int      `json:"failed"`
}

// OK reports whether every route met its budget.
func (r *Report) OK() bool { return r.Failed == 0 }

// Checker issues budgeted requests against one server.
type Checker struct {
	client  *http.Client
	baseURL string
}

// NewChecker returns a Checker for baseURL. Outbound requests are traced and bounded by timeout.
func NewChecker(baseURL string, timeout time.Duration) *Checker {
	return &Checker{
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Run checks every route sequentially so latencies are not skewed by each other.
// It stops early only when ctx is done.
func (c *Checker) Run(ctx context.Context, b Budget) (*Report, error) {
	b.Routes = append([]RouteBudget(nil), b.Routes...)
	if err := b.normalize(); err != nil {
		return nil, err
	}

	report := &Report{Results: make([]Result, 0, len(b.Routes))}
	for _, rb := range b.Routes {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("perfcheck interrupted: %w", err)
		}
		res := c.Check(ctx, rb)
		if !res.Passed {
			report.Failed++
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

// Check issues one request. A route passes when it answers 2xx within its budget.
func (c *Checker) Check(ctx context.Context, rb RouteBudget) Result {
	res := Result{
		Method:     rb.Method,
		Path:       rb.Path,
		MaxLatency: rb.MaxLatency,
		BudgetMS:   millis(rb.MaxLatency),
	}

	var body io.Reader
	if rb.Body != "" {
		body = strings.NewReader(rb.Body)
	}
	req, err := http.NewRequestWithContext(ctx, rb.Method, c.baseURL+rb.Path, body)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		res.Latency = time.Since(start)
		res.LatencyMS = millis(res.Latency)
		res.Error = err.Error()
		return res
	}
	// Latency includes the full body, as a client would see it.
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	res.Latency = time.Since(start)
	res.LatencyMS = millis(res.Latency)
	res.Status = resp.StatusCode

	switch {
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		res.Error = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	case res.Latency > rb.MaxLatency:
		res.Error = fmt.Sprintf("latency %s exceeds budget %s", res.Latency.Round(time.Millisecond), rb.MaxLatency)
	default:
		res.Passed = true
	}
	return res
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
