// Package perfcheck drives the test endpoints and compares each response latency to a budget.
package perfcheck

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultMaxLatency is applied to routes that do not set their own budget.
// The slow endpoints are expected to exceed it.
const DefaultMaxLatency = 500 * time.Millisecond

var ErrInvalidBudget = errors.New("invalid budget")

// RouteBudget is one request to issue and the latency it must stay under.
type RouteBudget struct {
	Method     string        `yaml:"method"`
	Path       string        `yaml:"path"`
	Body       string        `yaml:"body,omitempty"`
	MaxLatency time.Duration `yaml:"max_latency,omitempty"`
}

// Budget is the full set of routes checked in one run.
type Budget struct {
	MaxLatency time.Duration `yaml:"max_latency,omitempty"`
	Routes     []RouteBudget `yaml:"routes"`
}

// DefaultBudget covers every test endpoint with DefaultMaxLatency.
func DefaultBudget() Budget {
	return Budget{
		MaxLatency: DefaultMaxLatency,
		Routes: []RouteBudget{
			{Method: http.MethodGet, Path: "/fast"},
			{Method: http.MethodGet, Path: "/slow"},
			{Method: http.MethodGet, Path: "/another-fast"},
			{Method: http.MethodPost, Path: "/fast-post", Body: `{"probe":"post"}`},
			{Method: http.MethodPut, Path: "/fast-put", Body: `{"probe":"put"}`},
			{Method: http.MethodDelete, Path: "/slow-delete", Body: `{"probe":"delete"}`},
		},
	}
}

// LoadBudget reads a YAML budget file. Durations use Go syntax, e.g. "250ms".
func LoadBudget(path string) (Budget, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Budget{}, fmt.Errorf("read budget: %w", err)
	}
	return ParseBudget(raw)
}

// ParseBudget decodes and validates a YAML budget.
func ParseBudget(raw []byte) (Budget, error) {
	var b Budget
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return Budget{}, fmt.Errorf("decode budget: %w", err)
	}
	if err := b.normalize(); err != nil {
		return Budget{}, err
	}
	return b, nil
}

// normalize upper-cases methods, fills missing latencies and rejects unusable routes.
func (b *Budget) normalize() error {
	if b.MaxLatency <= 0 {
		b.MaxLatency = DefaultMaxLatency
	}
	if len(b.Routes) == 0 {
		return fmt.Errorf("%w: no routes", ErrInvalidBudget)
	}
	for i := range b.Routes {
		r := &b.Routes[i]
		r.Method = strings.ToUpper(strings.TrimSpace(r.Method))
		if r.Method == "" {
			r.Method = http.MethodGet
		}
		if !strings.HasPrefix(r.Path, "/") {
			return fmt.Errorf("%w: route %d path %q must start with /", ErrInvalidBudget, i, r.Path)
		}
		if r.MaxLatency < 0 {
			return fmt.Errorf("%w: route %d has negative max_latency", ErrInvalidBudget, i)
		}
		if r.MaxLatency == 0 {
			r.MaxLatency = b.MaxLatency
		}
	}
	return nil
}
