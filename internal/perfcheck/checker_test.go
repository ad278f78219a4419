package perfcheck

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"perfserver/internal/http/handler"
	"perfserver/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startServer serves the real endpoints on a loopback port.
func startServer(t *testing.T, delay time.Duration) string {
	t.Helper()

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          handler.ErrorHandler(),
	})
	handler.RegisterRoutes(app, service.NewEndpointService(delay))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String()
}

func TestChecker_DefaultBudgetAgainstServer(t *testing.T) {
	baseURL := startServer(t, 300*time.Millisecond)
	checker := NewChecker(baseURL, 5*time.Second)

	b := DefaultBudget()
	b.MaxLatency = 150 * time.Millisecond
	for i := range b.Routes {
		b.Routes[i].MaxLatency = 0
	}

	report, err := checker.Run(context.Background(), b)
	require.NoError(t, err)
	require.Len(t, report.Results, 6)

	passed := map[string]bool{}
	for _, r := range report.Results {
		passed[r.Path] = r.Passed
		assert.Equal(t, http.StatusOK, r.Status, r.Path)
	}

	assert.True(t, passed["/fast"])
	assert.True(t, passed["/another-fast"])
	assert.True(t, passed["/fast-post"])
	assert.True(t, passed["/fast-put"])
	assert.False(t, passed["/slow"])
	assert.False(t, passed["/slow-delete"])

	assert.Equal(t, 2, report.Failed)
	assert.False(t, report.OK())
}

func TestChecker_Check(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			b, _ := io.ReadAll(r.Body)
			if r.Header.Get("Content-Type") != "application/json" || string(b) != `{"a":1}` {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.WriteHeader(http.StatusOK)
		case "/sleepy":
			time.Sleep(100 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	checker := NewChecker(srv.URL+"/", time.Second)
	ctx := context.Background()

	t.Run("pass", func(t *testing.T) {
		res := checker.Check(ctx, RouteBudget{Method: http.MethodPost, Path: "/ok", Body: `{"a":1}`, MaxLatency: time.Second})
		assert.True(t, res.Passed, res.Error)
		assert.Equal(t, http.StatusOK, res.Status)
		assert.Equal(t, float64(1000), res.BudgetMS)
	})

	t.Run("over budget", func(t *testing.T) {
		res := checker.Check(ctx, RouteBudget{Method: http.MethodGet, Path: "/sleepy", MaxLatency: 10 * time.Millisecond})
		assert.False(t, res.Passed)
		assert.GreaterOrEqual(t, res.Latency, 100*time.Millisecond)
		assert.Contains(t, res.Error, "exceeds budget")
	})

	t.Run("bad status", func(t *testing.T) {
		res := checker.Check(ctx, RouteBudget{Method: http.MethodGet, Path: "/missing", MaxLatency: time.Second})
		assert.False(t, res.Passed)
		assert.Equal(t, http.StatusNotFound, res.Status)
		assert.Contains(t, res.Error, "unexpected status 404")
	})

	t.Run("timeout", func(t *testing.T) {
		short := NewChecker(srv.URL, 20*time.Millisecond)
		res := short.Check(ctx, RouteBudget{Method: http.MethodGet, Path: "/sleepy", MaxLatency: time.Second})
		assert.False(t, res.Passed)
		assert.Zero(t, res.Status)
		assert.NotEmpty(t, res.Error)
	})
}

func TestChecker_RunInvalidBudget(t *testing.T) {
	checker := NewChecker("http://127.0.0.1:1", time.Second)

	_, err := checker.Run(context.Background(), Budget{})
	assert.ErrorIs(t, err, ErrInvalidBudget)
}

func TestChecker_RunCancelled(t *testing.T) {
	checker := NewChecker("http://127.0.0.1:1", time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := checker.Run(ctx, DefaultBudget())
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Empty(t, report.Results)
}
