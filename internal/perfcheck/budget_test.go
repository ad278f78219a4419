package perfcheck

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBudget(t *testing.T) {
	b := DefaultBudget()

	require.Len(t, b.Routes, 6)
	assert.Equal(t, DefaultMaxLatency, b.MaxLatency)

	paths := make([]string, 0, len(b.Routes))
	for _, r := range b.Routes {
		paths = append(paths, r.Method+" "+r.Path)
	}
	assert.ElementsMatch(t, []string{
		"GET /fast", "GET /slow", "GET /another-fast",
		"POST /fast-post", "PUT /fast-put", "DELETE /slow-delete",
	}, paths)
}

func TestParseBudget(t *testing.T) {
	raw := []byte(`
max_latency: 300ms
routes:
  - method: get
    path: /fast
    max_latency: 50ms
  - path: /slow
  - method: POST
    path: /fast-post
    body: '{"a":1}'
`)

	b, err := ParseBudget(raw)
	require.NoError(t, err)

	assert.Equal(t, 300*time.Millisecond, b.MaxLatency)
	require.Len(t, b.Routes, 3)

	assert.Equal(t, http.MethodGet, b.Routes[0].Method)
	assert.Equal(t, 50*time.Millisecond, b.Routes[0].MaxLatency)

	assert.Equal(t, http.MethodGet, b.Routes[1].Method)
	assert.Equal(t, 300*time.Millisecond, b.Routes[1].MaxLatency)

	assert.Equal(t, `{"a":1}`, b.Routes[2].Body)
}

func TestParseBudget_Defaults(t *testing.T) {
	b, err := ParseBudget([]byte("routes:\n  - path: /fast\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxLatency, b.Routes[0].MaxLatency)
}

func TestParseBudget_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no routes", "max_latency: 1s\n"},
		{"relative path", "routes:\n  - path: fast\n"},
		{"negative latency", "routes:\n  - path: /fast\n    max_latency: -1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBudget([]byte(tt.raw))
			assert.ErrorIs(t, err, ErrInvalidBudget)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseBudget([]byte("routes: [\n"))
		assert.ErrorContains(t, err, "decode budget")
	})

	t.Run("bad duration", func(t *testing.T) {
		_, err := ParseBudget([]byte("routes:\n  - path: /fast\n    max_latency: soon\n"))
		assert.Error(t, err)
	})
}

func TestLoadBudget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.yaml")
	require.NoError(t, os.WriteFile(path, []byte("routes:\n  - method: DELETE\n    path: /slow-delete\n    max_latency: 2s\n"), 0o600))

	b, err := LoadBudget(path)
	require.NoError(t, err)
	require.Len(t, b.Routes, 1)
	assert.Equal(t, 2*time.Second, b.Routes[0].MaxLatency)

	_, err = LoadBudget(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read budget")
}
