package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niosHD/symbolator/pkg/cache"
	"github.com/niosHD/symbolator/pkg/canvas"
	"github.com/niosHD/symbolator/pkg/observability"
	"github.com/niosHD/symbolator/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	logger := log.NewWithOptions(&bytes.Buffer{}, log.Options{})
	runner := pipeline.NewRunner(fc, nil, logger)

	srv := httptest.NewServer(newRouter(runner, pipeline.Options{}, logger))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "text/plain", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestServeHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServeRender(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/render/svg?lang=vhdl&title=1", fifoVHDL)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Equal(t, "fifo", resp.Header.Get("X-Symbolator-Entity"))
	assert.Equal(t, "false", resp.Header.Get("X-Symbolator-Cache"))

	resp = post(t, srv.URL+"/render/svg?lang=vhdl&title=1", fifoVHDL)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("X-Symbolator-Cache"))

	resp = post(t, srv.URL+"/render/PNG?lang=vhd&scale=2", fifoVHDL)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestServeRenderErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"unknown format", "/render/gif?lang=vhdl", fifoVHDL, http.StatusBadRequest},
		{"missing lang", "/render/svg", fifoVHDL, http.StatusBadRequest},
		{"bad bool", "/render/svg?lang=vhdl&title=maybe", fifoVHDL, http.StatusBadRequest},
		{"parse error", "/render/svg?lang=vhdl", "entity e is port (a in bit); end;", http.StatusBadRequest},
		{"no entity", "/render/svg?lang=vhdl", "-- empty\n", http.StatusNotFound},
		{"unknown entity", "/render/svg?lang=vhdl&entity=nope", fifoVHDL, http.StatusNotFound},
		{"strict types", "/render/svg?lang=vhdl&strict_types=true",
			"entity odd is port (cnt : in natural range 0 to 255); end;", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestServeMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/render/svg")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

// degradeRecorder collects OnTypeDegraded calls.
type degradeRecorder struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	params []string
}

func (r *degradeRecorder) OnTypeDegraded(_ context.Context, entity, param string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.params = append(r.params, entity+"."+param)
}

func TestServeRenderReportsDegradedTypes(t *testing.T) {
	rec := &degradeRecorder{}
	observability.SetPipelineHooks(rec)
	t.Cleanup(observability.Reset)

	srv := newTestServer(t)
	resp := post(t, srv.URL+"/render/svg?lang=vhdl",
		"entity odd is port (cnt : in natural range 0 to 255; q : out bit); end;")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []string{"odd.cnt"}, rec.params)
}

func TestServeRenderWithoutRSVG(t *testing.T) {
	if canvas.HasRSVG() {
		t.Skip("rsvg-convert is installed")
	}
	srv := newTestServer(t)
	resp := post(t, srv.URL+"/render/pdf?lang=vhdl", fifoVHDL)
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}
