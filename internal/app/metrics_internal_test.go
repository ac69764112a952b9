package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/rangler/pkg/progress"
)

func TestMetricsHandler(t *testing.T) {
	t.Parallel()

	reg := newMetricsRegistry()
	obs := progress.NewPrometheusObserver(reg)
	obs.Observe(progress.Snapshot{BytesRead: 42, LinesRead: 2, StoredBytes: 7})

	srv := httptest.NewServer(newMetricsHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics") //nolint:noctx
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "rangler_bytes_read_total 42")
	assert.Contains(t, string(body), "rangler_lines_read_total 2")
	assert.Contains(t, string(body), "rangler_stored_bytes 7")
	assert.Contains(t, string(body), "go_goroutines")
}
