package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/riskibarqy/billiards-tracker/internal/config"
	"github.com/riskibarqy/billiards-tracker/internal/platform/logging"
)

func TestDebugHandler_ServesMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	promauto.With(reg).NewCounter(prometheus.CounterOpts{Name: "billiards_test_total", Help: "test"}).Inc()

	srv := httptest.NewServer(DebugHandler(reg, false))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "billiards_test_total 1") {
		t.Fatalf("expected counter in metrics output, got %s", body)
	}

	pprofResp, err := http.Get(srv.URL + "/debug/pprof/")
	if err != nil {
		t.Fatalf("get pprof: %v", err)
	}
	pprofResp.Body.Close()
	if pprofResp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected pprof disabled, got status %d", pprofResp.StatusCode)
	}
}

func TestStartDebugServer_DisabledWithoutAddr(t *testing.T) {
	t.Parallel()

	srv := StartDebugServer(config.Config{}, prometheus.NewRegistry(), logging.NewNop())
	if srv != nil {
		t.Fatalf("expected nil server without METRICS_ADDR")
	}
	if err := StopDebugServer(nil, logging.NewNop(), 0); err != nil {
		t.Fatalf("stop nil server: %v", err)
	}
}
