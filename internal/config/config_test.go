package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/billiards-tracker/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BILLIARDS_API_BASE_URLS", "")
	t.Setenv("BILLIARDS_STORAGE", "")
	t.Setenv("BILLIARDS_RECORD_BACKEND", "")
	t.Setenv("BILLIARDS_LOG_LEVEL", "")
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.APIBaseURLs) != 3 || cfg.APIBaseURLs[0] != DefaultAPIBaseURLs[0] {
		t.Fatalf("unexpected default base urls: %v", cfg.APIBaseURLs)
	}
	if cfg.HTTPTimeout != 15*time.Second || cfg.ProbeTimeout != 3*time.Second {
		t.Fatalf("unexpected timeouts: http=%s probe=%s", cfg.HTTPTimeout, cfg.ProbeTimeout)
	}
	if cfg.ConnectionFreshness != 60*time.Second || cfg.ProbeWait != 5*time.Second {
		t.Fatalf("unexpected probe settings: freshness=%s wait=%s", cfg.ConnectionFreshness, cfg.ProbeWait)
	}
	if cfg.ReconnectSettle != time.Second || cfg.ReconnectSupersede != 5*time.Second {
		t.Fatalf("unexpected reconnect settings: settle=%s supersede=%s", cfg.ReconnectSettle, cfg.ReconnectSupersede)
	}
	if cfg.Storage != StorageBadger {
		t.Fatalf("expected badger storage by default, got %q", cfg.Storage)
	}
	if want := filepath.Join("/home/tester", ".billiards", "state"); cfg.BadgerPath != want {
		t.Fatalf("unexpected badger path: %q want %q", cfg.BadgerPath, want)
	}
	if cfg.RecordBackend != RecordBackendKV {
		t.Fatalf("expected kv record backend, got %q", cfg.RecordBackend)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %v", cfg.LogLevel)
	}
}

func TestLoad_BaseURLParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BILLIARDS_API_BASE_URLS", " http://a.local:4000 , https://b.local ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.APIBaseURLs) != 2 || cfg.APIBaseURLs[0] != "http://a.local:4000" || cfg.APIBaseURLs[1] != "https://b.local" {
		t.Fatalf("unexpected base urls: %v", cfg.APIBaseURLs)
	}

	t.Setenv("BILLIARDS_API_BASE_URLS", "ftp://c.local")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-http base url")
	}
}

func TestLoad_DurationValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BILLIARDS_PROBE_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error for BILLIARDS_PROBE_TIMEOUT")
	}

	t.Setenv("BILLIARDS_PROBE_TIMEOUT", "0s")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-positive BILLIARDS_PROBE_TIMEOUT")
	}
}

func TestLoad_StorageValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BILLIARDS_STORAGE", "etcd")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown storage")
	}

	t.Setenv("BILLIARDS_STORAGE", "REDIS")
	t.Setenv("BILLIARDS_REDIS_DB", "2")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Storage != StorageRedis || cfg.RedisDB != 2 {
		t.Fatalf("unexpected redis config: storage=%q db=%d", cfg.Storage, cfg.RedisDB)
	}

	t.Setenv("BILLIARDS_REDIS_DB", "-1")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative BILLIARDS_REDIS_DB")
	}
}

func TestLoad_RecordBackendValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BILLIARDS_RECORD_BACKEND", "sqlite")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown record backend")
	}
}

func TestLoad_PprofDefaultsMetricsAddr(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("METRICS_ADDR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.MetricsAddr != ":6060" {
		t.Fatalf("expected default metrics addr, got %q", cfg.MetricsAddr)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}

	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected dsn from otlp headers: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "billiards-cli")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "billiards-cli" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logging.Level
	}{
		{in: "debug", want: logging.LevelDebug},
		{in: "WARNING", want: logging.LevelWarn},
		{in: "error", want: logging.LevelError},
		{in: "verbose", want: logging.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Fatalf("parseLogLevel(%q)=%v want=%v", tt.in, got, tt.want)
		}
	}
}
