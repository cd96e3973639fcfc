package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/km-arc/controlled-form/framework/config"
)

// ── helpers ──────────────────────────────────────────────────────────────────

// clearEnv blanks every key Load reads; empty values fall back to defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_NAME", "APP_ENV", "APP_DEBUG", "APP_URL", "APP_PORT",
		"SESSION_COOKIE", "SESSION_IDLE_TIMEOUT", "SESSION_SWEEP_INTERVAL",
		"CORS_ALLOWED_ORIGINS", "METRICS_ENABLED", "METRICS_PATH",
	} {
		t.Setenv(key, "")
	}
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"App.Name", cfg.App.Name, "ControlledForm"},
		{"App.Env", cfg.App.Env, "local"},
		{"App.Debug", cfg.App.Debug, true},
		{"App.Port", cfg.App.Port, "8000"},
		{"Session.Cookie", cfg.Session.Cookie, "form_session"},
		{"Session.IdleTimeout", cfg.Session.IdleTimeout, 30 * time.Minute},
		{"Session.SweepInterval", cfg.Session.SweepInterval, time.Minute},
		{"CORS.AllowedOrigins", cfg.CORS.AllowedOrigins, []string{"*"}},
		{"Metrics.Enabled", cfg.Metrics.Enabled, true},
		{"Metrics.Path", cfg.Metrics.Path, "/metrics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_NAME", "MyForm")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("SESSION_IDLE_TIMEOUT", "5m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := config.Load()

	if cfg.App.Name != "MyForm" {
		t.Errorf("App.Name: got %q want %q", cfg.App.Name, "MyForm")
	}
	if cfg.App.Env != "production" {
		t.Errorf("App.Env: got %q want %q", cfg.App.Env, "production")
	}
	if cfg.App.Port != "9000" {
		t.Errorf("App.Port: got %q want %q", cfg.App.Port, "9000")
	}
	if cfg.Session.IdleTimeout != 5*time.Minute {
		t.Errorf("Session.IdleTimeout: got %v", cfg.Session.IdleTimeout)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, want) {
		t.Errorf("CORS.AllowedOrigins: got %v want %v", cfg.CORS.AllowedOrigins, want)
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("APP_NAME=FromFile\nMETRICS_ENABLED=false\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that are already set, even to "".
	os.Unsetenv("APP_NAME")
	os.Unsetenv("METRICS_ENABLED")
	t.Cleanup(func() {
		os.Unsetenv("APP_NAME")
		os.Unsetenv("METRICS_ENABLED")
	})

	cfg := config.Load(path)
	if cfg.App.Name != "FromFile" {
		t.Errorf("App.Name: got %q want %q", cfg.App.Name, "FromFile")
	}
	if cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should be false from the env file")
	}
}

func TestLoad_AppDebugFalse(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_DEBUG", "false")
	if config.Load().App.Debug {
		t.Error("expected App.Debug to be false")
	}
}

// ── Get / GetBool / GetDuration ─────────────────────────────────────

func TestGet_ReturnsValueOrFallback(t *testing.T) {
	t.Setenv("CUSTOM_KEY", "hello")
	if got := config.Get("CUSTOM_KEY", "default"); got != "hello" {
		t.Errorf("got %q want %q", got, "hello")
	}
	t.Setenv("CUSTOM_KEY", "")
	if got := config.Get("CUSTOM_KEY", "fallback"); got != "fallback" {
		t.Errorf("got %q want %q", got, "fallback")
	}
}

func TestGetBool(t *testing.T) {
	for _, val := range []string{"true", "1", "True", "TRUE"} {
		t.Setenv("BOOL_KEY", val)
		if !config.GetBool("BOOL_KEY", false) {
			t.Errorf("expected true for %q", val)
		}
	}
	t.Setenv("BOOL_KEY", "notabool")
	if !config.GetBool("BOOL_KEY", true) {
		t.Error("expected fallback true")
	}
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		val  string
		want time.Duration
	}{
		{"10s", 10 * time.Second},
		{"garbage", time.Hour},
		{"-5m", time.Hour},
		{"", time.Hour},
	}
	for _, tt := range tests {
		t.Setenv("DUR_KEY", tt.val)
		if got := config.GetDuration("DUR_KEY", time.Hour); got != tt.want {
			t.Errorf("GetDuration(%q) = %v, want %v", tt.val, got, tt.want)
		}
	}
}
