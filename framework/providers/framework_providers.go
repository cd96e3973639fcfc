package providers

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/km-arc/controlled-form/framework/config"
	"github.com/km-arc/controlled-form/framework/container"
	gohttp "github.com/km-arc/controlled-form/framework/http"
	"github.com/km-arc/controlled-form/framework/metrics"
	"github.com/km-arc/controlled-form/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the configuration from the environment.
//
// Bound abstracts:
//   - "config" → *config.Config (alias "configuration")
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	app.Singleton("config", func(c *container.Container) any {
		return config.Load(envFiles...)
	})
	app.Alias("config", "configuration")
}

// ── LogServiceProvider ────────────────────────────────────────────────────────

// LogServiceProvider builds the application logger: text to stderr, DEBUG
// level when APP_DEBUG is on. It also becomes slog's default.
//
// Bound abstracts:
//   - "log" → *slog.Logger
type LogServiceProvider struct {
	container.BaseProvider
}

func (p *LogServiceProvider) Register(app *container.Container) {
	app.Singleton("log", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		level := slog.LevelInfo
		if cfg.App.Debug {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
			With("app", cfg.App.Name, "env", cfg.App.Env)
		slog.SetDefault(logger)
		return logger
	})
}

// ── MetricsServiceProvider ────────────────────────────────────────────────────

// MetricsServiceProvider registers the Prometheus collectors and, when
// enabled, exposes them on the router at METRICS_PATH.
//
// Bound abstracts:
//   - "metrics" → *metrics.Metrics
type MetricsServiceProvider struct {
	container.BaseProvider
}

func (p *MetricsServiceProvider) Register(app *container.Container) {
	app.Singleton("metrics", func(*container.Container) any {
		return metrics.New()
	})
}

func (p *MetricsServiceProvider) Boot(app *container.Container) {
	cfg := container.Resolve[*config.Config](app, "config")
	if !cfg.Metrics.Enabled {
		return
	}
	m := container.Resolve[*metrics.Metrics](app, "metrics")
	container.Resolve[*routing.Router](app, "router").Handle(cfg.Metrics.Path, m.Handler())
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router with CORS and request
// metrics installed ahead of any route.
//
// Bound abstracts:
//   - "router" → *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		r := routing.New()
		r.CORS(cfg.CORS.AllowedOrigins)
		if cfg.Metrics.Enabled {
			r.Middleware(container.Resolve[*metrics.Metrics](c, "metrics").Middleware)
		}
		return r
	})
}

// ── ViewServiceProvider ───────────────────────────────────────────────────────

// ViewServiceProvider parses the templates in FS once.
//
// Bound abstracts:
//   - "view" → *gohttp.ViewEngine
type ViewServiceProvider struct {
	container.BaseProvider
	FS       fs.FS
	Patterns []string // default: "*.html"
}

func (p *ViewServiceProvider) Register(app *container.Container) {
	fsys, patterns := p.FS, p.Patterns
	app.Singleton("view", func(*container.Container) any {
		ve, err := gohttp.NewViewEngine(fsys, patterns...)
		if err != nil {
			panic(err)
		}
		return ve
	})
}
