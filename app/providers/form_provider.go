package providers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/km-arc/controlled-form/app/controllers"
	"github.com/km-arc/controlled-form/app/form"
	"github.com/km-arc/controlled-form/framework/app"
	"github.com/km-arc/controlled-form/framework/config"
	"github.com/km-arc/controlled-form/framework/container"
	gohttp "github.com/km-arc/controlled-form/framework/http"
	"github.com/km-arc/controlled-form/framework/metrics"
	"github.com/km-arc/controlled-form/framework/routing"
	"github.com/km-arc/controlled-form/framework/session"
)

const livePath = "/form/live"

// FormServiceProvider wires the registration form: per-visitor stores,
// its controllers and routes, and the idle-session sweeper.
//
// Bound abstracts:
//   - "form.sessions"   → *controllers.Sessions
//   - "form.controller" → *controllers.FormController
type FormServiceProvider struct {
	container.BaseProvider
}

func (p *FormServiceProvider) Register(c *container.Container) {
	c.Singleton("form.sessions", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		logger := container.Resolve[*slog.Logger](c, "log")
		m := container.Resolve[*metrics.Metrics](c, "metrics")

		return session.NewManager(
			func() *form.Store { return NewStore(logger) },
			cfg.Session.IdleTimeout,
			session.WithLogger[*form.Store](logger),
			session.OnCount[*form.Store](m.SetActiveSessions),
		)
	})

	c.Singleton("form.controller", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		return &controllers.FormController{
			Sessions: container.Resolve[*controllers.Sessions](c, "form.sessions"),
			Views:    container.Resolve[*gohttp.ViewEngine](c, "view"),
			Metrics:  container.Resolve[*metrics.Metrics](c, "metrics"),
			Logger:   container.Resolve[*slog.Logger](c, "log"),
			Cookie:   cfg.Session.Cookie,
			Title:    cfg.App.Name,
			LivePath: livePath,
		}
	})
}

func (p *FormServiceProvider) Boot(c *container.Container) {
	cfg := container.Resolve[*config.Config](c, "config")
	fc := container.Resolve[*controllers.FormController](c, "form.controller")
	live := &controllers.LiveController{
		FormController: fc,
		Upgrader:       websocket.Upgrader{CheckOrigin: sameOrigin(cfg.CORS.AllowedOrigins)},
	}

	r := container.Resolve[*routing.Router](c, "router")
	r.Get("/", fc.Show)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		gohttp.NewResponse(w).Success(map[string]any{"status": "ok"})
	})
	r.Prefix("/form", func(f *routing.Router) {
		f.Post("/change", fc.Change)
		f.Post("/submit", fc.Submit)
		f.Get("/state", fc.State)
		f.Get("/live", live.Connect)
	})

	sessions := container.Resolve[*controllers.Sessions](c, "form.sessions")
	container.Resolve[*app.Application](c, "app").Background(func(ctx context.Context) {
		sessions.Run(ctx, cfg.Session.SweepInterval)
	})
}

// NewStore creates a Store with the default values and attaches a debug
// observer that logs every state replacement.
func NewStore(logger *slog.Logger) *form.Store {
	store := form.NewStore(form.Defaults(), form.InitialTouched())
	store.Subscribe(func(s form.Snapshot) {
		logger.Debug("form state",
			"name", s.Data.Name,
			"email", s.Data.Email,
			"save", s.Data.Save,
			"gender", s.Data.Gender,
			"role", s.Data.Role,
			"touched", s.Touched,
			"canSubmit", s.CanSubmit,
		)
	})
	return store
}

// sameOrigin allows WebSocket upgrades from the page's own host, plus any
// configured CORS origin ("*" allows all).
func sameOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return origin == "http://"+r.Host || origin == "https://"+r.Host
	}
}
