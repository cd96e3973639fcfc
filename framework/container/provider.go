package container

// ServiceProvider mirrors Laravel's Illuminate\Support\ServiceProvider.
//
// Register binds services and must not resolve other bindings. Boot runs
// after every provider is registered, so it may resolve anything, which is
// where routes are attached.
//
//	type FormServiceProvider struct{ container.BaseProvider }
//
//	func (p *FormServiceProvider) Register(app *container.Container) {
//	    app.Singleton("form.sessions", func(c *container.Container) any { ... })
//	}
//
//	func (p *FormServiceProvider) Boot(app *container.Container) {
//	    router := container.Resolve[*routing.Router](app, "router")
//	    router.Get("/", ...)
//	}
type ServiceProvider interface {
	Register(app *Container)
	Boot(app *Container)
}

// BaseProvider is an embeddable no-op Boot.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) {}

// ProviderRegistry registers and boots ServiceProviders in order.
type ProviderRegistry struct {
	app        *Container
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register calls the provider's Register. Registering the same provider
// twice is a no-op; registering after Boot boots it immediately.
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	r.registered[provider] = true

	provider.Register(r.app)
	r.providers = append(r.providers, provider)

	if r.booted {
		provider.Boot(r.app)
	}
}

// Boot calls Boot on every registered provider, once.
func (r *ProviderRegistry) Boot() {
	if r.booted {
		return
	}
	r.booted = true
	for _, provider := range r.providers {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns the registered providers in registration order.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
