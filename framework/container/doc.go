// Package container provides a small Laravel-style IoC container and the
// service provider lifecycle used to bootstrap the application.
//
// # Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&FormServiceProvider{})
//  3. Boot: registry.Boot(); safe to resolve everything after this
//  4. Serve requests
//
// # Bindings
//
//	c.Bind("form.store", factory)      // new value per Make
//	c.Singleton("metrics", factory)    // built once, on first Make
//	c.Instance("config", cfg)          // pre-built value
//	c.Alias("config", "configuration") // second name for an abstract
//
// # Resolving
//
//	raw := c.Make("metrics")
//	m := container.Resolve[*metrics.Metrics](c, "metrics")
//
// Make panics for an unknown abstract; wiring errors surface at boot rather
// than on a request path.
package container
