package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	// The Secure attribute is derived per request (TLS or X-Forwarded-Proto).
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`
}
