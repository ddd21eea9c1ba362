package config

// AdminAuthConfig contains the fixed administrator credential pair.
//
// The pair is configuration, never a literal comparison in logic code.
// PasswordHash is a bcrypt hash; when it is empty the plaintext Password is
// compared in constant time instead, which is intended for development only
// (the server logs a warning at startup in that mode).
type AdminAuthConfig struct {
	Username string `env:"USERNAME" envDefault:"123456"`

	// PasswordHash is a bcrypt hash of the admin password. Preferred.
	PasswordHash string `env:"PASSWORD_HASH"`

	// Password is the dev-only plaintext fallback, used when PasswordHash
	// is unset.
	Password string `env:"PASSWORD" envDefault:"123456"`
}

// UsesPlaintext reports whether the dev plaintext fallback is in effect.
func (a AdminAuthConfig) UsesPlaintext() bool {
	return a.PasswordHash == ""
}
