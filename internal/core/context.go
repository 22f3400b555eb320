package core

import "log/slog"

// CountryResolver turns a free-text country name into an ISO3 code.
// Implementations must never fail: an unresolvable name returns ("", false).
type CountryResolver interface {
	Resolve(name string) (iso3 string, exact bool)
}

// CleanEnv carries the collaborators a cleaner may need.
type CleanEnv struct {
	Resolver CountryResolver
	Logger   *slog.Logger
}

// Log returns the configured logger or the default one.
func (e CleanEnv) Log() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
