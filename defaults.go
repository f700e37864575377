package nscache

import "time"

// DefaultTTL applies when Options.DefaultTTL or StoreOptions.TTL is zero.
const DefaultTTL = 10 * time.Minute

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
