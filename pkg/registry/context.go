package registry

import "context"

// key is an unexported type to prevent collisions with context keys from other packages.
type key struct{}

var registryKey = key{}

// NewContext returns a new context carrying r.
func NewContext(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryKey, r)
}

// FromContext returns the registry carried by ctx, or Default() if there is none.
func FromContext(ctx context.Context) *Registry {
	if ctx != nil {
		if r, ok := ctx.Value(registryKey).(*Registry); ok && r != nil {
			return r
		}
	}
	return Default()
}
