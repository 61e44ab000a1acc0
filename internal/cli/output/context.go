package output

import "context"

type rendererKey struct{}

// WithRenderer stores r in ctx.
func WithRenderer(ctx context.Context, r *Renderer) context.Context {
	return context.WithValue(ctx, rendererKey{}, r)
}

// FromContext returns the renderer stored in ctx, or nil.
func FromContext(ctx context.Context) *Renderer {
	if ctx == nil {
		return nil
	}
	r, _ := ctx.Value(rendererKey{}).(*Renderer)
	return r
}
