package context

import (
	"context"

	"contacts-directory/constant"
	"contacts-directory/model"
)

// WithPrincipal embeds the authenticated principal into the context.
func WithPrincipal(ctx context.Context, p *model.Principal) context.Context {
	return context.WithValue(ctx, constant.PrincipalKey, p)
}

// GetPrincipal returns the request principal, or nil for anonymous callers.
func GetPrincipal(ctx context.Context) *model.Principal {
	v := ctx.Value(constant.PrincipalKey)
	if v == nil {
		return nil
	}
	p, ok := v.(*model.Principal)
	if !ok {
		return nil
	}
	return p
}
