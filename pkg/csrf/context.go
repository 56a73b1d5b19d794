package csrf

import (
	"context"
	"html/template"
)

type (
	tokenContextKey     struct{}
	attributeContextKey struct{ name string }
)

type tokenValue struct {
	token string
	input string
}

func (g *Guard) withToken(ctx context.Context, token string) context.Context {
	ctx = context.WithValue(ctx, tokenContextKey{}, tokenValue{token: token, input: g.cfg.InputKey})
	return context.WithValue(ctx, attributeContextKey{g.cfg.AttributeName}, token)
}

// TokenFromContext returns the token exposed by the middleware.
func TokenFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(tokenContextKey{}).(tokenValue)
	return v.token, ok
}

// AttributeFromContext returns the token stored under a configured attribute name.
func AttributeFromContext(ctx context.Context, name string) (string, bool) {
	token, ok := ctx.Value(attributeContextKey{name}).(string)
	return token, ok
}

// TemplateField renders a hidden form input carrying the token.
// It returns an empty string when no token is in ctx.
func TemplateField(ctx context.Context) template.HTML {
	v, ok := ctx.Value(tokenContextKey{}).(tokenValue)
	if !ok {
		return ""
	}
	return template.HTML(`<input type="hidden" name="` + template.HTMLEscapeString(v.input) +
		`" value="` + template.HTMLEscapeString(v.token) + `">`)
}
