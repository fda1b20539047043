package constant

type contextKey string

// PrincipalKey carries the authenticated principal in the request context.
const PrincipalKey contextKey = "principal"
