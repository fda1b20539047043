package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"contacts-directory/application/user"
	"contacts-directory/constant"
	utilsContext "contacts-directory/utils/context"
	"contacts-directory/utils/errors"
)

// AuthMiddleware resolves the request principal from the Bearer token using
// UserApp and embeds it into the context. Public endpoints (register, login,
// the public directory, swagger) pass through anonymously; everything else
// requires a valid session.
func AuthMiddleware(userApp user.UserApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			if token == "" {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorized))
				return
			}

			principal, err := userApp.ResolvePrincipal(r.Context(), token)
			if err != nil {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorized))
				return
			}

			ctx := utilsContext.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicPath defines which endpoints are reachable without a token
func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/swagger/") {
		return true
	}
	switch path {
	case "/auth/register", "/auth/login", "/contacts/public":
		return true
	}
	return false
}
