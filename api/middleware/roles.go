package middleware

import (
	"net/http"

	"github.com/ratewise/ratewise-backend/api/responses"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
	"github.com/ratewise/ratewise-backend/pkg/logger"
)

// RequireRole gates a route group on exact role membership. There is no
// role hierarchy: an admin calling a user route is rejected like anyone
// else.
func RequireRole(role enums.Role, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != string(role) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
