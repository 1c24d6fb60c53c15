package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workline-hr/hrops-backend/internal/handler/http/response"
)

// AuthRequired rejects requests without a verified access token carrying an
// employee identity. Tokens are issued by the external identity provider.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing access token")
				return
			}

			employeeID, ok := claims["employee_id"].(string)
			if !ok || employeeID == "" {
				response.Unauthorized(w, "Token does not identify an employee")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
