package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// employeeIDFromRequest extracts the authenticated employee id from the
// verified token claims. AuthRequired guarantees the claim is present on
// protected routes.
func employeeIDFromRequest(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	id, ok := claims["employee_id"].(string)
	return id, ok && id != ""
}
