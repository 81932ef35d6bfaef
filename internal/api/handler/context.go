package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscare/complaint-api/internal/core/domain"
)

// ctxActor extracts the actor claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both user_id and a
// known role must be present, otherwise the JWT is structurally valid but
// operationally unusable and the request is rejected with 401.
func ctxActor(c echo.Context) (domain.Actor, error) {
	userID, _ := c.Get("user_id").(string)
	roleStr, _ := c.Get("role").(string)
	department, _ := c.Get("department").(string)

	role := domain.Role(roleStr)
	if userID == "" || !role.IsValid() {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	return domain.Actor{ID: userID, Role: role, Department: department}, nil
}
