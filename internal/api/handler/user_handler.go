package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscare/complaint-api/internal/core/ports"
)

// UserHandler handles the profile routes available to any authenticated
// actor.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type updateProfileRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
}

// Profile handles GET /api/users/profile.
//
// @Summary      Get the caller's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /api/users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.service.Profile(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /api/users/profile. Department changes only take
// effect for staff accounts.
//
// @Summary      Update the caller's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change; empty fields keep their value"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  map[string]string
// @Router       /api/users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), actor.ID, req.Name, req.Department)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// ListStaff handles GET /api/users/staff.
//
// @Summary      List staff members
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /api/users/staff [get]
func (h *UserHandler) ListStaff(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}

	staff, err := h.service.ListStaff(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, staff)
}
