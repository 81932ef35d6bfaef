package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscare/complaint-api/internal/core/ports"
)

// AdminHandler handles the admin-only routes: triage, assignment, stats,
// staff provisioning and soft deletion.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type assignRequest struct {
	AssignedTo string `json:"assignedTo"`
	AdminNotes string `json:"adminNotes"`
}

type setStatusRequest struct {
	Status     string `json:"status" validate:"required,oneof=pending in-progress resolved rejected"`
	AdminNotes string `json:"adminNotes"`
}

type createStaffRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Department string `json:"department"`
}

type updateStaffRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email" validate:"omitempty,email"`
	Department string `json:"department"`
}

// ListComplaints handles GET /api/admin/complaints.
//
// @Summary      List all non-deleted complaints
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Filter by status"
// @Param        category  query     string  false  "Filter by category"
// @Param        search    query     string  false  "Case-insensitive title/description search"
// @Param        page      query     int     false  "1-based page number"
// @Param        limit     query     int     false  "Page size (default 10, max 100)"
// @Success      200  {object}  listResponse
// @Router       /api/admin/complaints [get]
func (h *AdminHandler) ListComplaints(c echo.Context) error {
	result, err := h.service.ListComplaints(c.Request().Context(), listInputFromQuery(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newListResponse(result))
}

// GetComplaint handles GET /api/admin/complaints/:id.
//
// @Summary      Get one complaint, regardless of assignment
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Complaint ID"
// @Success      200  {object}  domain.Complaint
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/complaints/{id} [get]
func (h *AdminHandler) GetComplaint(c echo.Context) error {
	complaint, err := h.service.GetComplaint(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, complaint)
}

// Assign handles PUT /api/admin/complaints/:id/assign.
//
// @Summary      Assign or unassign a complaint
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Complaint ID"
// @Param        body  body      assignRequest  true  "Assignee (empty clears) and notes"
// @Success      200  {object}  domain.Complaint
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/admin/complaints/{id}/assign [put]
func (h *AdminHandler) Assign(c echo.Context) error {
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	complaint, err := h.service.Assign(c.Request().Context(), c.Param("id"), ports.AssignComplaintInput{
		AssignedTo: req.AssignedTo,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, complaint)
}

// SetStatus handles PUT /api/admin/complaints/:id/status.
//
// @Summary      Set a complaint's status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Complaint ID"
// @Param        body  body      setStatusRequest  true  "New status and notes"
// @Success      200  {object}  domain.Complaint
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/admin/complaints/{id}/status [put]
func (h *AdminHandler) SetStatus(c echo.Context) error {
	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	complaint, err := h.service.SetStatus(c.Request().Context(), c.Param("id"), ports.SetStatusInput{
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, complaint)
}

// SoftDelete handles DELETE /api/admin/complaints/:id.
//
// @Summary      Soft-delete a resolved complaint
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Complaint ID"
// @Success      204  "deleted"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/complaints/{id} [delete]
func (h *AdminHandler) SoftDelete(c echo.Context) error {
	if err := h.service.SoftDelete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /api/admin/stats.
//
// @Summary      Complaint statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.ComplaintStats
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}

// ListStaff handles GET /api/admin/staff.
//
// @Summary      List staff accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /api/admin/staff [get]
func (h *AdminHandler) ListStaff(c echo.Context) error {
	staff, err := h.service.ListStaff(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, staff)
}

// CreateStaff handles POST /api/admin/staff.
//
// @Summary      Provision a staff account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createStaffRequest  true  "Staff account details"
// @Success      201  {object}  domain.User
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/admin/staff [post]
func (h *AdminHandler) CreateStaff(c echo.Context) error {
	var req createStaffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	staff, err := h.service.CreateStaff(c.Request().Context(), ports.CreateStaffInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, staff)
}

// UpdateStaff handles PUT /api/admin/staff/:id.
//
// @Summary      Update a staff account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Staff user ID"
// @Param        body  body      updateStaffRequest  true  "Fields to change; empty fields keep their value"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/admin/staff/{id} [put]
func (h *AdminHandler) UpdateStaff(c echo.Context) error {
	var req updateStaffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	staff, err := h.service.UpdateStaff(c.Request().Context(), c.Param("id"), ports.UpdateStaffInput{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, staff)
}

// DeleteStaff handles DELETE /api/admin/staff/:id.
//
// @Summary      Delete a staff account without active assignments
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Staff user ID"
// @Success      204  "deleted"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/staff/{id} [delete]
func (h *AdminHandler) DeleteStaff(c echo.Context) error {
	if err := h.service.DeleteStaff(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
