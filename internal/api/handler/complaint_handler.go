package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campuscare/complaint-api/internal/core/ports"
	"github.com/campuscare/complaint-api/internal/infrastructure/storage"
)

// maxWorkProofFiles caps how many evidence files a single work-proof
// submission may carry.
const maxWorkProofFiles = 5

// ComplaintHandler handles HTTP requests on the shared complaint routes.
type ComplaintHandler struct {
	service ports.ComplaintService
	uploads *storage.UploadStore
}

func NewComplaintHandler(service ports.ComplaintService, uploads *storage.UploadStore) *ComplaintHandler {
	return &ComplaintHandler{service: service, uploads: uploads}
}

// Create handles POST /api/complaints.
//
// @Summary      File a new complaint
// @Tags         complaints
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title        formData  string  true   "Complaint title"
// @Param        description  formData  string  true   "Complaint description"
// @Param        category     formData  string  true   "Category"  Enums(hostel, mess, college, academic, administrative, other)
// @Param        proofImage   formData  file    false  "Optional proof image"
// @Success      201  {object}  domain.Complaint
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/complaints [post]
func (h *ComplaintHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var form createComplaintForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var proofImage string
	if fh, err := c.FormFile("proofImage"); err == nil {
		proofImage, err = h.uploads.Save(fh, "proof_image")
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	complaint, err := h.service.Create(c.Request().Context(), actor, ports.CreateComplaintInput{
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		ProofImage:  proofImage,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, complaint)
}

// List handles GET /api/complaints.
//
// @Summary      List complaints visible to the caller
// @Tags         complaints
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Filter by status"
// @Param        category  query     string  false  "Filter by category"
// @Param        search    query     string  false  "Case-insensitive title/description search"
// @Param        page      query     int     false  "1-based page number"
// @Param        limit     query     int     false  "Page size (default 10, max 100)"
// @Success      200  {object}  listResponse
// @Router       /api/complaints [get]
func (h *ComplaintHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), actor, listInputFromQuery(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newListResponse(result))
}

// Get handles GET /api/complaints/:id.
//
// @Summary      Get one complaint
// @Tags         complaints
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Complaint ID"
// @Success      200  {object}  domain.Complaint
// @Failure      404  {object}  map[string]string
// @Router       /api/complaints/{id} [get]
func (h *ComplaintHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	complaint, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, complaint)
}

// Update handles PUT /api/complaints/:id.
//
// @Summary      Update status and/or assignee
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Complaint ID"
// @Param        body  body      updateComplaintRequest  true  "Fields to change"
// @Success      200  {object}  domain.Complaint
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/complaints/{id} [put]
func (h *ComplaintHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateComplaintRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	complaint, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateComplaintInput{
		Status:     req.Status,
		AssignedTo: req.AssignedTo,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, complaint)
}

// Feedback handles POST /api/complaints/:id/feedback.
//
// @Summary      Submit feedback on a resolved complaint
// @Tags         complaints
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Complaint ID"
// @Param        body  body      feedbackRequest  true  "Rating and comment"
// @Success      200  {object}  domain.Complaint
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/complaints/{id}/feedback [post]
func (h *ComplaintHandler) Feedback(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	complaint, err := h.service.SubmitFeedback(c.Request().Context(), actor, c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, complaint)
}

// WorkProof handles POST /api/complaints/:id/work-proof.
//
// @Summary      Submit remediation evidence
// @Tags         complaints
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id              path      string  true   "Complaint ID"
// @Param        description     formData  string  true   "What was done"
// @Param        workProofFiles  formData  file    false  "Up to 5 evidence files"
// @Success      200  {object}  domain.Complaint
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/complaints/{id}/work-proof [post]
func (h *ComplaintHandler) WorkProof(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var form workProofForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var files []string
	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		files, err = h.uploads.SaveAll(mf.File["workProofFiles"], "work_proof", maxWorkProofFiles)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	complaint, err := h.service.SubmitWorkProof(c.Request().Context(), actor, c.Param("id"), form.Description, files)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, complaint)
}

// listInputFromQuery reads the shared listing query parameters. Invalid page
// and limit values fall back to service defaults rather than failing the
// request.
func listInputFromQuery(c echo.Context) ports.ListComplaintsInput {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	return ports.ListComplaintsInput{
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Page:     page,
		Limit:    limit,
	}
}
