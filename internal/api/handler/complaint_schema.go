package handler

import (
	"github.com/campuscare/complaint-api/internal/core/domain"
	"github.com/campuscare/complaint-api/internal/core/ports"
)

// createComplaintForm is the multipart form for filing a complaint. The
// optional proofImage file part is handled separately from the bound fields.
type createComplaintForm struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description" validate:"required"`
	Category    string `form:"category" validate:"required,oneof=hostel mess college academic administrative other"`
}

// updateComplaintRequest is the staff/admin update on the generic complaint
// route. AssignedTo uses a pointer so "clear the assignee" (empty string) is
// distinguishable from "leave unchanged" (absent).
type updateComplaintRequest struct {
	Status     string  `json:"status" validate:"omitempty,oneof=pending in-progress resolved rejected"`
	AssignedTo *string `json:"assignedTo"`
}

type feedbackRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// workProofForm is the multipart form for staff remediation evidence. Files
// arrive in the workProofFiles part, capped at maxWorkProofFiles.
type workProofForm struct {
	Description string `form:"description" validate:"required"`
}

// listResponse is the pagination envelope for complaint listings. Page is
// 1-based and TotalPages is ceil(total/limit).
type listResponse struct {
	Items      []*domain.Complaint `json:"items"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
}

func newListResponse(r *ports.ListComplaintsResult) listResponse {
	return listResponse{
		Items:      r.Items,
		Total:      r.Total,
		Page:       r.Page,
		Limit:      r.Limit,
		TotalPages: r.TotalPages,
	}
}
