package ports

import (
	"context"

	"github.com/campuscare/complaint-api/internal/core/domain"
)

// CreateComplaintInput carries all data needed to file a new complaint.
// ProofImage is the stored filename of an optional uploaded image.
type CreateComplaintInput struct {
	Title       string
	Description string
	Category    string
	ProofImage  string
}

// ListComplaintsInput carries the query parameters of the list endpoint.
type ListComplaintsInput struct {
	Status   string
	Category string
	Search   string
	Page     int
	Limit    int
}

// ListComplaintsResult is returned by List with 1-based pagination metadata.
type ListComplaintsResult struct {
	Items      []*domain.Complaint
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UpdateComplaintInput is the generic staff-path update: either field may be
// omitted. AssignedTo distinguishes "not sent" (nil) from "clear" (empty).
type UpdateComplaintInput struct {
	Status     string
	AssignedTo *string
}

// ComplaintService defines the complaint use cases available to
// authenticated actors. Every operation applies the visibility and lifecycle
// rules for the given actor.
type ComplaintService interface {
	Create(ctx context.Context, actor domain.Actor, input CreateComplaintInput) (*domain.Complaint, error)
	List(ctx context.Context, actor domain.Actor, input ListComplaintsInput) (*ListComplaintsResult, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Complaint, error)
	Update(ctx context.Context, actor domain.Actor, id string, input UpdateComplaintInput) (*domain.Complaint, error)
	SubmitFeedback(ctx context.Context, actor domain.Actor, id string, rating int, comment string) (*domain.Complaint, error)
	SubmitWorkProof(ctx context.Context, actor domain.Actor, id, description string, files []string) (*domain.Complaint, error)
}
