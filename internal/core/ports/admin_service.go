package ports

import (
	"context"

	"github.com/campuscare/complaint-api/internal/core/domain"
)

// AssignComplaintInput carries the admin assignment request. An empty
// AssignedTo clears the current assignee and reverts the complaint to
// pending.
type AssignComplaintInput struct {
	AssignedTo string
	AdminNotes string
}

// SetStatusInput carries the admin status update request.
type SetStatusInput struct {
	Status     string
	AdminNotes string
}

// CreateStaffInput carries admin staff provisioning data.
type CreateStaffInput struct {
	Name       string
	Email      string
	Password   string
	Department string
}

// UpdateStaffInput carries a partial staff profile update; empty fields are
// left unchanged.
type UpdateStaffInput struct {
	Name       string
	Email      string
	Department string
}

// AdminService defines the admin-only use cases: triage, assignment,
// reporting, staff provisioning and soft deletion.
type AdminService interface {
	ListComplaints(ctx context.Context, input ListComplaintsInput) (*ListComplaintsResult, error)
	GetComplaint(ctx context.Context, id string) (*domain.Complaint, error)
	Assign(ctx context.Context, id string, input AssignComplaintInput) (*domain.Complaint, error)
	SetStatus(ctx context.Context, id string, input SetStatusInput) (*domain.Complaint, error)
	SoftDelete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*ComplaintStats, error)

	ListStaff(ctx context.Context) ([]*domain.User, error)
	CreateStaff(ctx context.Context, input CreateStaffInput) (*domain.User, error)
	UpdateStaff(ctx context.Context, id string, input UpdateStaffInput) (*domain.User, error)
	DeleteStaff(ctx context.Context, id string) error
}
