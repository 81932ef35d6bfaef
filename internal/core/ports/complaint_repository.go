package ports

import (
	"context"

	"github.com/campuscare/complaint-api/internal/core/domain"
)

// ListComplaintsFilter carries all query parameters for listing complaints.
// Exactly one of the visibility fields is set by the service layer depending
// on the actor's role; the repository never decides visibility on its own.
type ListComplaintsFilter struct {
	CreatedBy      string // non-empty: scope to a student's own complaints
	AssignedTo     string // non-empty: scope to a staff member's assignments
	ExcludeDeleted bool   // true for admin listings: hide soft-deleted records

	Status   string // optional equality filter
	Category string // optional equality filter
	Search   string // optional case-insensitive substring over title+description
	Page     int    // 1-based
	Limit    int    // rows per page (capped by the service)
}

// CategoryCount is one bucket of the category aggregation.
type CategoryCount struct {
	Category string `json:"category" bson:"_id"`
	Count    int64  `json:"count" bson:"count"`
}

// PriorityCount is one bucket of the priority aggregation.
type PriorityCount struct {
	Priority string `json:"priority" bson:"_id"`
	Count    int64  `json:"count" bson:"count"`
}

// ComplaintStats is the admin dashboard aggregate.
type ComplaintStats struct {
	Total      int64           `json:"total_complaints"`
	Pending    int64           `json:"pending_complaints"`
	InProgress int64           `json:"in_progress_complaints"`
	Resolved   int64           `json:"resolved_complaints"`
	Rejected   int64           `json:"rejected_complaints"`
	ByCategory []CategoryCount `json:"category_stats"`
	ByPriority []PriorityCount `json:"priority_stats"`
}

// ComplaintRepository defines persistence operations for complaints.
// Update enforces optimistic concurrency: the write only applies when the
// stored version matches c.Version, and the stored version is incremented.
// A mismatch returns domain.ErrConflict.
type ComplaintRepository interface {
	Create(ctx context.Context, c *domain.Complaint) error
	FindByID(ctx context.Context, id string) (*domain.Complaint, error)
	Update(ctx context.Context, c *domain.Complaint) error
	// List returns a page of complaints matching filter, newest first, and
	// the total count before pagination.
	List(ctx context.Context, filter ListComplaintsFilter) ([]*domain.Complaint, int64, error)
	// CountAssignedTo reports how many complaints reference the staff member
	// as assignee, regardless of status. Used by the staff-removal guard.
	CountAssignedTo(ctx context.Context, staffID string) (int64, error)
	Stats(ctx context.Context) (*ComplaintStats, error)
}
