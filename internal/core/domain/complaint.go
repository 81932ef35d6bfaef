package domain

import "time"

// Status represents the lifecycle state of a complaint.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
)

// IsValid reports whether s is a known lifecycle status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Category classifies what a complaint is about.
type Category string

const (
	CategoryHostel         Category = "hostel"
	CategoryMess           Category = "mess"
	CategoryCollege        Category = "college"
	CategoryAcademic       Category = "academic"
	CategoryAdministrative Category = "administrative"
	CategoryOther          Category = "other"
)

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryHostel, CategoryMess, CategoryCollege, CategoryAcademic, CategoryAdministrative, CategoryOther:
		return true
	}
	return false
}

// Priority ranks how urgent a complaint is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Feedback is the student's rating of how the complaint was handled.
// Resubmission overwrites the previous record.
type Feedback struct {
	Rating      int       `json:"rating" bson:"rating"`
	Comment     string    `json:"comment" bson:"comment"`
	SubmittedAt time.Time `json:"submitted_at" bson:"submitted_at"`
}

// WorkProof is the assigned staff member's evidence of remediation.
type WorkProof struct {
	Description string    `json:"description" bson:"description"`
	Files       []string  `json:"files" bson:"files"`
	SubmittedBy string    `json:"submitted_by" bson:"submitted_by"`
	SubmittedAt time.Time `json:"submitted_at" bson:"submitted_at"`
}

// Complaint is the core aggregate root. CreatedBy is set at creation and
// never changes. Version is an optimistic concurrency counter: every write
// must present the version it loaded, and the repository rejects stale
// versions with ErrConflict.
type Complaint struct {
	ID             string     `json:"id" bson:"_id,omitempty"`
	Title          string     `json:"title" bson:"title"`
	Description    string     `json:"description" bson:"description"`
	Category       Category   `json:"category" bson:"category"`
	Status         Status     `json:"status" bson:"status"`
	Priority       Priority   `json:"priority" bson:"priority"`
	CreatedBy      string     `json:"created_by" bson:"created_by"`
	AssignedTo     string     `json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
	ProofImage     string     `json:"proof_image,omitempty" bson:"proof_image,omitempty"`
	Feedback       *Feedback  `json:"feedback,omitempty" bson:"feedback,omitempty"`
	WorkProof      *WorkProof `json:"work_proof,omitempty" bson:"work_proof,omitempty"`
	AdminNotes     string     `json:"admin_notes,omitempty" bson:"admin_notes,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
	DeletedByAdmin bool       `json:"deleted_by_admin" bson:"deleted_by_admin"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" bson:"updated_at"`
	Version        int64      `json:"-" bson:"version"`
}
