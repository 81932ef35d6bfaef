package domain

import (
	"errors"
	"testing"
	"time"
)

func baseComplaint() *Complaint {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &Complaint{
		ID:          "c1",
		Title:       "Broken fan",
		Description: "Ceiling fan in room 212 does not work",
		Category:    CategoryHostel,
		Status:      StatusPending,
		Priority:    PriorityMedium,
		CreatedBy:   "student1",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ---------------------------------------------------------------------------
// Visibility
// ---------------------------------------------------------------------------

func TestVisible_Student(t *testing.T) {
	c := baseComplaint()

	if !Visible(Actor{ID: "student1", Role: RoleStudent}, c) {
		t.Error("creator must see own complaint")
	}
	if Visible(Actor{ID: "student2", Role: RoleStudent}, c) {
		t.Error("other students must not see the complaint")
	}

	// Soft deletion never hides a complaint from its creator.
	c.DeletedByAdmin = true
	if !Visible(Actor{ID: "student1", Role: RoleStudent}, c) {
		t.Error("creator must still see soft-deleted complaint")
	}
}

func TestVisible_Staff(t *testing.T) {
	c := baseComplaint()

	if Visible(Actor{ID: "staff1", Role: RoleStaff}, c) {
		t.Error("unassigned complaint must not be visible to staff")
	}

	c.AssignedTo = "staff1"
	if !Visible(Actor{ID: "staff1", Role: RoleStaff}, c) {
		t.Error("assignee must see the complaint")
	}
	if Visible(Actor{ID: "staff2", Role: RoleStaff}, c) {
		t.Error("other staff must not see the complaint")
	}

	c.DeletedByAdmin = true
	if !Visible(Actor{ID: "staff1", Role: RoleStaff}, c) {
		t.Error("assignee must still see soft-deleted complaint")
	}
}

func TestVisible_Admin(t *testing.T) {
	c := baseComplaint()

	if !Visible(Actor{ID: "admin1", Role: RoleAdmin}, c) {
		t.Error("admin must see non-deleted complaint")
	}

	c.DeletedByAdmin = true
	if Visible(Actor{ID: "admin1", Role: RoleAdmin}, c) {
		t.Error("admin must not see soft-deleted complaint")
	}
}

func TestVisible_UnknownRole(t *testing.T) {
	if Visible(Actor{ID: "x", Role: Role("ghost")}, baseComplaint()) {
		t.Error("unknown roles see nothing")
	}
}

// ---------------------------------------------------------------------------
// Assignment
// ---------------------------------------------------------------------------

func TestApplyAssignment_SetsInProgress(t *testing.T) {
	c := baseComplaint()
	now := time.Now().UTC()

	ApplyAssignment(c, "staff1", "please check today", now)

	if c.AssignedTo != "staff1" {
		t.Errorf("assignee: want staff1, got %q", c.AssignedTo)
	}
	if c.Status != StatusInProgress {
		t.Errorf("status: want in-progress, got %q", c.Status)
	}
	if c.AdminNotes != "please check today" {
		t.Errorf("notes: got %q", c.AdminNotes)
	}
	if !c.UpdatedAt.Equal(now) {
		t.Error("UpdatedAt must be refreshed")
	}
}

func TestApplyAssignment_ClearRevertsToPending(t *testing.T) {
	c := baseComplaint()
	now := time.Now().UTC()
	ApplyAssignment(c, "staff1", "", now)

	ApplyAssignment(c, "", "", now.Add(time.Minute))

	if c.AssignedTo != "" {
		t.Errorf("assignee must be cleared, got %q", c.AssignedTo)
	}
	if c.Status != StatusPending {
		t.Errorf("status: want pending, got %q", c.Status)
	}
}

func TestApplyAssignment_DoesNotTouchPriorityOrCategory(t *testing.T) {
	c := baseComplaint()
	c.Priority = PriorityHigh

	ApplyAssignment(c, "staff1", "", time.Now().UTC())

	if c.Priority != PriorityHigh {
		t.Error("priority must not change on assignment")
	}
	if c.Category != CategoryHostel {
		t.Error("category must not change on assignment")
	}
}

func TestAppendNotes_Accumulates(t *testing.T) {
	c := baseComplaint()
	now := time.Now().UTC()

	ApplyAssignment(c, "staff1", "first", now)
	ApplyStatus(c, StatusResolved, "second", now)

	if c.AdminNotes != "first\nsecond" {
		t.Errorf("notes must accumulate, got %q", c.AdminNotes)
	}
}

// ---------------------------------------------------------------------------
// Status updates
// ---------------------------------------------------------------------------

func TestApplyStatus_ResolvedStampsTimestamp(t *testing.T) {
	c := baseComplaint()
	now := time.Now().UTC()

	ApplyStatus(c, StatusResolved, "", now)

	if c.Status != StatusResolved {
		t.Errorf("status: want resolved, got %q", c.Status)
	}
	if c.ResolvedAt == nil || !c.ResolvedAt.Equal(now) {
		t.Errorf("resolved status must set resolution timestamp, got %v", c.ResolvedAt)
	}
}

func TestApplyStatus_ReResolveRefreshesTimestamp(t *testing.T) {
	c := baseComplaint()
	first := time.Now().UTC()
	ApplyStatus(c, StatusResolved, "", first)

	second := first.Add(time.Hour)
	ApplyStatus(c, StatusResolved, "", second)

	if !c.ResolvedAt.Equal(second) {
		t.Errorf("re-resolving must refresh timestamp: want %v, got %v", second, c.ResolvedAt)
	}
}

func TestApplyStatus_OtherStatusesKeepResolvedAt(t *testing.T) {
	c := baseComplaint()
	now := time.Now().UTC()
	ApplyStatus(c, StatusResolved, "", now)

	for _, s := range []Status{StatusPending, StatusInProgress, StatusRejected} {
		ApplyStatus(c, s, "", now.Add(time.Minute))
		if c.ResolvedAt == nil || !c.ResolvedAt.Equal(now) {
			t.Errorf("status %q must leave ResolvedAt untouched, got %v", s, c.ResolvedAt)
		}
	}
}

func TestApplyStatus_AllTransitionsPermitted(t *testing.T) {
	all := []Status{StatusPending, StatusInProgress, StatusResolved, StatusRejected}
	for _, from := range all {
		for _, to := range all {
			c := baseComplaint()
			c.Status = from
			ApplyStatus(c, to, "", time.Now().UTC())
			if c.Status != to {
				t.Errorf("%s -> %s: transition must be permitted", from, to)
			}
		}
	}
}

// ---------------------------------------------------------------------------
// Feedback
// ---------------------------------------------------------------------------

func TestAttachFeedback_CreatorOnly(t *testing.T) {
	c := baseComplaint()

	err := AttachFeedback(c, "student2", 4, "ok", time.Now().UTC())
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("non-creator feedback: want ErrForbidden, got %v", err)
	}
	if c.Feedback != nil {
		t.Error("rejected feedback must not modify the record")
	}
}

func TestAttachFeedback_RatingBounds(t *testing.T) {
	for _, rating := range []int{0, -1, 6, 100} {
		c := baseComplaint()
		err := AttachFeedback(c, "student1", rating, "", time.Now().UTC())
		if !errors.Is(err, ErrInvalidRating) {
			t.Errorf("rating %d: want ErrInvalidRating, got %v", rating, err)
		}
	}
}

func TestAttachFeedback_ResubmissionOverwrites(t *testing.T) {
	c := baseComplaint()
	now := time.Now().UTC()

	if err := AttachFeedback(c, "student1", 2, "slow", now); err != nil {
		t.Fatalf("first feedback: %v", err)
	}
	if err := AttachFeedback(c, "student1", 4, "fixed quickly", now.Add(time.Hour)); err != nil {
		t.Fatalf("second feedback: %v", err)
	}

	if c.Feedback.Rating != 4 || c.Feedback.Comment != "fixed quickly" {
		t.Errorf("resubmission must replace, got %+v", c.Feedback)
	}
}

// ---------------------------------------------------------------------------
// Work proof
// ---------------------------------------------------------------------------

func TestAttachWorkProof_AssigneeOnly(t *testing.T) {
	c := baseComplaint()
	c.AssignedTo = "staffX"
	now := time.Now().UTC()

	err := AttachWorkProof(c, Actor{ID: "staffY", Role: RoleStaff}, "replaced fan", nil, now)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("unassigned staff: want ErrForbidden, got %v", err)
	}

	err = AttachWorkProof(c, Actor{ID: "student1", Role: RoleStudent}, "done", nil, now)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("non-staff: want ErrForbidden, got %v", err)
	}

	if err := AttachWorkProof(c, Actor{ID: "staffX", Role: RoleStaff}, "replaced fan", []string{"a.jpg"}, now); err != nil {
		t.Fatalf("assignee work proof: %v", err)
	}
	if c.WorkProof == nil || c.WorkProof.SubmittedBy != "staffX" {
		t.Errorf("work proof not recorded: %+v", c.WorkProof)
	}
	if c.Status != StatusPending {
		t.Error("work proof must not change status")
	}
}

func TestAttachWorkProof_UnassignedComplaint(t *testing.T) {
	c := baseComplaint()

	err := AttachWorkProof(c, Actor{ID: "staffX", Role: RoleStaff}, "done", nil, time.Now().UTC())
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("no assignee: want ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Soft delete
// ---------------------------------------------------------------------------

func TestSoftDelete_ResolvedOnly(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusInProgress, StatusRejected} {
		c := baseComplaint()
		c.Status = s
		err := SoftDelete(c, time.Now().UTC())
		if !errors.Is(err, ErrInvalidState) {
			t.Errorf("status %q: want ErrInvalidState, got %v", s, err)
		}
		if c.DeletedByAdmin {
			t.Errorf("status %q: rejected delete must not set the flag", s)
		}
	}
}

func TestSoftDelete_Idempotent(t *testing.T) {
	c := baseComplaint()
	now := time.Now().UTC()
	ApplyStatus(c, StatusResolved, "", now)

	if err := SoftDelete(c, now); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	firstDeletedAt := *c.DeletedAt

	if err := SoftDelete(c, now.Add(time.Hour)); err != nil {
		t.Fatalf("repeated delete: %v", err)
	}
	if !c.DeletedAt.Equal(firstDeletedAt) {
		t.Error("repeated delete must not change observable state")
	}
}
