package domain

import "time"

// This file is the lifecycle and visibility rules engine: pure decision
// logic over (actor, complaint) with no I/O. Every status mutation in the
// system goes through ApplyAssignment or ApplyStatus so the assignee-presence
// rule and the explicit-status rule cannot drift apart.

// Visible reports whether the complaint may appear in the actor's views.
//
//   - Students see their own complaints, soft-deleted or not.
//   - Staff see complaints assigned to them, soft-deleted or not.
//   - Admins see everything that has not been soft-deleted.
func Visible(actor Actor, c *Complaint) bool {
	switch actor.Role {
	case RoleStudent:
		return c.CreatedBy == actor.ID
	case RoleStaff:
		return c.AssignedTo != "" && c.AssignedTo == actor.ID
	case RoleAdmin:
		return !c.DeletedByAdmin
	}
	return false
}

// ApplyAssignment sets or clears the assignee and drives the
// pending/in-progress pair from assignee presence: a non-empty assignee moves
// the complaint to in-progress, clearing it reverts to pending. Priority,
// category and existing timestamps are untouched.
func ApplyAssignment(c *Complaint, assigneeID, notes string, now time.Time) {
	c.AssignedTo = assigneeID
	if assigneeID != "" {
		c.Status = StatusInProgress
	} else {
		c.Status = StatusPending
	}
	appendNotes(c, notes)
	c.UpdatedAt = now
}

// ApplyStatus sets the status explicitly. Entering resolved stamps the
// resolution time; re-resolving refreshes it. Any other status leaves a
// previously set resolution timestamp untouched.
//
// The status graph is deliberately flat: every transition is permitted,
// mirroring how admins and staff actually move complaints around (including
// reopening a resolved one).
func ApplyStatus(c *Complaint, status Status, notes string, now time.Time) {
	c.Status = status
	if status == StatusResolved {
		t := now
		c.ResolvedAt = &t
	}
	appendNotes(c, notes)
	c.UpdatedAt = now
}

// AttachFeedback overwrites the feedback sub-record. Only the creator may
// submit feedback; a resubmission replaces the previous one.
func AttachFeedback(c *Complaint, actorID string, rating int, comment string, now time.Time) error {
	if c.CreatedBy != actorID {
		return ErrForbidden
	}
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	c.Feedback = &Feedback{Rating: rating, Comment: comment, SubmittedAt: now}
	c.UpdatedAt = now
	return nil
}

// AttachWorkProof overwrites the work-proof sub-record. Only the currently
// assigned staff member may submit it. The complaint status is unchanged.
func AttachWorkProof(c *Complaint, actor Actor, description string, files []string, now time.Time) error {
	if actor.Role != RoleStaff {
		return ErrForbidden
	}
	if c.AssignedTo == "" || c.AssignedTo != actor.ID {
		return ErrForbidden
	}
	c.WorkProof = &WorkProof{
		Description: description,
		Files:       files,
		SubmittedBy: actor.ID,
		SubmittedAt: now,
	}
	c.UpdatedAt = now
	return nil
}

// SoftDelete hides the complaint from admin listings while keeping it
// visible to the creator and assignee. Only resolved complaints may be
// soft-deleted; the operation is idempotent and there is no undelete.
func SoftDelete(c *Complaint, now time.Time) error {
	if c.Status != StatusResolved {
		return ErrInvalidState
	}
	if c.DeletedByAdmin {
		return nil
	}
	c.DeletedByAdmin = true
	t := now
	c.DeletedAt = &t
	c.UpdatedAt = now
	return nil
}

func appendNotes(c *Complaint, notes string) {
	if notes == "" {
		return
	}
	if c.AdminNotes == "" {
		c.AdminNotes = notes
		return
	}
	c.AdminNotes += "\n" + notes
}
