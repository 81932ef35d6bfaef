package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuscare/complaint-api/internal/core/domain"
	"github.com/campuscare/complaint-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

func studentActor(id string) domain.Actor {
	return domain.Actor{ID: id, Role: domain.RoleStudent}
}

func staffActor(id string) domain.Actor {
	return domain.Actor{ID: id, Role: domain.RoleStaff, Department: "maintenance"}
}

func minimalComplaint(category string) ports.CreateComplaintInput {
	return ports.CreateComplaintInput{
		Title:       "Water leakage",
		Description: "Tap leaking in block B washroom",
		Category:    category,
	}
}

func newComplaintService(repo *stubComplaintRepo, users *stubUserRepo) *ComplaintService {
	return NewComplaintService(repo, users, &stubStatsCache{}, discardLogger)
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestComplaintService_Create_Success(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, newStubUserRepo())

	c, err := svc.Create(context.Background(), studentActor("student1"), minimalComplaint("hostel"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Status != domain.StatusPending {
		t.Errorf("initial status: want pending, got %q", c.Status)
	}
	if c.Priority != domain.PriorityMedium {
		t.Errorf("default priority: want medium, got %q", c.Priority)
	}
	if c.CreatedBy != "student1" {
		t.Errorf("creator: want student1, got %q", c.CreatedBy)
	}
	if c.CreatedAt.IsZero() {
		t.Error("CreatedAt must not be zero")
	}
}

func TestComplaintService_Create_NonStudentForbidden(t *testing.T) {
	svc := newComplaintService(newStubComplaintRepo(), newStubUserRepo())

	for _, actor := range []domain.Actor{staffActor("staff1"), {ID: "admin1", Role: domain.RoleAdmin}} {
		_, err := svc.Create(context.Background(), actor, minimalComplaint("mess"))
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("role %s: want ErrForbidden, got %v", actor.Role, err)
		}
	}
}

func TestComplaintService_Create_UnknownCategory(t *testing.T) {
	svc := newComplaintService(newStubComplaintRepo(), newStubUserRepo())

	_, err := svc.Create(context.Background(), studentActor("student1"), minimalComplaint("plumbing"))
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestComplaintService_Create_RepoError(t *testing.T) {
	repo := newStubComplaintRepo()
	repo.createErr = errors.New("db unavailable")
	svc := newComplaintService(repo, newStubUserRepo())

	_, err := svc.Create(context.Background(), studentActor("student1"), minimalComplaint("other"))
	if err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}

// ---------------------------------------------------------------------------
// List / visibility
// ---------------------------------------------------------------------------

func seedComplaint(t *testing.T, repo *stubComplaintRepo, overrides func(*domain.Complaint)) *domain.Complaint {
	t.Helper()
	now := time.Now().UTC()
	c := &domain.Complaint{
		Title:       "Broken fan",
		Description: "Ceiling fan in room 212 does not work",
		Category:    domain.CategoryHostel,
		Status:      domain.StatusPending,
		Priority:    domain.PriorityMedium,
		CreatedBy:   "student1",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if overrides != nil {
		overrides(c)
	}
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return c
}

func TestComplaintService_List_StudentSeesOnlyOwn(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, newStubUserRepo())

	seedComplaint(t, repo, nil)
	seedComplaint(t, repo, func(c *domain.Complaint) { c.CreatedBy = "student2" })
	// Soft deletion is irrelevant to the creator's view.
	seedComplaint(t, repo, func(c *domain.Complaint) {
		c.Status = domain.StatusResolved
		c.DeletedByAdmin = true
	})

	res, err := svc.List(context.Background(), studentActor("student1"), ports.ListComplaintsInput{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 2 {
		t.Errorf("student must see own complaints incl. soft-deleted: want 2, got %d", res.Total)
	}
	for _, c := range res.Items {
		if c.CreatedBy != "student1" {
			t.Errorf("leaked complaint of %q into student1's view", c.CreatedBy)
		}
	}
}

func TestComplaintService_List_StaffSeesOnlyAssigned(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, newStubUserRepo())

	seedComplaint(t, repo, func(c *domain.Complaint) { c.AssignedTo = "staff1" })
	seedComplaint(t, repo, func(c *domain.Complaint) { c.AssignedTo = "staff2" })
	seedComplaint(t, repo, nil) // unassigned
	seedComplaint(t, repo, func(c *domain.Complaint) {
		c.AssignedTo = "staff1"
		c.Status = domain.StatusResolved
		c.DeletedByAdmin = true
	})

	res, err := svc.List(context.Background(), staffActor("staff1"), ports.ListComplaintsInput{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 2 {
		t.Errorf("staff must see assigned complaints incl. soft-deleted: want 2, got %d", res.Total)
	}
}

func TestComplaintService_List_AdminExcludesSoftDeleted(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, newStubUserRepo())

	seedComplaint(t, repo, nil)
	seedComplaint(t, repo, func(c *domain.Complaint) {
		c.Status = domain.StatusResolved
		c.DeletedByAdmin = true
	})

	res, err := svc.List(context.Background(), domain.Actor{ID: "admin1", Role: domain.RoleAdmin}, ports.ListComplaintsInput{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 1 {
		t.Errorf("admin listing must exclude soft-deleted: want 1, got %d", res.Total)
	}
}

func TestComplaintService_List_FiltersAndSearch(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, newStubUserRepo())
	admin := domain.Actor{ID: "admin1", Role: domain.RoleAdmin}

	seedComplaint(t, repo, func(c *domain.Complaint) { c.Category = domain.CategoryMess })
	seedComplaint(t, repo, func(c *domain.Complaint) {
		c.Title = "WiFi outage"
		c.Description = "No network in the library since Monday"
		c.Category = domain.CategoryCollege
		c.Status = domain.StatusInProgress
	})

	res, _ := svc.List(context.Background(), admin, ports.ListComplaintsInput{Category: "mess"})
	if res.Total != 1 {
		t.Errorf("category filter: want 1, got %d", res.Total)
	}

	res, _ = svc.List(context.Background(), admin, ports.ListComplaintsInput{Status: "in-progress"})
	if res.Total != 1 {
		t.Errorf("status filter: want 1, got %d", res.Total)
	}

	// Case-insensitive substring over title OR description.
	res, _ = svc.List(context.Background(), admin, ports.ListComplaintsInput{Search: "wifi"})
	if res.Total != 1 {
		t.Errorf("search title: want 1, got %d", res.Total)
	}
	res, _ = svc.List(context.Background(), admin, ports.ListComplaintsInput{Search: "LIBRARY"})
	if res.Total != 1 {
		t.Errorf("search description: want 1, got %d", res.Total)
	}
}

func TestComplaintService_List_OrderedNewestFirst(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, newStubUserRepo())

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		offset := time.Duration(i) * time.Hour
		seedComplaint(t, repo, func(c *domain.Complaint) { c.CreatedAt = base.Add(offset) })
	}

	res, err := svc.List(context.Background(), studentActor("student1"), ports.ListComplaintsInput{})
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(res.Items); i++ {
		if res.Items[i].CreatedAt.After(res.Items[i-1].CreatedAt) {
			t.Fatal("results must be ordered by creation time, newest first")
		}
	}
}

func TestComplaintService_List_PaginationMath(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, newStubUserRepo())

	for i := 0; i < 5; i++ {
		seedComplaint(t, repo, nil)
	}

	res, err := svc.List(context.Background(), studentActor("student1"), ports.ListComplaintsInput{Page: 1, Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 5 {
		t.Errorf("total: want 5, got %d", res.Total)
	}
	if res.TotalPages != 3 {
		t.Errorf("total_pages: want 3, got %d", res.TotalPages)
	}
	if len(res.Items) != 2 {
		t.Errorf("items: want 2, got %d", len(res.Items))
	}
}

func TestComplaintService_List_DefaultAndCappedLimit(t *testing.T) {
	svc := newComplaintService(newStubComplaintRepo(), newStubUserRepo())

	res, err := svc.List(context.Background(), studentActor("student1"), ports.ListComplaintsInput{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Limit != 10 {
		t.Errorf("default limit: want 10, got %d", res.Limit)
	}
	if res.Page != 1 {
		t.Errorf("default page: want 1, got %d", res.Page)
	}

	res, _ = svc.List(context.Background(), studentActor("student1"), ports.ListComplaintsInput{Limit: 999})
	if res.Limit != 100 {
		t.Errorf("capped limit: want 100, got %d", res.Limit)
	}
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestComplaintService_Get_HidesInvisibleAsNotFound(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, newStubUserRepo())
	c := seedComplaint(t, repo, nil)

	if _, err := svc.Get(context.Background(), studentActor("student1"), c.ID); err != nil {
		t.Fatalf("creator get: %v", err)
	}

	_, err := svc.Get(context.Background(), studentActor("student2"), c.ID)
	if !errors.Is(err, domain.ErrComplaintNotFound) {
		t.Errorf("other student: want ErrComplaintNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Update (generic staff path)
// ---------------------------------------------------------------------------

func TestComplaintService_Update_StatusStampsResolvedAt(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, newStubUserRepo())
	c := seedComplaint(t, repo, func(c *domain.Complaint) { c.AssignedTo = "staff1"; c.Status = domain.StatusInProgress })

	updated, err := svc.Update(context.Background(), staffActor("staff1"), c.ID, ports.UpdateComplaintInput{Status: "resolved"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != domain.StatusResolved {
		t.Errorf("status: want resolved, got %q", updated.Status)
	}
	if updated.ResolvedAt == nil {
		t.Error("resolved status must set resolution timestamp")
	}
}

func TestComplaintService_Update_UnknownStatusRejected(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, newStubUserRepo())
	c := seedComplaint(t, repo, nil)

	_, err := svc.Update(context.Background(), staffActor("staff1"), c.ID, ports.UpdateComplaintInput{Status: "done"})
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestComplaintService_Update_AssigneeValidation(t *testing.T) {
	repo := newStubComplaintRepo()
	users := newStubUserRepo()
	users.seed("student9", domain.RoleStudent)
	users.seed("staff1", domain.RoleStaff)
	svc := newComplaintService(repo, users)
	c := seedComplaint(t, repo, nil)

	nonStaff := "student9"
	_, err := svc.Update(context.Background(), staffActor("staff1"), c.ID, ports.UpdateComplaintInput{AssignedTo: &nonStaff})
	if !errors.Is(err, domain.ErrInvalidAssignee) {
		t.Errorf("non-staff assignee: want ErrInvalidAssignee, got %v", err)
	}

	valid := "staff1"
	updated, err := svc.Update(context.Background(), staffActor("staff1"), c.ID, ports.UpdateComplaintInput{AssignedTo: &valid})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != domain.StatusInProgress {
		t.Errorf("assignment must set in-progress, got %q", updated.Status)
	}
}

func TestComplaintService_Update_NotFound(t *testing.T) {
	svc := newComplaintService(newStubComplaintRepo(), newStubUserRepo())

	_, err := svc.Update(context.Background(), staffActor("staff1"), "missing", ports.UpdateComplaintInput{Status: "resolved"})
	if !errors.Is(err, domain.ErrComplaintNotFound) {
		t.Errorf("want ErrComplaintNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Feedback and work proof
// ---------------------------------------------------------------------------

func TestComplaintService_SubmitFeedback_NonCreatorForbidden(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, newStubUserRepo())
	c := seedComplaint(t, repo, nil)

	_, err := svc.SubmitFeedback(context.Background(), studentActor("student2"), c.ID, 5, "great")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("want ErrForbidden, got %v", err)
	}
}

func TestComplaintService_SubmitFeedback_OverwritesPrevious(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, newStubUserRepo())
	c := seedComplaint(t, repo, nil)

	if _, err := svc.SubmitFeedback(context.Background(), studentActor("student1"), c.ID, 2, "slow"); err != nil {
		t.Fatal(err)
	}
	updated, err := svc.SubmitFeedback(context.Background(), studentActor("student1"), c.ID, 4, "fixed quickly")
	if err != nil {
		t.Fatal(err)
	}

	if updated.Feedback.Rating != 4 || updated.Feedback.Comment != "fixed quickly" {
		t.Errorf("second submission must replace first, got %+v", updated.Feedback)
	}
}

func TestComplaintService_SubmitFeedback_RatingValidated(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, newStubUserRepo())
	c := seedComplaint(t, repo, nil)

	_, err := svc.SubmitFeedback(context.Background(), studentActor("student1"), c.ID, 6, "")
	if !errors.Is(err, domain.ErrInvalidRating) {
		t.Errorf("want ErrInvalidRating, got %v", err)
	}
}

func TestComplaintService_SubmitWorkProof_RoleGateBeforeLookup(t *testing.T) {
	svc := newComplaintService(newStubComplaintRepo(), newStubUserRepo())

	// Non-staff on a nonexistent complaint still gets Forbidden, not NotFound.
	_, err := svc.SubmitWorkProof(context.Background(), studentActor("student1"), "missing", "done", nil)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("want ErrForbidden, got %v", err)
	}
}

func TestComplaintService_SubmitWorkProof_UnassignedStaffForbidden(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, newStubUserRepo())
	c := seedComplaint(t, repo, func(c *domain.Complaint) { c.AssignedTo = "staffX" })

	_, err := svc.SubmitWorkProof(context.Background(), staffActor("staffY"), c.ID, "replaced part", []string{"photo.jpg"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("staff not assigned: want ErrForbidden, got %v", err)
	}

	updated, err := svc.SubmitWorkProof(context.Background(), staffActor("staffX"), c.ID, "replaced part", []string{"photo.jpg"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.WorkProof == nil || updated.WorkProof.SubmittedBy != "staffX" {
		t.Errorf("work proof not recorded: %+v", updated.WorkProof)
	}
}

// ---------------------------------------------------------------------------
// Optimistic concurrency
// ---------------------------------------------------------------------------

func TestComplaintService_Update_StaleVersionConflicts(t *testing.T) {
	repo := newStubComplaintRepo()
	svc := newComplaintService(repo, newStubUserRepo())
	c := seedComplaint(t, repo, nil)

	// First write bumps the stored version.
	if _, err := svc.SubmitFeedback(context.Background(), studentActor("student1"), c.ID, 3, "ok"); err != nil {
		t.Fatal(err)
	}

	// A writer holding the original snapshot must be rejected.
	stale := *c
	err := repo.Update(context.Background(), &stale)
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("stale write: want ErrConflict, got %v", err)
	}
}
