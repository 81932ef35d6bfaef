package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuscare/complaint-api/internal/api/metrics"
	"github.com/campuscare/complaint-api/internal/core/domain"
	"github.com/campuscare/complaint-api/internal/core/ports"
)

// AdminService implements triage, assignment, reporting, staff provisioning
// and soft deletion. All callers are admin; the HTTP layer enforces the role
// gate before any of these run.
type AdminService struct {
	complaints ports.ComplaintRepository
	users      ports.UserRepository
	cache      StatsCache
	logger     zerolog.Logger
}

func NewAdminService(complaints ports.ComplaintRepository, users ports.UserRepository, cache StatsCache, logger zerolog.Logger) *AdminService {
	return &AdminService{complaints: complaints, users: users, cache: cache, logger: logger}
}

// ListComplaints returns the admin listing: everything except soft-deleted
// records, with the same filter and search surface as the student/staff list
// plus free-text search over title and description.
func (s *AdminService) ListComplaints(ctx context.Context, input ports.ListComplaintsInput) (*ports.ListComplaintsResult, error) {
	filter := ports.ListComplaintsFilter{
		ExcludeDeleted: true,
		Status:         input.Status,
		Category:       input.Category,
		Search:         input.Search,
		Page:           normalizePage(input.Page),
		Limit:          normalizeLimit(input.Limit),
	}

	items, total, err := s.complaints.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListComplaintsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// GetComplaint fetches a single complaint for the admin detail view.
func (s *AdminService) GetComplaint(ctx context.Context, id string) (*domain.Complaint, error) {
	return s.complaints.FindByID(ctx, id)
}

// Assign sets or clears the assignee. A non-empty assignee must resolve to a
// staff account, else ErrInvalidAssignee and the record is left unmodified.
// Assignment drives pending/in-progress from assignee presence.
func (s *AdminService) Assign(ctx context.Context, id string, input ports.AssignComplaintInput) (*domain.Complaint, error) {
	c, err := s.complaints.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.AssignedTo != "" {
		staff, err := s.users.FindByID(ctx, input.AssignedTo)
		if err != nil || staff.Role != domain.RoleStaff {
			return nil, domain.ErrInvalidAssignee
		}
	}

	domain.ApplyAssignment(c, input.AssignedTo, input.AdminNotes, time.Now().UTC())
	if err := s.complaints.Update(ctx, c); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)

	metrics.StatusTransitionsTotal.WithLabelValues(string(c.Status), "assign").Inc()
	s.logger.Info().Str("complaint_id", c.ID).Str("assigned_to", input.AssignedTo).Msg("complaint assigned")
	return c, nil
}

// SetStatus applies an explicit status change with optional admin notes.
func (s *AdminService) SetStatus(ctx context.Context, id string, input ports.SetStatusInput) (*domain.Complaint, error) {
	status := domain.Status(input.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidState, input.Status)
	}

	c, err := s.complaints.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	domain.ApplyStatus(c, status, input.AdminNotes, time.Now().UTC())
	if err := s.complaints.Update(ctx, c); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)

	metrics.StatusTransitionsTotal.WithLabelValues(string(status), "update").Inc()
	s.logger.Info().Str("complaint_id", c.ID).Str("status", input.Status).Msg("complaint status set")
	return c, nil
}

// SoftDelete hides a resolved complaint from admin listings. The underlying
// document is never removed and stays visible to the creator and assignee.
func (s *AdminService) SoftDelete(ctx context.Context, id string) error {
	c, err := s.complaints.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := domain.SoftDelete(c, time.Now().UTC()); err != nil {
		return err
	}
	if err := s.complaints.Update(ctx, c); err != nil {
		return err
	}
	s.invalidateStats(ctx)

	metrics.SoftDeletesTotal.Inc()
	s.logger.Info().Str("complaint_id", c.ID).Msg("complaint soft-deleted")
	return nil
}

// Stats returns the dashboard aggregate, served from the Redis cache when
// fresh. A cache failure falls back to the database rather than failing the
// request.
func (s *AdminService) Stats(ctx context.Context) (*ports.ComplaintStats, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("stats cache read failed")
		} else if cached != nil {
			metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
	}

	stats, err := s.complaints.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			s.logger.Warn().Err(err).Msg("stats cache write failed")
		}
	}
	return stats, nil
}

// ListStaff returns all staff accounts.
func (s *AdminService) ListStaff(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListByRole(ctx, domain.RoleStaff)
}

// CreateStaff provisions a staff account with a hashed password.
func (s *AdminService) CreateStaff(ctx context.Context, input ports.CreateStaffInput) (*domain.User, error) {
	if existing, err := s.users.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	staff := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleStaff,
		Department:   input.Department,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, staff)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("staff_id", created.ID).Str("department", created.Department).Msg("staff member created")
	return created, nil
}

// UpdateStaff applies a partial profile update to a staff account. A changed
// email must not collide with an existing account.
func (s *AdminService) UpdateStaff(ctx context.Context, id string, input ports.UpdateStaffInput) (*domain.User, error) {
	staff, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff.Role != domain.RoleStaff {
		return nil, domain.ErrNotStaff
	}

	if input.Email != "" && input.Email != staff.Email {
		if existing, err := s.users.FindByEmail(ctx, input.Email); err == nil && existing != nil {
			return nil, domain.ErrUserExists
		}
		staff.Email = input.Email
	}
	if input.Name != "" {
		staff.Name = input.Name
	}
	if input.Department != "" {
		staff.Department = input.Department
	}
	staff.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// DeleteStaff removes a staff account unless any complaint still references
// it as assignee. The guard prevents orphaned assignments; complaints must
// be reassigned first.
func (s *AdminService) DeleteStaff(ctx context.Context, id string) error {
	staff, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if staff.Role != domain.RoleStaff {
		return domain.ErrNotStaff
	}

	assigned, err := s.complaints.CountAssignedTo(ctx, id)
	if err != nil {
		return err
	}
	if assigned > 0 {
		return domain.ErrStaffHasAssignments
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("staff_id", id).Msg("staff member deleted")
	return nil
}

func (s *AdminService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate stats cache")
	}
}
