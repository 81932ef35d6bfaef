package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuscare/complaint-api/internal/api/metrics"
	"github.com/campuscare/complaint-api/internal/core/domain"
	"github.com/campuscare/complaint-api/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// StatsCache abstracts the Redis-backed admin stats cache. Complaint writes
// invalidate it so the dashboard never serves stale totals for longer than
// one request.
type StatsCache interface {
	Get(ctx context.Context) (*ports.ComplaintStats, error)
	Set(ctx context.Context, stats *ports.ComplaintStats) error
	Invalidate(ctx context.Context) error
}

// ComplaintService implements the student/staff complaint use cases.
type ComplaintService struct {
	repo   ports.ComplaintRepository
	users  ports.UserRepository
	cache  StatsCache
	logger zerolog.Logger
}

func NewComplaintService(repo ports.ComplaintRepository, users ports.UserRepository, cache StatsCache, logger zerolog.Logger) *ComplaintService {
	return &ComplaintService{repo: repo, users: users, cache: cache, logger: logger}
}

// Create files a new complaint on behalf of a student. The creator reference
// is fixed at creation and never changes.
func (s *ComplaintService) Create(ctx context.Context, actor domain.Actor, input ports.CreateComplaintInput) (*domain.Complaint, error) {
	if actor.Role != domain.RoleStudent {
		return nil, domain.ErrForbidden
	}

	category := domain.Category(input.Category)
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidState, input.Category)
	}

	now := time.Now().UTC()
	c := &domain.Complaint{
		Title:       input.Title,
		Description: input.Description,
		Category:    category,
		Status:      domain.StatusPending,
		Priority:    domain.PriorityMedium,
		CreatedBy:   actor.ID,
		ProofImage:  input.ProofImage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Msg("failed to create complaint")
		return nil, err
	}
	s.invalidateStats(ctx)

	metrics.CreatedTotal.WithLabelValues(string(category)).Inc()
	s.logger.Info().Str("complaint_id", c.ID).Str("category", string(category)).Str("created_by", actor.ID).Msg("complaint created")
	return c, nil
}

// List returns the page of complaints visible to the actor. Visibility is a
// mandatory predicate derived from the actor's role; status/category/search
// filters are optional on top of it. Results are newest first.
func (s *ComplaintService) List(ctx context.Context, actor domain.Actor, input ports.ListComplaintsInput) (*ports.ListComplaintsResult, error) {
	filter := ports.ListComplaintsFilter{
		Status:   input.Status,
		Category: input.Category,
		Search:   input.Search,
		Page:     normalizePage(input.Page),
		Limit:    normalizeLimit(input.Limit),
	}

	switch actor.Role {
	case domain.RoleStudent:
		filter.CreatedBy = actor.ID
	case domain.RoleStaff:
		filter.AssignedTo = actor.ID
	case domain.RoleAdmin:
		filter.ExcludeDeleted = true
	default:
		return nil, domain.ErrForbidden
	}

	items, total, err := s.repo.List(ctx, filter)
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

// Get retrieves a single complaint, applying the actor's visibility rule.
// A complaint the actor may not see is reported as not found rather than
// forbidden, so its existence is not leaked.
func (s *ComplaintService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Complaint, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.Visible(actor, c) {
		return nil, domain.ErrComplaintNotFound
	}
	return c, nil
}

// Update is the generic status/assignee update used from the staff
// dashboard. Both mutations route through the domain transition functions so
// the assignee-presence rule and the resolution timestamp cannot drift.
func (s *ComplaintService) Update(ctx context.Context, actor domain.Actor, id string, input ports.UpdateComplaintInput) (*domain.Complaint, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if input.AssignedTo != nil {
		if *input.AssignedTo != "" {
			if err := s.requireStaff(ctx, *input.AssignedTo); err != nil {
				return nil, err
			}
		}
		domain.ApplyAssignment(c, *input.AssignedTo, "", now)
		metrics.StatusTransitionsTotal.WithLabelValues(string(c.Status), "assign").Inc()
	}

	if input.Status != "" {
		status := domain.Status(input.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidState, input.Status)
		}
		domain.ApplyStatus(c, status, "", now)
		metrics.StatusTransitionsTotal.WithLabelValues(string(status), "update").Inc()
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)

	s.logger.Info().Str("complaint_id", c.ID).Str("status", string(c.Status)).Str("actor", actor.ID).Msg("complaint updated")
	return c, nil
}

// SubmitFeedback attaches the creator's rating and comment. Resubmission
// overwrites the previous feedback.
func (s *ComplaintService) SubmitFeedback(ctx context.Context, actor domain.Actor, id string, rating int, comment string) (*domain.Complaint, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.AttachFeedback(c, actor.ID, rating, comment, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	metrics.FeedbackRating.Observe(float64(rating))
	s.logger.Info().Str("complaint_id", c.ID).Int("rating", rating).Msg("feedback submitted")
	return c, nil
}

// SubmitWorkProof attaches remediation evidence. The role gate runs before
// the complaint lookup: a non-staff caller is rejected without revealing
// whether the complaint exists.
func (s *ComplaintService) SubmitWorkProof(ctx context.Context, actor domain.Actor, id, description string, files []string) (*domain.Complaint, error) {
	if actor.Role != domain.RoleStaff {
		return nil, domain.ErrForbidden
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.AttachWorkProof(c, actor, description, files, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().Str("complaint_id", c.ID).Str("staff_id", actor.ID).Int("files", len(files)).Msg("work proof submitted")
	return c, nil
}

// requireStaff resolves the id and rejects anything that is not a staff
// account.
func (s *ComplaintService) requireStaff(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return domain.ErrInvalidAssignee
	}
	if user.Role != domain.RoleStaff {
		return domain.ErrInvalidAssignee
	}
	return nil
}

func (s *ComplaintService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate stats cache")
	}
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultPageLimit
	case limit > maxPageLimit:
		return maxPageLimit
	}
	return limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
