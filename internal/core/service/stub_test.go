package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/campuscare/complaint-api/internal/core/domain"
	"github.com/campuscare/complaint-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubComplaintRepo struct {
	byID      map[string]*domain.Complaint
	seq       int
	createErr error // if set, Create returns this error
	updateErr error // if set, Update returns this error
}

func newStubComplaintRepo() *stubComplaintRepo {
	return &stubComplaintRepo{byID: make(map[string]*domain.Complaint)}
}

func (r *stubComplaintRepo) Create(_ context.Context, c *domain.Complaint) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	c.ID = fmt.Sprintf("c%d", r.seq)
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubComplaintRepo) FindByID(_ context.Context, id string) (*domain.Complaint, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrComplaintNotFound
	}
	clone := *c
	return &clone, nil
}

// Update mirrors the real Mongo repo: the write applies only when the
// presented version matches the stored one.
func (r *stubComplaintRepo) Update(_ context.Context, c *domain.Complaint) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.byID[c.ID]
	if !ok {
		return domain.ErrComplaintNotFound
	}
	if stored.Version != c.Version {
		return domain.ErrConflict
	}
	clone := *c
	clone.Version++
	r.byID[c.ID] = &clone
	c.Version++
	return nil
}

func (r *stubComplaintRepo) List(_ context.Context, f ports.ListComplaintsFilter) ([]*domain.Complaint, int64, error) {
	var matched []*domain.Complaint
	for _, c := range r.byID {
		if f.CreatedBy != "" && c.CreatedBy != f.CreatedBy {
			continue
		}
		if f.AssignedTo != "" && c.AssignedTo != f.AssignedTo {
			continue
		}
		if f.ExcludeDeleted && c.DeletedByAdmin {
			continue
		}
		if f.Status != "" && string(c.Status) != f.Status {
			continue
		}
		if f.Category != "" && string(c.Category) != f.Category {
			continue
		}
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			title := strings.Contains(strings.ToLower(c.Title), needle)
			desc := strings.Contains(strings.ToLower(c.Description), needle)
			if !title && !desc {
				continue
			}
		}
		clone := *c
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))

	limit := f.Limit
	if limit <= 0 {
		limit = len(matched)
	}
	skip := (f.Page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.Complaint{}, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubComplaintRepo) CountAssignedTo(_ context.Context, staffID string) (int64, error) {
	var n int64
	for _, c := range r.byID {
		if c.AssignedTo == staffID {
			n++
		}
	}
	return n, nil
}

func (r *stubComplaintRepo) Stats(_ context.Context) (*ports.ComplaintStats, error) {
	stats := &ports.ComplaintStats{}
	byCategory := make(map[string]int64)
	byPriority := make(map[string]int64)
	for _, c := range r.byID {
		stats.Total++
		switch c.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusResolved:
			stats.Resolved++
		case domain.StatusRejected:
			stats.Rejected++
		}
		byCategory[string(c.Category)]++
		byPriority[string(c.Priority)]++
	}
	for cat, n := range byCategory {
		stats.ByCategory = append(stats.ByCategory, ports.CategoryCount{Category: cat, Count: n})
	}
	for pri, n := range byPriority {
		stats.ByPriority = append(stats.ByPriority, ports.PriorityCount{Priority: pri, Count: n})
	}
	return stats, nil
}

type stubUserRepo struct {
	byID map[string]*domain.User
	seq  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) seed(id string, role domain.Role) *domain.User {
	u := &domain.User{ID: id, Name: id, Email: id + "@college.edu", Role: role}
	if role == domain.RoleStaff {
		u.Department = "maintenance"
	}
	r.byID[id] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := *user
	clone.ID = fmt.Sprintf("u%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	r.byID[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byID {
		if u.Role == role {
			clone := *u
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// stubStatsCache records cache traffic so tests can assert invalidation.
type stubStatsCache struct {
	stats       *ports.ComplaintStats
	invalidated int
	hits        int
}

func (c *stubStatsCache) Get(_ context.Context) (*ports.ComplaintStats, error) {
	if c.stats != nil {
		c.hits++
	}
	return c.stats, nil
}

func (c *stubStatsCache) Set(_ context.Context, stats *ports.ComplaintStats) error {
	c.stats = stats
	return nil
}

func (c *stubStatsCache) Invalidate(_ context.Context) error {
	c.stats = nil
	c.invalidated++
	return nil
}
