package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campuscare/complaint-api/internal/core/domain"
	"github.com/campuscare/complaint-api/internal/core/ports"
)

const collectionComplaints = "complaints"

type ComplaintRepository struct {
	col *mongo.Collection
}

func NewComplaintRepository(db *mongo.Database) *ComplaintRepository {
	return &ComplaintRepository{col: db.Collection(collectionComplaints)}
}

// Create inserts a new complaint document and assigns its generated id.
func (r *ComplaintRepository) Create(ctx context.Context, c *domain.Complaint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, c)
	return err
}

// FindByID retrieves a complaint by id. No visibility filtering happens
// here; the service layer owns that decision.
func (r *ComplaintRepository) FindByID(ctx context.Context, id string) (*domain.Complaint, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Complaint
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrComplaintNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Update rewrites the complaint document guarded by the optimistic version
// counter: the filter matches the version that was loaded, and the write
// increments it. A concurrent writer that got there first makes the filter
// miss, which we report as ErrConflict.
func (r *ComplaintRepository) Update(ctx context.Context, c *domain.Complaint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": c.ID, "version": c.Version}
	update := bson.M{
		"$set": bson.M{
			"title":            c.Title,
			"description":      c.Description,
			"category":         c.Category,
			"status":           c.Status,
			"priority":         c.Priority,
			"assigned_to":      c.AssignedTo,
			"proof_image":      c.ProofImage,
			"feedback":         c.Feedback,
			"work_proof":       c.WorkProof,
			"admin_notes":      c.AdminNotes,
			"resolved_at":      c.ResolvedAt,
			"deleted_by_admin": c.DeletedByAdmin,
			"deleted_at":       c.DeletedAt,
			"updated_at":       c.UpdatedAt,
		},
		"$inc": bson.M{"version": 1},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish a missing document from a stale version.
		if err := r.col.FindOne(ctx, bson.M{"_id": c.ID}).Err(); errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrComplaintNotFound
		}
		return domain.ErrConflict
	}
	c.Version++
	return nil
}

// List returns a page of complaints matching filter, newest first, together
// with the total count before pagination.
func (r *ComplaintRepository) List(ctx context.Context, f ports.ListComplaintsFilter) ([]*domain.Complaint, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := buildListQuery(f)

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
		opts.SetSkip(int64((f.Page - 1) * f.Limit))
	}

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var items []*domain.Complaint
	for cur.Next(ctx) {
		var c domain.Complaint
		if err := cur.Decode(&c); err != nil {
			return nil, 0, err
		}
		items = append(items, &c)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// buildListQuery assembles the Mongo filter document. Visibility scoping is
// whatever the service put in the filter; search is a case-insensitive
// regex OR over title and description.
func buildListQuery(f ports.ListComplaintsFilter) bson.M {
	query := bson.M{}
	if f.CreatedBy != "" {
		query["created_by"] = f.CreatedBy
	}
	if f.AssignedTo != "" {
		query["assigned_to"] = f.AssignedTo
	}
	if f.ExcludeDeleted {
		query["deleted_by_admin"] = bson.M{"$ne": true}
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.Search != "" {
		regex := primitive.Regex{Pattern: regexpQuoteMeta(f.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"description": regex},
		}
	}
	return query
}

// regexpQuoteMeta escapes regex metacharacters so user input is matched as
// a literal substring.
func regexpQuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(special); j++ {
			if s[i] == special[j] {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}

// CountAssignedTo reports how many complaints reference the staff member as
// assignee, regardless of status or soft-delete flag.
func (r *ComplaintRepository) CountAssignedTo(ctx context.Context, staffID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"assigned_to": staffID})
}

// Stats computes the admin dashboard aggregate: totals per status plus
// category and priority breakdowns, largest buckets first.
func (r *ComplaintRepository) Stats(ctx context.Context) (*ports.ComplaintStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	stats := &ports.ComplaintStats{}

	var err error
	if stats.Total, err = r.col.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	statusCounts := []struct {
		status domain.Status
		dest   *int64
	}{
		{domain.StatusPending, &stats.Pending},
		{domain.StatusInProgress, &stats.InProgress},
		{domain.StatusResolved, &stats.Resolved},
		{domain.StatusRejected, &stats.Rejected},
	}
	for _, sc := range statusCounts {
		if *sc.dest, err = r.col.CountDocuments(ctx, bson.M{"status": sc.status}); err != nil {
			return nil, err
		}
	}

	if err := r.aggregateCounts(ctx, "$category", &stats.ByCategory); err != nil {
		return nil, err
	}
	if err := r.aggregateCounts(ctx, "$priority", &stats.ByPriority); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *ComplaintRepository) aggregateCounts(ctx context.Context, field string, dest any) error {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	return cur.All(ctx, dest)
}

// EnsureIndexes creates the indexes backing the visibility scopes, filters,
// and ordering of the list queries.
func (r *ComplaintRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
