package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"revu-backend/internal/database"
	"revu-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ErrInvalidRating is returned when a caller tries to persist a rating outside 1..5.
// The submission form constrains ratings structurally; this is the store's backstop.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

const feedbackSeqID = "feedback_seq"

type FeedbackRepo struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewFeedbackRepo() *FeedbackRepo {
	return &FeedbackRepo{
		collection: database.GetCollection("feedback"),
		counters:   database.GetCollection("counters"),
	}
}

// nextSeq atomically draws the next sequential ID from the counters collection.
// The upsert handles a brand-new database: the first draw creates the counter
// and returns 1. Mongo serializes the $inc, so concurrent appends never share
// a value and assignment is strictly increasing.
func (r *FeedbackRepo) nextSeq(ctx context.Context) (int64, error) {
	res := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": feedbackSeqID},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	var counter struct {
		Value int64 `bson:"value"`
	}
	if err := res.Decode(&counter); err != nil {
		return 0, err
	}
	return counter.Value, nil
}

// Append assigns the next seq and the creation timestamp, persists the record
// and returns it. Records are immutable after this point.
func (r *FeedbackRepo) Append(ctx context.Context, rating int, review, summary, actions string) (*models.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	seq, err := r.nextSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("assign feedback id: %w", err)
	}

	feedback := &models.Feedback{
		Seq:       seq,
		Rating:    rating,
		Review:    review,
		Summary:   summary,
		Actions:   actions,
		CreatedAt: time.Now().UTC(),
	}

	result, err := r.collection.InsertOne(ctx, feedback)
	if err != nil {
		return nil, fmt.Errorf("persist feedback: %w", err)
	}
	feedback.ID = result.InsertedID.(bson.ObjectID)
	return feedback, nil
}

// ListRecent returns the most recent records, newest first, bounded by limit.
func (r *FeedbackRepo) ListRecent(ctx context.Context, limit int) ([]*models.Feedback, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "seq", Value: -1}}).SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	feedbacks := []*models.Feedback{}
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// ListFilter narrows a listing. From and To are calendar dates; the filter
// covers [From 00:00:00, To 23:59:59] UTC inclusive. Ratings uses literal
// containment: an empty slice matches no records. Query is a case-insensitive
// substring match over review, summary and actions.
type ListFilter struct {
	From    time.Time
	To      time.Time
	Ratings []int
	Query   string
}

// ListFiltered returns matching records in insertion order (oldest first).
func (r *FeedbackRepo) ListFiltered(ctx context.Context, f ListFilter) ([]*models.Feedback, error) {
	cursor, err := r.collection.Find(ctx, buildListFilter(f),
		options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	feedbacks := []*models.Feedback{}
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func buildListFilter(f ListFilter) bson.M {
	from := time.Date(f.From.Year(), f.From.Month(), f.From.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(f.To.Year(), f.To.Month(), f.To.Day(), 23, 59, 59, 0, time.UTC)

	filter := bson.M{
		"created_at": bson.M{"$gte": from, "$lte": to},
		"rating":     bson.M{"$in": f.Ratings},
	}

	if q := f.Query; q != "" {
		pattern := bson.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"review": bson.M{"$regex": pattern}},
			bson.M{"summary": bson.M{"$regex": pattern}},
			bson.M{"actions": bson.M{"$regex": pattern}},
		}
	}
	return filter
}

// EnsureIndexes creates necessary indexes for the feedback collection
func (r *FeedbackRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "seq", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
