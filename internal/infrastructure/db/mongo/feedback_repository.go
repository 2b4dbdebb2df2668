package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
)

const collectionFeedbacks = "feedbacks"

type FeedbackRepository struct {
	col *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{col: db.Collection(collectionFeedbacks)}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	f.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, f)
	return err
}

func (r *FeedbackRepository) FindByID(ctx context.Context, id string, dealerID string) (*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if dealerID != "" {
		filter["dealer_id"] = dealerID
	}

	var f domain.Feedback
	err := r.col.FindOne(ctx, filter).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FeedbackRepository) MarkReported(ctx context.Context, id string, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"reported": true, "report_reason": reason}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrFeedbackNotFound
	}
	return nil
}

func (r *FeedbackRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Feedback, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := listFilterQuery(f, []string{"customer_name", "comment"})

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, filter, pageOptions(f, map[string]string{"rating": "rating"}))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var feedbacks []*domain.Feedback
	if err := cur.All(ctx, &feedbacks); err != nil {
		return nil, 0, err
	}
	return feedbacks, total, nil
}

// RatingSummary aggregates the feedback count and average rating for a dealer.
func (r *FeedbackRepository) RatingSummary(ctx context.Context, dealerID string) (int64, float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{}
	if dealerID != "" {
		match["dealer_id"] = dealerID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"count":  bson.M{"$sum": 1},
			"rating": bson.M{"$avg": "$rating"},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cur.Close(ctx)

	var results []struct {
		Count  int64   `bson:"count"`
		Rating float64 `bson:"rating"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].Count, results[0].Rating, nil
}
