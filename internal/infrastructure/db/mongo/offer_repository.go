package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
)

const collectionOffers = "offers"

type OfferRepository struct {
	col *mongo.Collection
}

func NewOfferRepository(db *mongo.Database) *OfferRepository {
	return &OfferRepository{col: db.Collection(collectionOffers)}
}

func (r *OfferRepository) Create(ctx context.Context, o *domain.Offer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	o.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, o)
	return err
}

func (r *OfferRepository) FindByID(ctx context.Context, id string, dealerID string) (*domain.Offer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if dealerID != "" {
		filter["dealer_id"] = dealerID
	}

	var o domain.Offer
	err := r.col.FindOne(ctx, filter).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOfferNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OfferRepository) Update(ctx context.Context, o *domain.Offer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}

func (r *OfferRepository) Delete(ctx context.Context, id string, dealerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if dealerID != "" {
		filter["dealer_id"] = dealerID
	}

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}

func (r *OfferRepository) IncrementLikes(ctx context.Context, id string, delta int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"likes": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}

func (r *OfferRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Offer, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := listFilterQuery(f, []string{"title", "description"})

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, filter, pageOptions(f, map[string]string{"likes": "likes", "title": "title"}))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var offers []*domain.Offer
	if err := cur.All(ctx, &offers); err != nil {
		return nil, 0, err
	}
	return offers, total, nil
}

// ActiveSummary aggregates the count and total likes of offers valid at
// the given instant.
func (r *OfferRepository) ActiveSummary(ctx context.Context, dealerID string, at time.Time) (int64, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{
		"valid_from":  bson.M{"$lte": at},
		"valid_until": bson.M{"$gte": at},
	}
	if dealerID != "" {
		match["dealer_id"] = dealerID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"count": bson.M{"$sum": 1},
			"likes": bson.M{"$sum": "$likes"},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cur.Close(ctx)

	var results []struct {
		Count int64 `bson:"count"`
		Likes int64 `bson:"likes"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].Count, results[0].Likes, nil
}

// EnsureIndexes creates necessary indexes on the offers collection.
func (r *OfferRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "dealer_id", Value: 1}}},
		{Keys: bson.D{{Key: "valid_from", Value: 1}, {Key: "valid_until", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
