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

const collectionEnquiries = "enquiries"

type EnquiryRepository struct {
	col *mongo.Collection
}

func NewEnquiryRepository(db *mongo.Database) *EnquiryRepository {
	return &EnquiryRepository{col: db.Collection(collectionEnquiries)}
}

func (r *EnquiryRepository) Create(ctx context.Context, e *domain.Enquiry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	e.ID = primitive.NewObjectID().Hex()
	if e.Responses == nil {
		e.Responses = []domain.EnquiryResponse{}
	}
	_, err := r.col.InsertOne(ctx, e)
	return err
}

func (r *EnquiryRepository) FindByID(ctx context.Context, id string, dealerID string) (*domain.Enquiry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if dealerID != "" {
		filter["dealer_id"] = dealerID
	}

	var e domain.Enquiry
	err := r.col.FindOne(ctx, filter).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEnquiryNotFound
		}
		return nil, err
	}
	return &e, nil
}

// AppendResponse atomically pushes the reply and updates the status in a
// single document update.
func (r *EnquiryRepository) AppendResponse(ctx context.Context, id string, resp domain.EnquiryResponse, status domain.EnquiryStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"responses": resp},
		"$set":  bson.M{"status": status, "updated_at": resp.Timestamp},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrEnquiryNotFound
	}
	return nil
}

func (r *EnquiryRepository) UpdateStatus(ctx context.Context, id string, status domain.EnquiryStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrEnquiryNotFound
	}
	return nil
}

func (r *EnquiryRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Enquiry, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := listFilterQuery(f, []string{"reference", "subject", "customer_name"})
	if f.Status != "" {
		filter["status"] = f.Status
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, filter, pageOptions(f, nil))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var enquiries []*domain.Enquiry
	if err := cur.All(ctx, &enquiries); err != nil {
		return nil, 0, err
	}
	return enquiries, total, nil
}

func (r *EnquiryRepository) CountByStatus(ctx context.Context, dealerID string, status domain.EnquiryStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"status": status}
	if dealerID != "" {
		filter["dealer_id"] = dealerID
	}
	return r.col.CountDocuments(ctx, filter)
}

func (r *EnquiryRepository) Count(ctx context.Context, dealerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if dealerID != "" {
		filter["dealer_id"] = dealerID
	}
	return r.col.CountDocuments(ctx, filter)
}

// EnsureIndexes creates necessary indexes on the enquiries collection.
func (r *EnquiryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "dealer_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "reference", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
