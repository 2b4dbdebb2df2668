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

const (
	collectionWorks   = "works"
	collectionEvents  = "events"
	collectionGallery = "gallery"
	collectionNotes   = "notes"
	collectionLoyalty = "loyalty_entries"
)

// ownerFilterQuery mirrors listFilterQuery for collections scoped by
// owner_id instead of dealer_id.
func ownerFilterQuery(f ports.ListFilter, searchFields []string) bson.M {
	filter := listFilterQuery(f, searchFields)
	if f.DealerID != "" {
		delete(filter, "dealer_id")
		filter["owner_id"] = f.DealerID
	}
	return filter
}

type WorkRepository struct {
	col *mongo.Collection
}

func NewWorkRepository(db *mongo.Database) *WorkRepository {
	return &WorkRepository{col: db.Collection(collectionWorks)}
}

func (r *WorkRepository) Create(ctx context.Context, w *domain.Work) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	w.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, w)
	return err
}

func (r *WorkRepository) FindByID(ctx context.Context, id string, ownerID string) (*domain.Work, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}

	var w domain.Work
	err := r.col.FindOne(ctx, filter).Decode(&w)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *WorkRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Work, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := ownerFilterQuery(f, []string{"title", "location"})

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, filter, pageOptions(f, map[string]string{"title": "title", "year": "year"}))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var works []*domain.Work
	if err := cur.All(ctx, &works); err != nil {
		return nil, 0, err
	}
	return works, total, nil
}

func (r *WorkRepository) Count(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}
	return r.col.CountDocuments(ctx, filter)
}

type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	e.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, e)
	return err
}

func (r *EventRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Event, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := ownerFilterQuery(f, []string{"title", "venue"})

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, filter, pageOptions(f, map[string]string{"starts_at": "starts_at"}))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var events []*domain.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *EventRepository) CountUpcoming(ctx context.Context, ownerID string, after time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"starts_at": bson.M{"$gt": after}}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}
	return r.col.CountDocuments(ctx, filter)
}

type GalleryRepository struct {
	col *mongo.Collection
}

func NewGalleryRepository(db *mongo.Database) *GalleryRepository {
	return &GalleryRepository{col: db.Collection(collectionGallery)}
}

func (r *GalleryRepository) Create(ctx context.Context, g *domain.GalleryItem) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	g.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, g)
	return err
}

func (r *GalleryRepository) Delete(ctx context.Context, id string, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *GalleryRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.GalleryItem, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := ownerFilterQuery(f, []string{"caption"})

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, filter, pageOptions(f, nil))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var items []*domain.GalleryItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *GalleryRepository) Count(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}
	return r.col.CountDocuments(ctx, filter)
}

type NoteRepository struct {
	col *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{col: db.Collection(collectionNotes)}
}

func (r *NoteRepository) Create(ctx context.Context, n *domain.Note) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, n)
	return err
}

func (r *NoteRepository) FindByID(ctx context.Context, id string, ownerID string) (*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}

	var n domain.Note
	err := r.col.FindOne(ctx, filter).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *NoteRepository) Update(ctx context.Context, n *domain.Note) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": n.ID, "owner_id": n.OwnerID}, n)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id string, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *NoteRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Note, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := ownerFilterQuery(f, []string{"title", "body"})

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, filter, pageOptions(f, map[string]string{"title": "title"}))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var notes []*domain.Note
	if err := cur.All(ctx, &notes); err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

func (r *NoteRepository) Count(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}
	return r.col.CountDocuments(ctx, filter)
}

type LoyaltyRepository struct {
	col *mongo.Collection
}

func NewLoyaltyRepository(db *mongo.Database) *LoyaltyRepository {
	return &LoyaltyRepository{col: db.Collection(collectionLoyalty)}
}

func (r *LoyaltyRepository) Append(ctx context.Context, e *domain.LoyaltyEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	e.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, e)
	return err
}

func (r *LoyaltyRepository) Ledger(ctx context.Context, ownerID string, f ports.ListFilter) ([]*domain.LoyaltyEntry, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := ownerFilterQuery(f, []string{"reason"})
	if ownerID != "" {
		filter["owner_id"] = ownerID
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

	var entries []*domain.LoyaltyEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Balance sums the full ledger for an owner.
func (r *LoyaltyRepository) Balance(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"owner_id": ownerID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"balance": bson.M{"$sum": "$points"},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var results []struct {
		Balance int64 `bson:"balance"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Balance, nil
}

// EnsureBusinessIndexes creates owner_id indexes across the business
// profile collections.
func EnsureBusinessIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	model := mongo.IndexModel{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}}
	for _, name := range []string{collectionWorks, collectionEvents, collectionGallery, collectionNotes, collectionLoyalty} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, model); err != nil {
			return err
		}
	}
	return nil
}
