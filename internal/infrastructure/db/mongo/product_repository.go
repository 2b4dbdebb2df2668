package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
)

const collectionProducts = "products"

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	p.ID = primitive.NewObjectID().Hex()
	_, err := r.col.InsertOne(ctx, p)
	return err
}

// FindByID retrieves a product. When dealerID is non-empty, an additional
// filter by dealer_id is applied.
func (r *ProductRepository) FindByID(ctx context.Context, id string, dealerID string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if dealerID != "" {
		filter["dealer_id"] = dealerID
	}

	var p domain.Product
	err := r.col.FindOne(ctx, filter).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string, dealerID string) error {
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
		return domain.ErrProductNotFound
	}
	return nil
}

// List returns a page of products matching filter and the total count.
func (r *ProductRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := listFilterQuery(f, []string{"name", "brand"})
	if f.Category != "" {
		filter["category"] = f.Category
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := pageOptions(f, map[string]string{"name": "name", "price": "price"})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var products []*domain.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) Count(ctx context.Context, dealerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if dealerID != "" {
		filter["dealer_id"] = dealerID
	}
	return r.col.CountDocuments(ctx, filter)
}

// EnsureIndexes creates necessary indexes on the products collection.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "dealer_id", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// listFilterQuery translates the common ListFilter fields into a bson
// filter: dealer scoping, created_at range, and a case-insensitive
// substring search over searchFields.
func listFilterQuery(f ports.ListFilter, searchFields []string) bson.M {
	filter := bson.M{}
	if f.DealerID != "" {
		filter["dealer_id"] = f.DealerID
	}

	created := bson.M{}
	if !f.DateFrom.IsZero() {
		created["$gte"] = f.DateFrom
	}
	if !f.DateTo.IsZero() {
		created["$lte"] = f.DateTo
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}

	if f.Search != "" && len(searchFields) > 0 {
		or := make(bson.A, 0, len(searchFields))
		for _, field := range searchFields {
			or = append(or, bson.M{field: bson.M{"$regex": f.Search, "$options": "i"}})
		}
		filter["$or"] = or
	}
	return filter
}

// pageOptions builds skip/limit/sort options from the filter. sortable
// maps exposed column identifiers to document fields; unknown columns
// fall back to created_at.
func pageOptions(f ports.ListFilter, sortable map[string]string) *options.FindOptions {
	page := f.Page
	if page < 1 {
		page = 1
	}

	field, ok := sortable[f.SortBy]
	if !ok {
		field = "created_at"
	}
	order := -1
	if f.SortAsc {
		order = 1
	}

	opts := options.Find().SetSort(bson.D{{Key: field, Value: order}})
	if f.Limit > 0 {
		opts = opts.SetSkip(int64((page - 1) * f.Limit)).SetLimit(int64(f.Limit))
	}
	return opts
}
