package mongodb

import (
	"context"

	"lumera/internal/domain/entity"
	"lumera/internal/domain/repository"
	"lumera/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultProductPageSize = 10
	maxProductPageSize     = 100
)

type productRepository struct {
	collection *mongo.Collection
}

// NewProductRepository returns a MongoDB-backed repository.ProductRepository.
func NewProductRepository(db *mongo.Database) repository.ProductRepository {
	return &productRepository{collection: db.Collection(productsCollection)}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	doc := fromProductEntity(product, primitive.NewObjectID())

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateSlug
		}

		return errors.Wrap(err, "failed to insert product")
	}

	product.ID = doc.ID.Hex()

	return nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	id, err := primitive.ObjectIDFromHex(product.ID)
	if err != nil {
		return repository.ErrProductNotFound
	}

	doc := fromProductEntity(product, id)

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateSlug
		}

		return errors.Wrap(err, "failed to update product")
	}

	if result.MatchedCount == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrProductNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	if result.DeletedCount == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrProductNotFound
	}

	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *productRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *productRepository) findOne(ctx context.Context, filter bson.M) (*entity.Product, error) {
	var doc productDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return doc.toEntity(), nil
}

// List returns one page of products, newest first.
func (r *productRepository) List(ctx context.Context, filter entity.ProductFilter) (*entity.Page[*entity.Product], error) {
	page, limit := normalizePage(filter.Page, filter.Limit, defaultProductPageSize, maxProductPageSize)
	query := productQuery(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count products")
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode products")
	}

	products := make([]*entity.Product, 0, len(docs))
	for i := range docs {
		products = append(products, docs[i].toEntity())
	}

	return entity.NewPage(products, total, page, limit), nil
}

func productQuery(filter entity.ProductFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}
	if filter.Slug != "" {
		query["slug"] = filter.Slug
	}

	return query
}

func normalizePage(page, limit, defaultLimit, maxLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}

	return page, min(limit, maxLimit)
}
