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

type collectionRepository struct {
	collection *mongo.Collection
}

// NewCollectionRepository returns a MongoDB-backed repository.CollectionRepository.
func NewCollectionRepository(db *mongo.Database) repository.CollectionRepository {
	return &collectionRepository{collection: db.Collection(collectionsCollection)}
}

func (r *collectionRepository) Create(ctx context.Context, c *entity.Collection) error {
	doc := fromCollectionEntity(c, primitive.NewObjectID())

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateSlug
		}

		return errors.Wrap(err, "failed to insert collection")
	}

	c.ID = doc.ID.Hex()

	return nil
}

func (r *collectionRepository) Update(ctx context.Context, c *entity.Collection) error {
	id, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return repository.ErrCollectionNotFound
	}

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, fromCollectionEntity(c, id))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateSlug
		}

		return errors.Wrap(err, "failed to update collection")
	}

	if result.MatchedCount == 0 {
		return repository.ErrCollectionNotFound
	}

	return nil
}

func (r *collectionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrCollectionNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "failed to delete collection")
	}

	if result.DeletedCount == 0 {
		return repository.ErrCollectionNotFound
	}

	return nil
}

func (r *collectionRepository) FindByID(ctx context.Context, id string) (*entity.Collection, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrCollectionNotFound
	}

	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *collectionRepository) FindBySlug(ctx context.Context, slug string) (*entity.Collection, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *collectionRepository) findOne(ctx context.Context, filter bson.M) (*entity.Collection, error) {
	var doc collectionDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrCollectionNotFound
		}

		return nil, errors.Wrap(err, "failed to find collection")
	}

	return doc.toEntity(), nil
}

func (r *collectionRepository) List(ctx context.Context) ([]*entity.Collection, error) {
	opts := options.Find().SetSort(bson.D{{Key: "displayOrder", Value: 1}, {Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list collections")
	}
	defer cursor.Close(ctx)

	var docs []collectionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode collections")
	}

	collections := make([]*entity.Collection, 0, len(docs))
	for i := range docs {
		collections = append(collections, docs[i].toEntity())
	}

	return collections, nil
}
