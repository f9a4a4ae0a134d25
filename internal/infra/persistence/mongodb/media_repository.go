package mongodb

import (
	"context"

	"lumera/internal/domain/entity"
	"lumera/internal/domain/repository"
	"lumera/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mediaRepository struct {
	collection *mongo.Collection
}

// NewMediaRepository returns a MongoDB-backed repository.MediaRepository.
func NewMediaRepository(db *mongo.Database) repository.MediaRepository {
	return &mediaRepository{collection: db.Collection(mediaCollection)}
}

// Create stores media metadata. A preset ID, when it is a valid ObjectID, is kept
// so the blob key and the record agree.
func (r *mediaRepository) Create(ctx context.Context, media *entity.Media) error {
	id, err := primitive.ObjectIDFromHex(media.ID)
	if err != nil {
		id = primitive.NewObjectID()
	}

	doc := &mediaDocument{
		ID:         id,
		Filename:   media.Filename,
		Alt:        media.Alt,
		Caption:    media.Caption,
		Category:   media.Category,
		MimeType:   media.MimeType,
		Size:       media.Size,
		StorageKey: media.StorageKey,
		CreatedAt:  media.CreatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return errors.Wrap(err, "failed to insert media")
	}

	media.ID = id.Hex()

	return nil
}

func (r *mediaRepository) FindByID(ctx context.Context, id string) (*entity.Media, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrMediaNotFound
	}

	var doc mediaDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrMediaNotFound
		}

		return nil, errors.Wrap(err, "failed to find media")
	}

	return doc.toEntity(), nil
}

func (r *mediaRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrMediaNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "failed to delete media")
	}

	if result.DeletedCount == 0 {
		return repository.ErrMediaNotFound
	}

	return nil
}
