package catalog

import (
	"context"
	"errors"
	"io"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const imageCollectionName = "images"

// CatalogStore is the persistence interface of the image catalog.
type CatalogStore interface {
	CreateImage(ctx context.Context, image ImageRecord) (ImageRecord, error)
	GetImage(ctx context.Context, id string) (ImageRecord, error)
	ListImages(ctx context.Context, search string, page, pageSize int64) ([]ImageRecord, int64, error)
	ListImagesByCategory(ctx context.Context, category string) ([]ImageRecord, error)
	UpdateImage(ctx context.Context, id string, updates ImageUpdates) (ImageRecord, error)
	DeleteImage(ctx context.Context, id string) error
}

// AssetStore is the contract of the external binary storage and delivery
// service. Delete is idempotent: removing an absent asset is a success.
type AssetStore interface {
	Upload(ctx context.Context, file io.Reader, folder, filename string) (UploadedAsset, error)
	Delete(ctx context.Context, assetID string) error
	ListFolders(ctx context.Context) ([]string, error)
}

// TagClassifier maps an image binary to a list of lowercase labels.
type TagClassifier interface {
	Classify(ctx context.Context, image []byte) ([]string, error)
}

func NewMongodbCatalogStore(ctx context.Context, mongodbURI, dbName string) (*MongodbCatalogStore, error) {
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongodbURI))
	if err != nil {
		return nil, err
	}

	db := mongoClient.Database(dbName)

	return &MongodbCatalogStore{
		dbName:          dbName,
		mongoClient:     mongoClient,
		imageCollection: db.Collection(imageCollectionName),
	}, nil
}

type MongodbCatalogStore struct {
	dbName          string
	mongoClient     *mongo.Client
	imageCollection *mongo.Collection
}

// CreateImage inserts a new image record and returns it with its assigned
// id. CreatedAt is stamped here unless the caller already set one.
func (s *MongodbCatalogStore) CreateImage(ctx context.Context, image ImageRecord) (ImageRecord, error) {
	if image.ID.IsZero() {
		image.ID = primitive.NewObjectID()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}
	if image.Tags == nil {
		image.Tags = []string{}
	}

	if _, err := s.imageCollection.InsertOne(ctx, image); err != nil {
		return ImageRecord{}, &PersistenceError{Op: "insert", Err: err}
	}

	return image, nil
}

// GetImage returns a single image record by its id
func (s *MongodbCatalogStore) GetImage(ctx context.Context, id string) (ImageRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ImageRecord{}, ErrNotFound
	}

	var image ImageRecord
	if err := s.imageCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&image); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ImageRecord{}, ErrNotFound
		}
		return ImageRecord{}, err
	}

	return image, nil
}

// ListImages returns one page of image records matching the search text,
// newest first, together with the total matching count. The search text is
// a case-insensitive substring match over title and every tags entry; an
// empty search matches everything.
func (s *MongodbCatalogStore) ListImages(ctx context.Context, search string, page, pageSize int64) ([]ImageRecord, int64, error) {
	filter := searchFilter(search)

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	total, err := s.imageCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * pageSize).
		SetLimit(pageSize)

	cursor, err := s.imageCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	images := []ImageRecord{}
	if err := cursor.All(ctx, &images); err != nil {
		return nil, 0, err
	}

	return images, total, nil
}

// ListImagesByCategory returns all image records of a category, newest
// first. The category match is case-insensitive exact equality.
func (s *MongodbCatalogStore) ListImagesByCategory(ctx context.Context, category string) ([]ImageRecord, error) {
	cursor, err := s.imageCollection.Find(ctx, categoryFilter(category),
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	images := []ImageRecord{}
	if err := cursor.All(ctx, &images); err != nil {
		return nil, err
	}

	return images, nil
}

// UpdateImage applies a partial update over the mutable fields of an image
// record and returns the updated document. Fields that are nil in updates
// are left as they are; url, public_id and createdAt are never written.
func (s *MongodbCatalogStore) UpdateImage(ctx context.Context, id string, updates ImageUpdates) (ImageRecord, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ImageRecord{}, ErrNotFound
	}

	set := bson.M{}
	if updates.Title != nil {
		set["title"] = *updates.Title
	}
	if updates.Tags != nil {
		set["tags"] = *updates.Tags
	}
	if updates.Category != nil {
		set["category"] = *updates.Category
	}

	if len(set) == 0 {
		return s.GetImage(ctx, id)
	}

	var image ImageRecord
	err = s.imageCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&image)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ImageRecord{}, ErrNotFound
		}
		return ImageRecord{}, &PersistenceError{Op: "update", Err: err}
	}

	return image, nil
}

// searchFilter matches records whose title or any tags entry contains the
// search text, case-insensitively. An empty search matches everything.
func searchFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}

	pattern := regexp.QuoteMeta(search)
	return bson.M{"$or": []bson.M{
		{"title": primitive.Regex{Pattern: pattern, Options: "i"}},
		{"tags": bson.M{"$elemMatch": bson.M{"$regex": pattern, "$options": "i"}}},
	}}
}

// categoryFilter matches records whose category equals the given one,
// ignoring case.
func categoryFilter(category string) bson.M {
	return bson.M{"category": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(category) + "$",
		Options: "i",
	}}
}

// DeleteImage removes an image record. The caller is responsible for
// removing the corresponding asset beforehand.
func (s *MongodbCatalogStore) DeleteImage(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	r, err := s.imageCollection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return &PersistenceError{Op: "delete", Err: err}
	}
	if r.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
