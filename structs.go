package catalog

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImageRecord is the single persisted entity of the catalog. URL, AssetID
// and CreatedAt are set at creation time and never change afterwards.
type ImageRecord struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	URL       string             `json:"url" bson:"url"`
	AssetID   string             `json:"public_id" bson:"public_id"`
	Title     string             `json:"title" bson:"title"`
	Tags      []string           `json:"tags" bson:"tags"`
	Category  string             `json:"category" bson:"category"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// ImageUpdates is the inputs payload of UpdateImage. A nil field is left
// untouched. There is intentionally no way to change url, public_id or
// createdAt through this structure.
type ImageUpdates struct {
	Title    *string   `json:"title"`
	Tags     *[]string `json:"tags"`
	Category *string   `json:"category"`
}

// UploadedAsset is the result of pushing a binary to the asset store.
type UploadedAsset struct {
	URL     string `json:"url"`
	AssetID string `json:"public_id"`
}
