package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/shutterclone/photo-catalog/log"
)

// FallbackTags is what an image is tagged with when classification fails.
var FallbackTags = []string{"unknown"}

// TagsWithFallback runs the classifier over an image and degrades to
// FallbackTags on any failure. Tagging is best-effort and must never block
// ingestion, so the error is logged and swallowed here, at the boundary.
func TagsWithFallback(ctx context.Context, classifier TagClassifier, image []byte) []string {
	tags, err := classifier.Classify(ctx, image)
	if err != nil {
		log.Warn("tag classification failed, falling back", zap.Error(err))
		return FallbackTags
	}

	if len(tags) == 0 {
		return FallbackTags
	}

	return tags
}
