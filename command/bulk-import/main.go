// bulk-import walks a local directory tree and loads every image it finds
// into the catalog. Each first-level subdirectory is treated as a category:
// files are auto-tagged, uploaded to the asset store under the category
// folder and inserted as catalog records, one at a time. A failed file is
// logged and skipped; the run never aborts and performs no deduplication,
// so re-running it inserts every file again.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bitmark-inc/config-loader"

	catalog "github.com/shutterclone/photo-catalog"
	"github.com/shutterclone/photo-catalog/externals/cfimages"
	"github.com/shutterclone/photo-catalog/externals/hfinference"
	"github.com/shutterclone/photo-catalog/log"
)

func main() {
	baseDir := flag.String("dir", ".", "directory whose subdirectories are imported as categories")
	flag.Parse()

	ctx := context.Background()

	config.LoadConfig("CATALOG")

	if err := log.Initialize(viper.GetString("log.level"), viper.GetBool("debug")); err != nil {
		panic(err)
	}

	catalogStore, err := catalog.NewMongodbCatalogStore(ctx, viper.GetString("store.db_uri"), viper.GetString("store.db_name"))
	if err != nil {
		log.Panic("fail to initiate catalog store", zap.Error(err))
	}

	assetStore, err := cfimages.New(
		viper.GetString("cloudflare.account_id"),
		viper.GetString("cloudflare.account_hash"),
		viper.GetString("cloudflare.api_token"),
	)
	if err != nil {
		log.Panic("fail to initiate asset store", zap.Error(err))
	}

	classifier := hfinference.New(
		viper.GetString("huggingface.endpoint"),
		viper.GetString("huggingface.api_token"),
		30*time.Second,
	)

	importer := &Importer{
		catalogStore: catalogStore,
		assetStore:   assetStore,
		classifier:   classifier,
	}

	imported, failed := importer.Run(ctx, *baseDir)
	log.Info("bulk import finished", zap.Int("imported", imported), zap.Int("failed", failed))
}

type Importer struct {
	catalogStore catalog.CatalogStore
	assetStore   catalog.AssetStore
	classifier   catalog.TagClassifier
}

// Run imports every image under baseDir and returns the imported and
// failed file counts.
func (i *Importer) Run(ctx context.Context, baseDir string) (imported, failed int) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		log.Panic("fail to read import directory", zap.String("dir", baseDir), zap.Error(err))
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		category := entry.Name()
		for _, path := range collectImages(filepath.Join(baseDir, category)) {
			if err := i.importFile(ctx, category, path); err != nil {
				log.Error("failed to import file", zap.String("path", path), zap.Error(err))
				failed++
				continue
			}
			imported++
		}
	}

	return imported, failed
}

func (i *Importer) importFile(ctx context.Context, category, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if mime := mimetype.Detect(data); !catalog.IsSupportedImageType(mime.String()) {
		return fmt.Errorf("unsupported image type %s", mime)
	}

	filename := filepath.Base(path)
	tags := catalog.TagsWithFallback(ctx, i.classifier, data)

	asset, err := i.assetStore.Upload(ctx, bytes.NewReader(data), category, filename)
	if err != nil {
		return err
	}

	image, err := i.catalogStore.CreateImage(ctx, catalog.ImageRecord{
		URL:      asset.URL,
		AssetID:  asset.AssetID,
		Title:    filename,
		Tags:     tags,
		Category: category,
	})
	if err != nil {
		return err
	}

	log.Info("uploaded and saved image",
		zap.String("id", image.ID.Hex()),
		zap.String("title", image.Title),
		zap.Strings("tags", image.Tags))

	return nil
}

// collectImages recursively gathers the importable image files under dir.
// Unreadable subtrees are logged and skipped.
func collectImages(dir string) []string {
	var images []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("skipping unreadable path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.IsDir() && catalog.IsImageFile(path) {
			images = append(images, path)
		}
		return nil
	})
	if err != nil {
		log.Warn("directory walk interrupted", zap.String("dir", dir), zap.Error(err))
	}

	return images
}
