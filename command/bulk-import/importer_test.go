package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/shutterclone/photo-catalog"
	"github.com/shutterclone/photo-catalog/log"
)

func TestMain(m *testing.M) {
	if err := log.Initialize("", false); err != nil {
		panic(fmt.Errorf("fail to initialize logger with error: %s", err.Error()))
	}
	os.Exit(m.Run())
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

type recordingStore struct {
	records []catalog.ImageRecord
}

func (s *recordingStore) CreateImage(ctx context.Context, image catalog.ImageRecord) (catalog.ImageRecord, error) {
	s.records = append(s.records, image)
	return image, nil
}

func (s *recordingStore) GetImage(ctx context.Context, id string) (catalog.ImageRecord, error) {
	return catalog.ImageRecord{}, catalog.ErrNotFound
}

func (s *recordingStore) ListImages(ctx context.Context, search string, page, pageSize int64) ([]catalog.ImageRecord, int64, error) {
	return s.records, int64(len(s.records)), nil
}

func (s *recordingStore) ListImagesByCategory(ctx context.Context, category string) ([]catalog.ImageRecord, error) {
	return nil, nil
}

func (s *recordingStore) UpdateImage(ctx context.Context, id string, updates catalog.ImageUpdates) (catalog.ImageRecord, error) {
	return catalog.ImageRecord{}, catalog.ErrNotFound
}

func (s *recordingStore) DeleteImage(ctx context.Context, id string) error {
	return catalog.ErrNotFound
}

type recordingAssetStore struct {
	uploads []string
}

func (s *recordingAssetStore) Upload(ctx context.Context, file io.Reader, folder, filename string) (catalog.UploadedAsset, error) {
	s.uploads = append(s.uploads, folder+"/"+filename)
	return catalog.UploadedAsset{
		URL:     fmt.Sprintf("https://imagedelivery.net/hash/%s-%d/public", filename, len(s.uploads)),
		AssetID: fmt.Sprintf("%s-%d", filename, len(s.uploads)),
	}, nil
}

func (s *recordingAssetStore) Delete(ctx context.Context, assetID string) error {
	return nil
}

func (s *recordingAssetStore) ListFolders(ctx context.Context) ([]string, error) {
	return nil, nil
}

type fallbackClassifier struct{}

func (fallbackClassifier) Classify(ctx context.Context, image []byte) ([]string, error) {
	return nil, fmt.Errorf("request timeout")
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestImporterRun(t *testing.T) {
	baseDir := t.TempDir()

	writeFile(t, filepath.Join(baseDir, "Nature", "beach.jpg"), pngHeader)
	writeFile(t, filepath.Join(baseDir, "Nature", "deep", "forest.PNG"), pngHeader)
	writeFile(t, filepath.Join(baseDir, "City", "skyline.png"), pngHeader)
	// wrong content in an image extension: fails, does not abort the rest
	writeFile(t, filepath.Join(baseDir, "City", "broken.jpg"), []byte("not an image"))
	// non-image extensions and top-level files are skipped entirely
	writeFile(t, filepath.Join(baseDir, "City", "notes.txt"), []byte("skip me"))
	writeFile(t, filepath.Join(baseDir, "stray.jpg"), pngHeader)

	store := &recordingStore{}
	assets := &recordingAssetStore{}
	importer := &Importer{
		catalogStore: store,
		assetStore:   assets,
		classifier:   fallbackClassifier{},
	}

	imported, failed := importer.Run(context.Background(), baseDir)
	assert.Equal(t, 3, imported)
	assert.Equal(t, 1, failed)

	sort.Strings(assets.uploads)
	assert.Equal(t, []string{"City/skyline.png", "Nature/beach.jpg", "Nature/forest.PNG"}, assets.uploads)

	require.Len(t, store.records, 3)
	titles := []string{}
	for _, record := range store.records {
		// classification always fails in this run; every record degrades
		assert.Equal(t, []string{"unknown"}, record.Tags)
		assert.NotEmpty(t, record.URL)
		assert.NotEmpty(t, record.AssetID)
		titles = append(titles, record.Title)
	}
	sort.Strings(titles)
	assert.Equal(t, []string{"beach.jpg", "forest.PNG", "skyline.png"}, titles)
}

func TestCollectImages(t *testing.T) {
	baseDir := t.TempDir()

	writeFile(t, filepath.Join(baseDir, "a.JPG"), pngHeader)
	writeFile(t, filepath.Join(baseDir, "sub", "b.gif"), pngHeader)
	writeFile(t, filepath.Join(baseDir, "sub", "c.mp4"), pngHeader)

	images := collectImages(baseDir)
	sort.Strings(images)
	assert.Equal(t, []string{
		filepath.Join(baseDir, "a.JPG"),
		filepath.Join(baseDir, "sub", "b.gif"),
	}, images)
}
