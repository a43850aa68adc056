// Package cfimages adapts Cloudflare Images into the catalog's asset store
// contract: upload a binary into a folder, get back a public delivery URL
// and a stable id, delete by id, list folders.
package cfimages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cloudflare/cloudflare-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	catalog "github.com/shutterclone/photo-catalog"
	"github.com/shutterclone/photo-catalog/log"
)

const imageDeliveryURL = "https://imagedelivery.net/%s/%s/public"

// Cloudflare API error code for deleting or fetching an absent image.
const codeImageNotFound = 5404

const listPageSize = 100

type ImageStore struct {
	accountHash string
	account     *cloudflare.ResourceContainer
	api         *cloudflare.API
}

func New(accountID, accountHash, apiToken string) (*ImageStore, error) {
	api, err := cloudflare.NewWithAPIToken(apiToken)
	if err != nil {
		return nil, err
	}

	return &ImageStore{
		accountHash: accountHash,
		account: &cloudflare.ResourceContainer{
			Level:      cloudflare.AccountRouteLevel,
			Identifier: accountID,
			Type:       cloudflare.AccountType,
		},
		api: api,
	}, nil
}

// Upload pushes a binary to Cloudflare Images under the given folder and
// returns its public delivery URL together with the image id used for
// deletion. The stored name is `<folder>/<uuid>` so that folders can be
// recovered from image names.
func (s *ImageStore) Upload(ctx context.Context, file io.Reader, folder, filename string) (catalog.UploadedAsset, error) {
	name := AssetName(folder, uuid.NewString())

	image, err := s.api.UploadImage(ctx, s.account, cloudflare.UploadImageParams{
		File: io.NopCloser(file),
		Name: name,
		Metadata: map[string]interface{}{
			"filename": filename,
			"folder":   folder,
		},
	})
	if err != nil {
		return catalog.UploadedAsset{}, &catalog.UpstreamStorageError{Op: "upload", Err: err}
	}

	log.Debug("uploaded image to cloudflare",
		zap.String("name", name), zap.String("imageID", image.ID))

	return catalog.UploadedAsset{
		URL:     fmt.Sprintf(imageDeliveryURL, s.accountHash, image.ID),
		AssetID: image.ID,
	}, nil
}

// Delete removes an image by its id. Deleting an image that no longer
// exists is treated as success, which keeps whole-operation retries safe
// for callers.
func (s *ImageStore) Delete(ctx context.Context, assetID string) error {
	err := s.api.DeleteImage(ctx, s.account, assetID)
	if err == nil || isNotFound(err) {
		return nil
	}

	return &catalog.UpstreamStorageError{Op: "delete", Err: err}
}

// ListFolders returns the distinct top-level folder names of all stored
// images, sorted. Cloudflare Images has no folder API so the names are
// recovered from the `<folder>/<uuid>` naming scheme.
func (s *ImageStore) ListFolders(ctx context.Context) ([]string, error) {
	names := []string{}

	for page := 1; ; page++ {
		images, err := s.api.ListImages(ctx, s.account, cloudflare.ListImagesParams{
			ResultInfo: cloudflare.ResultInfo{
				Page:    page,
				PerPage: listPageSize,
			},
		})
		if err != nil {
			return nil, &catalog.UpstreamStorageError{Op: "list", Err: err}
		}

		for _, image := range images {
			names = append(names, image.Filename)
		}

		if len(images) < listPageSize {
			break
		}
	}

	return FoldersFromNames(names), nil
}

// FoldersFromNames extracts the distinct first path segments out of a list
// of asset names. Names without a folder segment are skipped.
func FoldersFromNames(names []string) []string {
	seen := map[string]bool{}
	folders := []string{}

	for _, name := range names {
		folder, _, found := strings.Cut(name, "/")
		if !found || folder == "" {
			continue
		}
		if !seen[folder] {
			seen[folder] = true
			folders = append(folders, folder)
		}
	}

	sort.Strings(folders)
	return folders
}

// AssetName builds the stored name for an uploaded binary.
func AssetName(folder, id string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return id
	}

	return folder + "/" + id
}

func isNotFound(err error) bool {
	var notFoundErr *cloudflare.NotFoundError
	if errors.As(err, &notFoundErr) {
		return true
	}

	var requestErr *cloudflare.RequestError
	if errors.As(err, &requestErr) {
		for _, code := range requestErr.ErrorCodes() {
			if code == codeImageNotFound {
				return true
			}
		}
	}

	return false
}
