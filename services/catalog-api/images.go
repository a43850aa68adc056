package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	catalog "github.com/shutterclone/photo-catalog"
	"github.com/shutterclone/photo-catalog/traceutils"
)

type imageQueryParams struct {
	Search string `form:"search"`
	Page   int64  `form:"page"`
	Limit  int64  `form:"limit"`
}

type createImageParams struct {
	URL      string   `json:"url" binding:"required"`
	AssetID  string   `json:"public_id" binding:"required"`
	Title    string   `json:"title"`
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
}

// CreateImage persists a metadata record for a binary the client has
// already pushed to the asset store on its own.
func (s *CatalogServer) CreateImage(c *gin.Context) {
	traceutils.SetHandlerTag(c, "CreateImage")

	var input createImageParams
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid parameters", err)
		return
	}

	image, err := s.catalogStore.CreateImage(c, catalog.ImageRecord{
		URL:      input.URL,
		AssetID:  input.AssetID,
		Title:    input.Title,
		Tags:     input.Tags,
		Category: input.Category,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to save image", err)
		return
	}

	c.JSON(http.StatusCreated, image)
}

// UploadImage runs the full ingestion path on the server: push the binary
// to the asset store under the given category, auto-tag it and persist the
// record. Tagging is best-effort; a classification failure degrades to the
// fallback tags and the upload still succeeds.
func (s *CatalogServer) UploadImage(c *gin.Context) {
	traceutils.SetHandlerTag(c, "UploadImage")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "missing image file", err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "unreadable image file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "unreadable image file", err)
		return
	}

	if mime := mimetype.Detect(data); !catalog.IsSupportedImageType(mime.String()) {
		abortWithError(c, http.StatusBadRequest, "unsupported image type", fmt.Errorf("unsupported image type %s", mime))
		return
	}

	category := c.PostForm("category")
	title := c.PostForm("title")
	if title == "" {
		title = fileHeader.Filename
	}

	tags := catalog.TagsWithFallback(c, s.classifier, data)

	asset, err := s.assetStore.Upload(c, bytes.NewReader(data), category, fileHeader.Filename)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to upload image", err)
		return
	}

	// a failure past this point leaves the uploaded asset behind; that
	// orphaned-asset leak is accepted, the reverse is not
	image, err := s.catalogStore.CreateImage(c, catalog.ImageRecord{
		URL:      asset.URL,
		AssetID:  asset.AssetID,
		Title:    title,
		Tags:     tags,
		Category: category,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to save image", err)
		return
	}

	c.JSON(http.StatusCreated, image)
}

// ListImages searches images by title or tags and returns one page of
// records together with the total matching count.
func (s *CatalogServer) ListImages(c *gin.Context) {
	traceutils.SetHandlerTag(c, "ListImages")

	reqParams := imageQueryParams{
		Page:  1,
		Limit: 10,
	}

	if err := c.BindQuery(&reqParams); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid parameters", err)
		return
	}

	images, total, err := s.catalogStore.ListImages(c, reqParams.Search, reqParams.Page, reqParams.Limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to fetch images", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"images": images,
		"total":  total,
	})
}

// ListImagesByCategory returns all images of a category, newest first.
func (s *CatalogServer) ListImagesByCategory(c *gin.Context) {
	traceutils.SetHandlerTag(c, "ListImagesByCategory")

	images, err := s.catalogStore.ListImagesByCategory(c, c.Param("category"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to fetch images by category", err)
		return
	}

	c.JSON(http.StatusOK, images)
}

// UpdateImage applies a partial update over title, tags and category.
func (s *CatalogServer) UpdateImage(c *gin.Context) {
	traceutils.SetHandlerTag(c, "UpdateImage")

	var input catalog.ImageUpdates
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid parameters", err)
		return
	}

	image, err := s.catalogStore.UpdateImage(c, c.Param("id"), input)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "image not found", err)
			return
		}
		abortWithError(c, http.StatusInternalServerError, "failed to update image", err)
		return
	}

	c.JSON(http.StatusOK, image)
}

// DeleteImage removes an image from both stores. The asset is removed
// first; when that fails the record is kept so that the catalog never holds
// a record whose binary is gone.
func (s *CatalogServer) DeleteImage(c *gin.Context) {
	traceutils.SetHandlerTag(c, "DeleteImage")

	image, err := s.catalogStore.GetImage(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "image not found", err)
			return
		}
		abortWithError(c, http.StatusInternalServerError, "failed to fetch image", err)
		return
	}

	if err := s.assetStore.Delete(c, image.AssetID); err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to delete image asset", err)
		return
	}

	if err := s.catalogStore.DeleteImage(c, c.Param("id")); err != nil && !errors.Is(err, catalog.ErrNotFound) {
		abortWithError(c, http.StatusInternalServerError, "failed to delete image", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
