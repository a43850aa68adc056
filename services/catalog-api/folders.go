package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shutterclone/photo-catalog/traceutils"
)

// ListFolders returns the distinct top-level folder names known to the
// asset store, used by the client to populate category choices.
func (s *CatalogServer) ListFolders(c *gin.Context) {
	traceutils.SetHandlerTag(c, "ListFolders")

	folders, err := s.assetStore.ListFolders(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to fetch folders", err)
		return
	}

	c.JSON(http.StatusOK, folders)
}
