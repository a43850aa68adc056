package main

import (
	"github.com/gin-gonic/gin"

	catalog "github.com/shutterclone/photo-catalog"
)

type CatalogServer struct {
	adminToken string
	route      *gin.Engine

	catalogStore catalog.CatalogStore
	assetStore   catalog.AssetStore
	classifier   catalog.TagClassifier
}

func NewCatalogServer(catalogStore catalog.CatalogStore,
	assetStore catalog.AssetStore,
	classifier catalog.TagClassifier,
	adminToken string) *CatalogServer {
	r := gin.New()

	return &CatalogServer{
		adminToken: adminToken,
		route:      r,

		catalogStore: catalogStore,
		assetStore:   assetStore,
		classifier:   classifier,
	}
}

func (s *CatalogServer) Run(port string) error {
	return s.route.Run(port)
}
