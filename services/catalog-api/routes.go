package main

import (
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *CatalogServer) SetupRoute() {
	s.route.Use(sentrygin.New(sentrygin.Options{
		Repanic: true,
	}))

	s.route.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "API-TOKEN"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	s.route.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "catalog server is running")
	})

	s.route.GET("/api/images", s.ListImages)
	s.route.GET("/api/images/category/:category", s.ListImagesByCategory)
	s.route.GET("/api/folders", s.ListFolders)

	// mutating routes; open unless an admin token is configured
	if s.adminToken != "" {
		s.route.Use(TokenAuthenticate("API-TOKEN", s.adminToken))
	}
	s.route.POST("/api/images", s.CreateImage)
	s.route.POST("/api/images/upload", s.UploadImage)
	s.route.PUT("/api/images/:id", s.UpdateImage)
	s.route.DELETE("/api/images/:id", s.DeleteImage)
}
