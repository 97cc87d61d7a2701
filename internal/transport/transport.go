package transport

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/ds124wfegd/tryon-compositor/internal/entity"
	"github.com/ds124wfegd/tryon-compositor/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

const serviceName = "tryon-compositor"

//go:embed templates/*.html
var templatesFS embed.FS

func InitRoutes(h *TryOnHandler, maxUploadBytes int64) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger(), middleware.BodyLimit(maxUploadBytes))

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{"Title": "Virtual Try-On"})
	})

	api := router.Group("/api")
	{
		api.POST("/tryon", h.TryOn)
		api.POST("/tryon/image", h.TryOnImage)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, entity.HealthResponse{
			Status:  "ok",
			Service: serviceName,
		})
	})
	return router
}
