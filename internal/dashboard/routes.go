package dashboard

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, db *gorm.DB) {
	router.GET("/healthz", handleHealth(db))

	api := router.Group("/api")
	api.GET("/projects", handleProjects(db))
	api.GET("/projects/:id/readiness", handleProjectReadiness(db))
	api.GET("/projects/:id/epics", handleProjectEpics(db))
	api.GET("/instances/:id", handleInstanceDetail(db))
}

func handleHealth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func handleProjects(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := ProjectSummary(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"projects": rows})
	}
}

func handleProjectReadiness(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := GetProjectReadiness(db, c.Param("id"))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, payload)
	}
}

func handleProjectEpics(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := EpicSummary(db, c.Param("id"))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"epics": rows})
	}
}

func handleInstanceDetail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := GetInstanceDetail(db, c.Param("id"))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

// statusFor maps store errors onto HTTP status codes.
func statusFor(err error) int {
	if strings.Contains(err.Error(), "not found") {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
