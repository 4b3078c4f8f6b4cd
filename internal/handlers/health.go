package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamtrack/backend/internal/services"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check handles GET /health. Reports database reachability and the activity
// queue mode.
func (h *HealthHandler) Check(c *gin.Context) {
	dbStatus := "ok"
	if sqlDB, err := h.db.DB(); err != nil {
		dbStatus = "error"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error"
	}

	queueMode := "none"
	if queue := services.GetActivityQueue(); queue != nil {
		if queue.IsAsync() {
			queueMode = "async"
		} else {
			queueMode = "sync"
		}
	}

	status := http.StatusOK
	if dbStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"success":  dbStatus == "ok",
		"database": dbStatus,
		"queue":    queueMode,
	})
}
