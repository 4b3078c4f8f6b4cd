package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/teamtrack/backend/internal/services"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type ActivityHandler struct {
	activity *services.ActivityService
}

func NewActivityHandler(db *gorm.DB) *ActivityHandler {
	return &ActivityHandler{activity: services.NewActivityService(db)}
}

// List handles GET /api/activity (admin only), newest first.
func (h *ActivityHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	entries, total, err := h.activity.List(page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"activity": entries,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}
