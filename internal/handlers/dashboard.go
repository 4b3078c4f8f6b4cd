package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/teamtrack/backend/internal/services"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{dashboard: services.NewDashboardService(db)}
}

// GetStats handles GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboard.GlobalStats()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"stats": stats})
}

// GetProjectStats handles GET /api/dashboard/project-stats/:id. A stats view
// is produced even for an unknown project, as an empty task set.
func (h *DashboardHandler) GetProjectStats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	stats, err := h.dashboard.ProjectStats(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"stats": stats})
}
