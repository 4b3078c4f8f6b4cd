package services

import (
	"math"

	"github.com/teamtrack/backend/internal/models"
	"gorm.io/gorm"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// StatusCounts maps an exact status string to the number of tasks carrying
// it. Unknown statuses stay as their own groups.
type StatusCounts map[string]int64

type GlobalStats struct {
	TotalProjects      int64        `json:"totalProjects"`
	TotalTasks         int64        `json:"totalTasks"`
	TasksByStatus      StatusCounts `json:"tasksByStatus"`
	ProgressPercentage int          `json:"progressPercentage"`
}

type ProjectStats struct {
	TotalTasks         int64        `json:"totalTasks"`
	TasksByStatus      StatusCounts `json:"tasksByStatus"`
	ProgressPercentage int          `json:"progressPercentage"`
}

// GlobalStats computes counts and completion percentage across all tasks.
func (s *DashboardService) GlobalStats() (*GlobalStats, error) {
	var totalProjects int64
	if err := s.db.Model(&models.Project{}).Count(&totalProjects).Error; err != nil {
		return nil, err
	}

	byStatus, total, err := s.countByStatus(nil)
	if err != nil {
		return nil, err
	}

	return &GlobalStats{
		TotalProjects:      totalProjects,
		TotalTasks:         total,
		TasksByStatus:      byStatus,
		ProgressPercentage: progressPercentage(byStatus[models.StatusDone], total),
	}, nil
}

// ProjectStats computes the same figures scoped to one project's tasks.
func (s *DashboardService) ProjectStats(projectID uint) (*ProjectStats, error) {
	byStatus, total, err := s.countByStatus(&projectID)
	if err != nil {
		return nil, err
	}

	return &ProjectStats{
		TotalTasks:         total,
		TasksByStatus:      byStatus,
		ProgressPercentage: progressPercentage(byStatus[models.StatusDone], total),
	}, nil
}

func (s *DashboardService) countByStatus(projectID *uint) (StatusCounts, int64, error) {
	query := s.db.Model(&models.Task{}).
		Select("status, COUNT(*) as count").
		Group("status")
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	byStatus := make(StatusCounts, len(rows))
	var total int64
	for _, row := range rows {
		byStatus[row.Status] = row.Count
		total += row.Count
	}
	return byStatus, total, nil
}

// progressPercentage is round(100 * done / total), defined as 0 for an empty
// task set.
func progressPercentage(done, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}
