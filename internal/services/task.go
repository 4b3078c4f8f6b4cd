package services

import (
	"errors"

	"github.com/teamtrack/backend/internal/models"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type TaskService struct {
	db       *gorm.DB
	resolver *Resolver
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db, resolver: NewResolver(db)}
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ProjectID   uint   `json:"projectId" binding:"required"`
	AssignedTo  *uint  `json:"assignedTo"`
	Status      string `json:"status"`
}

// UpdateTaskRequest uses partial-update semantics: nil fields stay unchanged.
// assignedTo set to 0 clears the assignee.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AssignedTo  *uint   `json:"assignedTo"`
	Status      *string `json:"status"`
}

// Create creates a task inside an existing project. The project reference is
// validated; status defaults to "To Do".
func (s *TaskService) Create(req *CreateTaskRequest) (*TaskView, error) {
	var projectCount int64
	if err := s.db.Model(&models.Project{}).Where("id = ?", req.ProjectID).Count(&projectCount).Error; err != nil {
		return nil, err
	}
	if projectCount == 0 {
		return nil, response.NewBadRequest("project not found")
	}

	if req.AssignedTo != nil && *req.AssignedTo != 0 {
		var userCount int64
		if err := s.db.Model(&models.User{}).Where("id = ?", *req.AssignedTo).Count(&userCount).Error; err != nil {
			return nil, err
		}
		if userCount == 0 {
			return nil, response.NewBadRequest("assigned user not found")
		}
	}

	if req.Status == "" {
		req.Status = models.StatusToDo
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
		Status:      req.Status,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}

	return s.resolver.ResolveTask(&task)
}

// List returns tasks with references resolved, optionally filtered by
// project. The filter is applied even when the project no longer exists,
// yielding an empty sequence.
func (s *TaskService) List(projectID *uint) ([]TaskView, error) {
	query := s.db.Order("id ASC")
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return s.resolver.ResolveTasks(tasks)
}

// Update applies the provided fields only and returns the resolved task.
func (s *TaskService) Update(id uint, req *UpdateTaskRequest) (*TaskView, error) {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("task not found")
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil && *req.Title != "" {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil && *req.Status != "" {
		updates["status"] = *req.Status
	}
	if req.AssignedTo != nil {
		if *req.AssignedTo == 0 {
			updates["assigned_to"] = nil
		} else {
			var userCount int64
			if err := s.db.Model(&models.User{}).Where("id = ?", *req.AssignedTo).Count(&userCount).Error; err != nil {
				return nil, err
			}
			if userCount == 0 {
				return nil, response.NewBadRequest("assigned user not found")
			}
			updates["assigned_to"] = *req.AssignedTo
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&task).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return s.resolver.ResolveTask(&task)
}

// Delete removes a task. Deleting an absent task is treated as success.
func (s *TaskService) Delete(id uint) error {
	return s.db.Delete(&models.Task{}, id).Error
}
