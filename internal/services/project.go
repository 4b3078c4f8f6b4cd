package services

import (
	"errors"

	"github.com/teamtrack/backend/internal/models"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db       *gorm.DB
	resolver *Resolver
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db, resolver: NewResolver(db)}
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	AdminID     uint   `json:"adminId" binding:"required"`
}

// UpdateProjectRequest applies partial-update semantics: nil fields are left
// untouched. A non-nil empty description clears the field, which is distinct
// from not providing it.
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Members     *[]uint `json:"members"`
}

type AddMemberRequest struct {
	MemberID uint `json:"memberId" binding:"required"`
}

// Create creates a project owned by adminID. The members set is initialized
// to the admin alone.
func (s *ProjectService) Create(req *CreateProjectRequest) (*ProjectView, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", req.AdminID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, response.NewBadRequest("admin user not found")
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		AdminID:     req.AdminID,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		membership := models.ProjectMember{ProjectID: project.ID, UserID: req.AdminID}
		return tx.Create(&membership).Error
	}); err != nil {
		return nil, err
	}

	return s.resolver.ResolveProject(&project)
}

// List returns all projects with references resolved, in insertion order.
func (s *ProjectService) List() ([]ProjectView, error) {
	var projects []models.Project
	if err := s.db.Order("id ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return s.resolver.ResolveProjects(projects)
}

// Get returns a resolved project by ID.
func (s *ProjectService) Get(id uint) (*ProjectView, error) {
	project, err := s.findProject(id)
	if err != nil {
		return nil, err
	}
	return s.resolver.ResolveProject(project)
}

// Update applies the provided fields only. A members list replaces the whole
// membership set, deduplicated.
func (s *ProjectService) Update(id uint, req *UpdateProjectRequest) (*ProjectView, error) {
	project, err := s.findProject(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(project).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.Members != nil {
			if err := tx.Unscoped().Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
				return err
			}
			seen := make(map[uint]bool)
			for _, userID := range *req.Members {
				if seen[userID] {
					continue
				}
				seen[userID] = true
				membership := models.ProjectMember{ProjectID: id, UserID: userID}
				if err := tx.Create(&membership).Error; err != nil {
					return err
				}
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return s.Get(id)
}

// AddMember adds a user to the project's member set. Adding an existing
// member is a no-op; the call is idempotent.
func (s *ProjectService) AddMember(id, memberID uint) (*ProjectView, error) {
	if _, err := s.findProject(id); err != nil {
		return nil, err
	}

	var userCount int64
	if err := s.db.Model(&models.User{}).Where("id = ?", memberID).Count(&userCount).Error; err != nil {
		return nil, err
	}
	if userCount == 0 {
		return nil, response.NewBadRequest("user not found")
	}

	var existing int64
	if err := s.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", id, memberID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing == 0 {
		membership := models.ProjectMember{ProjectID: id, UserID: memberID}
		if err := s.db.Create(&membership).Error; err != nil {
			return nil, err
		}
	}

	return s.Get(id)
}

// Delete removes the project, its memberships and every task that references
// it. Deleting an absent project is treated as success.
func (s *ProjectService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

func (s *ProjectService) findProject(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}
	return &project, nil
}
