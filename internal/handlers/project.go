package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/teamtrack/backend/internal/services"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	db       *gorm.DB
	projects *services.ProjectService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{db: db, projects: services.NewProjectService(db)}
}

// List handles GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projects.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"projects": projects})
}

// Get handles GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	project, err := h.projects.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"project": project})
}

// Create handles POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name and adminId are required")
		return
	}

	project, err := h.projects.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	services.RecordActivity(h.db, "create", "project", project.ID, actorID(c), gin.H{"name": project.Name})
	response.Created(c, gin.H{"project": project})
}

// Update handles PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	project, err := h.projects.Update(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	services.RecordActivity(h.db, "update", "project", id, actorID(c), nil)
	response.OK(c, gin.H{"project": project})
}

// AddMember handles PUT /api/projects/:id/members
func (h *ProjectHandler) AddMember(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "memberId is required")
		return
	}

	project, err := h.projects.AddMember(id, req.MemberID)
	if err != nil {
		response.Error(c, err)
		return
	}

	services.RecordActivity(h.db, "add_member", "project", id, actorID(c), gin.H{"memberId": req.MemberID})
	response.OK(c, gin.H{"project": project})
}

// Delete handles DELETE /api/projects/:id. The project's tasks and
// memberships go with it.
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.projects.Delete(id); err != nil {
		response.Error(c, err)
		return
	}

	services.RecordActivity(h.db, "delete", "project", id, actorID(c), nil)
	response.OK(c, gin.H{"message": "project deleted"})
}
