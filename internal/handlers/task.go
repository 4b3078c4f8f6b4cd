package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/teamtrack/backend/internal/services"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db    *gorm.DB
	tasks *services.TaskService
}

func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{db: db, tasks: services.NewTaskService(db)}
}

// List handles GET /api/tasks with an optional ?projectId= filter.
func (h *TaskHandler) List(c *gin.Context) {
	var projectID *uint
	if raw := c.Query("projectId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "invalid projectId")
			return
		}
		v := uint(id)
		projectID = &v
	}

	tasks, err := h.tasks.List(projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"tasks": tasks})
}

// Create handles POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "title and projectId are required")
		return
	}

	task, err := h.tasks.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	services.RecordActivity(h.db, "create", "task", task.ID, actorID(c), gin.H{"title": task.Title})
	response.Created(c, gin.H{"task": task})
}

// Update handles PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	task, err := h.tasks.Update(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	services.RecordActivity(h.db, "update", "task", id, actorID(c), nil)
	response.OK(c, gin.H{"task": task})
}

// Delete handles DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(id); err != nil {
		response.Error(c, err)
		return
	}

	services.RecordActivity(h.db, "delete", "task", id, actorID(c), nil)
	response.OK(c, gin.H{"message": "task deleted"})
}
