package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/teamtrack/backend/internal/middleware"
	"github.com/teamtrack/backend/internal/services"
	"github.com/teamtrack/backend/internal/utils"
	"github.com/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type UserHandler struct {
	db            *gorm.DB
	users         *services.UserService
	jwtExpireHour int
}

func NewUserHandler(db *gorm.DB, jwtExpireHour int) *UserHandler {
	return &UserHandler{
		db:            db,
		users:         services.NewUserService(db),
		jwtExpireHour: jwtExpireHour,
	}
}

// Register handles POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name, email and password are required")
		return
	}

	user, err := h.users.Register(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	services.RecordActivity(h.db, "register", "user", user.ID, actorID(c), gin.H{"email": user.Email})
	response.Created(c, gin.H{"user": user})
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}

	user, err := h.users.Login(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, h.jwtExpireHour)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"user": user, "token": token})
}

// List handles GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"users": users})
}

// Me handles GET /api/users/me and returns the authenticated user.
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.users.GetByID(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"user": user})
}

// Delete handles DELETE /api/users/:id (admin only).
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.users.Delete(id); err != nil {
		response.Error(c, err)
		return
	}

	services.RecordActivity(h.db, "delete", "user", id, actorID(c), nil)
	response.OK(c, gin.H{"message": "user deleted"})
}

// parseID reads the :id path parameter, answering 400 when it is not a
// positive integer.
func parseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// actorID returns the authenticated user ID as a pointer, nil for anonymous
// requests.
func actorID(c *gin.Context) *uint {
	if id := middleware.GetUserID(c); id != 0 {
		return &id
	}
	return nil
}
