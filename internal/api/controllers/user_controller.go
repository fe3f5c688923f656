package controllers

import (
	"github.com/gin-gonic/gin"

	"coursehub/internal/access"
	"coursehub/internal/models/db_models"
	"coursehub/internal/models/request_models"
	"coursehub/internal/services"
	"coursehub/pkg/utils"
)

type UserController struct {
	userService services.UserServiceInterface
}

func NewUserController(userService services.UserServiceInterface) *UserController {
	return &UserController{userService: userService}
}

// ListUsers godoc
// @Summary List users
// @Description Public profiles, except the caller's own which carries private fields
// @Tags Users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users [get]
func (u *UserController) ListUsers(c *gin.Context) {
	page, ok := pagination(c)
	if !ok {
		return
	}

	users, err := u.userService.List(c.Request.Context(), access.FromContext(c.Request.Context()), page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, users, "Users retrieved successfully")
}

// GetUser godoc
// @Summary Get a user profile
// @Description The owner receives the private profile with payment history
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (u *UserController) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := u.userService.Get(c.Request.Context(), access.FromContext(c.Request.Context()), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "User retrieved successfully")
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body request_models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/{id} [patch]
func (u *UserController) UpdateProfile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request_models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := u.userService.UpdateProfile(c.Request.Context(), access.FromContext(c.Request.Context()), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "Profile updated successfully")
}

// AssignRole godoc
// @Summary Assign a role
// @Description Moderators only
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body request_models.AssignRoleRequest true "Role"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /users/{id}/role [patch]
func (u *UserController) AssignRole(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request_models.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := u.userService.AssignRole(c.Request.Context(), access.FromContext(c.Request.Context()), id, db_models.UserRole(req.Role))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "Role assigned successfully")
}
