package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"coursehub/internal/access"
	"coursehub/internal/models/request_models"
	"coursehub/internal/services"
	"coursehub/pkg/utils"
)

type CourseController struct {
	courseService       services.CourseServiceInterface
	subscriptionService services.SubscriptionServiceInterface
}

func NewCourseController(
	courseService services.CourseServiceInterface,
	subscriptionService services.SubscriptionServiceInterface,
) *CourseController {
	return &CourseController{
		courseService:       courseService,
		subscriptionService: subscriptionService,
	}
}

// ListCourses godoc
// @Summary List courses
// @Description Moderators see every course, members see their own, anonymous callers see none
// @Tags Courses
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /courses [get]
func (cc *CourseController) ListCourses(c *gin.Context) {
	page, ok := pagination(c)
	if !ok {
		return
	}

	courses, err := cc.courseService.List(c.Request.Context(), access.FromContext(c.Request.Context()), page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, courses, "Courses retrieved successfully")
}

// GetCourse godoc
// @Summary Get a course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /courses/{id} [get]
func (cc *CourseController) GetCourse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	course, err := cc.courseService.Get(c.Request.Context(), access.FromContext(c.Request.Context()), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, course, "Course retrieved successfully")
}

// CreateCourse godoc
// @Summary Create a course
// @Description The caller becomes the owner. Moderators cannot create courses.
// @Tags Courses
// @Accept json
// @Produce json
// @Param request body request_models.CourseRequest true "Course payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /courses [post]
func (cc *CourseController) CreateCourse(c *gin.Context) {
	var req request_models.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	course, err := cc.courseService.Create(c.Request.Context(), access.FromContext(c.Request.Context()), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, course, "Course created successfully")
}

// ReplaceCourse godoc
// @Summary Replace a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body request_models.CourseRequest true "Course payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /courses/{id} [put]
func (cc *CourseController) ReplaceCourse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request_models.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cc.update(c, id, req.AsPatch())
}

// PatchCourse godoc
// @Summary Partially update a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body request_models.PatchCourseRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /courses/{id} [patch]
func (cc *CourseController) PatchCourse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request_models.PatchCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cc.update(c, id, req)
}

func (cc *CourseController) update(c *gin.Context, id uuid.UUID, req request_models.PatchCourseRequest) {
	course, err := cc.courseService.Update(c.Request.Context(), access.FromContext(c.Request.Context()), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, course, "Course updated successfully")
}

// DeleteCourse godoc
// @Summary Delete a course
// @Description Removes the course with its lessons, subscriptions and payments. Moderators cannot delete.
// @Tags Courses
// @Param id path string true "Course ID"
// @Success 204
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /courses/{id} [delete]
func (cc *CourseController) DeleteCourse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := cc.courseService.Delete(c.Request.Context(), access.FromContext(c.Request.Context()), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Subscribe godoc
// @Summary Subscribe to course updates
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Course ID"
// @Success 201 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /courses/{id}/subscription [post]
func (cc *CourseController) Subscribe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	sub, err := cc.subscriptionService.Subscribe(c.Request.Context(), access.FromContext(c.Request.Context()), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, sub, "Subscription added")
}

// Unsubscribe godoc
// @Summary Unsubscribe from course updates
// @Tags Subscriptions
// @Param id path string true "Course ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /courses/{id}/subscription [delete]
func (cc *CourseController) Unsubscribe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := cc.subscriptionService.Unsubscribe(c.Request.Context(), access.FromContext(c.Request.Context()), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListSubscriptions godoc
// @Summary List the caller's active subscriptions
// @Tags Subscriptions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /subscriptions [get]
func (cc *CourseController) ListSubscriptions(c *gin.Context) {
	page, ok := pagination(c)
	if !ok {
		return
	}

	subs, err := cc.subscriptionService.List(c.Request.Context(), access.FromContext(c.Request.Context()), page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, subs, "Subscriptions retrieved successfully")
}
