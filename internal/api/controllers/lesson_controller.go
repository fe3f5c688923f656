package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"coursehub/internal/access"
	"coursehub/internal/models/request_models"
	"coursehub/internal/repositories"
	"coursehub/internal/services"
	"coursehub/pkg/utils"
)

type LessonController struct {
	lessonService services.LessonServiceInterface
}

func NewLessonController(lessonService services.LessonServiceInterface) *LessonController {
	return &LessonController{lessonService: lessonService}
}

// ListLessons godoc
// @Summary List lessons
// @Description Lessons the caller owns or that belong to a course the caller owns; moderators see all
// @Tags Lessons
// @Produce json
// @Param course query string false "Filter by course ID"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(10)
// @Success 200 {object} utils.APIResponse
// @Router /lessons [get]
func (lc *LessonController) ListLessons(c *gin.Context) {
	var query request_models.LessonListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}
	page, ok := pagination(c)
	if !ok {
		return
	}

	filter := repositories.LessonFilter{CourseID: optionalUUID(query.CourseID)}
	lessons, err := lc.lessonService.List(c.Request.Context(), access.FromContext(c.Request.Context()), filter, page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, lessons, "Lessons retrieved successfully")
}

// GetLesson godoc
// @Summary Get a lesson
// @Tags Lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /lessons/{id} [get]
func (lc *LessonController) GetLesson(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	lesson, err := lc.lessonService.Get(c.Request.Context(), access.FromContext(c.Request.Context()), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, lesson, "Lesson retrieved successfully")
}

// CreateLesson godoc
// @Summary Create a lesson
// @Description Subscribers of the course are notified in the background
// @Tags Lessons
// @Accept json
// @Produce json
// @Param request body request_models.LessonRequest true "Lesson payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /lessons [post]
func (lc *LessonController) CreateLesson(c *gin.Context) {
	var req request_models.LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lesson, err := lc.lessonService.Create(c.Request.Context(), access.FromContext(c.Request.Context()), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, lesson, "Lesson created successfully")
}

// ReplaceLesson godoc
// @Summary Replace a lesson
// @Tags Lessons
// @Accept json
// @Produce json
// @Param id path string true "Lesson ID"
// @Param request body request_models.LessonRequest true "Lesson payload"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /lessons/{id} [put]
func (lc *LessonController) ReplaceLesson(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request_models.LessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lc.update(c, id, req.AsPatch())
}

// PatchLesson godoc
// @Summary Partially update a lesson
// @Tags Lessons
// @Accept json
// @Produce json
// @Param id path string true "Lesson ID"
// @Param request body request_models.PatchLessonRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /lessons/{id} [patch]
func (lc *LessonController) PatchLesson(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request_models.PatchLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lc.update(c, id, req)
}

func (lc *LessonController) update(c *gin.Context, id uuid.UUID, req request_models.PatchLessonRequest) {
	lesson, err := lc.lessonService.Update(c.Request.Context(), access.FromContext(c.Request.Context()), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, lesson, "Lesson updated successfully")
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags Lessons
// @Param id path string true "Lesson ID"
// @Success 204
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /lessons/{id} [delete]
func (lc *LessonController) DeleteLesson(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := lc.lessonService.Delete(c.Request.Context(), access.FromContext(c.Request.Context()), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
