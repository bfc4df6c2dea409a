package controller

import (
	"courtside_backend/internal/service"
	"courtside_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VideoController struct {
	VideoService *service.VideoService
}

func NewVideoController(videoService *service.VideoService) *VideoController {
	return &VideoController{VideoService: videoService}
}

// UploadLesson godoc
// @Summary Upload a video lesson
// @Tags videos
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "video file"
// @Param skillId formData int true "skill id"
// @Param title formData string true "title"
// @Success 201 {object} util.Response{data=model.VideoLesson}
// @Failure 400 {object} util.Response
// @Router /api/coach/lessons [post]
func (c *VideoController) UploadLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.VideoLessonRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	lesson, err := c.VideoService.UploadLesson(ctx.Request.Context(), claims.UserID, req, file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// GetLesson godoc
// @Summary Get a video lesson
// @Tags videos
// @Produce json
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response{data=model.VideoLesson}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id} [get]
func (c *VideoController) GetLesson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	lesson, err := c.VideoService.GetLesson(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}

// ListLessons godoc
// @Summary List published lessons for a skill
// @Tags videos
// @Produce json
// @Param skillId query int true "skill id"
// @Success 200 {object} util.Response{data=[]model.VideoLesson}
// @Router /api/lessons [get]
func (c *VideoController) ListLessons(ctx *gin.Context) {
	skillID, err := strconv.ParseUint(ctx.Query("skillId"), 10, 32)
	if err != nil || skillID == 0 {
		util.BadRequest(ctx, "invalid skillId")
		return
	}

	lessons, err := c.VideoService.ListLessonsBySkill(uint(skillID), true)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// SubmitReview godoc
// @Summary Submit practice footage for coach review
// @Tags videos
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "video file"
// @Param skillId formData int true "skill id"
// @Success 201 {object} util.Response{data=model.ReviewVideo}
// @Failure 400 {object} util.Response
// @Router /api/student/reviews [post]
func (c *VideoController) SubmitReview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	skillID, err := strconv.ParseUint(ctx.PostForm("skillId"), 10, 32)
	if err != nil || skillID == 0 {
		util.BadRequest(ctx, "invalid skillId")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	review, err := c.VideoService.SubmitReview(ctx.Request.Context(), claims.UserID, uint(skillID), file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, review)
}

// GetReview godoc
// @Summary Get a review video with its notes
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path int true "review id"
// @Success 200 {object} util.Response{data=model.ReviewVideo}
// @Failure 404 {object} util.Response
// @Router /api/reviews/{id} [get]
func (c *VideoController) GetReview(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	review, err := c.VideoService.GetReview(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, review)
}

// ListMyReviews godoc
// @Summary List the caller's submitted review videos
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ReviewVideo}
// @Router /api/student/reviews [get]
func (c *VideoController) ListMyReviews(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	reviews, err := c.VideoService.ListReviewsByStudent(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, reviews)
}

// ListPendingReviews godoc
// @Summary List review videos awaiting feedback
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/coach/reviews/pending [get]
func (c *VideoController) ListPendingReviews(ctx *gin.Context) {
	page, limit := pagination(ctx)
	reviews, total, err := c.VideoService.ListPendingReviews(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: reviews, Total: total, Page: page, Limit: limit})
}

// AddReviewNote godoc
// @Summary Attach a timestamped note to a review video
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "review id"
// @Param body body service.ReviewNoteRequest true "note"
// @Success 201 {object} util.Response{data=model.ReviewNote}
// @Failure 404 {object} util.Response
// @Router /api/coach/reviews/{id}/notes [post]
func (c *VideoController) AddReviewNote(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.ReviewNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	note, err := c.VideoService.AddReviewNote(claims.UserID, id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, note)
}
