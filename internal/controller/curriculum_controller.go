package controller

import (
	"courtside_backend/internal/service"
	"courtside_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type CurriculumController struct {
	CurriculumService *service.CurriculumService
}

func NewCurriculumController(curriculumService *service.CurriculumService) *CurriculumController {
	return &CurriculumController{CurriculumService: curriculumService}
}

func curriculumError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCurriculumNotFound), errors.Is(err, util.ErrCurriculumItemNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrCurriculumItemLocked):
		util.Conflict(ctx, "item is locked")
	default:
		util.LogInternalError(ctx, err)
	}
}

// CreateCurriculum godoc
// @Summary Assign a curriculum to a student
// @Tags curricula
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateCurriculumRequest true "curriculum"
// @Success 201 {object} util.Response{data=model.Curriculum}
// @Failure 400 {object} util.Response
// @Router /api/coach/curricula [post]
func (c *CurriculumController) CreateCurriculum(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateCurriculumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	curriculum, err := c.CurriculumService.CreateCurriculum(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, curriculum)
}

// ListCoachCurricula godoc
// @Summary List curricula created by the caller
// @Tags curricula
// @Produce json
// @Security BearerAuth
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/coach/curricula [get]
func (c *CurriculumController) ListCoachCurricula(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)
	curricula, total, err := c.CurriculumService.ListByCoach(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: curricula, Total: total, Page: page, Limit: limit})
}

// ListMyCurricula godoc
// @Summary List the caller's curricula with current unlock state
// @Tags curricula
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Curriculum}
// @Router /api/student/curricula [get]
func (c *CurriculumController) ListMyCurricula(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	curricula, err := c.CurriculumService.GetStudentCurricula(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, curricula)
}

// StartItem godoc
// @Summary Mark an unlocked curriculum item as in progress
// @Tags curricula
// @Produce json
// @Security BearerAuth
// @Param id path int true "curriculum id"
// @Param itemId path int true "item id"
// @Success 200 {object} util.Response{data=model.Curriculum}
// @Failure 409 {object} util.Response
// @Router /api/student/curricula/{id}/items/{itemId}/start [post]
func (c *CurriculumController) StartItem(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	curriculumID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(ctx, "itemId")
	if !ok {
		return
	}

	curriculum, err := c.CurriculumService.StartItem(claims.UserID, curriculumID, itemID)
	if err != nil {
		curriculumError(ctx, err)
		return
	}
	util.Success(ctx, curriculum)
}

// CompleteItem godoc
// @Summary Mark a curriculum item completed
// @Tags curricula
// @Produce json
// @Security BearerAuth
// @Param id path int true "curriculum id"
// @Param itemId path int true "item id"
// @Success 200 {object} util.Response{data=model.Curriculum}
// @Failure 404 {object} util.Response
// @Router /api/student/curricula/{id}/items/{itemId}/complete [post]
func (c *CurriculumController) CompleteItem(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	curriculumID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(ctx, "itemId")
	if !ok {
		return
	}

	curriculum, err := c.CurriculumService.CompleteItem(claims.UserID, curriculumID, itemID)
	if err != nil && !errors.Is(err, util.ErrCurriculumItemCompleted) {
		curriculumError(ctx, err)
		return
	}

	// Completing an already-completed item is reported as a plain success.
	util.Success(ctx, curriculum)
}

// NextItem godoc
// @Summary Get the next unlocked item of a curriculum
// @Tags curricula
// @Produce json
// @Security BearerAuth
// @Param id path int true "curriculum id"
// @Success 200 {object} util.Response{data=model.CurriculumItem}
// @Router /api/student/curricula/{id}/next [get]
func (c *CurriculumController) NextItem(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	curriculumID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	next, err := c.CurriculumService.NextItem(claims.UserID, curriculumID)
	if err != nil {
		curriculumError(ctx, err)
		return
	}
	util.Success(ctx, next)
}

// DeleteCurriculum godoc
// @Summary Delete a curriculum
// @Tags curricula
// @Produce json
// @Security BearerAuth
// @Param id path int true "curriculum id"
// @Success 200 {object} util.Response
// @Router /api/coach/curricula/{id} [delete]
func (c *CurriculumController) DeleteCurriculum(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.CurriculumService.DeleteCurriculum(claims.UserID, id); err != nil {
		curriculumError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
