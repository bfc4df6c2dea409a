package controller

import (
	"courtside_backend/internal/service"
	"courtside_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SkillController struct {
	SkillService *service.SkillService
}

func NewSkillController(skillService *service.SkillService) *SkillController {
	return &SkillController{SkillService: skillService}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func pagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// ListSports godoc
// @Summary List available sports
// @Tags skills
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Sport}
// @Router /api/sports [get]
func (c *SkillController) ListSports(ctx *gin.Context) {
	sports, err := c.SkillService.ListSports()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sports)
}

// CreateSkill godoc
// @Summary Create a skill
// @Tags skills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SkillRequest true "skill fields"
// @Success 201 {object} util.Response{data=model.Skill}
// @Failure 400 {object} util.Response
// @Router /api/coach/skills [post]
func (c *SkillController) CreateSkill(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill, err := c.SkillService.CreateSkill(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, skill)
}

// GetSkill godoc
// @Summary Get a skill by id
// @Tags skills
// @Produce json
// @Param id path int true "skill id"
// @Success 200 {object} util.Response{data=model.Skill}
// @Failure 404 {object} util.Response
// @Router /api/skills/{id} [get]
func (c *SkillController) GetSkill(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	skill, err := c.SkillService.GetSkill(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, skill)
}

// UpdateSkill godoc
// @Summary Update a skill
// @Tags skills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "skill id"
// @Param body body service.SkillRequest true "skill fields"
// @Success 200 {object} util.Response{data=model.Skill}
// @Router /api/coach/skills/{id} [put]
func (c *SkillController) UpdateSkill(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.SkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill, err := c.SkillService.UpdateSkill(id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, skill)
}

// DeleteSkill godoc
// @Summary Delete a skill
// @Tags skills
// @Produce json
// @Security BearerAuth
// @Param id path int true "skill id"
// @Success 200 {object} util.Response
// @Router /api/coach/skills/{id} [delete]
func (c *SkillController) DeleteSkill(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.SkillService.DeleteSkill(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListSkills godoc
// @Summary List skills, optionally filtered by sport
// @Tags skills
// @Produce json
// @Param sportId query int false "sport id"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/skills [get]
func (c *SkillController) ListSkills(ctx *gin.Context) {
	sportID, _ := strconv.ParseUint(ctx.DefaultQuery("sportId", "0"), 10, 32)
	page, limit := pagination(ctx)

	skills, total, err := c.SkillService.ListSkills(uint(sportID), true, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: skills, Total: total, Page: page, Limit: limit})
}

// ListSkillsForStudent godoc
// @Summary List skills with the caller's prerequisite gaps
// @Tags skills
// @Produce json
// @Security BearerAuth
// @Param sportId query int false "sport id"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/student/skills [get]
func (c *SkillController) ListSkillsForStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sportID, _ := strconv.ParseUint(ctx.DefaultQuery("sportId", "0"), 10, 32)
	page, limit := pagination(ctx)

	skills, total, err := c.SkillService.ListSkillsForStudent(claims.UserID, uint(sportID), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: skills, Total: total, Page: page, Limit: limit})
}
