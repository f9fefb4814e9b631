package controller

import (
	"strconv"

	"secquest_backend/internal/service"
	"secquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

func pageParams(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit := util.ParseLimit(ctx.Query("limit"), 20, 100)
	return page, limit
}

// ListRooms godoc
// @Summary 房间列表
// @Tags 内容
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/rooms [get]
func (c *ContentController) ListRooms(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	rooms, total, err := c.ContentService.ListRooms(ctx.Request.Context(), page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: rooms, Total: total, Page: page, Limit: limit})
}

// GetRoom godoc
// @Summary 房间详情
// @Description 任务列表不包含答案
// @Tags 内容
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "房间ID"
// @Success 200 {object} util.Response{data=service.RoomView} "成功"
// @Failure 404 {object} util.Response "房间不存在"
// @Router /api/rooms/{id} [get]
func (c *ContentController) GetRoom(ctx *gin.Context) {
	room, err := c.ContentService.GetRoom(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, room)
}

// ListLabs godoc
// @Summary 实验列表
// @Tags 内容
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/labs [get]
func (c *ContentController) ListLabs(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	labs, total, err := c.ContentService.ListLabs(ctx.Request.Context(), page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: labs, Total: total, Page: page, Limit: limit})
}

// GetLab godoc
// @Summary 实验详情
// @Tags 内容
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "实验ID"
// @Success 200 {object} util.Response{data=service.LabView} "成功"
// @Failure 404 {object} util.Response "实验不存在"
// @Router /api/labs/{id} [get]
func (c *ContentController) GetLab(ctx *gin.Context) {
	lab, err := c.ContentService.GetLab(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, lab)
}

// CreateRoom godoc
// @Summary 创建房间 (管理员)
// @Tags 内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateRoomRequest true "房间信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/admin/rooms [post]
func (c *ContentController) CreateRoom(ctx *gin.Context) {
	var req service.CreateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	room, err := c.ContentService.CreateRoom(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": room.ID})
}

// CreateLab godoc
// @Summary 创建实验 (管理员)
// @Tags 内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateLabRequest true "实验信息"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "无权限"
// @Router /api/admin/labs [post]
func (c *ContentController) CreateLab(ctx *gin.Context) {
	var req service.CreateLabRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lab, err := c.ContentService.CreateLab(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": lab.ID})
}
