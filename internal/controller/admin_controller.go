package controller

import (
	"secquest_backend/internal/service"
	"secquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	RecalcService *service.StreakRecalcService
}

func NewAdminController(recalcService *service.StreakRecalcService) *AdminController {
	return &AdminController{RecalcService: recalcService}
}

// RecalculateStreaks godoc
// @Summary 重算全部用户连续学习天数 (管理员)
// @Description 根据完成历史重建每个用户的连续学习记录，单个用户失败不影响其他用户
// @Tags 管理
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.RecalcSummary} "成功"
// @Failure 403 {object} util.Response "无权限"
// @Failure 409 {object} util.Response "任务正在运行"
// @Router /api/admin/streaks/recalculate [post]
func (c *AdminController) RecalculateStreaks(ctx *gin.Context) {
	summary, err := c.RecalcService.RecalculateAll(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}
