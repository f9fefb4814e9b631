package controller

import (
	"secquest_backend/internal/service"
	"secquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

// GetLeaderboard godoc
// @Summary 获取积分排行榜
// @Description 按积分降序，同分用户名次相同
// @Tags 排行榜
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "返回数量" default(10)
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry} "成功"
// @Router /api/leaderboard [get]
func (c *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	limit := util.ParseLimit(ctx.Query("limit"), util.DefaultLeaderboardLimit, util.MaxLeaderboardLimit)

	entries, err := c.LeaderboardService.GetLeaderboard(ctx.Request.Context(), limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// GetMyRank godoc
// @Summary 获取当前用户名次
// @Tags 排行榜
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/leaderboard/rank [get]
func (c *LeaderboardController) GetMyRank(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	c.respondRank(ctx, userID)
}

// GetUserRank godoc
// @Summary 获取指定用户名次
// @Tags 排行榜
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "无效的用户ID"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{id}/rank [get]
func (c *LeaderboardController) GetUserRank(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("id"))
	if userID == 0 {
		util.BadRequest(ctx, "无效的用户ID")
		return
	}
	c.respondRank(ctx, userID)
}

func (c *LeaderboardController) respondRank(ctx *gin.Context, userID uint) {
	rank, err := c.LeaderboardService.GetRank(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"userId": userID, "rank": rank})
}
