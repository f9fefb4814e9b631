package controller

import (
	"context"
	"strconv"

	"secquest_backend/internal/model"
	"secquest_backend/internal/service"
	"secquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

type LectureRequest struct {
	Lecture *int `json:"lecture" binding:"required"`
}

type ExerciseRequest struct {
	Answer string `json:"answer"`
}

type QuizRequest struct {
	Score *int `json:"score" binding:"required"`
}

type RoomCompleteRequest struct {
	FinalScore int `json:"finalScore"`
}

type LabCompleteRequest struct {
	Score int `json:"score"`
}

// currentUserID 取出已认证用户，失败时已写入 401
func currentUserID(ctx *gin.Context) (uint, bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return 0, false
	}
	return user.UserID, true
}

// JoinRoom godoc
// @Summary 加入房间
// @Description 创建房间进度记录，已加入时原样返回
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Param roomId path string true "房间ID"
// @Success 200 {object} util.Response{data=model.RoomProgress} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Failure 404 {object} util.Response "房间不存在"
// @Router /api/progress/rooms/{roomId}/join [post]
func (c *ProgressController) JoinRoom(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	rp, err := c.ProgressService.JoinRoom(ctx.Request.Context(), userID, ctx.Param("roomId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rp)
}

// UpdateLecture godoc
// @Summary 标记讲义已读
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param roomId path string true "房间ID"
// @Param body body LectureRequest true "讲义序号"
// @Success 200 {object} util.Response{data=model.RoomProgress} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "房间不存在"
// @Router /api/progress/rooms/{roomId}/lecture [put]
func (c *ProgressController) UpdateLecture(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req LectureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rp, err := c.ProgressService.UpdateLecture(ctx.Request.Context(), userID, ctx.Param("roomId"), *req.Lecture)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rp)
}

// SubmitExercise godoc
// @Summary 提交练习答案
// @Description 答案正确时标记任务完成，首次完成时获得积分；房间已完成后答错不改变进度
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param roomId path string true "房间ID"
// @Param taskIndex path int true "任务序号"
// @Param body body ExerciseRequest true "答案"
// @Success 200 {object} util.Response{data=service.ExerciseResponse} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "房间不存在"
// @Router /api/progress/rooms/{roomId}/exercises/{taskIndex} [post]
func (c *ProgressController) SubmitExercise(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	taskIndex, err := strconv.Atoi(ctx.Param("taskIndex"))
	if err != nil {
		util.BadRequest(ctx, "无效的任务序号")
		return
	}

	var req ExerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.ProgressService.SubmitExercise(ctx.Request.Context(), userID, ctx.Param("roomId"), taskIndex, req.Answer)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// SubmitQuiz godoc
// @Summary 提交测验成绩
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param roomId path string true "房间ID"
// @Param body body QuizRequest true "测验分数 0-100"
// @Success 200 {object} util.Response{data=service.QuizResponse} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "房间不存在"
// @Router /api/progress/rooms/{roomId}/quiz [post]
func (c *ProgressController) SubmitQuiz(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.ProgressService.SubmitQuiz(ctx.Request.Context(), userID, ctx.Param("roomId"), *req.Score)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// CompleteRoom godoc
// @Summary 完成房间
// @Description 所有任务与测验完成后才能完成房间，缺少条件时返回 412
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param roomId path string true "房间ID"
// @Param body body RoomCompleteRequest false "最终得分"
// @Success 200 {object} util.Response{data=service.RoomCompletionResponse} "成功"
// @Failure 404 {object} util.Response "房间不存在"
// @Failure 409 {object} util.Response "已完成"
// @Failure 412 {object} util.Response "完成条件不满足"
// @Router /api/progress/rooms/{roomId}/complete [post]
func (c *ProgressController) CompleteRoom(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req RoomCompleteRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	resp, err := c.ProgressService.CompleteRoom(ctx.Request.Context(), userID, ctx.Param("roomId"), req.FinalScore)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// CompleteLab godoc
// @Summary 完成实验（严格模式）
// @Description 已完成的实验再次提交返回 409
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "实验ID"
// @Param body body LabCompleteRequest true "实验得分"
// @Success 200 {object} util.Response{data=service.LabCompletionResponse} "成功"
// @Failure 404 {object} util.Response "实验不存在"
// @Failure 409 {object} util.Response "已完成"
// @Router /api/labs/{id}/complete [post]
func (c *ProgressController) CompleteLab(ctx *gin.Context) {
	c.completeLab(ctx, "id", c.ProgressService.CompleteLabStrict)
}

// ReplayLab godoc
// @Summary 完成实验（允许重做）
// @Description 重做时积分按新旧分数差调整，差值可为负
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param labId path string true "实验ID"
// @Param body body LabCompleteRequest true "实验得分"
// @Success 200 {object} util.Response{data=service.LabCompletionResponse} "成功"
// @Failure 404 {object} util.Response "实验不存在"
// @Router /api/progress/labs/{labId}/complete [post]
func (c *ProgressController) ReplayLab(ctx *gin.Context) {
	c.completeLab(ctx, "labId", c.ProgressService.CompleteLabWithReplay)
}

type labCompleter func(ctx context.Context, userID uint, labID string, score int) (*service.LabCompletionResponse, error)

func (c *ProgressController) completeLab(ctx *gin.Context, param string, complete labCompleter) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req LabCompleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := complete(ctx.Request.Context(), userID, ctx.Param(param), req.Score)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// GetProgress godoc
// @Summary 获取单个房间或实验的进度
// @Description 没有记录时返回空进度
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Param kind path string true "类型" Enums(room, lab)
// @Param itemId path string true "房间或实验ID"
// @Success 200 {object} util.Response{data=service.ItemProgress} "成功"
// @Failure 400 {object} util.Response "类型无效"
// @Router /api/progress/{kind}/{itemId} [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	kind := model.ItemKind(ctx.Param("kind"))
	item, err := c.ProgressService.GetProgress(ctx.Request.Context(), userID, kind, ctx.Param("itemId"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, item)
}

// GetStats godoc
// @Summary 获取学习统计
// @Description 积分、等级、完成数量与连续学习天数
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ProgressStats} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/progress/stats [get]
func (c *ProgressController) GetStats(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	stats, err := c.ProgressService.GetStats(ctx.Request.Context(), userID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
