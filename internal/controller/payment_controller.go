package controller

import (
	"secquest_backend/internal/service"
	"secquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	UserService *service.UserService
}

func NewPaymentController(userService *service.UserService) *PaymentController {
	return &PaymentController{UserService: userService}
}

// PremiumWebhookRequest 支付平台回调
// swagger:model PremiumWebhookRequest
type PremiumWebhookRequest struct {
	UserID  uint  `json:"userId" binding:"required"`
	Premium *bool `json:"premium" binding:"required"`
}

// PremiumWebhook godoc
// @Summary 支付回调
// @Description 由支付平台调用，设置用户会员状态
// @Tags 支付
// @Accept json
// @Produce json
// @Param X-Webhook-Secret header string true "回调密钥"
// @Param body body PremiumWebhookRequest true "会员状态"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "密钥错误"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/payments/webhook [post]
func (c *PaymentController) PremiumWebhook(ctx *gin.Context) {
	var req PremiumWebhookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.SetPremium(ctx.Request.Context(), req.UserID, *req.Premium)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"userId":       user.ID,
		"isPremium":    user.IsPremium,
		"premiumSince": user.PremiumSince,
	})
}
