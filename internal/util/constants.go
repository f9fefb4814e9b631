package util

// gin 上下文中的键
const (
	ContextUserKey = "user"
)

// 排行榜
const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

// 支付回调
const (
	WebhookSecretHeader = "X-Webhook-Secret"
)
