package errcode

// 错误码约定（用于导出任务的通知消息）：
// - 0：无错误
// - 5xxx：系统错误（任务中断，用户可重试）
const (
	OK          = 0
	SystemError = 5000
)
