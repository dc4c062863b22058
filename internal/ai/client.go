package ai

import (
	"context"
	"fmt"
)

// Mode 是文本增强的模式。
type Mode string

const (
	ModeEnhance Mode = "enhance"
	ModeExpand  Mode = "expand"
	ModeTailor  Mode = "tailor"
)

// ErrInvalidMode 表示不支持的增强模式。
var ErrInvalidMode = fmt.Errorf("invalid enhancement mode")

// ParseMode 校验请求里的增强模式。
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeEnhance, ModeExpand, ModeTailor:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Client 抽象简历写作助手的底层模型提供方。
type Client interface {
	// Enhance 按指定模式改写一段简历文本。
	Enhance(ctx context.Context, mode Mode, text string) (string, error)
	// GenerateBullets 根据职位与公司生成要点列表文本。
	GenerateBullets(ctx context.Context, jobTitle, company, description string) (string, error)
	// TailorResume 根据 JD 重写整份简历内容，返回模型原文（期望是 JSON）。
	TailorResume(ctx context.Context, resumeJSON []byte, jobDescription string) (string, error)
}
