package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User 表示系统中的账号信息。
type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:64"`
	PasswordHash string   `gorm:"size:255"`
	Resumes      []Resume `gorm:"constraint:OnDelete:CASCADE"`
}

// Resume 表示用户创建的简历。
// Content 为模板无关的结构化数据（internal/resume.Content 的 JSONB 形态），
// TemplateID 是四个固定模板之一的选择器，未知值在渲染时回落到 modern。
type Resume struct {
	gorm.Model
	Title      string         `gorm:"size:255"`
	Content    datatypes.JSON `gorm:"type:jsonb"`
	TemplateID string         `gorm:"size:32;default:modern"`
	UserID     uint           `gorm:"index"`
	User       User           `gorm:"constraint:OnDelete:CASCADE"`
	PdfUrl     string         `gorm:"size:512"`
	Status     string         `gorm:"size:32"`
}

// ShareLink 表示简历的只读分享令牌。
// 每份简历最多一条记录（uniqueIndex 兜底）；令牌本身不编码任何归属信息。
type ShareLink struct {
	gorm.Model
	ResumeID  uint       `gorm:"uniqueIndex"`
	Resume    Resume     `gorm:"constraint:OnDelete:CASCADE"`
	Token     string     `gorm:"uniqueIndex;size:64"`
	ExpiresAt *time.Time `gorm:"index"`
}
