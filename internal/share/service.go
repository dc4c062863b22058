package share

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"craftfolio/internal/database"
)

// ErrNotFound 统一表示令牌不存在与令牌已过期两种情况，
// 对外不暴露“曾经存在过”这一信息。
var ErrNotFound = errors.New("share link not found")

// tokenBytes 对应 32 位 hex 令牌。
const tokenBytes = 16

// Service 负责分享令牌的签发、撤销与解析。
// 令牌来自加密安全随机源，不编码简历或用户的任何信息。
type Service struct {
	db *gorm.DB
}

// NewService 构造分享服务。
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create 为指定简历签发分享令牌。
// 幂等：已有未过期令牌时直接返回原令牌；已过期的记录会被替换。
// expiresAt 为 nil 表示永不过期。
func (s *Service) Create(ctx context.Context, resumeID uint, expiresAt *time.Time) (string, error) {
	var existing database.ShareLink
	err := s.db.WithContext(ctx).
		Where("resume_id = ?", resumeID).
		First(&existing).Error
	switch {
	case err == nil:
		if isActive(existing, time.Now()) {
			return existing.Token, nil
		}
		// 已过期：删除后重新签发。
		if err := s.db.WithContext(ctx).Unscoped().Delete(&database.ShareLink{}, existing.ID).Error; err != nil {
			return "", fmt.Errorf("delete expired share link: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// 首次分享。
	default:
		return "", fmt.Errorf("query share link: %w", err)
	}

	token, err := newToken()
	if err != nil {
		return "", err
	}

	link := database.ShareLink{
		ResumeID:  resumeID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		return "", fmt.Errorf("create share link: %w", err)
	}
	return token, nil
}

// Revoke 删除指定简历的全部分享令牌。幂等：没有记录也不报错。
func (s *Service) Revoke(ctx context.Context, resumeID uint) error {
	if err := s.db.WithContext(ctx).Unscoped().
		Where("resume_id = ?", resumeID).
		Delete(&database.ShareLink{}).Error; err != nil {
		return fmt.Errorf("revoke share links: %w", err)
	}
	return nil
}

// Resolve 根据令牌取回对应的简历。
// 令牌不存在与令牌过期返回同一个 ErrNotFound。
func (s *Service) Resolve(ctx context.Context, token string) (*database.Resume, error) {
	if token == "" {
		return nil, ErrNotFound
	}

	var link database.ShareLink
	if err := s.db.WithContext(ctx).
		Where("token = ?", token).
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query share link: %w", err)
	}

	if !isActive(link, time.Now()) {
		return nil, ErrNotFound
	}

	var resume database.Resume
	if err := s.db.WithContext(ctx).First(&resume, link.ResumeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query shared resume: %w", err)
	}
	return &resume, nil
}

func isActive(link database.ShareLink, now time.Time) bool {
	return link.ExpiresAt == nil || link.ExpiresAt.After(now)
}

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
