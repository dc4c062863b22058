package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"craftfolio/internal/export"
	"craftfolio/internal/resume"
	"craftfolio/internal/share"
	"craftfolio/internal/template"
)

// ShareHandler 负责分享链接的创建、吊销与公开访问。
type ShareHandler struct {
	db           *gorm.DB
	shareSvc     *share.Service
	shareBaseURL string
}

// NewShareHandler 构造 ShareHandler。
func NewShareHandler(db *gorm.DB, shareSvc *share.Service, shareBaseURL string) *ShareHandler {
	return &ShareHandler{
		db:           db,
		shareSvc:     shareSvc,
		shareBaseURL: strings.TrimRight(strings.TrimSpace(shareBaseURL), "/"),
	}
}

type createShareRequest struct {
	ExpiresInHours int `json:"expires_in_hours" binding:"omitempty,min=1,max=8760"`
}

// CreateShare 为简历签发只读分享令牌。
// 已有未过期链接时重复调用返回同一令牌（幂等）。
func (h *ShareHandler) CreateShare(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	// 请求体可选：不带 body 等价于不设过期时间。
	var req createShareRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, err.Error())
			return
		}
	}

	rec, err := getResumeForUser(c.Request.Context(), h.db, c.Param("id"), userID)
	if err != nil {
		replyResumeLookupError(c, err)
		return
	}

	var expiresAt *time.Time
	if req.ExpiresInHours > 0 {
		t := time.Now().Add(time.Duration(req.ExpiresInHours) * time.Hour)
		expiresAt = &t
	}

	token, err := h.shareSvc.Create(c.Request.Context(), rec.ID, expiresAt)
	if err != nil {
		Internal(c, "failed to create share link")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"share_token": token,
		"share_url":   h.shareBaseURL + "/shared/" + token,
	})
}

// RevokeShare 吊销简历的所有分享链接，重复调用同样返回 204。
func (h *ShareHandler) RevokeShare(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	rec, err := getResumeForUser(c.Request.Context(), h.db, c.Param("id"), userID)
	if err != nil {
		replyResumeLookupError(c, err)
		return
	}

	if err := h.shareSvc.Revoke(c.Request.Context(), rec.ID); err != nil {
		Internal(c, "failed to revoke share link")
		return
	}

	c.Status(http.StatusNoContent)
}

// ViewShared 是公开入口：按令牌解析简历并返回按其模板渲染的只读页面。
// 过期与不存在的令牌表现完全一致。
func (h *ShareHandler) ViewShared(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		NotFound(c, "share link not found")
		return
	}

	rec, err := h.shareSvc.Resolve(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, share.ErrNotFound) {
			NotFound(c, "share link not found")
			return
		}
		Internal(c, "failed to resolve share link")
		return
	}

	content, err := resume.ParseContent(rec.Content)
	if err != nil {
		Internal(c, "failed to decode resume")
		return
	}

	doc, err := export.Build(rec.Title, content, template.Parse(rec.TemplateID))
	if err != nil {
		Internal(c, "failed to render shared resume")
		return
	}

	c.Data(http.StatusOK, doc.MIME, doc.HTML)
}
