package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"craftfolio/internal/api/middleware"
	"craftfolio/internal/database"
	"craftfolio/internal/export"
	"craftfolio/internal/resume"
	"craftfolio/internal/share"
	"craftfolio/internal/storage"
	"craftfolio/internal/tasks"
	"craftfolio/internal/template"
)

// ResumeHandler 负责处理简历 CRUD、预览与导出相关的 API 请求。
type ResumeHandler struct {
	db          *gorm.DB
	asynqClient *asynq.Client
	storage     *storage.Client
	shareSvc    *share.Service
	maxResumes  int
}

// NewResumeHandler 构造 ResumeHandler。
func NewResumeHandler(db *gorm.DB, asynqClient *asynq.Client, storageClient *storage.Client, shareSvc *share.Service, maxResumes int) *ResumeHandler {
	return &ResumeHandler{
		db:          db,
		asynqClient: asynqClient,
		storage:     storageClient,
		shareSvc:    shareSvc,
		maxResumes:  maxResumes,
	}
}

var errInvalidResumeID = errors.New("invalid resume id")

type saveResumeRequest struct {
	Title      string         `json:"title" binding:"required,max=255"`
	Content    datatypes.JSON `json:"content"`
	TemplateID string         `json:"template_id"`
}

type resumeListItem struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	TemplateID string    `json:"template_id"`
	Status     string    `json:"status,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type resumeResponse struct {
	ID         uint           `json:"id"`
	Title      string         `json:"title"`
	Content    datatypes.JSON `json:"content"`
	TemplateID string         `json:"template_id"`
	PdfReady   bool           `json:"pdf_ready"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func newResumeResponse(r database.Resume) resumeResponse {
	return resumeResponse{
		ID:         r.ID,
		Title:      r.Title,
		Content:    r.Content,
		TemplateID: r.TemplateID,
		PdfReady:   r.PdfUrl != "",
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// normalizeContentJSON 校验并归一化请求里的简历内容。
// 缺省为全空白的合法聚合；残缺的 JSON 直接报错而不是静默吞掉。
func normalizeContentJSON(raw datatypes.JSON) (datatypes.JSON, error) {
	if len(raw) == 0 {
		raw = datatypes.JSON("{}")
	}
	content, err := resume.ParseContent(raw)
	if err != nil {
		return nil, err
	}
	data, err := resume.MarshalContent(content)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

// CreateResume 保存一份新的简历，超过限额则提示升级。
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	var req saveResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()

	content, err := normalizeContentJSON(req.Content)
	if err != nil {
		BadRequest(c, "invalid resume content")
		return
	}

	var count int64
	if err := h.db.WithContext(ctx).
		Model(&database.Resume{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		Internal(c, "failed to count resumes")
		return
	}

	if h.maxResumes > 0 && count >= int64(h.maxResumes) {
		Forbidden(c, "resume limit reached")
		return
	}

	rec := database.Resume{
		Title:      req.Title,
		Content:    content,
		TemplateID: string(template.Parse(req.TemplateID)),
		UserID:     userID,
	}

	if err := h.db.WithContext(ctx).Create(&rec).Error; err != nil {
		Internal(c, "failed to create resume")
		return
	}

	c.JSON(http.StatusCreated, newResumeResponse(rec))
}

// ListResumes 列出用户全部简历，最近编辑的排在前面。
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	var resumes []database.Resume
	if err := h.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&resumes).Error; err != nil {
		Internal(c, "failed to list resumes")
		return
	}

	items := make([]resumeListItem, 0, len(resumes))
	for _, r := range resumes {
		items = append(items, resumeListItem{
			ID:         r.ID,
			Title:      r.Title,
			TemplateID: r.TemplateID,
			Status:     r.Status,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, items)
}

// GetResume 返回指定 ID 的简历。
func (h *ResumeHandler) GetResume(c *gin.Context) {
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

	c.JSON(http.StatusOK, newResumeResponse(*rec))
}

// UpdateResume 全量覆盖指定简历（标题、内容与模板选择）。
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	var req saveResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

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

	content, err := normalizeContentJSON(req.Content)
	if err != nil {
		BadRequest(c, "invalid resume content")
		return
	}

	updates := map[string]any{
		"title":       req.Title,
		"content":     content,
		"template_id": string(template.Parse(req.TemplateID)),
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Model(rec).Updates(updates).Error; err != nil {
		Internal(c, "failed to update resume")
		return
	}

	if err := h.db.WithContext(ctx).First(rec, rec.ID).Error; err != nil {
		Internal(c, "failed to reload resume")
		return
	}

	c.JSON(http.StatusOK, newResumeResponse(*rec))
}

// DeleteResume 删除指定简历，并顺带吊销它的分享链接。
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
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

	ctx := c.Request.Context()
	if err := h.shareSvc.Revoke(ctx, rec.ID); err != nil {
		Internal(c, "failed to revoke share links")
		return
	}
	if err := h.db.WithContext(ctx).Delete(&database.Resume{}, rec.ID).Error; err != nil {
		Internal(c, "failed to delete resume")
		return
	}

	c.Status(http.StatusNoContent)
}

// PreviewResume 返回按简历当前模板渲染的 HTML 片段，供编辑器实时预览。
func (h *ResumeHandler) PreviewResume(c *gin.Context) {
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

	content, err := resume.ParseContent(rec.Content)
	if err != nil {
		Internal(c, "failed to decode resume")
		return
	}

	html, err := template.Render(content, template.Parse(rec.TemplateID))
	if err != nil {
		Internal(c, "failed to render resume")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// ExportResume 同步生成自包含的 HTML 文档并作为附件返回。
func (h *ResumeHandler) ExportResume(c *gin.Context) {
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

	content, err := resume.ParseContent(rec.Content)
	if err != nil {
		Internal(c, "failed to decode resume")
		return
	}

	doc, err := export.Build(rec.Title, content, template.Parse(rec.TemplateID))
	if err != nil {
		Internal(c, "failed to build export document")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, doc.MIME, doc.HTML)
}

// DownloadResume 将 PDF 导出任务入队并立即返回 202。
func (h *ResumeHandler) DownloadResume(c *gin.Context) {
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

	correlationID := middleware.GetCorrelationID(c)
	task, err := tasks.NewExportPDFTask(rec.ID, correlationID)
	if err != nil {
		Internal(c, "failed to create task")
		return
	}

	info, err := h.asynqClient.Enqueue(task, asynq.MaxRetry(5))
	if err != nil {
		Internal(c, "failed to enqueue pdf export")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "PDF export request accepted",
		"task_id": info.ID,
	})
}

// GetDownloadLink 生成简历 PDF 的预签名下载链接。
func (h *ResumeHandler) GetDownloadLink(c *gin.Context) {
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

	if rec.PdfUrl == "" {
		Conflict(c, "pdf not ready")
		return
	}

	signedURL, err := h.storage.GeneratePresignedURL(c.Request.Context(), rec.PdfUrl, 5*time.Minute)
	if err != nil {
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL})
}

// replyResumeLookupError 统一处理按 ID 查询简历的错误。
// 归属不符与不存在同样回应 404，避免泄露他人资源的存在性。
func replyResumeLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errInvalidResumeID):
		BadRequest(c, "invalid resume id")
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, "resume not found")
	default:
		Internal(c, "failed to query resume")
	}
}

func getResumeForUser(ctx context.Context, db *gorm.DB, idParam string, userID uint) (*database.Resume, error) {
	resumeID, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		return nil, errInvalidResumeID
	}

	var rec database.Resume
	if err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", resumeID, userID).
		First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func userIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case uint64:
		return uint(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}
