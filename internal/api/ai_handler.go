package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"

	"craftfolio/internal/ai"
	"craftfolio/internal/api/middleware"
	"craftfolio/internal/resume"
)

// AIHandler 暴露写作助手相关端点。
// 上游失败统一回应 502 且不自动重试，细节只进日志不出响应。
type AIHandler struct {
	client             ai.Client
	redis              redis.UniversalClient
	logger             *slog.Logger
	rateLimitPerMinute int
}

// NewAIHandler 构造 AIHandler。
func NewAIHandler(client ai.Client, redisClient redis.UniversalClient, logger *slog.Logger, rateLimitPerMinute int) *AIHandler {
	return &AIHandler{
		client:             client,
		redis:              redisClient,
		logger:             logger,
		rateLimitPerMinute: rateLimitPerMinute,
	}
}

type enhanceRequest struct {
	Text string `json:"text" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// Enhance 按模式改写一段简历文本。
func (h *AIHandler) Enhance(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	if !h.allowRequest(c, userID) {
		return
	}

	var req enhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	mode, err := ai.ParseMode(req.Type)
	if err != nil {
		BadRequest(c, "invalid enhancement type")
		return
	}

	enhanced, err := h.client.Enhance(c.Request.Context(), mode, req.Text)
	if err != nil {
		h.loggerFromContext(c).Error("enhance request failed", slog.Any("error", err))
		BadGateway(c, "failed to enhance text")
		return
	}

	c.JSON(http.StatusOK, gin.H{"enhanced": enhanced})
}

type generateBulletsRequest struct {
	JobTitle    string `json:"job_title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Description string `json:"description"`
}

// GenerateBullets 根据职位与公司生成成就要点。
func (h *AIHandler) GenerateBullets(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	if !h.allowRequest(c, userID) {
		return
	}

	var req generateBulletsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	bullets, err := h.client.GenerateBullets(c.Request.Context(), req.JobTitle, req.Company, req.Description)
	if err != nil {
		h.loggerFromContext(c).Error("generate bullets failed", slog.Any("error", err))
		BadGateway(c, "failed to generate bullets")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bullets": bullets})
}

type tailorResumeRequest struct {
	Content        datatypes.JSON `json:"content" binding:"required"`
	JobDescription string         `json:"job_description" binding:"required"`
}

// TailorResume 根据 JD 重写整份简历内容。
// 模型输出期望是 content 形状的 JSON；解析失败不算错误，
// 原文照样返回并由 parse_ok 标记，调用方自行决定如何兜底。
func (h *AIHandler) TailorResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	if !h.allowRequest(c, userID) {
		return
	}

	var req tailorResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	if _, err := resume.ParseContent(req.Content); err != nil {
		BadRequest(c, "invalid resume content")
		return
	}

	tailored, err := h.client.TailorResume(c.Request.Context(), req.Content, req.JobDescription)
	if err != nil {
		h.loggerFromContext(c).Error("tailor resume failed", slog.Any("error", err))
		BadGateway(c, "failed to tailor resume")
		return
	}

	resp := gin.H{
		"tailored": tailored,
		"parse_ok": false,
	}
	if content, err := resume.ParseContent([]byte(tailored)); err == nil {
		if data, err := resume.MarshalContent(content); err == nil {
			resp["parsed"] = json.RawMessage(data)
			resp["parse_ok"] = true
		}
	}

	c.JSON(http.StatusOK, resp)
}

// allowRequest 按用户每分钟限流，超限时已写好 429 响应。
func (h *AIHandler) allowRequest(c *gin.Context, userID uint) bool {
	if h.rateLimitPerMinute <= 0 || h.redis == nil {
		return true
	}

	key := "rate:ai:" + strconv.FormatUint(uint64(userID), 10) + ":" + time.Now().UTC().Format("200601021504")
	count, err := incrWithTTL(c.Request.Context(), h.redis, key, time.Minute)
	if err != nil {
		// 限流器故障时放行，避免 redis 抖动放大成全站不可用。
		return true
	}
	if count > int64(h.rateLimitPerMinute) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return false
	}
	return true
}

func (h *AIHandler) loggerFromContext(c *gin.Context) *slog.Logger {
	if logger := middleware.LoggerFromContext(c); logger != nil {
		return logger
	}
	if h.logger != nil {
		return h.logger
	}
	return slog.Default()
}
