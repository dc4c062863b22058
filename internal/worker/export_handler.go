package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"craftfolio/internal/database"
	"craftfolio/internal/errcode"
	"craftfolio/internal/export"
	"craftfolio/internal/pdf"
	"craftfolio/internal/resume"
	"craftfolio/internal/storage"
	"craftfolio/internal/tasks"
	"craftfolio/internal/template"
)

// ExportTaskHandler 负责消费简历导出任务。
type ExportTaskHandler struct {
	db          *gorm.DB
	storage     *storage.Client
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewExportTaskHandler 创建任务处理器。
func NewExportTaskHandler(db *gorm.DB, st *storage.Client, redisClient *redis.Client, logger *slog.Logger) *ExportTaskHandler {
	return &ExportTaskHandler{
		db:          db,
		storage:     st,
		redisClient: redisClient,
		logger:      logger,
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *ExportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.ExportPDFPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("resume_id", int(payload.ResumeID)),
	)
	log.Info("Starting resume PDF export task...")

	var rec database.Resume
	if err := h.db.WithContext(ctx).First(&rec, payload.ResumeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("resume not found, skipping task")
			return nil
		}
		log.Error("query resume failed", slog.Any("error", err))
		return err
	}

	log = log.With(slog.Uint64("user_id", uint64(rec.UserID)))

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		notify := ExportNotifyMessage{
			Status:        "error",
			ResumeID:      rec.ID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publishExportNotify(ctx, rec.UserID, notify); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
	}()

	content, err := resume.ParseContent(rec.Content)
	if err != nil {
		log.Error("parse resume content failed", slog.Any("error", err))
		return err
	}

	doc, err := export.Build(rec.Title, content, template.Parse(rec.TemplateID))
	if err != nil {
		log.Error("build export document failed", slog.Any("error", err))
		return err
	}

	pdfBytes, err := pdf.GenerateFromHTML(string(doc.HTML))
	if err != nil {
		log.Error("generate pdf failed", slog.Any("error", err))
		return err
	}

	objectKey := fmt.Sprintf("exports/%d/%s.pdf", rec.UserID, uuid.NewString())
	if err := h.storage.UploadFile(ctx, objectKey, bytes.NewReader(pdfBytes), int64(len(pdfBytes)), "application/pdf"); err != nil {
		log.Error("upload pdf to minio failed", slog.Any("error", err))
		return err
	}

	update := map[string]any{
		"pdf_url": objectKey,
		"status":  "completed",
	}
	if err := h.db.WithContext(ctx).Model(&rec).Updates(update).Error; err != nil {
		log.Error("update resume failed", slog.Any("error", err))
		return err
	}

	notify := ExportNotifyMessage{
		Status:        "completed",
		ResumeID:      rec.ID,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
	}
	if err := h.publishExportNotify(ctx, rec.UserID, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("Resume PDF export task completed successfully.")
	return nil
}

func (h *ExportTaskHandler) publishExportNotify(ctx context.Context, userID uint, notify ExportNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := fmt.Sprintf("user_notify:%d", userID)
	if err := h.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
