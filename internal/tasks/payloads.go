package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypeExportPDF = "export:pdf"
)

// ExportPDFPayload 描述导出 PDF 所需的最小信息。
type ExportPDFPayload struct {
	ResumeID      uint   `json:"resume_id"`
	CorrelationID string `json:"correlation_id"`
}

// NewExportPDFTask 构造一个新的简历导出任务。
func NewExportPDFTask(id uint, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ExportPDFPayload{
		ResumeID:      id,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeExportPDF, payload), nil
}
