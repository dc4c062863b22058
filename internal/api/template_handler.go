package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"craftfolio/internal/template"
)

// TemplateHandler 暴露模板目录。
type TemplateHandler struct{}

// NewTemplateHandler 构造 TemplateHandler。
func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

// ListTemplates 返回全部可选模板，顺序固定。
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, template.All())
}
