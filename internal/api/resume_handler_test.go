package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"craftfolio/internal/database"
	"craftfolio/internal/share"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&database.User{}, &database.Resume{}, &database.ShareLink{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newResumeRouter 挂载简历路由，并用固定 userID 替代真实鉴权。
func newResumeRouter(db *gorm.DB, userID uint, maxResumes int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	shareSvc := share.NewService(db)
	h := NewResumeHandler(db, nil, nil, shareSvc, maxResumes)

	router := gin.New()
	group := router.Group("/v1/resumes")
	group.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	group.POST("", h.CreateResume)
	group.GET("", h.ListResumes)
	group.GET("/:id", h.GetResume)
	group.PUT("/:id", h.UpdateResume)
	group.DELETE("/:id", h.DeleteResume)
	group.GET("/:id/preview", h.PreviewResume)
	group.GET("/:id/export", h.ExportResume)
	group.GET("/:id/export/download", h.GetDownloadLink)
	return router
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateResumeNormalizesContentAndTemplate(t *testing.T) {
	db := newTestDB(t)
	router := newResumeRouter(db, 1, 0)

	w := doJSON(router, http.MethodPost, "/v1/resumes", gin.H{
		"title":       "My Resume",
		"template_id": "gothic",
		"content":     gin.H{"personalInfo": gin.H{"fullName": "Jane"}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp resumeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TemplateID != "modern" {
		t.Fatalf("unknown template id must fall back to modern, got %q", resp.TemplateID)
	}

	// 归一化后空板块也要序列化成空数组。
	var content map[string]json.RawMessage
	if err := json.Unmarshal(resp.Content, &content); err != nil {
		t.Fatalf("decode content: %v", err)
	}
	for _, key := range []string{"personalInfo", "experience", "education", "skills"} {
		if _, ok := content[key]; !ok {
			t.Errorf("normalized content missing %q", key)
		}
	}
}

func TestCreateResumeRejectsMalformedContent(t *testing.T) {
	db := newTestDB(t)
	router := newResumeRouter(db, 1, 0)

	req := httptest.NewRequest(http.MethodPost, "/v1/resumes",
		strings.NewReader(`{"title":"t","content":{"skills":"not-an-array"}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateResumeEnforcesLimit(t *testing.T) {
	db := newTestDB(t)
	router := newResumeRouter(db, 1, 2)

	for i := 0; i < 2; i++ {
		w := doJSON(router, http.MethodPost, "/v1/resumes", gin.H{"title": fmt.Sprintf("r%d", i)})
		if w.Code != http.StatusCreated {
			t.Fatalf("create %d: status = %d", i, w.Code)
		}
	}

	w := doJSON(router, http.MethodPost, "/v1/resumes", gin.H{"title": "overflow"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("over-limit create: status = %d, want 403", w.Code)
	}
}

func TestListResumesOrderedByRecentEdit(t *testing.T) {
	db := newTestDB(t)
	router := newResumeRouter(db, 1, 0)

	for _, title := range []string{"first", "second"} {
		if w := doJSON(router, http.MethodPost, "/v1/resumes", gin.H{"title": title}); w.Code != http.StatusCreated {
			t.Fatalf("create %s: %d", title, w.Code)
		}
	}

	// 回头编辑第一份，它应当排到最前面。
	var first database.Resume
	if err := db.Where("title = ?", "first").First(&first).Error; err != nil {
		t.Fatalf("load first: %v", err)
	}
	if err := db.Model(&first).UpdateColumn("updated_at", time.Now().Add(time.Hour)).Error; err != nil {
		t.Fatalf("touch first: %v", err)
	}

	w := doJSON(router, http.MethodGet, "/v1/resumes", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	var items []resumeListItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) != 2 || items[0].Title != "first" {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func TestCrossOwnerAccessIsNotFound(t *testing.T) {
	db := newTestDB(t)

	owner := newResumeRouter(db, 1, 0)
	w := doJSON(owner, http.MethodPost, "/v1/resumes", gin.H{"title": "mine"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d", w.Code)
	}
	var created resumeResponse
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	intruder := newResumeRouter(db, 2, 0)
	path := fmt.Sprintf("/v1/resumes/%d", created.ID)
	for _, probe := range []struct {
		method string
		body   any
	}{
		{http.MethodGet, nil},
		{http.MethodPut, gin.H{"title": "stolen"}},
		{http.MethodDelete, nil},
	} {
		w := doJSON(intruder, probe.method, path, probe.body)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s as other user: status = %d, want 404", probe.method, w.Code)
		}
		if strings.Contains(strings.ToLower(w.Body.String()), "forbidden") {
			t.Errorf("%s must not reveal authorization detail: %s", probe.method, w.Body.String())
		}
	}
}

func TestUpdateResumeReplacesEverything(t *testing.T) {
	db := newTestDB(t)
	router := newResumeRouter(db, 1, 0)

	w := doJSON(router, http.MethodPost, "/v1/resumes", gin.H{"title": "before", "template_id": "modern"})
	var created resumeResponse
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(router, http.MethodPut, fmt.Sprintf("/v1/resumes/%d", created.ID), gin.H{
		"title":       "after",
		"template_id": "classic",
		"content":     gin.H{"skills": []string{"Go"}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d, body = %s", w.Code, w.Body.String())
	}
	var updated resumeResponse
	_ = json.Unmarshal(w.Body.Bytes(), &updated)
	if updated.Title != "after" || updated.TemplateID != "classic" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if !strings.Contains(string(updated.Content), "Go") {
		t.Fatalf("content not replaced: %s", updated.Content)
	}
}

func TestDeleteResumeRevokesShareLinks(t *testing.T) {
	db := newTestDB(t)
	router := newResumeRouter(db, 1, 0)

	w := doJSON(router, http.MethodPost, "/v1/resumes", gin.H{"title": "shared"})
	var created resumeResponse
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	shareSvc := share.NewService(db)
	if _, err := shareSvc.Create(context.Background(), created.ID, nil); err != nil {
		t.Fatalf("create share: %v", err)
	}

	w = doJSON(router, http.MethodDelete, fmt.Sprintf("/v1/resumes/%d", created.ID), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", w.Code)
	}

	var count int64
	if err := db.Unscoped().Model(&database.ShareLink{}).Where("resume_id = ?", created.ID).Count(&count).Error; err != nil {
		t.Fatalf("count share links: %v", err)
	}
	if count != 0 {
		t.Fatalf("share links must be removed with the resume, got %d", count)
	}

	if w := doJSON(router, http.MethodGet, fmt.Sprintf("/v1/resumes/%d", created.ID), nil); w.Code != http.StatusNotFound {
		t.Fatalf("deleted resume lookup: %d, want 404", w.Code)
	}
}

func TestPreviewRendersSelectedTemplate(t *testing.T) {
	db := newTestDB(t)
	router := newResumeRouter(db, 1, 0)

	w := doJSON(router, http.MethodPost, "/v1/resumes", gin.H{
		"title":       "preview me",
		"template_id": "classic",
		"content":     gin.H{"personalInfo": gin.H{"fullName": "Jane Doe"}},
	})
	var created resumeResponse
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(router, http.MethodGet, fmt.Sprintf("/v1/resumes/%d/preview", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("preview: %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Jane Doe") || !strings.Contains(body, "resume-classic") {
		t.Fatalf("preview must render the classic template: %s", body)
	}
}

func TestExportReturnsAttachment(t *testing.T) {
	db := newTestDB(t)
	router := newResumeRouter(db, 1, 0)

	w := doJSON(router, http.MethodPost, "/v1/resumes", gin.H{"title": "My Resume"})
	var created resumeResponse
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(router, http.MethodGet, fmt.Sprintf("/v1/resumes/%d/export", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: %d", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, `filename="My Resume.html"`) {
		t.Fatalf("content disposition = %q", got)
	}
	if got := w.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("content type = %q", got)
	}
	if !strings.Contains(w.Body.String(), "<!DOCTYPE html>") {
		t.Fatalf("export must be a standalone document")
	}
}

func TestDownloadLinkConflictBeforePDFReady(t *testing.T) {
	db := newTestDB(t)
	router := newResumeRouter(db, 1, 0)

	w := doJSON(router, http.MethodPost, "/v1/resumes", gin.H{"title": "pending"})
	var created resumeResponse
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(router, http.MethodGet, fmt.Sprintf("/v1/resumes/%d/export/download", created.ID), nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("download link before pdf: %d, want 409", w.Code)
	}
}

func TestInvalidResumeIDIsBadRequest(t *testing.T) {
	db := newTestDB(t)
	router := newResumeRouter(db, 1, 0)

	if w := doJSON(router, http.MethodGet, "/v1/resumes/not-a-number", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
