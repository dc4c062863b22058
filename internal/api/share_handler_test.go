package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"craftfolio/internal/database"
	"craftfolio/internal/share"
)

func newShareRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	shareSvc := share.NewService(db)
	h := NewShareHandler(db, shareSvc, "https://resume.example.com/")

	router := gin.New()
	router.GET("/v1/shared/:token", h.ViewShared)

	group := router.Group("/v1/resumes")
	group.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	group.POST("/:id/share", h.CreateShare)
	group.DELETE("/:id/share", h.RevokeShare)
	return router
}

func seedResume(t *testing.T, db *gorm.DB, userID uint, templateID string) database.Resume {
	t.Helper()
	rec := database.Resume{
		Title:      "Shared Resume",
		Content:    datatypes.JSON(`{"personalInfo":{"fullName":"Jane Doe"},"experience":[],"education":[],"skills":["Go"]}`),
		TemplateID: templateID,
		UserID:     userID,
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	return rec
}

func TestCreateShareIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	rec := seedResume(t, db, 1, "modern")
	router := newShareRouter(db, 1)

	path := fmt.Sprintf("/v1/resumes/%d/share", rec.ID)
	var tokens [2]string
	for i := range tokens {
		w := doJSON(router, http.MethodPost, path, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("create share %d: %d, body = %s", i, w.Code, w.Body.String())
		}
		var resp struct {
			ShareToken string `json:"share_token"`
			ShareURL   string `json:"share_url"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		tokens[i] = resp.ShareToken
		if want := "https://resume.example.com/shared/" + resp.ShareToken; resp.ShareURL != want {
			t.Fatalf("share_url = %q, want %q", resp.ShareURL, want)
		}
	}
	if tokens[0] != tokens[1] {
		t.Fatalf("repeat create must return the same token: %q vs %q", tokens[0], tokens[1])
	}
}

func TestShareCrossOwnerIsNotFound(t *testing.T) {
	db := newTestDB(t)
	rec := seedResume(t, db, 1, "modern")
	router := newShareRouter(db, 2)

	path := fmt.Sprintf("/v1/resumes/%d/share", rec.ID)
	if w := doJSON(router, http.MethodPost, path, nil); w.Code != http.StatusNotFound {
		t.Fatalf("cross-owner share create: %d, want 404", w.Code)
	}
	if w := doJSON(router, http.MethodDelete, path, nil); w.Code != http.StatusNotFound {
		t.Fatalf("cross-owner share revoke: %d, want 404", w.Code)
	}
}

func TestViewSharedRendersResumeTemplate(t *testing.T) {
	db := newTestDB(t)
	rec := seedResume(t, db, 1, "classic")
	router := newShareRouter(db, 1)

	w := doJSON(router, http.MethodPost, fmt.Sprintf("/v1/resumes/%d/share", rec.ID), nil)
	var resp struct {
		ShareToken string `json:"share_token"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)

	w = doJSON(router, http.MethodGet, "/v1/shared/"+resp.ShareToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("view shared: %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Jane Doe", "doc-classic", "<!DOCTYPE html>"} {
		if !strings.Contains(body, want) {
			t.Fatalf("shared view missing %q:\n%s", want, body)
		}
	}
}

func TestViewSharedExpiredEqualsAbsent(t *testing.T) {
	db := newTestDB(t)
	rec := seedResume(t, db, 1, "modern")
	router := newShareRouter(db, 1)

	// 过期链接与不存在的令牌必须不可区分。
	past := time.Now().Add(-time.Hour)
	link := database.ShareLink{ResumeID: rec.ID, Token: "deadbeefdeadbeefdeadbeefdeadbeef", ExpiresAt: &past}
	if err := db.Create(&link).Error; err != nil {
		t.Fatalf("seed expired link: %v", err)
	}

	expired := doJSON(router, http.MethodGet, "/v1/shared/"+link.Token, nil)
	missing := doJSON(router, http.MethodGet, "/v1/shared/0000000000000000000000000000dead", nil)

	if expired.Code != http.StatusNotFound || missing.Code != http.StatusNotFound {
		t.Fatalf("expired=%d missing=%d, both must be 404", expired.Code, missing.Code)
	}
	if expired.Body.String() != missing.Body.String() {
		t.Fatalf("expired and missing responses must match:\n%s\n%s", expired.Body.String(), missing.Body.String())
	}
}

func TestRevokeShareIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	rec := seedResume(t, db, 1, "modern")
	router := newShareRouter(db, 1)

	sharePath := fmt.Sprintf("/v1/resumes/%d/share", rec.ID)
	w := doJSON(router, http.MethodPost, sharePath, nil)
	var resp struct {
		ShareToken string `json:"share_token"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)

	for i := 0; i < 2; i++ {
		if w := doJSON(router, http.MethodDelete, sharePath, nil); w.Code != http.StatusNoContent {
			t.Fatalf("revoke %d: %d, want 204", i, w.Code)
		}
	}

	if w := doJSON(router, http.MethodGet, "/v1/shared/"+resp.ShareToken, nil); w.Code != http.StatusNotFound {
		t.Fatalf("revoked token must be dead: %d", w.Code)
	}
}
