package listings

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"listing-backend/internal/budget"
	"listing-backend/internal/llm"
	"listing-backend/internal/prompts"
)

func newTestRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	api := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateEndpointSuccess(t *testing.T) {
	r := newTestRouter(t, newTestService(llm.NewDummyClient()))

	w := doJSON(t, r, http.MethodPost, "/api/v1/listings/generate", gin.H{"rawText": goodRawText})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		RunID  string `json:"runId"`
		Status string `json:"status"`
		Fields *struct {
			Title string   `json:"title"`
			Tags  []string `json:"tags"`
		} `json:"fields"`
		QualityScore int `json:"qualityScore"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != StatusCompleted || resp.RunID == "" {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Fields == nil || resp.Fields.Title == "" || len(resp.Fields.Tags) == 0 {
		t.Fatalf("fields = %+v", resp.Fields)
	}
}

func TestGenerateEndpointHonorsRunID(t *testing.T) {
	r := newTestRouter(t, newTestService(llm.NewDummyClient()))

	w := doJSON(t, r, http.MethodPost, "/api/v1/listings/generate", gin.H{
		"rawText": goodRawText,
		"options": gin.H{"runId": "custom-run-1"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		RunID string `json:"runId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.RunID != "custom-run-1" {
		t.Fatalf("runId = %q", resp.RunID)
	}
}

func TestGenerateEndpointRequiresRawText(t *testing.T) {
	r := newTestRouter(t, newTestService(llm.NewDummyClient()))

	w := doJSON(t, r, http.MethodPost, "/api/v1/listings/generate", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGenerateEndpointPreflight422(t *testing.T) {
	r := newTestRouter(t, newTestService(llm.NewDummyClient()))

	w := doJSON(t, r, http.MethodPost, "/api/v1/listings/generate", gin.H{
		"rawText": "Title: " + strings.Repeat("x", 150),
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "input title exceeds 140 characters") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestGenerateEndpointBudget429(t *testing.T) {
	lib, err := prompts.Load()
	if err != nil {
		t.Fatalf("prompts: %v", err)
	}
	svc := NewService(NewMemoryRepo(), llm.NewDummyClient(), lib, budget.NewGuard(0, true))
	r := newTestRouter(t, svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/listings/generate", gin.H{"rawText": goodRawText})
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), ErrorCodeBudgetExhausted) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestGetRunEndpoint(t *testing.T) {
	svc := newTestService(llm.NewDummyClient())
	r := newTestRouter(t, svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/listings/generate", gin.H{"rawText": goodRawText})
	if w.Code != http.StatusOK {
		t.Fatalf("generate status = %d", w.Code)
	}
	var created struct {
		RunID string `json:"runId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(t, r, http.MethodGet, "/api/v1/listings/"+created.RunID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), StatusCompleted) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestGetRunEndpointNotFound(t *testing.T) {
	r := newTestRouter(t, newTestService(llm.NewDummyClient()))

	w := doJSON(t, r, http.MethodGet, "/api/v1/listings/missing-id", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestListRunsEndpoint(t *testing.T) {
	svc := newTestService(llm.NewDummyClient())
	r := newTestRouter(t, svc)

	for i := 0; i < 2; i++ {
		if w := doJSON(t, r, http.MethodPost, "/api/v1/listings/generate", gin.H{"rawText": goodRawText}); w.Code != http.StatusOK {
			t.Fatalf("generate status = %d", w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/listings?limit=10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var items []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d", len(items))
	}
}
