package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/digipratibha/stuportal/internal/ai"
	"github.com/digipratibha/stuportal/internal/model"
	"github.com/digipratibha/stuportal/internal/service"
)

type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) Generate(ctx context.Context, req ai.GenerateRequest) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type stubEmbedder struct {
	vec []float32
	err error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return s.vec, s.err
}

func (s *stubEmbedder) ModelName() string {
	return "stub-embedding"
}

type stubResourceIndex struct {
	items []model.Resource
}

func (s *stubResourceIndex) ListEmbedded(ctx context.Context) ([]model.Resource, error) {
	return s.items, nil
}

type stubCounter struct {
	total, recent int64
}

func (s *stubCounter) Count(ctx context.Context) (int64, error) {
	return s.total, nil
}

func (s *stubCounter) CountSince(ctx context.Context, since int64) (int64, error) {
	return s.recent, nil
}

func newTestRouter(gen *stubGenerator, emb *stubEmbedder, items []model.Resource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	discovery := service.NewDiscoveryService(
		gen,
		emb,
		&stubResourceIndex{items: items},
		&stubCounter{total: 5, recent: 1},
		&stubCounter{total: 2, recent: 1},
		&stubCounter{total: 1},
		service.NewKnowledgeBase([]model.KBEntry{
			{Keyword: "admission", Answer: "Admissions open from April to July."},
		}),
		service.DiscoveryOptions{
			Timeout:       time.Second,
			MaxInputChars: 8000,
			CacheSize:     16,
			CacheTTL:      time.Minute,
		},
	)
	h := NewAIHandler(discovery)
	router := gin.New()
	router.POST("/ai/chatbot", h.Chatbot)
	router.POST("/ai/analyze-project", h.AnalyzeProject)
	router.GET("/ai/search", h.Search)
	router.GET("/admin/ai-summary", h.AdminSummary)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestChatbotEndpoint(t *testing.T) {
	router := newTestRouter(&stubGenerator{response: "Bot answer"}, &stubEmbedder{}, nil)

	rec := doJSON(router, http.MethodPost, "/ai/chatbot", `{"question":"What is the weather?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Bot answer", body["answer"])
}

func TestChatbotEndpoint_KnowledgeBaseHit(t *testing.T) {
	router := newTestRouter(&stubGenerator{response: "unused"}, &stubEmbedder{}, nil)

	rec := doJSON(router, http.MethodPost, "/ai/chatbot", `{"question":"When do admissions open?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Admissions open from April to July.", body["answer"])
}

func TestChatbotEndpoint_MissingQuestion(t *testing.T) {
	router := newTestRouter(&stubGenerator{}, &stubEmbedder{}, nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "empty question", body: `{"question":""}`},
		{name: "not json", body: `question=hi`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(router, http.MethodPost, "/ai/chatbot", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestChatbotEndpoint_ProviderFailure(t *testing.T) {
	router := newTestRouter(&stubGenerator{err: ai.ErrProvider}, &stubEmbedder{}, nil)

	rec := doJSON(router, http.MethodPost, "/ai/chatbot", `{"question":"What is the weather?"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	items := []model.Resource{
		{ID: "r1", Title: "Go course", Type: model.ResourceTypeLink, Link: "https://example.com/go", Embedding: []float32{1, 0}},
		{ID: "r2", Title: "Cooking 101", Type: model.ResourceTypeVideo, Link: "https://example.com/cook", Embedding: []float32{0, 1}},
	}
	router := newTestRouter(&stubGenerator{}, &stubEmbedder{vec: []float32{1, 0}}, items)

	rec := doJSON(router, http.MethodGet, "/ai/search?query=golang", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Results []model.RankedResource `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 2)
	require.Equal(t, "r1", body.Results[0].ID)
	require.Greater(t, body.Results[0].Score, body.Results[1].Score)
}

func TestSearchEndpoint_MissingQuery(t *testing.T) {
	router := newTestRouter(&stubGenerator{}, &stubEmbedder{}, nil)

	rec := doJSON(router, http.MethodGet, "/ai/search", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeProjectEndpoint(t *testing.T) {
	gen := &stubGenerator{response: `{"strengths":["s"],"weaknesses":["w"],"suggestions":["x"]}`}
	router := newTestRouter(gen, &stubEmbedder{}, nil)

	rec := doJSON(router, http.MethodPost, "/ai/analyze-project", `{"projectTitle":"T","description":"D"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body ai.ProjectAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, []string{"s"}, body.Strengths)
}

func TestAnalyzeProjectEndpoint_MissingFields(t *testing.T) {
	router := newTestRouter(&stubGenerator{}, &stubEmbedder{}, nil)

	rec := doJSON(router, http.MethodPost, "/ai/analyze-project", `{"projectTitle":"T"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminSummaryEndpoint(t *testing.T) {
	router := newTestRouter(&stubGenerator{response: "All good."}, &stubEmbedder{}, nil)

	rec := doJSON(router, http.MethodGet, "/admin/ai-summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "All good.", body["summary"])
}
