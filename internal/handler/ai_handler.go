package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/digipratibha/stuportal/internal/pkg/response"
	"github.com/digipratibha/stuportal/internal/service"
)

type AIHandler struct {
	discovery *service.DiscoveryService
}

func NewAIHandler(discovery *service.DiscoveryService) *AIHandler {
	return &AIHandler{discovery: discovery}
}

type chatbotRequest struct {
	Question string `json:"question"`
}

type analyzeProjectRequest struct {
	ProjectTitle string `json:"projectTitle"`
	Description  string `json:"description"`
}

func (h *AIHandler) CareerRecommendation(c *gin.Context) {
	var profile service.CareerProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	careers, err := h.discovery.CareerRecommendation(c.Request.Context(), profile)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"recommendedCareers": careers})
}

func (h *AIHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "query required")
		return
	}
	results, err := h.discovery.SemanticSearch(c.Request.Context(), query)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"results": results})
}

func (h *AIHandler) Chatbot(c *gin.Context) {
	var req chatbotRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "question required")
		return
	}
	answer, err := h.discovery.ChatbotAnswer(c.Request.Context(), req.Question)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"answer": answer})
}

func (h *AIHandler) AnalyzeProject(c *gin.Context) {
	var req analyzeProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	if req.ProjectTitle == "" || req.Description == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "projectTitle and description required")
		return
	}
	analysis, err := h.discovery.AnalyzeProjectIdea(c.Request.Context(), req.ProjectTitle, req.Description)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, analysis)
}

func (h *AIHandler) AdminSummary(c *gin.Context) {
	summary, err := h.discovery.AdminSummary(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"summary": summary})
}
