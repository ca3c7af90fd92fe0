package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/digipratibha/stuportal/internal/pkg/response"
	"github.com/digipratibha/stuportal/internal/service"
)

type ResourceHandler struct {
	resources *service.ResourceService
}

func NewResourceHandler(resources *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

type createResourceRequest struct {
	Title string `json:"title"`
	Type  string `json:"type"`
	Link  string `json:"link"`
}

func (h *ResourceHandler) Create(c *gin.Context) {
	var req createResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	item, err := h.resources.Create(c.Request.Context(), getUserID(c), req.Title, req.Type, req.Link)
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"item": item})
}

func (h *ResourceHandler) List(c *gin.Context) {
	items, err := h.resources.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"items": items})
}
