package handlers

import (
	"net/http"

	"twinmind/models"
	ai "twinmind/services/intelligence"
	"twinmind/utils"

	"github.com/gin-gonic/gin"
)

// AssistantHandler exposes the conversational assistant over HTTP.
type AssistantHandler struct {
	Service ai.AssistantService
}

// NewAssistantHandler returns an AssistantHandler.
func NewAssistantHandler(svc ai.AssistantService) *AssistantHandler {
	return &AssistantHandler{Service: svc}
}

// ChatHandler runs one assistant turn for the authenticated owner.
func (h *AssistantHandler) ChatHandler(c *gin.Context) {
	var req models.AssistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if ownerID, ok := c.Get("ownerID"); ok {
		req.OwnerID = ownerID.(string)
	}
	if req.OwnerID == "" {
		req.OwnerID = "owner"
	}

	resp, err := h.Service.ProcessUserInput(c.Request.Context(), req)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "assistant failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}
