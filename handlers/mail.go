package handlers

import (
	"net/http"
	"strconv"

	"twinmind/services/mail"
	"twinmind/utils"

	"github.com/gin-gonic/gin"
)

// MailHandler surfaces the owner's inbox over HTTP.
type MailHandler struct {
	Client *mail.Client
}

// NewMailHandler returns a MailHandler.
func NewMailHandler(client *mail.Client) *MailHandler {
	return &MailHandler{Client: client}
}

// UnreadHandler lists unseen messages in the configured mailbox.
func (h *MailHandler) UnreadHandler(c *gin.Context) {
	if h.Client == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "mail not configured", "IMAP settings are unset")
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			utils.JSONError(c, http.StatusBadRequest, "invalid limit", "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	summaries, err := h.Client.FetchUnread(c.Request.Context(), limit)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "failed to fetch mail", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": summaries})
}
