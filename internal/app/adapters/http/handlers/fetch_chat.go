package handlers

import (
	"chatkeywords/internal/app/domain/chat"
	"github.com/gin-gonic/gin"
	"net/http"
)

type fetchRequest struct {
	URL string `json:"url"`
}

type fetchChatResponse struct {
	Messages []chat.Event `json:"messages"`
}

// FetchChat is stateless: it returns the extracted events without touching the session.
func (h *Handlers) FetchChat(c *gin.Context) {
	var req fetchRequest
	if !h.bind(c, &req) {
		return
	}

	events, err := h.scraper.FetchAndExtract(c.Request.Context(), req.URL)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, fetchChatResponse{Messages: events})
}

func (h *Handlers) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}
