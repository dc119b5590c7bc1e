package handlers

import (
	"chatkeywords/internal/app/adapters/session"
	"chatkeywords/internal/app/domain/chat"
	"chatkeywords/internal/app/infrastructure/config"
	"chatkeywords/internal/app/ports"
	"chatkeywords/pkg/logger"
	"errors"
	"github.com/gin-gonic/gin"
	"net/http"
	"time"
)

type Handlers struct {
	log     logger.Logger
	manager *config.Manager
	scraper ports.ScraperPort
	session *session.Session

	started time.Time
}

func New(log logger.Logger, manager *config.Manager, scraper ports.ScraperPort, sess *session.Session) *Handlers {
	return &Handlers{
		log:     log,
		manager: manager,
		scraper: scraper,
		session: sess,
		started: time.Now(),
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (h *Handlers) fail(c *gin.Context, err error) {
	var (
		ve *chat.ValidationError
		fe *chat.FetchError
		se *chat.StoreError
	)

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, errorResponse{Error: ve.Error()})
	case errors.As(err, &fe):
		h.log.Warn("Fetch failed", "url", fe.URL, "status", fe.Status, "error", fe.Err)
		c.JSON(http.StatusBadGateway, errorResponse{Error: "failed to fetch chat page", Details: err.Error()})
	case errors.As(err, &se):
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to save " + se.Key, Details: se.Err.Error()})
	default:
		h.log.Error("Request failed", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error", Details: err.Error()})
	}
}

func (h *Handlers) bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Details: err.Error()})
		return false
	}
	return true
}
