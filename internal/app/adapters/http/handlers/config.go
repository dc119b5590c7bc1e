package handlers

import (
	"chatkeywords/internal/app/infrastructure/config"
	"errors"
	"github.com/gin-gonic/gin"
	"net/http"
)

type configResponse struct {
	Fetch   config.Fetch   `json:"fetch"`
	Session config.Session `json:"session"`
}

type configRequest struct {
	FetchMode   *string `json:"fetch_mode"`
	DemoEnabled *bool   `json:"demo_enabled"`
}

func (h *Handlers) GetConfig(c *gin.Context) {
	cfg := h.manager.Get()
	c.JSON(http.StatusOK, configResponse{Fetch: cfg.Fetch, Session: cfg.Session})
}

// UpdateConfig saves the session options to the config file and applies the
// fetch mode to the running session.
func (h *Handlers) UpdateConfig(c *gin.Context) {
	var req configRequest
	if !h.bind(c, &req) {
		return
	}

	err := h.manager.Update(func(cfg *config.Config) {
		if req.FetchMode != nil {
			cfg.Session.FetchMode = *req.FetchMode
		}
		if req.DemoEnabled != nil {
			cfg.Session.DemoEnabled = *req.DemoEnabled
		}
	})
	switch {
	case errors.Is(err, config.ErrInvalid):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	case err != nil:
		h.fail(c, err)
		return
	}

	cfg := h.manager.Get()
	if err := h.session.SetFetchMode(cfg.Session.FetchMode); err != nil {
		h.fail(c, err)
		return
	}
	h.log.Info("Config updated", "fetch_mode", cfg.Session.FetchMode, "demo_enabled", cfg.Session.DemoEnabled)

	c.JSON(http.StatusOK, configResponse{Fetch: cfg.Fetch, Session: cfg.Session})
}
