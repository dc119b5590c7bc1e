package handlers

import (
	"chatkeywords/internal/app/adapters/session"
	"chatkeywords/internal/app/domain/group"
	"github.com/gin-gonic/gin"
	"net/http"
)

type sessionResponse struct {
	Settings session.Settings `json:"settings"`
	View     session.View     `json:"view"`
}

func (h *Handlers) respondSession(c *gin.Context, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse{
		Settings: h.session.Settings(),
		View:     h.session.View(),
	})
}

func (h *Handlers) GetSession(c *gin.Context) {
	h.respondSession(c, nil)
}

func (h *Handlers) FetchSession(c *gin.Context) {
	var req fetchRequest
	if !h.bind(c, &req) {
		return
	}

	n, err := h.session.Fetch(c.Request.Context(), req.URL)
	if err == nil {
		h.log.Info("Session fetched", "url", req.URL, "events", n)
	}
	h.respondSession(c, err)
}

func (h *Handlers) ToggleMessage(c *gin.Context) {
	h.respondSession(c, h.session.Toggle(c.Param("id")))
}

type idsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

func (h *Handlers) ToggleGroup(c *gin.Context) {
	var req idsRequest
	if !h.bind(c, &req) {
		return
	}
	h.respondSession(c, h.session.ToggleAll(req.IDs))
}

func (h *Handlers) RemoveChecked(c *gin.Context) {
	n, err := h.session.RemoveChecked()
	if err == nil {
		h.log.Info("Checked events removed", "count", n)
	}
	h.respondSession(c, err)
}

func (h *Handlers) Reset(c *gin.Context) {
	h.respondSession(c, h.session.Reset())
}

func (h *Handlers) LoadDemo(c *gin.Context) {
	if !h.manager.Get().Session.DemoEnabled {
		c.JSON(http.StatusNotFound, errorResponse{Error: "demo data is disabled"})
		return
	}
	h.respondSession(c, h.session.LoadDemo())
}

type filtersRequest struct {
	HideMessages      *bool `json:"hide_messages"`
	HideEpicGoals     *bool `json:"hide_epic_goals"`
	HideExcludedWords *bool `json:"hide_excluded_words"`
}

// SetFilters updates only the flags present in the body.
func (h *Handlers) SetFilters(c *gin.Context) {
	var req filtersRequest
	if !h.bind(c, &req) {
		return
	}

	if req.HideMessages != nil {
		if err := h.session.SetHideMessages(*req.HideMessages); err != nil {
			h.fail(c, err)
			return
		}
	}
	if req.HideEpicGoals != nil {
		if err := h.session.SetHideEpicGoals(*req.HideEpicGoals); err != nil {
			h.fail(c, err)
			return
		}
	}
	if req.HideExcludedWords != nil {
		if err := h.session.SetHideExcludedWords(*req.HideExcludedWords); err != nil {
			h.fail(c, err)
			return
		}
	}
	h.respondSession(c, nil)
}

type excludeWordsRequest struct {
	Words []string `json:"words"`
}

func (h *Handlers) SetExcludeWords(c *gin.Context) {
	var req excludeWordsRequest
	if !h.bind(c, &req) {
		return
	}
	h.respondSession(c, h.session.SetExcludeWords(req.Words))
}

type sortModeRequest struct {
	Mode session.SortMode `json:"mode"`
}

func (h *Handlers) SetSortMode(c *gin.Context) {
	var req sortModeRequest
	if !h.bind(c, &req) {
		return
	}
	h.respondSession(c, h.session.SetSortMode(req.Mode))
}

type groupLimitRequest struct {
	Key   string      `json:"key"`
	Limit group.Limit `json:"limit"`
}

func (h *Handlers) SetGroupLimit(c *gin.Context) {
	var req groupLimitRequest
	if !h.bind(c, &req) {
		return
	}
	h.respondSession(c, h.session.SetGroupLimit(req.Key, req.Limit))
}
