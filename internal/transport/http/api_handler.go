package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"feud-board-service/internal/app"
	"feud-board-service/internal/domain"
)

// APIHandler exposes the board over plain JSON requests.
type APIHandler struct {
	service *app.HostService
}

func NewAPIHandler(service *app.HostService) *APIHandler {
	return &APIHandler{service: service}
}

type guessRequest struct {
	Text string `json:"text"`
}

type guessResponse struct {
	Result domain.GuessResult   `json:"result"`
	Board  domain.BoardSnapshot `json:"board"`
}

type revealResponse struct {
	Revealed bool                 `json:"revealed"`
	Board    domain.BoardSnapshot `json:"board"`
}

type navResponse struct {
	Moved bool                 `json:"moved"`
	Board domain.BoardSnapshot `json:"board"`
}

type popupResponse struct {
	Active bool `json:"active"`
}

func (h *APIHandler) Board(c *gin.Context) {
	snapshot, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// Popup consumes the wrong-guess signal; a second call returns inactive.
func (h *APIHandler) Popup(c *gin.Context) {
	active, err := h.service.PopupActive(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, popupResponse{Active: active})
}

func (h *APIHandler) Guess(c *gin.Context) {
	var req guessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guess payload"})
		return
	}
	result, snapshot, err := h.service.SubmitGuess(c.Request.Context(), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, guessResponse{Result: result, Board: snapshot})
}

func (h *APIHandler) Reveal(c *gin.Context) {
	rank, err := strconv.Atoi(c.Param("rank"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rank must be a number"})
		return
	}
	revealed, snapshot, err := h.service.Reveal(c.Request.Context(), rank)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, revealResponse{Revealed: revealed, Board: snapshot})
}

func (h *APIHandler) Next(c *gin.Context) {
	moved, snapshot, err := h.service.Next(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, navResponse{Moved: moved, Board: snapshot})
}

func (h *APIHandler) Prev(c *gin.Context) {
	moved, snapshot, err := h.service.Prev(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, navResponse{Moved: moved, Board: snapshot})
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrBoardNotStarted) {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
