package http

import (
	"errors"
	"net/http"
	"time"

	"civic-board/pkg/logger"
	"civic-board/services/poll/internal/entity"
	"civic-board/services/poll/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PollHandler struct {
	pollUseCase usecase.PollUseCase
	logger      *logger.Logger
}

func NewPollHandler(pollUseCase usecase.PollUseCase, logger *logger.Logger) *PollHandler {
	return &PollHandler{
		pollUseCase: pollUseCase,
		logger:      logger,
	}
}

type pollRequest struct {
	Question       string     `json:"question" binding:"required"`
	Options        []string   `json:"options" binding:"required"`
	ClosesAt       *time.Time `json:"closes_at"`
	AllowsMultiple bool       `json:"allows_multiple"`
}

type castBallotRequest struct {
	OptionIDs []string `json:"option_ids" binding:"required"`
}

// CreatePoll godoc
// @Summary      Create a poll
// @Description  Attach a poll to a post
// @Tags         polls
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id path string true "Post ID"
// @Param        request body pollRequest true "Poll"
// @Success      201  {object}  entity.Poll
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /posts/{post_id}/poll [post]
func (h *PollHandler) CreatePoll(c *gin.Context) {
	postID := c.Param("post_id")
	userID := c.GetString("user_id")

	var req pollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := h.pollUseCase.CreatePoll(postID, userID, req.Question, req.Options, req.ClosesAt, req.AllowsMultiple)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, poll)
}

// UpdatePoll godoc
// @Summary      Update a poll
// @Description  Replace the poll's question and option set; existing ballots are discarded
// @Tags         polls
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        poll_id path string true "Poll ID"
// @Param        request body pollRequest true "Poll"
// @Success      200  {object}  entity.Poll
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /polls/{poll_id} [put]
func (h *PollHandler) UpdatePoll(c *gin.Context) {
	pollID := c.Param("poll_id")
	userID := c.GetString("user_id")

	var req pollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := h.pollUseCase.UpdatePoll(pollID, userID, req.Question, req.Options, req.ClosesAt, req.AllowsMultiple)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, poll)
}

// DeletePoll godoc
// @Summary      Delete a poll
// @Tags         polls
// @Produce      json
// @Security     BearerAuth
// @Param        poll_id path string true "Poll ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /polls/{poll_id} [delete]
func (h *PollHandler) DeletePoll(c *gin.Context) {
	pollID := c.Param("poll_id")
	userID := c.GetString("user_id")

	if err := h.pollUseCase.DeletePoll(pollID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Poll deleted"})
}

// GetPoll godoc
// @Summary      Get a post's poll
// @Description  Poll question, options, and current tallies; selections are marked for the caller
// @Tags         polls
// @Produce      json
// @Param        post_id path string true "Post ID"
// @Success      200  {object}  entity.PollView
// @Failure      404  {object}  map[string]string
// @Router       /posts/{post_id}/poll [get]
func (h *PollHandler) GetPoll(c *gin.Context) {
	postID := c.Param("post_id")
	userID := c.GetString("user_id")

	view, err := h.pollUseCase.GetPoll(postID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// CastBallot godoc
// @Summary      Cast a ballot
// @Description  Replace the caller's selection on a poll with the given options
// @Tags         polls
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        poll_id path string true "Poll ID"
// @Param        request body castBallotRequest true "Selected options"
// @Success      200  {object}  entity.PollView
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /polls/{poll_id}/ballots [post]
func (h *PollHandler) CastBallot(c *gin.Context) {
	pollID := c.Param("poll_id")
	userID := c.GetString("user_id")

	var req castBallotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.pollUseCase.CastBallot(userID, pollID, req.OptionIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *PollHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrPostNotFound), errors.Is(err, entity.ErrPollNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrPollClosed),
		errors.Is(err, entity.ErrMultipleNotAllowed),
		errors.Is(err, entity.ErrInvalidOption),
		errors.Is(err, entity.ErrPollExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrNoOptions), errors.Is(err, entity.ErrDuplicateOption):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Poll request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
