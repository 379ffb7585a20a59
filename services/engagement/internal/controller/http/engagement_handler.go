package http

import (
	"errors"
	"net/http"
	"strconv"

	"civic-board/pkg/logger"
	"civic-board/services/engagement/internal/entity"
	"civic-board/services/engagement/internal/usecase"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	engagementUseCase usecase.EngagementUseCase
	logger            *logger.Logger
}

func NewEngagementHandler(engagementUseCase usecase.EngagementUseCase, logger *logger.Logger) *EngagementHandler {
	return &EngagementHandler{
		engagementUseCase: engagementUseCase,
		logger:            logger,
	}
}

// ToggleLike godoc
// @Summary      Toggle a like
// @Description  Flip the caller's like on a post, reply, or policy
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "Resource kind (post, reply, policy)"
// @Param        id path string true "Resource ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /likes/{kind}/{id} [post]
func (h *EngagementHandler) ToggleLike(c *gin.Context) {
	kind, err := entity.ParseLikeKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resourceID := c.Param("id")
	userID := c.GetString("user_id")

	outcome, err := h.engagementUseCase.Toggle(userID, resourceID, kind)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrUserNotFound), errors.Is(err, entity.ErrResourceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to toggle like: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"outcome": outcome,
		"liked":   outcome == entity.OutcomeAdded,
	})
}

// GetLikeCount godoc
// @Summary      Get like count
// @Description  Number of likes on a post, reply, or policy
// @Tags         engagement
// @Produce      json
// @Param        kind path string true "Resource kind (post, reply, policy)"
// @Param        id path string true "Resource ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /likes/{kind}/{id} [get]
func (h *EngagementHandler) GetLikeCount(c *gin.Context) {
	kind, err := entity.ParseLikeKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resourceID := c.Param("id")

	count, err := h.engagementUseCase.Count(resourceID, kind)
	if err != nil {
		h.logger.Error("Failed to get like count: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get like count"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"resource_id": resourceID, "kind": kind, "likes_count": count})
}

// IsLiked godoc
// @Summary      Check like status
// @Description  Whether the authenticated user has liked the resource
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Param        kind path string true "Resource kind (post, reply, policy)"
// @Param        id path string true "Resource ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /likes/{kind}/{id}/me [get]
func (h *EngagementHandler) IsLiked(c *gin.Context) {
	kind, err := entity.ParseLikeKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resourceID := c.Param("id")
	userID := c.GetString("user_id")

	liked, err := h.engagementUseCase.IsLiked(userID, resourceID, kind)
	if err != nil {
		h.logger.Error("Failed to check like status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check like status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"resource_id": resourceID, "kind": kind, "liked": liked})
}

// GetLikedPosts godoc
// @Summary      List liked posts
// @Description  Posts the authenticated user has liked, most recent first
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Limit"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /users/me/liked-posts [get]
func (h *EngagementHandler) GetLikedPosts(c *gin.Context) {
	userID := c.GetString("user_id")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	posts, err := h.engagementUseCase.LikedPosts(userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list liked posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list liked posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}
