package usecase

import (
	"context"
	"fmt"
	"strconv"

	"civic-board/pkg/logger"
	"civic-board/pkg/queue"
	"civic-board/services/engagement/internal/entity"
	"civic-board/services/engagement/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

type EngagementUseCase interface {
	Toggle(userID, resourceID string, kind entity.LikeKind) (entity.ToggleOutcome, error)
	Count(resourceID string, kind entity.LikeKind) (int64, error)
	IsLiked(userID, resourceID string, kind entity.LikeKind) (bool, error)
	LikedPosts(userID string, limit, offset int) ([]*entity.LikedPost, error)
}

type engagementUseCase struct {
	likeRepo     persistent.LikeRepository
	resourceRepo persistent.ResourceRepository
	redisClient  *redis.Client
	queueClient  *queue.Client
	logger       *logger.Logger
}

func NewEngagementUseCase(
	likeRepo persistent.LikeRepository,
	resourceRepo persistent.ResourceRepository,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) EngagementUseCase {
	return &engagementUseCase{
		likeRepo:     likeRepo,
		resourceRepo: resourceRepo,
		redisClient:  redisClient,
		queueClient:  queueClient,
		logger:       logger,
	}
}

func (uc *engagementUseCase) Toggle(userID, resourceID string, kind entity.LikeKind) (entity.ToggleOutcome, error) {
	exists, err := uc.resourceRepo.UserExists(userID)
	if err != nil {
		return "", fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return "", entity.ErrUserNotFound
	}

	exists, err = uc.resourceRepo.ResourceExists(kind, resourceID)
	if err != nil {
		return "", fmt.Errorf("failed to check %s: %w", kind, err)
	}
	if !exists {
		return "", entity.ErrResourceNotFound
	}

	added, err := uc.likeRepo.Toggle(kind, userID, resourceID)
	if err != nil {
		uc.logger.Error("Failed to toggle %s like: %v", kind, err)
		return "", fmt.Errorf("failed to toggle %s like: %w", kind, err)
	}

	if uc.redisClient != nil {
		ctx := context.Background()
		if added {
			uc.redisClient.Incr(ctx, countKey(kind, resourceID))
		} else {
			uc.redisClient.Decr(ctx, countKey(kind, resourceID))
		}
	}

	if !added {
		return entity.OutcomeRemoved, nil
	}

	if kind == entity.LikeKindPost {
		uc.notifyPostLiked(userID, resourceID)
	}

	return entity.OutcomeAdded, nil
}

// Count reads the cached counter first and falls back to the edge table. An
// unknown resource simply has zero edges; Count never reports a failure to
// the caller.
func (uc *engagementUseCase) Count(resourceID string, kind entity.LikeKind) (int64, error) {
	ctx := context.Background()

	if uc.redisClient != nil {
		countStr, err := uc.redisClient.Get(ctx, countKey(kind, resourceID)).Result()
		if err == nil {
			count, _ := strconv.ParseInt(countStr, 10, 64)
			return count, nil
		}
	}

	count, err := uc.likeRepo.CountEdges(kind, resourceID)
	if err != nil {
		uc.logger.Error("Failed to count %s likes: %v", kind, err)
		return 0, nil
	}

	if uc.redisClient != nil {
		uc.redisClient.Set(ctx, countKey(kind, resourceID), count, 0)
	}
	return count, nil
}

func (uc *engagementUseCase) IsLiked(userID, resourceID string, kind entity.LikeKind) (bool, error) {
	return uc.likeRepo.HasEdge(kind, userID, resourceID)
}

func (uc *engagementUseCase) LikedPosts(userID string, limit, offset int) ([]*entity.LikedPost, error) {
	return uc.likeRepo.GetLikedPosts(userID, limit, offset)
}

func (uc *engagementUseCase) notifyPostLiked(userID, postID string) {
	if uc.queueClient == nil {
		return
	}

	authorID, err := uc.resourceRepo.PostAuthorID(postID)
	if err != nil || authorID == userID {
		return
	}

	go func() {
		task := map[string]interface{}{
			"type":     "like",
			"user_id":  authorID,
			"liker_id": userID,
			"post_id":  postID,
			"priority": 3,
		}
		if err := uc.queueClient.PublishNotificationTask(task); err != nil {
			uc.logger.Error("[NOTIFICATION QUEUE] Failed to publish like notification task: %v", err)
		}
	}()
}

func countKey(kind entity.LikeKind, resourceID string) string {
	return fmt.Sprintf("%s:likes:%s", kind, resourceID)
}
