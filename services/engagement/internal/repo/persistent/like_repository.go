package persistent

import (
	"errors"
	"fmt"

	"civic-board/services/engagement/internal/entity"
	"civic-board/services/engagement/internal/model"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Toggle(kind entity.LikeKind, userID, resourceID string) (added bool, err error)
	HasEdge(kind entity.LikeKind, userID, resourceID string) (bool, error)
	CountEdges(kind entity.LikeKind, resourceID string) (int64, error)
	GetLikedPosts(userID string, limit, offset int) ([]*entity.LikedPost, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle deletes the edge if present, otherwise inserts it. An insert that
// loses a race to a concurrent toggle surfaces as gorm.ErrDuplicatedKey; the
// edge is then removed so the pair of calls still nets out to one flip.
func (r *likeRepository) Toggle(kind entity.LikeKind, userID, resourceID string) (bool, error) {
	res := r.deleteEdge(kind, userID, resourceID)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	if err := r.createEdge(kind, userID, resourceID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			res := r.deleteEdge(kind, userID, resourceID)
			return false, res.Error
		}
		return false, err
	}
	return true, nil
}

func (r *likeRepository) HasEdge(kind entity.LikeKind, userID, resourceID string) (bool, error) {
	var count int64
	q, err := r.edgeQuery(kind, resourceID)
	if err != nil {
		return false, err
	}
	if err := q.Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) CountEdges(kind entity.LikeKind, resourceID string) (int64, error) {
	var count int64
	q, err := r.edgeQuery(kind, resourceID)
	if err != nil {
		return 0, err
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *likeRepository) GetLikedPosts(userID string, limit, offset int) ([]*entity.LikedPost, error) {
	type row struct {
		PostID string
		Title  string
	}

	query := r.db.Table("posts").
		Select("posts.id as post_id, posts.title").
		Joins("INNER JOIN post_likes ON posts.id = post_likes.post_id").
		Where("post_likes.user_id = ? AND posts.deleted_at IS NULL", userID).
		Order("post_likes.created_at DESC")

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var rows []row
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.LikedPost, len(rows))
	for i, rw := range rows {
		posts[i] = &entity.LikedPost{PostID: rw.PostID, Title: rw.Title}
	}
	return posts, nil
}

func (r *likeRepository) createEdge(kind entity.LikeKind, userID, resourceID string) error {
	switch kind {
	case entity.LikeKindPost:
		return r.db.Create(&model.PostLikeModel{UserID: userID, PostID: resourceID}).Error
	case entity.LikeKindReply:
		return r.db.Create(&model.ReplyLikeModel{UserID: userID, ReplyID: resourceID}).Error
	case entity.LikeKindPolicy:
		return r.db.Create(&model.PolicyLikeModel{UserID: userID, PolicyID: resourceID}).Error
	}
	return fmt.Errorf("unknown like kind %q", kind)
}

func (r *likeRepository) deleteEdge(kind entity.LikeKind, userID, resourceID string) *gorm.DB {
	switch kind {
	case entity.LikeKindPost:
		return r.db.Where("user_id = ? AND post_id = ?", userID, resourceID).Delete(&model.PostLikeModel{})
	case entity.LikeKindReply:
		return r.db.Where("user_id = ? AND reply_id = ?", userID, resourceID).Delete(&model.ReplyLikeModel{})
	case entity.LikeKindPolicy:
		return r.db.Where("user_id = ? AND policy_id = ?", userID, resourceID).Delete(&model.PolicyLikeModel{})
	}
	tx := r.db.Session(&gorm.Session{})
	tx.Error = fmt.Errorf("unknown like kind %q", kind)
	return tx
}

func (r *likeRepository) edgeQuery(kind entity.LikeKind, resourceID string) (*gorm.DB, error) {
	switch kind {
	case entity.LikeKindPost:
		return r.db.Model(&model.PostLikeModel{}).Where("post_id = ?", resourceID), nil
	case entity.LikeKindReply:
		return r.db.Model(&model.ReplyLikeModel{}).Where("reply_id = ?", resourceID), nil
	case entity.LikeKindPolicy:
		return r.db.Model(&model.PolicyLikeModel{}).Where("policy_id = ?", resourceID), nil
	}
	return nil, fmt.Errorf("unknown like kind %q", kind)
}
