package persistent

import (
	"fmt"

	"civic-board/services/engagement/internal/entity"
	"civic-board/services/engagement/internal/model"

	"gorm.io/gorm"
)

// ResourceRepository answers existence questions about rows owned by other
// services (users, posts, replies, policies).
type ResourceRepository interface {
	UserExists(id string) (bool, error)
	ResourceExists(kind entity.LikeKind, id string) (bool, error)
	PostAuthorID(postID string) (string, error)
}

type resourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) UserExists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&model.UserModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *resourceRepository) ResourceExists(kind entity.LikeKind, id string) (bool, error) {
	var count int64
	var err error
	switch kind {
	case entity.LikeKindPost:
		err = r.db.Model(&model.PostModel{}).Where("id = ?", id).Count(&count).Error
	case entity.LikeKindReply:
		err = r.db.Model(&model.ReplyModel{}).Where("id = ?", id).Count(&count).Error
	case entity.LikeKindPolicy:
		err = r.db.Model(&model.PolicyModel{}).Where("id = ?", id).Count(&count).Error
	default:
		return false, fmt.Errorf("unknown like kind %q", kind)
	}
	return count > 0, err
}

func (r *resourceRepository) PostAuthorID(postID string) (string, error) {
	var post model.PostModel
	if err := r.db.Select("id", "author_id").Where("id = ?", postID).First(&post).Error; err != nil {
		return "", err
	}
	return post.AuthorID, nil
}
