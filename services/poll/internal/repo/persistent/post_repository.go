package persistent

import (
	"civic-board/services/poll/internal/model"

	"gorm.io/gorm"
)

type PostRepository interface {
	PostExists(id string) (bool, error)
	PostAuthorID(id string) (string, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) PostExists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&model.PostModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *postRepository) PostAuthorID(id string) (string, error) {
	var post model.PostModel
	if err := r.db.Select("id", "author_id").Where("id = ?", id).First(&post).Error; err != nil {
		return "", err
	}
	return post.AuthorID, nil
}
