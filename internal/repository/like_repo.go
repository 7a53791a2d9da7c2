package repository

import (
	"github.com/alihfala/mando-articles/internal/domain"
	"gorm.io/gorm"
)

// LikeRepository like data access
type LikeRepository interface {
	Find(userID, articleID uint64) (*domain.Like, error)
	Create(like *domain.Like) error
	Delete(userID, articleID uint64) error
	CountByArticle(articleID uint64) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Find(userID, articleID uint64) (*domain.Like, error) {
	var like domain.Like
	err := r.db.Where("user_id = ? AND article_id = ?", userID, articleID).First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) Create(like *domain.Like) error {
	return r.db.Create(like).Error
}

func (r *likeRepository) Delete(userID, articleID uint64) error {
	return r.db.Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&domain.Like{}).Error
}

func (r *likeRepository) CountByArticle(articleID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Like{}).Where("article_id = ?", articleID).Count(&count).Error
	return count, err
}
