package repository

import (
	"github.com/alihfala/mando-articles/internal/domain"
	"gorm.io/gorm"
)

// CommentRepository comment data access
type CommentRepository interface {
	ListByArticle(articleID uint64) ([]domain.Comment, error)
	Create(comment *domain.Comment) error
	FindByID(id uint64) (*domain.Comment, error)
	Delete(id uint64) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) ListByArticle(articleID uint64) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.
		Preload("Author").
		Where("article_id = ?", articleID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Create(comment *domain.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return err
	}
	// reload with the author card attached
	return r.db.Preload("Author").First(comment, comment.ID).Error
}

func (r *commentRepository) FindByID(id uint64) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Delete(id uint64) error {
	return r.db.Where("id = ?", id).Delete(&domain.Comment{}).Error
}
