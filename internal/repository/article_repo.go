package repository

import (
	"github.com/alihfala/mando-articles/internal/domain"
	"gorm.io/gorm"
)

// ArticleRepository article data access
type ArticleRepository interface {
	List(offset, limit int) ([]domain.Article, int64, error)
	ListByAuthor(authorID uint64, offset, limit int) ([]domain.Article, int64, error)
	FindByID(id uint64) (*domain.Article, error)
	FindBySlug(slug string) (*domain.Article, error)
	ExistsBySlug(slug string) (bool, error)
	Save(article *domain.Article, blocks []domain.ArticleBlock) error
	Delete(id uint64) error
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) List(offset, limit int) ([]domain.Article, int64, error) {
	var articles []domain.Article
	var total int64

	query := r.db.Model(&domain.Article{}).Where("published = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Author").
		Preload("Likes").
		Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *articleRepository) ListByAuthor(authorID uint64, offset, limit int) ([]domain.Article, int64, error) {
	var articles []domain.Article
	var total int64

	query := r.db.Model(&domain.Article{}).
		Where("author_id = ? AND published = ?", authorID, true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Author").
		Preload("Likes").
		Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *articleRepository) FindByID(id uint64) (*domain.Article, error) {
	var article domain.Article
	err := r.db.
		Preload("Author").
		Preload("Likes").
		Where("id = ?", id).
		First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindBySlug(slug string) (*domain.Article, error) {
	var article domain.Article
	err := r.db.
		Preload("Author").
		Preload("Likes").
		Where("slug = ?", slug).
		First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) ExistsBySlug(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Article{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// Save upserts the article row and replaces its block projection in one
// transaction, so a failed save never leaves the projection half-written.
func (r *articleRepository) Save(article *domain.Article, blocks []domain.ArticleBlock) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(article).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", article.ID).
			Delete(&domain.ArticleBlock{}).Error; err != nil {
			return err
		}
		for i := range blocks {
			blocks[i].ID = 0
			blocks[i].ArticleID = article.ID
		}
		if len(blocks) > 0 {
			if err := tx.Create(&blocks).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *articleRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&domain.ArticleBlock{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Article{}).Error
	})
}
