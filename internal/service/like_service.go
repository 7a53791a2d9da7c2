package service

import (
	"context"
	"errors"

	"github.com/alihfala/mando-articles/internal/common"
	"github.com/alihfala/mando-articles/internal/domain"
	"github.com/alihfala/mando-articles/internal/repository"
	"github.com/alihfala/mando-articles/pkg/cache"
	"github.com/alihfala/mando-articles/pkg/logger"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry is the MySQL error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// LikeService toggles likes on articles.
type LikeService interface {
	Toggle(ctx context.Context, userID uint64, slug string) (*domain.LikeResponse, error)
}

type likeService struct {
	likes    repository.LikeRepository
	articles repository.ArticleRepository
	cache    cache.Service
}

// NewLikeService creates a LikeService
func NewLikeService(likes repository.LikeRepository, articles repository.ArticleRepository, cacheSvc cache.Service) LikeService {
	return &likeService{likes: likes, articles: articles, cache: cacheSvc}
}

// Toggle flips the caller's like on an article. Two racing toggles can both
// pass the existence check; the unique index on (user_id, article_id) settles
// it, and the loser's duplicate insert is reported as a successful like.
func (s *likeService) Toggle(ctx context.Context, userID uint64, slug string) (*domain.LikeResponse, error) {
	article, err := s.articles.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrArticleNotFound
		}
		return nil, err
	}

	liked := false
	_, err = s.likes.Find(userID, article.ID)
	switch {
	case err == nil:
		if err := s.likes.Delete(userID, article.ID); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		createErr := s.likes.Create(&domain.Like{UserID: userID, ArticleID: article.ID})
		if createErr != nil && !isDuplicateEntry(createErr) {
			return nil, createErr
		}
		liked = true
	default:
		return nil, err
	}

	count, err := s.likes.CountByArticle(article.ID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateArticle(ctx, slug); err != nil {
		logger.GetLogger().Warn().Err(err).Str("slug", slug).Msg("article cache invalidation failed")
	}
	if err := s.cache.InvalidateFeed(ctx); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("feed cache invalidation failed")
	}

	return &domain.LikeResponse{Liked: liked, LikeCount: count}, nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
