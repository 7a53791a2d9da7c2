package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alihfala/mando-articles/internal/common"
	"github.com/alihfala/mando-articles/internal/domain"
	"github.com/alihfala/mando-articles/internal/repository"
	"github.com/alihfala/mando-articles/pkg/cache"
	"github.com/alihfala/mando-articles/pkg/logger"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

// CreateCommentRequest comment payload
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// Validate checks the comment payload.
func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required, validation.Length(1, 2000)),
	)
}

// CommentService lists and creates article comments.
type CommentService interface {
	ListByArticle(ctx context.Context, slug string) ([]*domain.CommentResponse, error)
	Create(ctx context.Context, userID uint64, slug string, req CreateCommentRequest) (*domain.CommentResponse, error)
}

type commentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	cache    cache.Service
}

// NewCommentService creates a CommentService
func NewCommentService(comments repository.CommentRepository, articles repository.ArticleRepository, cacheSvc cache.Service) CommentService {
	return &commentService{comments: comments, articles: articles, cache: cacheSvc}
}

func (s *commentService) ListByArticle(ctx context.Context, slug string) ([]*domain.CommentResponse, error) {
	article, err := s.articles.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrArticleNotFound
		}
		return nil, err
	}

	if data, err := s.cache.GetComments(ctx, article.ID); err == nil {
		var cached []*domain.CommentResponse
		if json.Unmarshal(data, &cached) == nil {
			return cached, nil
		}
	}

	comments, err := s.comments.ListByArticle(article.ID)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, comments[i].ToResponse())
	}

	if err := s.cache.SetComments(ctx, article.ID, items); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("comments cache write failed")
	}
	return items, nil
}

func (s *commentService) Create(ctx context.Context, userID uint64, slug string, req CreateCommentRequest) (*domain.CommentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	article, err := s.articles.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrArticleNotFound
		}
		return nil, err
	}

	comment := &domain.Comment{
		ArticleID: article.ID,
		UserID:    userID,
		Content:   req.Content,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateComments(ctx, article.ID); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("comments cache invalidation failed")
	}
	return comment.ToResponse(), nil
}
