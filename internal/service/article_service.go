package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alihfala/mando-articles/internal/common"
	"github.com/alihfala/mando-articles/internal/content"
	"github.com/alihfala/mando-articles/internal/domain"
	"github.com/alihfala/mando-articles/internal/repository"
	"github.com/alihfala/mando-articles/pkg/cache"
	"github.com/alihfala/mando-articles/pkg/logger"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

const (
	// DefaultPageSize is the feed page size when the client sends none.
	DefaultPageSize = 6
	// MaxPageSize caps client-requested page sizes.
	MaxPageSize = 50
)

// SaveArticleRequest create/update payload. A zero ID creates; a non-zero ID
// updates that article. Content arrives as the raw document JSON exactly as
// the editor serialized it.
type SaveArticleRequest struct {
	ID            uint64          `json:"id"`
	Title         string          `json:"title"`
	Slug          string          `json:"slug"`
	Content       json.RawMessage `json:"content"`
	Excerpt       string          `json:"excerpt"`
	FeaturedImage string          `json:"featured_image"`
	Published     bool            `json:"published"`
}

// Validate checks the save payload.
func (r SaveArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Slug, validation.Required, validation.Match(common.SlugRegex)),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Excerpt, validation.Length(0, 500)),
	)
}

// ArticleList is one feed page.
type ArticleList struct {
	Articles []*domain.ArticleResponse `json:"articles"`
	Page     int                       `json:"page"`
	Limit    int                       `json:"limit"`
	Total    int64                     `json:"total"`
	// NextPage is nil when this page came back short, meaning there is
	// nothing after it.
	NextPage *int `json:"next_page"`
}

// ArticleService implements the article feed, detail, and save flows.
type ArticleService interface {
	List(ctx context.Context, page, limit int) (*ArticleList, error)
	ListByAuthorID(ctx context.Context, authorID uint64, page, limit int) (*ArticleList, error)
	ListByAuthor(ctx context.Context, username string, page, limit int) (*ArticleList, *domain.AuthorResponse, error)
	GetAuthor(ctx context.Context, username string) (*domain.AuthorResponse, error)
	GetBySlug(ctx context.Context, slug string, viewerID uint64) (*domain.ArticleResponse, error)
	Save(ctx context.Context, userID uint64, req SaveArticleRequest) (*domain.ArticleResponse, bool, error)
	Delete(ctx context.Context, userID uint64, slug string) error
	Preview(raw json.RawMessage) []content.Node
}

type articleService struct {
	articles repository.ArticleRepository
	users    repository.UserRepository
	cache    cache.Service
}

// NewArticleService creates an ArticleService
func NewArticleService(articles repository.ArticleRepository, users repository.UserRepository, cacheSvc cache.Service) ArticleService {
	return &articleService{articles: articles, users: users, cache: cacheSvc}
}

// normalizePage clamps paging inputs. Pages count from zero.
func normalizePage(page, limit int) (int, int) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

func (s *articleService) List(ctx context.Context, page, limit int) (*ArticleList, error) {
	page, limit = normalizePage(page, limit)

	if data, err := s.cache.GetFeed(ctx, page, limit); err == nil {
		var cached ArticleList
		if json.Unmarshal(data, &cached) == nil {
			return &cached, nil
		}
	}

	articles, total, err := s.articles.List(page*limit, limit)
	if err != nil {
		return nil, err
	}

	list := buildList(articles, page, limit, total)

	if err := s.cache.SetFeed(ctx, page, limit, list); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("feed cache write failed")
	}
	return list, nil
}

// ListByAuthorID filters the feed to one author, for the author_id query
// parameter.
func (s *articleService) ListByAuthorID(ctx context.Context, authorID uint64, page, limit int) (*ArticleList, error) {
	page, limit = normalizePage(page, limit)

	articles, total, err := s.articles.ListByAuthor(authorID, page*limit, limit)
	if err != nil {
		return nil, err
	}
	return buildList(articles, page, limit, total), nil
}

// GetAuthor returns the public author card with its article count.
func (s *articleService) GetAuthor(ctx context.Context, username string) (*domain.AuthorResponse, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	author := user.ToAuthor()
	count, err := s.users.CountArticles(user.ID)
	if err != nil {
		return nil, err
	}
	author.ArticleCount = count
	return author, nil
}

func (s *articleService) ListByAuthor(ctx context.Context, username string, page, limit int) (*ArticleList, *domain.AuthorResponse, error) {
	page, limit = normalizePage(page, limit)

	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, common.ErrUserNotFound
		}
		return nil, nil, err
	}

	articles, total, err := s.articles.ListByAuthor(user.ID, page*limit, limit)
	if err != nil {
		return nil, nil, err
	}

	author := user.ToAuthor()
	author.ArticleCount = total
	return buildList(articles, page, limit, total), author, nil
}

// buildList assembles a feed page. A short page signals the end of the feed,
// so next_page stays null.
func buildList(articles []domain.Article, page, limit int, total int64) *ArticleList {
	items := make([]*domain.ArticleResponse, 0, len(articles))
	for i := range articles {
		items = append(items, articles[i].ToResponse(false))
	}

	list := &ArticleList{
		Articles: items,
		Page:     page,
		Limit:    limit,
		Total:    total,
	}
	if len(articles) == limit && int64((page+1)*limit) < total {
		next := page + 1
		list.NextPage = &next
	}
	return list
}

// GetBySlug returns the full article. viewerID, when non-zero, marks the
// viewer's own like on the response; the cached copy stays viewer-agnostic.
func (s *articleService) GetBySlug(ctx context.Context, slug string, viewerID uint64) (*domain.ArticleResponse, error) {
	if data, err := s.cache.GetArticle(ctx, slug); err == nil {
		var cached domain.ArticleResponse
		if json.Unmarshal(data, &cached) == nil {
			cached.MarkLikedBy(viewerID)
			return &cached, nil
		}
	}

	article, err := s.articles.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrArticleNotFound
		}
		return nil, err
	}

	resp := article.ToResponse(true)
	if err := s.cache.SetArticle(ctx, slug, resp); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("article cache write failed")
	}
	resp.MarkLikedBy(viewerID)
	return resp, nil
}

// Save creates an article when the request carries no id, and updates the
// identified article otherwise. The returned bool is true on create.
func (s *articleService) Save(ctx context.Context, userID uint64, req SaveArticleRequest) (*domain.ArticleResponse, bool, error) {
	if err := req.Validate(); err != nil {
		return nil, false, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	doc, _ := content.ParseContent(req.Content)
	stored, err := doc.Marshal()
	if err != nil {
		return nil, false, fmt.Errorf("%w: content not serializable", common.ErrInvalidInput)
	}

	created := req.ID == 0
	var article *domain.Article

	if created {
		article = &domain.Article{Slug: req.Slug, AuthorID: userID}
	} else {
		article, err = s.articles.FindByID(req.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, common.ErrArticleNotFound
			}
			return nil, false, err
		}
		if article.AuthorID != userID {
			return nil, false, common.ErrNotArticleOwner
		}
	}

	// The slug must be free, or already belong to this article.
	if owner, err := s.articles.FindBySlug(req.Slug); err == nil {
		if owner.ID != article.ID {
			return nil, false, common.ErrSlugConflict
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	oldSlug := article.Slug
	article.Slug = req.Slug
	article.Title = req.Title
	article.Content = string(stored)
	article.Published = req.Published
	article.Blocks = nil
	article.Likes = nil

	excerpt := req.Excerpt
	if excerpt == "" {
		excerpt = excerptFromDocument(doc)
	}
	if excerpt != "" {
		article.Excerpt = &excerpt
	} else {
		article.Excerpt = nil
	}
	if req.FeaturedImage != "" {
		article.FeaturedImage = &req.FeaturedImage
	}

	if err := s.articles.Save(article, blockRows(doc)); err != nil {
		return nil, false, err
	}

	s.invalidate(ctx, req.Slug)
	if oldSlug != "" && oldSlug != req.Slug {
		s.invalidate(ctx, oldSlug)
	}

	saved, err := s.articles.FindByID(article.ID)
	if err != nil {
		return nil, false, err
	}
	return saved.ToResponse(true), created, nil
}

func (s *articleService) Delete(ctx context.Context, userID uint64, slug string) error {
	article, err := s.articles.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrArticleNotFound
		}
		return err
	}
	if article.AuthorID != userID {
		return common.ErrNotArticleOwner
	}
	if err := s.articles.Delete(article.ID); err != nil {
		return err
	}
	s.invalidate(ctx, slug)
	return nil
}

// Preview renders a document payload without persisting anything.
func (s *articleService) Preview(raw json.RawMessage) []content.Node {
	return content.RenderContent(raw)
}

func (s *articleService) invalidate(ctx context.Context, slug string) {
	if err := s.cache.InvalidateArticle(ctx, slug); err != nil {
		logger.GetLogger().Warn().Err(err).Str("slug", slug).Msg("article cache invalidation failed")
	}
	if err := s.cache.InvalidateFeed(ctx); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("feed cache invalidation failed")
	}
}

// blockRows flattens a document into projection rows, one per block, keyed
// by position.
func blockRows(doc *content.Document) []domain.ArticleBlock {
	rows := make([]domain.ArticleBlock, 0, len(doc.Blocks))
	for i, b := range doc.Blocks {
		payload := b.Data
		if payload == nil {
			payload = b.Content
		}
		rows = append(rows, domain.ArticleBlock{
			Type:     b.Type,
			Content:  string(payload),
			OrderNum: i,
		})
	}
	return rows
}

// excerptFromDocument summarizes the first two paragraphs: joined, trimmed,
// capped at 160 characters.
func excerptFromDocument(doc *content.Document) string {
	var parts []string
	for _, node := range content.RenderDocument(doc) {
		if node.Kind != content.NodeParagraph {
			continue
		}
		if node.Text != "" {
			parts = append(parts, node.Text)
		}
		if len(parts) == 2 {
			break
		}
	}
	text := strings.TrimSpace(strings.Join(parts, " "))
	if len(text) > 160 {
		return content.Truncate(text, 157) + "..."
	}
	return text
}
