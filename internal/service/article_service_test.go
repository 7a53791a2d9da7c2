package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/alihfala/mando-articles/internal/common"
	"github.com/alihfala/mando-articles/internal/domain"
	"github.com/alihfala/mando-articles/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newArticleService(articles *MockArticleRepository, users *MockUserRepository) ArticleService {
	return NewArticleService(articles, users, cache.NewService(nil))
}

func makeArticles(n int) []domain.Article {
	out := make([]domain.Article, n)
	for i := range out {
		out[i] = domain.Article{
			ID:        uint64(i + 1),
			Slug:      fmt.Sprintf("article-%d", i+1),
			Title:     fmt.Sprintf("Article %d", i+1),
			Published: true,
			AuthorID:  1,
		}
	}
	return out
}

func TestList_FullPageHasNextPage(t *testing.T) {
	articles := new(MockArticleRepository)
	articles.On("List", 0, 6).Return(makeArticles(6), int64(20), nil)

	svc := newArticleService(articles, new(MockUserRepository))
	list, err := svc.List(context.Background(), 0, 0)

	assert.NoError(t, err)
	assert.Len(t, list.Articles, 6)
	assert.Equal(t, 0, list.Page)
	assert.Equal(t, 6, list.Limit)
	if assert.NotNil(t, list.NextPage) {
		assert.Equal(t, 1, *list.NextPage)
	}
}

func TestList_ShortPageEndsFeed(t *testing.T) {
	articles := new(MockArticleRepository)
	articles.On("List", 12, 6).Return(makeArticles(3), int64(15), nil)

	svc := newArticleService(articles, new(MockUserRepository))
	list, err := svc.List(context.Background(), 2, 6)

	assert.NoError(t, err)
	assert.Len(t, list.Articles, 3)
	assert.Nil(t, list.NextPage)
}

func TestList_ExactLastPageEndsFeed(t *testing.T) {
	// 12 articles total, page 1 of limit 6 is full but also final
	articles := new(MockArticleRepository)
	articles.On("List", 6, 6).Return(makeArticles(6), int64(12), nil)

	svc := newArticleService(articles, new(MockUserRepository))
	list, err := svc.List(context.Background(), 1, 6)

	assert.NoError(t, err)
	assert.Len(t, list.Articles, 6)
	assert.Nil(t, list.NextPage)
}

func TestList_NegativePageClampsToZero(t *testing.T) {
	articles := new(MockArticleRepository)
	articles.On("List", 0, 6).Return(makeArticles(0), int64(0), nil)

	svc := newArticleService(articles, new(MockUserRepository))
	list, err := svc.List(context.Background(), -3, 6)

	assert.NoError(t, err)
	assert.Equal(t, 0, list.Page)
	assert.Nil(t, list.NextPage)
}

func saveRequest(slug string) SaveArticleRequest {
	doc := `{"time":1700000000000,"version":"2.26.5","blocks":[` +
		`{"id":"b1","type":"text","data":"First paragraph of the piece."},` +
		`{"id":"b2","type":"header","data":{"text":"Section","level":2}}]}`
	return SaveArticleRequest{
		Title:   "A Piece",
		Slug:    slug,
		Content: json.RawMessage(doc),
	}
}

func TestSave_CreatesWhenSlugFree(t *testing.T) {
	articles := new(MockArticleRepository)
	articles.On("FindBySlug", "a-piece").Return(nil, gorm.ErrRecordNotFound)
	articles.On("Save", mock.AnythingOfType("*domain.Article"), mock.AnythingOfType("[]domain.ArticleBlock")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*domain.Article).ID = 7
		}).
		Return(nil)
	articles.On("FindByID", uint64(7)).Return(&domain.Article{ID: 7, Slug: "a-piece", Title: "A Piece", AuthorID: 42}, nil)

	svc := newArticleService(articles, new(MockUserRepository))
	resp, created, err := svc.Save(context.Background(), 42, saveRequest("a-piece"))

	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "a-piece", resp.Slug)

	// the block projection mirrors document order
	saveCall := articles.Calls[1]
	rows := saveCall.Arguments.Get(1).([]domain.ArticleBlock)
	if assert.Len(t, rows, 2) {
		assert.Equal(t, "text", rows[0].Type)
		assert.Equal(t, 0, rows[0].OrderNum)
		assert.Equal(t, "header", rows[1].Type)
		assert.Equal(t, 1, rows[1].OrderNum)
	}
}

func TestSave_TakenSlugConflictsOnCreate(t *testing.T) {
	articles := new(MockArticleRepository)
	articles.On("FindBySlug", "a-piece").Return(&domain.Article{ID: 7, Slug: "a-piece", AuthorID: 1}, nil)

	svc := newArticleService(articles, new(MockUserRepository))
	_, _, err := svc.Save(context.Background(), 42, saveRequest("a-piece"))

	assert.ErrorIs(t, err, common.ErrSlugConflict)
	articles.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSave_OwnerUpdatesInPlace(t *testing.T) {
	articles := new(MockArticleRepository)
	articles.On("FindByID", uint64(7)).Return(&domain.Article{ID: 7, Slug: "a-piece", AuthorID: 42, Title: "A Piece"}, nil)
	articles.On("FindBySlug", "a-piece").Return(&domain.Article{ID: 7, Slug: "a-piece", AuthorID: 42}, nil)
	articles.On("Save", mock.AnythingOfType("*domain.Article"), mock.AnythingOfType("[]domain.ArticleBlock")).Return(nil)

	req := saveRequest("a-piece")
	req.ID = 7

	svc := newArticleService(articles, new(MockUserRepository))
	resp, created, err := svc.Save(context.Background(), 42, req)

	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "A Piece", resp.Title)
}

func TestSave_UpdateByNonOwnerForbidden(t *testing.T) {
	articles := new(MockArticleRepository)
	articles.On("FindByID", uint64(7)).Return(&domain.Article{ID: 7, Slug: "a-piece", AuthorID: 1}, nil)

	req := saveRequest("a-piece")
	req.ID = 7

	svc := newArticleService(articles, new(MockUserRepository))
	_, _, err := svc.Save(context.Background(), 42, req)

	assert.ErrorIs(t, err, common.ErrNotArticleOwner)
	articles.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSave_UpdateUnknownIDNotFound(t *testing.T) {
	articles := new(MockArticleRepository)
	articles.On("FindByID", uint64(404)).Return(nil, gorm.ErrRecordNotFound)

	req := saveRequest("a-piece")
	req.ID = 404

	svc := newArticleService(articles, new(MockUserRepository))
	_, _, err := svc.Save(context.Background(), 42, req)

	assert.ErrorIs(t, err, common.ErrArticleNotFound)
}

func TestSave_InvalidSlugRejected(t *testing.T) {
	svc := newArticleService(new(MockArticleRepository), new(MockUserRepository))
	req := saveRequest("Not A Slug!")
	_, _, err := svc.Save(context.Background(), 42, req)

	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestSave_DerivesExcerptFromFirstParagraphs(t *testing.T) {
	articles := new(MockArticleRepository)
	articles.On("FindBySlug", "a-piece").Return(nil, gorm.ErrRecordNotFound)
	var saved *domain.Article
	articles.On("Save", mock.AnythingOfType("*domain.Article"), mock.AnythingOfType("[]domain.ArticleBlock")).
		Run(func(args mock.Arguments) {
			saved = args.Get(0).(*domain.Article)
			saved.ID = 7
		}).
		Return(nil)
	articles.On("FindByID", uint64(7)).Return(&domain.Article{ID: 7, Slug: "a-piece"}, nil)

	svc := newArticleService(articles, new(MockUserRepository))
	_, _, err := svc.Save(context.Background(), 42, saveRequest("a-piece"))

	assert.NoError(t, err)
	if assert.NotNil(t, saved.Excerpt) {
		assert.Equal(t, "First paragraph of the piece.", *saved.Excerpt)
	}
}

func TestDelete_OnlyOwnerMayDelete(t *testing.T) {
	articles := new(MockArticleRepository)
	articles.On("FindBySlug", "a-piece").Return(&domain.Article{ID: 7, Slug: "a-piece", AuthorID: 1}, nil)

	svc := newArticleService(articles, new(MockUserRepository))
	err := svc.Delete(context.Background(), 42, "a-piece")

	assert.ErrorIs(t, err, common.ErrNotArticleOwner)
	articles.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestGetBySlug_NotFound(t *testing.T) {
	articles := new(MockArticleRepository)
	articles.On("FindBySlug", "missing").Return(nil, gorm.ErrRecordNotFound)

	svc := newArticleService(articles, new(MockUserRepository))
	_, err := svc.GetBySlug(context.Background(), "missing", 0)

	assert.ErrorIs(t, err, common.ErrArticleNotFound)
}

func TestGetBySlug_MarksViewerLike(t *testing.T) {
	article := &domain.Article{
		ID:       7,
		Slug:     "liked-piece",
		Title:    "Liked piece",
		AuthorID: 1,
		Likes: []domain.Like{
			{ID: 1, UserID: 3, ArticleID: 7},
			{ID: 2, UserID: 5, ArticleID: 7},
		},
	}
	articles := new(MockArticleRepository)
	articles.On("FindBySlug", "liked-piece").Return(article, nil)

	svc := newArticleService(articles, new(MockUserRepository))

	viewer, err := svc.GetBySlug(context.Background(), "liked-piece", 5)
	assert.NoError(t, err)
	assert.True(t, viewer.Liked)

	stranger, err := svc.GetBySlug(context.Background(), "liked-piece", 9)
	assert.NoError(t, err)
	assert.False(t, stranger.Liked)

	anonymous, err := svc.GetBySlug(context.Background(), "liked-piece", 0)
	assert.NoError(t, err)
	assert.False(t, anonymous.Liked)
	assert.Equal(t, 2, anonymous.LikeCount)
}
