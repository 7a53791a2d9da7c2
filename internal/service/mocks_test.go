package service

import (
	"github.com/alihfala/mando-articles/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) List(offset, limit int) ([]domain.Article, int64, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Article), args.Get(1).(int64), args.Error(2)
}

func (m *MockArticleRepository) ListByAuthor(authorID uint64, offset, limit int) ([]domain.Article, int64, error) {
	args := m.Called(authorID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Article), args.Get(1).(int64), args.Error(2)
}

func (m *MockArticleRepository) FindByID(id uint64) (*domain.Article, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleRepository) FindBySlug(slug string) (*domain.Article, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleRepository) ExistsBySlug(slug string) (bool, error) {
	args := m.Called(slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockArticleRepository) Save(article *domain.Article, blocks []domain.ArticleBlock) error {
	args := m.Called(article, blocks)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(id uint64) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*domain.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(user *domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) CountArticles(userID uint64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockLikeRepository is a mock implementation of LikeRepository
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Find(userID, articleID uint64) (*domain.Like, error) {
	args := m.Called(userID, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Like), args.Error(1)
}

func (m *MockLikeRepository) Create(like *domain.Like) error {
	args := m.Called(like)
	return args.Error(0)
}

func (m *MockLikeRepository) Delete(userID, articleID uint64) error {
	args := m.Called(userID, articleID)
	return args.Error(0)
}

func (m *MockLikeRepository) CountByArticle(articleID uint64) (int64, error) {
	args := m.Called(articleID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) ListByArticle(articleID uint64) ([]domain.Comment, error) {
	args := m.Called(articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) Create(comment *domain.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) FindByID(id uint64) (*domain.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(id uint64) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockFileRepository is a mock implementation of FileRepository
type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) Create(file *domain.File) error {
	args := m.Called(file)
	return args.Error(0)
}

func (m *MockFileRepository) FindByID(id uint64) (*domain.File, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.File), args.Error(1)
}

func (m *MockFileRepository) ListByUser(userID uint64) ([]domain.File, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.File), args.Error(1)
}
