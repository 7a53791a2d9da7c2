package repository

import (
	"github.com/alihfala/mando-articles/internal/domain"
	"gorm.io/gorm"
)

// FileRepository upload metadata access
type FileRepository interface {
	Create(file *domain.File) error
	FindByID(id uint64) (*domain.File, error)
	ListByUser(userID uint64) ([]domain.File, error)
}

type fileRepository struct {
	db *gorm.DB
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(file *domain.File) error {
	return r.db.Create(file).Error
}

func (r *fileRepository) FindByID(id uint64) (*domain.File, error) {
	var file domain.File
	err := r.db.Where("id = ?", id).First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) ListByUser(userID uint64) ([]domain.File, error) {
	var files []domain.File
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&files).Error
	return files, err
}
