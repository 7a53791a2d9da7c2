package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/alihfala/mando-articles/internal/common"
	"github.com/alihfala/mando-articles/internal/domain"
	"github.com/alihfala/mando-articles/internal/repository"
	"github.com/alihfala/mando-articles/pkg/logger"
	"github.com/alihfala/mando-articles/pkg/storage"
	"github.com/google/uuid"
)

// MaxUploadSize caps editor image uploads at 5MB.
const MaxUploadSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Uploader is the storage backend surface the upload flow needs.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string, size int64) (*storage.UploadResult, error)
	GetCDNURL(key string) string
}

// UploadService validates and stores editor image uploads.
type UploadService interface {
	UploadImage(ctx context.Context, userID uint64, header *multipart.FileHeader) (*domain.UploadResponse, error)
}

type uploadService struct {
	files   repository.FileRepository
	storage Uploader
	// mock skips the storage backend entirely and hands back a generated
	// placeholder URL, for environments without credentials.
	mock bool
}

// NewUploadService creates an UploadService. store may be nil when mock is
// set.
func NewUploadService(files repository.FileRepository, store Uploader, mock bool) UploadService {
	return &uploadService{files: files, storage: store, mock: mock}
}

func (s *uploadService) UploadImage(ctx context.Context, userID uint64, header *multipart.FileHeader) (*domain.UploadResponse, error) {
	if header == nil {
		return nil, common.ErrFileMissing
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return nil, common.ErrFileType
	}
	if header.Size > MaxUploadSize {
		return nil, common.ErrFileTooLarge
	}

	storedName := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))

	var publicURL string
	if s.mock {
		publicURL = fmt.Sprintf("https://placehold.co/800x400?text=%s", storedName)
	} else {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload: %w", err)
		}
		defer file.Close()

		key := storage.GenerateKey("images", storedName)
		result, err := s.storage.Upload(ctx, key, file, contentType, header.Size)
		if err != nil {
			return nil, err
		}
		publicURL = result.URL
		if result.CDNURL != "" {
			publicURL = result.CDNURL
		}
	}

	record := &domain.File{
		UserID:       userID,
		OriginalName: header.Filename,
		StoredName:   storedName,
		MimeType:     contentType,
		FileSize:     header.Size,
		URL:          publicURL,
	}
	if err := s.files.Create(record); err != nil {
		// the object is already stored; losing the row is survivable
		logger.GetLogger().Error().Err(err).Str("stored_name", storedName).Msg("upload metadata write failed")
	}

	return &domain.UploadResponse{
		URL:    publicURL,
		FileID: storedName,
		Name:   header.Filename,
		Size:   header.Size,
		Type:   contentType,
		Mock:   s.mock,
	}, nil
}
