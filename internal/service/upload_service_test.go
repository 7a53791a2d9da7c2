package service

import (
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/alihfala/mando-articles/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func imageHeader(name, contentType string, size int64) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   h,
	}
}

func TestUploadImage_MockModeReturnsPlaceholder(t *testing.T) {
	files := new(MockFileRepository)
	files.On("Create", mock.AnythingOfType("*domain.File")).Return(nil)

	svc := NewUploadService(files, nil, true)
	resp, err := svc.UploadImage(context.Background(), 42, imageHeader("photo.png", "image/png", 1024))

	assert.NoError(t, err)
	assert.True(t, resp.Mock)
	assert.Contains(t, resp.URL, "placehold.co")
	assert.Equal(t, "photo.png", resp.Name)
	assert.Equal(t, int64(1024), resp.Size)
	files.AssertCalled(t, "Create", mock.AnythingOfType("*domain.File"))
}

func TestUploadImage_RejectsNonImageType(t *testing.T) {
	svc := NewUploadService(new(MockFileRepository), nil, true)
	_, err := svc.UploadImage(context.Background(), 42, imageHeader("doc.pdf", "application/pdf", 1024))

	assert.ErrorIs(t, err, common.ErrFileType)
}

func TestUploadImage_RejectsOversizedFile(t *testing.T) {
	svc := NewUploadService(new(MockFileRepository), nil, true)
	_, err := svc.UploadImage(context.Background(), 42, imageHeader("big.png", "image/png", MaxUploadSize+1))

	assert.ErrorIs(t, err, common.ErrFileTooLarge)
}

func TestUploadImage_RejectsMissingFile(t *testing.T) {
	svc := NewUploadService(new(MockFileRepository), nil, true)
	_, err := svc.UploadImage(context.Background(), 42, nil)

	assert.ErrorIs(t, err, common.ErrFileMissing)
}
