package handler

import (
	"errors"

	"github.com/alihfala/mando-articles/internal/common"
	"github.com/alihfala/mando-articles/internal/middleware"
	"github.com/alihfala/mando-articles/internal/service"
	"github.com/gin-gonic/gin"
)

// UploadHandler handles file upload endpoints
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadImage godoc
// @Summary      Upload an editor image
// @Description  Accepts jpeg, png, gif, or webp up to 5MB under the "file" form field.
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Image file"
// @Success      201  {object}  common.APIResponse{data=domain.UploadResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      413  {object}  common.APIResponse
// @Router       /upload [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		common.ErrorResponse(c, 400, "No file provided", err)
		return
	}

	result, err := h.uploadService.UploadImage(c.Request.Context(), middleware.GetUserID(c), header)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrFileMissing):
			common.ErrorResponse(c, 400, "No file provided", nil)
		case errors.Is(err, common.ErrFileType):
			common.ErrorResponse(c, 400, "Only jpeg, png, gif, and webp images are accepted", nil)
		case errors.Is(err, common.ErrFileTooLarge):
			common.ErrorResponse(c, 413, "File exceeds the 5MB limit", nil)
		default:
			common.ErrorResponse(c, 500, "Failed to upload file", err)
		}
		return
	}

	common.CreatedResponse(c, result)
}
