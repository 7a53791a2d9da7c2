package handler

import (
	"errors"

	"github.com/alihfala/mando-articles/internal/common"
	"github.com/alihfala/mando-articles/internal/middleware"
	"github.com/alihfala/mando-articles/internal/service"
	"github.com/gin-gonic/gin"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List godoc
// @Summary      List an article's comments
// @Tags         comments
// @Produce      json
// @Param        slug  path      string  true  "Article slug"
// @Success      200  {object}  common.APIResponse{data=[]domain.CommentResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /articles/{slug}/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	slug := c.Param("slug")

	comments, err := h.commentService.ListByArticle(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, common.ErrArticleNotFound) {
			common.ErrorResponse(c, 404, "Article not found", nil)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch comments", err)
		return
	}

	common.SuccessResponse(c, comments, nil)
}

// Create godoc
// @Summary      Comment on an article
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug     path      string  true  "Article slug"
// @Param        request  body      service.CreateCommentRequest  true  "Comment payload"
// @Success      201  {object}  common.APIResponse{data=domain.CommentResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /articles/{slug}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	slug := c.Param("slug")

	var req service.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), middleware.GetUserID(c), slug, req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrArticleNotFound):
			common.ErrorResponse(c, 404, "Article not found", nil)
		case errors.Is(err, common.ErrInvalidInput):
			common.ErrorResponse(c, 400, "Invalid comment data", err)
		default:
			common.ErrorResponse(c, 500, "Failed to create comment", err)
		}
		return
	}

	common.CreatedResponse(c, comment)
}
