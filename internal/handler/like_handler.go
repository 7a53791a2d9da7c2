package handler

import (
	"errors"

	"github.com/alihfala/mando-articles/internal/common"
	"github.com/alihfala/mando-articles/internal/middleware"
	"github.com/alihfala/mando-articles/internal/service"
	"github.com/gin-gonic/gin"
)

// LikeHandler handles like endpoints
type LikeHandler struct {
	likeService service.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// Toggle godoc
// @Summary      Toggle a like on an article
// @Description  Likes the article if the caller has not liked it, unlikes otherwise.
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path      string  true  "Article slug"
// @Success      200  {object}  common.APIResponse{data=domain.LikeResponse}
// @Failure      401  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /articles/{slug}/like [post]
func (h *LikeHandler) Toggle(c *gin.Context) {
	slug := c.Param("slug")

	result, err := h.likeService.Toggle(c.Request.Context(), middleware.GetUserID(c), slug)
	if err != nil {
		if errors.Is(err, common.ErrArticleNotFound) {
			common.ErrorResponse(c, 404, "Article not found", nil)
			return
		}
		common.ErrorResponse(c, 500, "Failed to toggle like", err)
		return
	}

	common.SuccessResponse(c, result, nil)
}
