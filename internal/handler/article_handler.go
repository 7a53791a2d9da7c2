package handler

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/alihfala/mando-articles/internal/common"
	"github.com/alihfala/mando-articles/internal/middleware"
	"github.com/alihfala/mando-articles/internal/service"
	"github.com/alihfala/mando-articles/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	articleService service.ArticleService
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articleService service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// List godoc
// @Summary      List published articles
// @Description  Returns one feed page, most recently updated first. Pages count from 0.
// @Tags         articles
// @Produce      json
// @Param        page       query     int  false  "Page number (default 0)"     default(0)
// @Param        limit      query     int  false  "Items per page (default 6)"  default(6)
// @Param        author_id  query     int  false  "Filter to one author"
// @Success      200  {object}  common.APIResponse{data=[]domain.ArticleResponse}
// @Failure      500  {object}  common.APIResponse
// @Router       /articles [get]
func (h *ArticleHandler) List(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 0)
	limit := ginutil.QueryInt(c, "limit", service.DefaultPageSize)
	authorID := ginutil.QueryInt(c, "author_id", 0)

	var list *service.ArticleList
	var err error
	if authorID > 0 {
		list, err = h.articleService.ListByAuthorID(c.Request.Context(), uint64(authorID), page, limit)
	} else {
		list, err = h.articleService.List(c.Request.Context(), page, limit)
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch articles", err)
		return
	}

	common.SuccessResponse(c, list.Articles, &common.Meta{
		Page:     list.Page,
		Limit:    list.Limit,
		Total:    list.Total,
		NextPage: list.NextPage,
	})
}

// Get godoc
// @Summary      Get one article by slug
// @Tags         articles
// @Produce      json
// @Param        slug  path      string  true  "Article slug"
// @Success      200  {object}  common.APIResponse{data=domain.ArticleResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /articles/{slug} [get]
func (h *ArticleHandler) Get(c *gin.Context) {
	slug := c.Param("slug")

	article, err := h.articleService.GetBySlug(c.Request.Context(), slug, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, common.ErrArticleNotFound) {
			common.ErrorResponse(c, 404, "Article not found", nil)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch article", err)
		return
	}

	common.SuccessResponse(c, article, nil)
}

// Save godoc
// @Summary      Create or update an article
// @Description  Creates when the payload has no id, updates the identified article otherwise. A slug claimed by another article is a conflict.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      service.SaveArticleRequest  true  "Article payload"
// @Success      200  {object}  common.APIResponse{data=domain.ArticleResponse}
// @Success      201  {object}  common.APIResponse{data=domain.ArticleResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /articles [post]
func (h *ArticleHandler) Save(c *gin.Context) {
	var req service.SaveArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	article, created, err := h.articleService.Save(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrSlugConflict):
			common.ErrorResponse(c, 409, "An article with this slug already exists", nil)
		case errors.Is(err, common.ErrArticleNotFound):
			common.ErrorResponse(c, 404, "Article not found", nil)
		case errors.Is(err, common.ErrNotArticleOwner):
			common.ErrorResponse(c, 403, "You do not own this article", nil)
		case errors.Is(err, common.ErrInvalidInput):
			common.ErrorResponse(c, 400, "Invalid article data", err)
		default:
			common.ErrorResponse(c, 500, "Failed to save article", err)
		}
		return
	}

	middleware.CountArticleSave(created)
	if created {
		common.CreatedResponse(c, article)
		return
	}
	common.SuccessResponse(c, article, nil)
}

// Delete godoc
// @Summary      Delete an article
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path      string  true  "Article slug"
// @Success      200  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /articles/{slug} [delete]
func (h *ArticleHandler) Delete(c *gin.Context) {
	slug := c.Param("slug")

	err := h.articleService.Delete(c.Request.Context(), middleware.GetUserID(c), slug)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrArticleNotFound):
			common.ErrorResponse(c, 404, "Article not found", nil)
		case errors.Is(err, common.ErrNotArticleOwner):
			common.ErrorResponse(c, 403, "You do not own this article", nil)
		default:
			common.ErrorResponse(c, 500, "Failed to delete article", err)
		}
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": slug}, nil)
}

// Preview godoc
// @Summary      Render a document without saving it
// @Description  Accepts a raw content document and returns its display nodes.
// @Tags         articles
// @Accept       json
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=[]content.Node}
// @Failure      400  {object}  common.APIResponse
// @Router       /preview [post]
func (h *ArticleHandler) Preview(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		common.ErrorResponse(c, 400, "Failed to read request body", err)
		return
	}

	nodes := h.articleService.Preview(json.RawMessage(body))
	common.SuccessResponse(c, nodes, nil)
}

// GetAuthor godoc
// @Summary      Get an author's public profile
// @Tags         authors
// @Produce      json
// @Param        username  path      string  true  "Author username"
// @Success      200  {object}  common.APIResponse{data=domain.AuthorResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /authors/{username} [get]
func (h *ArticleHandler) GetAuthor(c *gin.Context) {
	username := c.Param("username")

	author, err := h.articleService.GetAuthor(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			common.ErrorResponse(c, 404, "Author not found", nil)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch author", err)
		return
	}

	common.SuccessResponse(c, author, nil)
}

// ListByAuthor godoc
// @Summary      List one author's published articles
// @Tags         authors
// @Produce      json
// @Param        username  path      string  true   "Author username"
// @Param        page      query     int     false  "Page number (default 0)"
// @Param        limit     query     int     false  "Items per page (default 6)"
// @Success      200  {object}  common.APIResponse{data=[]domain.ArticleResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /authors/{username}/articles [get]
func (h *ArticleHandler) ListByAuthor(c *gin.Context) {
	username := c.Param("username")
	page := ginutil.QueryInt(c, "page", 0)
	limit := ginutil.QueryInt(c, "limit", service.DefaultPageSize)

	list, author, err := h.articleService.ListByAuthor(c.Request.Context(), username, page, limit)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			common.ErrorResponse(c, 404, "Author not found", nil)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch author's articles", err)
		return
	}

	common.SuccessResponse(c, gin.H{"author": author, "articles": list.Articles}, &common.Meta{
		Page:     list.Page,
		Limit:    list.Limit,
		Total:    list.Total,
		NextPage: list.NextPage,
	})
}
