package routes

import (
	"github.com/alihfala/mando-articles/internal/handler"
	"github.com/alihfala/mando-articles/internal/middleware"
	"github.com/alihfala/mando-articles/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	articleHandler *handler.ArticleHandler,
	likeHandler *handler.LikeHandler,
	commentHandler *handler.CommentHandler,
	uploadHandler *handler.UploadHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api")

	// Authentication endpoints (no auth required)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/guest", authHandler.GuestSession)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", middleware.JWTAuth(jwtManager), authHandler.Me)

	// Write endpoints require a full (non-guest) account. Reads accept an
	// optional token so the detail view can mark the viewer's own like.
	jwtAuth := middleware.JWTAuth(jwtManager)
	optionalAuth := middleware.OptionalJWTAuth(jwtManager)
	writer := middleware.RequireWriter()

	articles := api.Group("/articles")
	{
		articles.GET("", articleHandler.List)
		articles.POST("", jwtAuth, writer, articleHandler.Save)
		articles.PUT("", jwtAuth, writer, articleHandler.Save)
		articles.GET("/:slug", optionalAuth, articleHandler.Get)
		articles.DELETE("/:slug", jwtAuth, writer, articleHandler.Delete)

		articles.POST("/:slug/like", jwtAuth, writer, likeHandler.Toggle)

		articles.GET("/:slug/comments", commentHandler.List)
		articles.POST("/:slug/comments", jwtAuth, writer, commentHandler.Create)
	}

	// Author pages
	api.GET("/authors/:username", articleHandler.GetAuthor)
	api.GET("/authors/:username/articles", articleHandler.ListByAuthor)

	// Renderer preview (no auth, nothing persisted)
	api.POST("/preview", articleHandler.Preview)

	// Editor image upload
	api.POST("/upload", jwtAuth, writer, uploadHandler.UploadImage)
}
