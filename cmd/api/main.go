package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/alihfala/mando-articles/internal/config"
	"github.com/alihfala/mando-articles/internal/handler"
	"github.com/alihfala/mando-articles/internal/middleware"
	"github.com/alihfala/mando-articles/internal/migration"
	"github.com/alihfala/mando-articles/internal/repository"
	"github.com/alihfala/mando-articles/internal/routes"
	"github.com/alihfala/mando-articles/internal/service"
	pkgcache "github.com/alihfala/mando-articles/pkg/cache"
	"github.com/alihfala/mando-articles/pkg/jwt"
	pkglogger "github.com/alihfala/mando-articles/pkg/logger"
	pkgredis "github.com/alihfala/mando-articles/pkg/redis"
	pkgstorage "github.com/alihfala/mando-articles/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// @title           Mando Articles API
// @version         1.0
// @description     Block-based article publishing platform backend
//
// @license.name    MIT
//
// @host            localhost:8080
// @BasePath        /api
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

func main() {
	dotenvFiles := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pkglogger.InitStructured(cfg.App.Env)
	pkglogger.GetLogger().Info().
		Str("env", cfg.App.Env).
		Strs("dotenv", dotenvFiles).
		Msg("starting")

	// MySQL
	db, err := initDB(cfg)
	if err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("failed to connect to database, continuing without DB")
		db = nil
	} else {
		pkglogger.GetLogger().Info().Msg("connected to MySQL")
		if err := migration.Run(db); err != nil {
			pkglogger.GetLogger().Warn().Err(err).Msg("migration warning")
		}
	}

	// Redis
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("failed to connect to Redis, continuing without cache")
		redisClient = nil
	} else {
		pkglogger.GetLogger().Info().Msg("connected to Redis")
	}
	cacheService := pkgcache.NewService(redisClient)

	// JWT
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
		cfg.JWT.Issuer,
	)

	// Storage
	var uploader service.Uploader
	if !cfg.Storage.Mock {
		s3Client, err := pkgstorage.NewS3Client(pkgstorage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			CDNURL:          cfg.Storage.CDNURL,
			BasePath:        cfg.Storage.BasePath,
			ForcePathStyle:  cfg.Storage.ForcePathStyle,
		})
		if err != nil {
			log.Fatalf("Failed to init storage: %v", err)
		}
		uploader = s3Client
	}

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "mando-articles",
			"time":    time.Now().Unix(),
		})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if db != nil {
		userRepo := repository.NewUserRepository(db)
		articleRepo := repository.NewArticleRepository(db)
		likeRepo := repository.NewLikeRepository(db)
		commentRepo := repository.NewCommentRepository(db)
		fileRepo := repository.NewFileRepository(db)

		authService := service.NewAuthService(userRepo, jwtManager)
		articleService := service.NewArticleService(articleRepo, userRepo, cacheService)
		likeService := service.NewLikeService(likeRepo, articleRepo, cacheService)
		commentService := service.NewCommentService(commentRepo, articleRepo, cacheService)
		uploadService := service.NewUploadService(fileRepo, uploader, cfg.Storage.Mock)

		routes.Setup(
			router,
			handler.NewAuthHandler(authService),
			handler.NewArticleHandler(articleService),
			handler.NewLikeHandler(likeService),
			handler.NewCommentHandler(commentService),
			handler.NewUploadHandler(uploadService),
			jwtManager,
		)
	} else {
		pkglogger.GetLogger().Warn().Msg("API routes disabled: no database connection")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	pkglogger.GetLogger().Info().Str("addr", addr).Msg("listening")
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// initDB opens the MySQL connection and configures the pool
func initDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}
