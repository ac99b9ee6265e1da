package main

import (
	"artshare-backend/config"
	"artshare-backend/internal/api/article"
	"artshare-backend/internal/api/user"
	"artshare-backend/internal/middleware"
	"artshare-backend/internal/repository/mysql"
	"artshare-backend/internal/service"
	"artshare-backend/internal/util"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"artshare-backend/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("程序发生严重错误", zap.Any("error", r))
		}
	}()

	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 设置数据库连接字符串
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.AppConfig.DBUser,
		config.AppConfig.DBPassword,
		config.AppConfig.DBHost,
		config.AppConfig.DBPort,
		config.AppConfig.DBName)

	// 连接数据库
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer db.Close()

	// 测试数据库连接
	err = db.Ping()
	if err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	util.Logger.Info("数据库连接池配置完成")

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("articletype", util.ValidateArticleType)
	}

	// 确保上传文件夹存在
	ensureUploadsFolder()

	// 按配置选择存储后端
	fileStorage, err := storage.New()
	if err != nil {
		util.Logger.Fatal("初始化存储后端失败", zap.Error(err))
	}

	// 初始化存储库、服务和处理器
	emailService := service.NewEmailService()

	userRepo := mysql.NewUserRepository(db)
	userService := service.NewUserService(userRepo, emailService)
	authHandler := user.NewAuthHandler(userService)
	profileHandler := user.NewProfileHandler(userService, fileStorage)

	articleRepo := mysql.NewArticleRepository(db)
	commentRepo := mysql.NewCommentRepository(db)
	articleService := service.NewArticleService(articleRepo, commentRepo, emailService)
	commentService := service.NewCommentService(articleRepo, commentRepo)
	articleHandler := article.NewArticleHandler(articleService, fileStorage)
	commentHandler := article.NewCommentHandler(commentService)

	// 初始化错误监控
	errorMonitor := middleware.NewErrorMonitor()

	// 设置 Gin 路由
	r := gin.Default()

	// 添加中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.RateLimitRPS, config.AppConfig.RateLimitBurst))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length",
		"Content-Type",
		"Access-Control-Allow-Origin",
	}

	// 先应用 CORS 中间件
	r.Use(cors.New(corsConfig))

	// 加一个自定义的中间件来处理静态文件的CORS
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			c.Header("Access-Control-Allow-Origin", config.AppConfig.FrontendURL)
			c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type")

			// 如果是 OPTIONS 请求，直接返回200
			if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(200)
				return
			}
		}
		c.Next()
	})

	// 配置静态文件服务
	r.Static("/uploads", config.AppConfig.LocalStoragePath)

	// 定义 API 路由
	api := r.Group("/api/v1")
	{
		// 认证相关路由
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// 需要认证的路由
		authorized := api.Group("/")
		authorized.Use(middleware.AuthMiddleware(userService))
		{
			authorized.GET("/profile", profileHandler.GetProfile)
			authorized.PUT("/profile", profileHandler.UpdateProfile)
			authorized.POST("/profile/avatar", profileHandler.UploadAvatar)
			authorized.POST("/auth/logout", authHandler.Logout)
			authorized.POST("/auth/refresh-token", authHandler.RefreshToken)

			// 文章相关路由
			authorized.GET("/articles", articleHandler.Read)
			authorized.GET("/articles/no-reply", articleHandler.ReadNoReply)
			authorized.POST("/articles", articleHandler.Write)
			authorized.POST("/articles/images", articleHandler.UploadImage)
			authorized.GET("/articles/:id", articleHandler.GetOne)
			authorized.PUT("/articles/:id", articleHandler.Modify)
			authorized.PATCH("/articles/:id", articleHandler.LikeOrUnlike)
			authorized.POST("/articles/:id/reports", articleHandler.Report)

			// 评论相关路由
			authorized.GET("/articles/:id/comments", commentHandler.Read)
			authorized.POST("/articles/:id/comments", commentHandler.Write)
			authorized.PATCH("/articles/:id/comments/:commentId", commentHandler.LikeOrUnlike)
		}
	}

	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动，监听端口 :8080")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}

// 确保上传文件夹存在
func ensureUploadsFolder() {
	uploadsPath := config.AppConfig.LocalStoragePath
	if err := os.MkdirAll(uploadsPath, 0755); err != nil {
		util.Logger.Fatal("创建上传文件夹失败", zap.Error(err), zap.String("path", uploadsPath))
	}
	util.Logger.Info("上传文件夹已创建或已存在", zap.String("path", uploadsPath))
}
