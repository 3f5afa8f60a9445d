package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appanalytics "github.com/xiaolin/libfund/internal/application/analytics"
	appbook "github.com/xiaolin/libfund/internal/application/book"
	appbooking "github.com/xiaolin/libfund/internal/application/booking"
	apprating "github.com/xiaolin/libfund/internal/application/rating"
	appuser "github.com/xiaolin/libfund/internal/application/user"
	"github.com/xiaolin/libfund/internal/domain/book"
	"github.com/xiaolin/libfund/internal/domain/user"
	"github.com/xiaolin/libfund/internal/infrastructure/config"
	"github.com/xiaolin/libfund/internal/infrastructure/persistence/mysql"
	"github.com/xiaolin/libfund/internal/infrastructure/persistence/redis"
	"github.com/xiaolin/libfund/internal/interface/http/handler"
	"github.com/xiaolin/libfund/internal/interface/http/middleware"
	"github.com/xiaolin/libfund/pkg/jwt"
	"github.com/xiaolin/libfund/pkg/metrics"
	"github.com/xiaolin/libfund/pkg/response"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go提供编译期生成版本,wire gen ./cmd/api）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())
	fmt.Printf("  - 取书宽限期: %s\n", cfg.Booking.GracePeriod)

	// 2. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 3. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 初始化Prometheus指标
	metrics.InitMetrics()

	// 5. 依赖注入（手动组装）
	// 依赖注入链: Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	bookingRepo := mysql.NewBookingRepository(db)
	analyticsRepo := mysql.NewAnalyticsRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewAdminSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)

	// 应用层
	reserveUseCase := appbooking.NewReserveUseCase(bookingRepo, bookRepo, userRepo, txManager, cfg.Booking.GracePeriod)
	pickUpUseCase := appbooking.NewPickUpUseCase(bookingRepo, bookRepo, txManager)
	returnUseCase := appbooking.NewReturnUseCase(bookingRepo, bookRepo, txManager)
	cancelUseCase := appbooking.NewCancelUseCase(bookingRepo, bookRepo, txManager)
	activeUseCase := appbooking.NewGetActiveBookingUseCase(bookingRepo, bookRepo)
	addRatingUseCase := apprating.NewAddRatingUseCase(bookRepo, txManager)
	addBookUseCase := appbook.NewAddBookUseCase(bookService, txManager)
	findBookUseCase := appbook.NewFindBookUseCase(bookService)
	languagesUseCase := appbook.NewLanguagesUseCase(bookService)
	registerUseCase := appuser.NewRegisterUseCase(userService)
	demandReportUseCase := appanalytics.NewDemandReportUseCase(analyticsRepo, cfg.Booking.TopDemandLimit)

	// 接口层
	bookingHandler := handler.NewBookingHandler(reserveUseCase, pickUpUseCase, returnUseCase, cancelUseCase, activeUseCase)
	bookHandler := handler.NewBookHandler(addBookUseCase, findBookUseCase, languagesUseCase, addRatingUseCase)
	userHandler := handler.NewUserHandler(registerUseCase)
	authHandler := handler.NewAuthHandler(cfg, jwtManager, sessionStore)
	analyticsHandler := handler.NewAnalyticsHandler(demandReportUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 6. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 7. 注册路由
	registerRoutes(r, bookingHandler, bookHandler, userHandler, authHandler, analyticsHandler, authMiddleware)

	// 8. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   API文档: http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("   指标采集: http://localhost%s/metrics\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	bookingHandler *handler.BookingHandler,
	bookHandler *handler.BookHandler,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	analyticsHandler *handler.AnalyticsHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 读者模块（对话层调用,公开接口）
		readers := v1.Group("/readers")
		{
			readers.POST("", userHandler.Register)
			readers.GET("/:chat_id", userHandler.GetReader)
			readers.GET("/:chat_id/booking", bookingHandler.GetActive)
		}

		// 预订模块（对话层调用,公开接口）
		bookings := v1.Group("/bookings")
		{
			bookings.POST("", bookingHandler.Reserve)
			bookings.POST("/:id/pickup", bookingHandler.PickUp)
			bookings.POST("/:id/return", bookingHandler.Return)
			bookings.POST("/:id/cancel", bookingHandler.Cancel)
		}

		// 图书模块
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.FindBook)
			books.GET("/languages", bookHandler.Languages)
			books.POST("/:id/ratings", bookHandler.AddRating)
		}

		// 管理端模块
		admin := v1.Group("/admin")
		{
			admin.POST("/login", authHandler.Login)
			admin.POST("/refresh", authHandler.Refresh)

			// 需要管理员权限
			authorized := admin.Group("")
			authorized.Use(authMiddleware.RequireAdmin())
			{
				authorized.POST("/logout", authHandler.Logout)
				authorized.POST("/books", bookHandler.AddBook)
				authorized.GET("/reports/demand", analyticsHandler.DemandReport)
			}
		}
	}
}
