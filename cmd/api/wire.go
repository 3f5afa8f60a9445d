//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 设计说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入不同，Wire在编译期生成代码
// 3. 优势：零运行时开销、类型安全、编译期检测循环依赖
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appanalytics "github.com/xiaolin/libfund/internal/application/analytics"
	appbook "github.com/xiaolin/libfund/internal/application/book"
	appbooking "github.com/xiaolin/libfund/internal/application/booking"
	apprating "github.com/xiaolin/libfund/internal/application/rating"
	appuser "github.com/xiaolin/libfund/internal/application/user"
	"github.com/xiaolin/libfund/internal/domain/analytics"
	"github.com/xiaolin/libfund/internal/domain/book"
	"github.com/xiaolin/libfund/internal/domain/booking"
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

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// infrastructureSet 基础设施层依赖
// 包含：配置加载、数据库连接、Redis连接
var infrastructureSet = wire.NewSet(
	config.Load,     // 加载配置文件
	mysql.NewDB,     // 创建MySQL连接
	redis.NewClient, // 创建Redis连接
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,      // 读者仓储
	mysql.NewBookRepository,      // 图书仓储
	mysql.NewBookingRepository,   // 预订仓储
	mysql.NewAnalyticsRepository, // 需求统计仓储
	mysql.NewTxManager,           // 事务管理器
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService, // 读者领域服务
	book.NewService, // 图书领域服务
)

// applicationSet 应用层依赖
// 注意：需要从Config提取参数的用例走自定义Provider
var applicationSet = wire.NewSet(
	provideReserveUseCase,                 // 预订用例（宽限期来自配置）
	providePickUpUseCase,                  // 取书用例
	provideReturnUseCase,                  // 归还用例
	provideCancelUseCase,                  // 取消用例
	appbooking.NewGetActiveBookingUseCase, // 生效预订查询用例
	provideAddRatingUseCase,               // 评分用例
	provideAddBookUseCase,                 // 图书入藏用例
	appbook.NewFindBookUseCase,            // 图书查询用例
	appbook.NewLanguagesUseCase,           // 语种分页用例
	appuser.NewRegisterUseCase,            // 读者注册用例
	provideDemandReportUseCase,            // 需求报表用例（条数来自配置）
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,            // JWT管理器（需要从config提取参数）
	provideSessionStore,          // 管理端会话存储
	middleware.NewAuthMiddleware, // 认证中间件
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookingHandler,   // 预订处理器
	handler.NewBookHandler,      // 图书处理器
	handler.NewUserHandler,      // 读者处理器
	handler.NewAuthHandler,      // 认证处理器
	handler.NewAnalyticsHandler, // 报表处理器
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================
// 用例的TxManager参数是各包自定义的接口类型,
// Wire无法自动把*mysql.TxManager绑定到多个接口,这里显式适配

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建管理端会话存储
func provideSessionStore(client *goredis.Client) *redis.AdminSessionStore {
	return redis.NewAdminSessionStore(client)
}

// provideReserveUseCase 创建预订用例（取书宽限期来自配置）
func provideReserveUseCase(
	bookingRepo booking.Repository,
	bookRepo book.Repository,
	userRepo user.Repository,
	txManager *mysql.TxManager,
	cfg *config.Config,
) *appbooking.ReserveUseCase {
	return appbooking.NewReserveUseCase(bookingRepo, bookRepo, userRepo, txManager, cfg.Booking.GracePeriod)
}

// providePickUpUseCase 创建取书用例
func providePickUpUseCase(bookingRepo booking.Repository, bookRepo book.Repository, txManager *mysql.TxManager) *appbooking.PickUpUseCase {
	return appbooking.NewPickUpUseCase(bookingRepo, bookRepo, txManager)
}

// provideReturnUseCase 创建归还用例
func provideReturnUseCase(bookingRepo booking.Repository, bookRepo book.Repository, txManager *mysql.TxManager) *appbooking.ReturnUseCase {
	return appbooking.NewReturnUseCase(bookingRepo, bookRepo, txManager)
}

// provideCancelUseCase 创建取消用例
func provideCancelUseCase(bookingRepo booking.Repository, bookRepo book.Repository, txManager *mysql.TxManager) *appbooking.CancelUseCase {
	return appbooking.NewCancelUseCase(bookingRepo, bookRepo, txManager)
}

// provideAddRatingUseCase 创建评分用例
func provideAddRatingUseCase(bookRepo book.Repository, txManager *mysql.TxManager) *apprating.AddRatingUseCase {
	return apprating.NewAddRatingUseCase(bookRepo, txManager)
}

// provideAddBookUseCase 创建图书入藏用例
func provideAddBookUseCase(bookService book.Service, txManager *mysql.TxManager) *appbook.AddBookUseCase {
	return appbook.NewAddBookUseCase(bookService, txManager)
}

// provideDemandReportUseCase 创建需求报表用例（报表条数来自配置）
func provideDemandReportUseCase(repo analytics.Repository, cfg *config.Config) *appanalytics.DemandReportUseCase {
	return appanalytics.NewDemandReportUseCase(repo, cfg.Booking.TopDemandLimit)
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	bookingHandler *handler.BookingHandler,
	bookHandler *handler.BookHandler,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	analyticsHandler *handler.AnalyticsHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics.InitMetrics()

	r := gin.Default()
	r.Use(middleware.Metrics())

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

	v1 := r.Group("/api/v1")
	{
		readers := v1.Group("/readers")
		{
			readers.POST("", userHandler.Register)
			readers.GET("/:chat_id", userHandler.GetReader)
			readers.GET("/:chat_id/booking", bookingHandler.GetActive)
		}

		bookings := v1.Group("/bookings")
		{
			bookings.POST("", bookingHandler.Reserve)
			bookings.POST("/:id/pickup", bookingHandler.PickUp)
			bookings.POST("/:id/return", bookingHandler.Return)
			bookings.POST("/:id/cancel", bookingHandler.Cancel)
		}

		books := v1.Group("/books")
		{
			books.GET("", bookHandler.FindBook)
			books.GET("/languages", bookHandler.Languages)
			books.POST("/:id/ratings", bookHandler.AddRating)
		}

		admin := v1.Group("/admin")
		{
			admin.POST("/login", authHandler.Login)
			admin.POST("/refresh", authHandler.Refresh)

			authorized := admin.Group("")
			authorized.Use(authMiddleware.RequireAdmin())
			{
				authorized.POST("/logout", authHandler.Logout)
				authorized.POST("/books", bookHandler.AddBook)
				authorized.GET("/reports/demand", analyticsHandler.DemandReport)
			}
		}
	}

	return r
}

// ========================================
// Wire Injector (依赖注入器)
// ========================================

// InitializeApp 初始化整个应用
// 返回：配置好的Gin引擎
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)

	// 占位返回值,实际代码由wire_gen.go生成
	return nil, nil
}
