package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"jahir-soochna/internal/core/auth"
	"jahir-soochna/internal/domain"
	"jahir-soochna/internal/transport/http/handler"
	mdw "jahir-soochna/internal/transport/http/middleware"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Notice    *handler.NoticeHandler
	Objection *handler.ObjectionHandler
}

// NewAPIEngine 组装 API 路由；uploadsDir 直接静态托管在 /uploads
func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, h Handlers, uploadsDir string) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(
		mdw.RequestID(),
		cors.Default(),
		mdw.RateLimit(500, 1000),
		mdw.RateLimitPerIP(100, 200),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(10<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 上传文件原样托管
	r.Static("/uploads", uploadsDir)

	api := r.Group("/api")

	authG := api.Group("/auth")
	{
		authG.POST("/register", h.Auth.Register)
		authG.POST("/login", h.Auth.Login)
		authG.POST("/logout", h.Auth.Logout)
		authG.GET("/me", mdw.AuthJWT(jwter, ""), h.Auth.Me)
	}

	notices := api.Group("/notices")
	{
		// 公共读 + 无需登录的异议
		notices.GET("", h.Notice.List)
		notices.GET("/categories", h.Notice.Categories)
		notices.GET("/:id/download", h.Notice.Download)
		notices.POST("/:id/objections", h.Objection.File)

		// 律师角色的写操作
		lawyer := notices.Group("", mdw.AuthJWT(jwter, domain.RoleLawyer))
		{
			lawyer.POST("", h.Notice.Create)
			lawyer.POST("/generated", h.Notice.CreateGenerated)
			lawyer.PUT("/:id", h.Notice.Update)
			lawyer.DELETE("/:id", h.Notice.Delete)
		}
	}

	return r
}
