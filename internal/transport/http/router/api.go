package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"account-api/internal/core/auth"
	"account-api/internal/core/cache"
	"account-api/internal/service"
	mdw "account-api/internal/transport/http/middleware"
)

type Deps struct {
	Log     *zap.Logger
	Store   *service.AccountStore
	JWT     *auth.JWTer
	Cache   *cache.Cache // 可为 nil：直接回源
	Version string
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		cors.Default(),
	)

	r.GET("/health", healthHandler(d))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 鉴权分组：/me 必须挂这里才能拿到 accountId
	authed := api.Group("")
	authed.Use(mdw.AuthBearer(d.JWT))

	mountAccountActions(api, authed, d)

	return r
}

// healthHandler 探活：DB 可达 200，否则 503
func healthHandler(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		ts := time.Now().Format("2006-01-02 15:04:05")
		if err := d.Store.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "ERROR",
				"message":   "database connection failed",
				"timestamp": ts,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"message":   "API is online and database connection is working",
			"timestamp": ts,
			"version":   d.Version,
		})
	}
}
