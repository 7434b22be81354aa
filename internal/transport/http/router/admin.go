package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"

	"account-api/internal/domain"
	"account-api/internal/transport/http/action"
	mdw "account-api/internal/transport/http/middleware"
)

// NewAdminEngine 运维端：账户巡检与认证标记，X-Ops-Key 鉴权
func NewAdminEngine(d Deps, opsKey string) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(50, 100),
		mdw.ConcurrencyLimit(100),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	r.GET("/health", healthHandler(d))

	admin := r.Group("/admin/v1")
	admin.Use(mdw.OpsKey(opsKey))

	mountAdminActions(admin, d)

	return r
}

func mountAdminActions(admin *gin.RouterGroup, d Deps) {
	// GET /admin/v1/accounts 分页列表，created_at 倒序，可按 email/姓名模糊搜
	type listQ struct {
		Offset int    `form:"offset,default=0"`
		Limit  int    `form:"limit,default=20"`
		Q      string `form:"q"`
	}
	type listOut struct {
		Total int64            `json:"total"`
		Items []domain.Account `json:"items"`
	}
	action.Register(admin, action.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/accounts",
		Binder: action.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			items, total, err := d.Store.List(c.Request.Context(), in.Offset, in.Limit, in.Q)
			if err != nil {
				return listOut{}, err
			}
			return listOut{Total: total, Items: items}, nil
		},
	})

	// GET /admin/v1/accounts/:id
	action.Register(admin, action.Action[struct{}, *domain.Account]{
		Method: http.MethodGet,
		Path:   "/accounts/:id",
		Binder: action.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Account, error) {
			return d.Store.Profile(c.Request.Context(), c.Param("id"))
		},
	})

	// POST /admin/v1/accounts/:id/verify 单向 false→true
	action.Register(admin, action.Action[struct{}, *domain.Account]{
		Method: http.MethodPost,
		Path:   "/accounts/:id/verify",
		Binder: action.BindNone,
		Msg:    "account verified",
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Account, error) {
			a, err := d.Store.MarkVerified(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, err
			}
			invalidateProfile(c, d.Cache, a.ID)
			return a, nil
		},
	})
}
