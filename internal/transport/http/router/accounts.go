package router

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"account-api/internal/core/cache"
	"account-api/internal/domain"
	"account-api/internal/transport/http/action"
	mdw "account-api/internal/transport/http/middleware"
)

const profileCacheTTL = 30 * time.Second

func profileKey(id string) string { return "account:" + id }

type registerIn struct {
	Email       string          `json:"email"    binding:"required,email"`
	Password    string          `json:"password" binding:"required,min=6"`
	FullName    string          `json:"fullName" binding:"required"`
	Phone       *string         `json:"phone"`
	AvatarURL   *string         `json:"avatarUrl"`
	DateOfBirth *string         `json:"dateOfBirth"`
	Gender      *string         `json:"gender"`
	Location    *string         `json:"location"`
	Bio         *string         `json:"bio"`
	IsPremium   bool            `json:"isPremium"`
	Preferences json.RawMessage `json:"preferences"`
}

type loginIn struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type sessionOut struct {
	User  *domain.Account `json:"user"`
	Token string          `json:"token"`
}

type syncUserIn struct {
	ID          string          `json:"id"        binding:"required"`
	Email       string          `json:"email"     binding:"required,email"`
	FirstName   string          `json:"firstName" binding:"required"`
	LastName    string          `json:"lastName"  binding:"required"`
	Phone       *string         `json:"phone"`
	IsPremium   bool            `json:"isPremium"`
	Preferences json.RawMessage `json:"preferences"`
}

type syncIn struct {
	User syncUserIn `json:"user" binding:"required"`
}

// syncUserOut 同步响应沿用离线客户端的字段形状：firstName/lastName 拆开返回
type syncUserOut struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	FirstName   string         `json:"firstName"`
	LastName    string         `json:"lastName"`
	Phone       string         `json:"phone"`
	IsPremium   bool           `json:"isPremium"`
	IsVerified  bool           `json:"isVerified"`
	Preferences datatypes.JSON `json:"preferences"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func mountAccountActions(api, authed *gin.RouterGroup, d Deps) {
	// POST /auth/register
	action.Register(api, action.Action[registerIn, sessionOut]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: action.BindJSON,
		Status: http.StatusCreated,
		Msg:    "account created",
		Handler: func(c *gin.Context, in *registerIn) (sessionOut, error) {
			a, err := d.Store.Register(c.Request.Context(), domain.RegisterInput{
				Email:       strings.TrimSpace(in.Email),
				Password:    in.Password,
				FullName:    strings.TrimSpace(in.FullName),
				Phone:       in.Phone,
				AvatarURL:   in.AvatarURL,
				DateOfBirth: in.DateOfBirth,
				Gender:      in.Gender,
				Location:    in.Location,
				Bio:         in.Bio,
				IsPremium:   in.IsPremium,
				Preferences: datatypes.JSON(in.Preferences),
			})
			if err != nil {
				return sessionOut{}, err
			}
			tok, err := d.JWT.Issue(a.ID)
			if err != nil {
				return sessionOut{}, err
			}
			return sessionOut{User: a, Token: tok}, nil
		},
	})

	// POST /auth/login：认证成功后显式记录登录时间，再签发令牌
	action.Register(api, action.Action[loginIn, sessionOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: action.BindJSON,
		Msg:    "login successful",
		Handler: func(c *gin.Context, in *loginIn) (sessionOut, error) {
			ctx := c.Request.Context()
			a, err := d.Store.Authenticate(ctx, strings.TrimSpace(in.Email), in.Password)
			if err != nil {
				return sessionOut{}, err
			}
			if err := d.Store.TouchLastLogin(ctx, a.ID); err != nil {
				// 登录本身已成功，时间戳失败只记日志
				d.Log.Warn("touch last login failed", zap.String("id", a.ID), zap.Error(err))
			} else if fresh, err := d.Store.Profile(ctx, a.ID); err == nil {
				a = fresh
			}
			invalidateProfile(c, d.Cache, a.ID)
			tok, err := d.JWT.Issue(a.ID)
			if err != nil {
				return sessionOut{}, err
			}
			return sessionOut{User: a, Token: tok}, nil
		},
	})

	// POST /sync/user：离线账户按 ID upsert
	action.Register(api, action.Action[syncIn, syncUserOut]{
		Method: http.MethodPost,
		Path:   "/sync/user",
		Binder: action.BindJSON,
		Msg:    "account synchronized",
		Handler: func(c *gin.Context, in *syncIn) (syncUserOut, error) {
			u := in.User
			a, err := d.Store.SyncOffline(c.Request.Context(), domain.SyncInput{
				ID:          strings.TrimSpace(u.ID),
				Email:       strings.TrimSpace(u.Email),
				FullName:    strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName),
				Phone:       u.Phone,
				IsPremium:   u.IsPremium,
				Preferences: datatypes.JSON(u.Preferences),
			})
			if err != nil {
				return syncUserOut{}, err
			}
			invalidateProfile(c, d.Cache, a.ID)
			return toSyncOut(a), nil
		},
	})

	// GET /me：带缓存的档案读取
	action.Register(authed, action.Action[struct{}, *domain.Account]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: action.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Account, error) {
			id := c.GetString(mdw.KeyAccountID)
			ctx := c.Request.Context()
			if d.Cache == nil {
				return d.Store.Profile(ctx, id)
			}
			return cache.GetOrLoadJSON(d.Cache, ctx, profileKey(id), profileCacheTTL,
				func(ctx context.Context) (*domain.Account, error) {
					return d.Store.Profile(ctx, id)
				})
		},
	})
}

func invalidateProfile(c *gin.Context, ca *cache.Cache, id string) {
	if ca != nil {
		ca.Invalidate(c.Request.Context(), profileKey(id))
	}
}

func toSyncOut(a *domain.Account) syncUserOut {
	first, last := a.FullName, ""
	if i := strings.IndexByte(a.FullName, ' '); i > 0 {
		first, last = a.FullName[:i], a.FullName[i+1:]
	}
	phone := ""
	if a.Phone != nil {
		phone = *a.Phone
	}
	return syncUserOut{
		ID:          a.ID,
		Email:       a.Email,
		FirstName:   first,
		LastName:    last,
		Phone:       phone,
		IsPremium:   a.IsPremium,
		IsVerified:  a.IsVerified,
		Preferences: a.Preferences,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
