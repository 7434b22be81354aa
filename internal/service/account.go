package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"account-api/internal/domain"
	"account-api/pkg/utils"
)

const minPasswordLen = 6

// AccountStore 账户生命周期核心：注册 / 认证 / 离线同步 / 登录时间戳。
// 时钟与 ID 生成可注入，便于测试
type AccountStore struct {
	repo  domain.AccountRepository
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

type Option func(*AccountStore)

func WithClock(now func() time.Time) Option { return func(s *AccountStore) { s.now = now } }
func WithIDGen(gen func() string) Option    { return func(s *AccountStore) { s.newID = gen } }

func NewAccountStore(repo domain.AccountRepository, log *zap.Logger, opts ...Option) *AccountStore {
	s := &AccountStore{
		repo:  repo,
		log:   log,
		now:   time.Now,
		newID: utils.NewID,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Register 创建账户。邮箱预检只是快路径，真正的唯一性由存储层唯一索引保证，
// repo 把唯一冲突翻译成 ErrDuplicateEmail
func (s *AccountStore) Register(ctx context.Context, in domain.RegisterInput) (*domain.Account, error) {
	if err := validateRegister(in); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, domain.Infra("hash password", err)
	}

	now := s.now()
	a := &domain.Account{
		ID:           s.newID(),
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Phone:        in.Phone,
		AvatarURL:    in.AvatarURL,
		DateOfBirth:  in.DateOfBirth,
		Gender:       in.Gender,
		Location:     in.Location,
		Bio:          in.Bio,
		IsVerified:   false,
		IsPremium:    in.IsPremium,
		Preferences:  emptyIfNil(in.Preferences),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info("account registered", zap.String("id", a.ID))
	return a, nil
}

// Authenticate 按邮箱精确匹配后校验密码。查无此人和密码错误统一返回
// ErrInvalidCredentials，不暴露账号是否存在。成功不更新 lastLoginAt，
// 由调用方在认证成功后显式调 TouchLastLogin
func (s *AccountStore) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	a, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if a == nil || !utils.CheckPassword(password, a.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return a, nil
}

// SyncOffline 按 ID upsert，幂等。已存在则覆盖 email/fullName/phone/isPremium/
// preferences，密码哈希、认证标记与计数器不动；不存在则用客户端 ID 建号，
// 密码为占位哈希，设置真实密码前无法登录。
// 此路径不预检邮箱冲突（沿用离线合并语义），冲突由唯一索引挡住并以
// ErrDuplicateEmail 返回
func (s *AccountStore) SyncOffline(ctx context.Context, in domain.SyncInput) (*domain.Account, error) {
	if err := validateSync(in); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if a != nil {
		a.Email = in.Email
		a.FullName = in.FullName
		a.Phone = in.Phone
		a.IsPremium = in.IsPremium
		a.Preferences = emptyIfNil(in.Preferences)
		a.UpdatedAt = s.now()
		if err := s.repo.Update(ctx, a); err != nil {
			return nil, err
		}
		return a, nil
	}

	now := s.now()
	a = &domain.Account{
		ID:           in.ID,
		Email:        in.Email,
		PasswordHash: utils.OfflinePlaceholderHash(in.ID),
		FullName:     in.FullName,
		Phone:        in.Phone,
		IsVerified:   false,
		IsPremium:    in.IsPremium,
		Preferences:  emptyIfNil(in.Preferences),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info("offline account synced", zap.String("id", a.ID))
	return a, nil
}

// TouchLastLogin 记录登录时间。账号不存在则静默跳过
func (s *AccountStore) TouchLastLogin(ctx context.Context, id string) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return nil
	}
	now := s.now()
	a.LastLoginAt = &now
	a.UpdatedAt = now
	return s.repo.Update(ctx, a)
}

// Profile 按 ID 读取账户
func (s *AccountStore) Profile(ctx context.Context, id string) (*domain.Account, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAccountNotFound
	}
	return a, nil
}

// List 运维侧分页查询，按 created_at 倒序
func (s *AccountStore) List(ctx context.Context, offset, limit int, q string) ([]domain.Account, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, offset, limit, q)
}

// MarkVerified 单向翻转 is_verified，已验证则幂等返回
func (s *AccountStore) MarkVerified(ctx context.Context, id string) (*domain.Account, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAccountNotFound
	}
	if a.IsVerified {
		return a, nil
	}
	a.IsVerified = true
	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Ping 健康探测，透传持久层连通性
func (s *AccountStore) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func validateRegister(in domain.RegisterInput) error {
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if len(in.Password) < minPasswordLen {
		return domain.Invalid("password", "must be at least 6 characters")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return domain.Invalid("fullName", "required")
	}
	return nil
}

func validateSync(in domain.SyncInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return domain.Invalid("id", "required")
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	if strings.TrimSpace(in.FullName) == "" {
		return domain.Invalid("fullName", "required")
	}
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return domain.Invalid("email", "required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return domain.Invalid("email", "malformed address")
	}
	return nil
}

func emptyIfNil(p datatypes.JSON) datatypes.JSON {
	if len(p) == 0 {
		return datatypes.JSON([]byte("[]"))
	}
	return p
}
