package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"account-api/internal/domain"
)

type AccountRepo struct{ db *gorm.DB }

func NewAccountRepo(db *gorm.DB) *AccountRepo { return &AccountRepo{db: db} }

func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		// 唯一索引兜底：应用层预检只是快路径，并发注册靠这里挡住
		if isDupKey(err) {
			return domain.ErrDuplicateEmail
		}
		return domain.Infra("create account", err)
	}
	return nil
}

func (r *AccountRepo) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Infra("find account by id", err)
	}
	return &a, nil
}

func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.WithContext(ctx).First(&a, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Infra("find account by email", err)
	}
	return &a, nil
}

func (r *AccountRepo) Update(ctx context.Context, a *domain.Account) error {
	if err := r.db.WithContext(ctx).Save(a).Error; err != nil {
		if isDupKey(err) {
			return domain.ErrDuplicateEmail
		}
		return domain.Infra("update account", err)
	}
	return nil
}

func (r *AccountRepo) List(ctx context.Context, offset, limit int, q string) ([]domain.Account, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Account{})
	if s := strings.TrimSpace(q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("email LIKE ? OR full_name LIKE ?", like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, domain.Infra("count accounts", err)
	}
	var accounts []domain.Account
	if err := tx.Order("created_at DESC").Limit(limit).Offset(offset).Find(&accounts).Error; err != nil {
		return nil, 0, domain.Infra("list accounts", err)
	}
	return accounts, total, nil
}

func (r *AccountRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func isDupKey(err error) bool {
	// 不依赖 gorm.ErrDuplicatedKey，避免驱动/版本差异
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
