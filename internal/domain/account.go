package domain

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

// Account 账户实体（唯一的持久化实体）
type Account struct {
	ID            string         `gorm:"primaryKey;size:64" json:"id"`
	Email         string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash  string         `gorm:"size:100;not null" json:"-"`
	FullName      string         `gorm:"size:120;not null" json:"fullName"`
	Phone         *string        `gorm:"size:32" json:"phone"`
	AvatarURL     *string        `gorm:"size:255" json:"avatarUrl"`
	DateOfBirth   *string        `gorm:"size:10" json:"dateOfBirth"`
	Gender        *string        `gorm:"size:16" json:"gender"`
	Location      *string        `gorm:"size:120" json:"location"`
	Bio           *string        `gorm:"size:500" json:"bio"`
	IsVerified    bool           `gorm:"not null;default:false" json:"isVerified"`
	IsPremium     bool           `gorm:"not null;default:false" json:"isPremium"`
	TotalBookings int            `gorm:"not null;default:0" json:"totalBookings"`
	AverageRating float64        `gorm:"not null;default:0" json:"averageRating"`
	TotalSavings  float64        `gorm:"not null;default:0" json:"totalSavings"`
	Preferences   datatypes.JSON `json:"preferences"`
	CreatedAt     time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	LastLoginAt   *time.Time     `json:"lastLoginAt"`
}

func (Account) TableName() string { return "accounts" }

// RegisterInput 注册入参（由 transport 校验后构造，core 不接收松散数据）
type RegisterInput struct {
	Email       string
	Password    string
	FullName    string
	Phone       *string
	AvatarURL   *string
	DateOfBirth *string
	Gender      *string
	Location    *string
	Bio         *string
	IsPremium   bool
	Preferences datatypes.JSON
}

// SyncInput 离线账户同步入参，按 ID upsert
type SyncInput struct {
	ID          string
	Email       string
	FullName    string
	Phone       *string
	IsPremium   bool
	Preferences datatypes.JSON
}

type AccountRepository interface {
	Create(ctx context.Context, a *Account) error
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	Update(ctx context.Context, a *Account) error
	List(ctx context.Context, offset, limit int, q string) ([]Account, int64, error)
	Ping(ctx context.Context) error
}
