package domain

import (
	"errors"
	"fmt"
)

// 错误分级：transport 据此选择 HTTP 状态码，core 不感知 HTTP
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
	ErrStoreUnavailable   = errors.New("account store unavailable")
)

// ValidationError 输入不合法（邮箱格式、密码长度、必填缺失）
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Infra 包一层基础设施错误，保留原因链
func Infra(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}
