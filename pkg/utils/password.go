package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword 由 bcrypt 做恒定时间比较，绝不重哈希后字符串比对
func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}

// OfflinePlaceholderHash 离线同步建号时的占位哈希：由 id 确定性推导，
// 不是合法 bcrypt 哈希，CheckPassword 永远失败，账号在设置真实密码前无法直接登录
func OfflinePlaceholderHash(id string) string {
	sum := sha256.Sum256([]byte("offline:" + id))
	return "offline$" + hex.EncodeToString(sum[:])
}
