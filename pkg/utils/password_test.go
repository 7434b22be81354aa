package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	h1, err := HashPassword("secret1")
	require.NoError(t, err)
	h2, err := HashPassword("secret1")
	require.NoError(t, err)

	// 随机盐：同一密码两次哈希不同
	assert.NotEqual(t, h1, h2)
	assert.NotEqual(t, "secret1", h1)

	assert.True(t, CheckPassword("secret1", h1))
	assert.True(t, CheckPassword("secret1", h2))
	assert.False(t, CheckPassword("wrong", h1))
}

func TestOfflinePlaceholderHash(t *testing.T) {
	h := OfflinePlaceholderHash("u1")

	// 确定性推导
	assert.Equal(t, h, OfflinePlaceholderHash("u1"))
	assert.NotEqual(t, h, OfflinePlaceholderHash("u2"))
	assert.True(t, strings.HasPrefix(h, "offline$"))

	// 不是合法 bcrypt 哈希，任何密码都验不过
	assert.False(t, CheckPassword("temp_u1", h))
	assert.False(t, CheckPassword(h, h))
}

func TestNewID(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
}
