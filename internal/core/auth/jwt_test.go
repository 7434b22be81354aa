package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParse(t *testing.T) {
	j := &JWTer{Secret: []byte("s1"), Issuer: "account-api", TTL: time.Hour}

	tok, err := j.Issue("acc-1")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.UID)
	assert.Equal(t, "account-api", claims.Issuer)
}

func TestParse_WrongSecret(t *testing.T) {
	j := &JWTer{Secret: []byte("s1"), Issuer: "account-api", TTL: time.Hour}
	other := &JWTer{Secret: []byte("s2"), Issuer: "account-api", TTL: time.Hour}

	tok, err := j.Issue("acc-1")
	require.NoError(t, err)

	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	j := &JWTer{Secret: []byte("s1"), Issuer: "account-api", TTL: -2 * time.Minute}

	tok, err := j.Issue("acc-1")
	require.NoError(t, err)

	// 超出 60s leeway
	_, err = j.Parse(tok)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	j := &JWTer{Secret: []byte("s1"), Issuer: "account-api", TTL: time.Hour}
	_, err := j.Parse("not-a-token")
	assert.Error(t, err)
}
