package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  name: account-api
  env: test
  version: 1.0.0
  http:
    host: 127.0.0.1
    port: 18080
    readtimeoutsec: 5
  admin:
    host: 127.0.0.1
    port: 18081
    opskey: k
log:
  level: debug
  json: true
jwt:
  secret: s
  issuer: account-api
  accesstokenttlmin: 60
db:
  driver: mysql
  dsn: "app:app@tcp(127.0.0.1:3306)/accounts?parseTime=true"
  automigrate: true
redis:
  enable: true
  addr: 127.0.0.1:6379
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	c := Load(path)

	assert.Equal(t, "account-api", c.App.Name)
	assert.Equal(t, 18080, c.App.HTTP.Port)
	assert.Equal(t, "k", c.App.Admin.OpsKey)
	assert.True(t, c.Log.JSON)
	assert.Equal(t, 60, c.JWT.AccessTokenTTLMin)
	assert.Equal(t, "mysql", c.DB.Driver)
	assert.True(t, c.DB.AutoMigrate)
	assert.True(t, c.Redis.Enable)
}
