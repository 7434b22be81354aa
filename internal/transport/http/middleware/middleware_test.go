package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(r *gin.Engine, method, path string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAccessLog_StatusWhenHandlerWritesNothing(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(AccessLog(zap.New(core)))
	// handler 既不写 header 也不写 body
	r.GET("/noop", func(*gin.Context) {})

	serve(r, http.MethodGet, "/noop", nil)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

func TestAccessLog_ExplicitStatusKept(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(AccessLog(zap.New(core)))
	r.GET("/gone", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	serve(r, http.MethodGet, "/gone", nil)

	require.Equal(t, 1, logs.Len())
	assert.EqualValues(t, http.StatusNotFound, logs.All()[0].ContextMap()["status"])
}

func TestAccessLog_MasksSensitiveQuery(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(AccessLog(zap.New(core)))
	r.GET("/q", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/q?password=hunter2&page=3", nil)

	require.Equal(t, 1, logs.Len())
	q := logs.All()[0].ContextMap()["query"].(map[string][]string)
	assert.Equal(t, []string{"****"}, q["password"])
	assert.Equal(t, []string{"3"}, q["page"])
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	// 无入站 ID 则生成
	w := serve(r, http.MethodGet, "/", nil)
	assert.NotEmpty(t, w.Header().Get(KeyRequestID))

	// 合理的入站 ID 透传
	w = serve(r, http.MethodGet, "/", map[string]string{KeyRequestID: "rid-123"})
	assert.Equal(t, "rid-123", w.Header().Get(KeyRequestID))

	// 超长入站 ID 丢弃重生成
	long := strings.Repeat("x", maxRequestIDLen+1)
	w = serve(r, http.MethodGet, "/", map[string]string{KeyRequestID: long})
	got := w.Header().Get(KeyRequestID)
	assert.NotEqual(t, long, got)
	assert.NotEmpty(t, got)
}
