package response

import "github.com/gin-gonic/gin"

// Resp 统一响应包络；code 与 HTTP 状态一致，方便客户端两边取值
type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

// OK 按给定状态码输出成功响应（201 注册、200 其它）
func OK(c *gin.Context, status int, msg string, data interface{}) {
	c.JSON(status, New(status, msg, data))
}

// Fail 失败响应，状态码写在 HTTP 层也写进包络
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, New(status, msg, struct{}{}))
}

// AbortFail 中间件用：终止后续 handler
func AbortFail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, New(status, msg, struct{}{}))
}
