package response

import "github.com/gin-gonic/gin"

// ErrBody 错误响应体；500 不携带内部细节
type ErrBody struct {
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// Fail 按真实 HTTP 状态码返回 {"message": ...}
func Fail(c *gin.Context, status int, msg string) {
	if msg == "" {
		msg = CodeMsgMap[status]
	}
	c.JSON(status, ErrBody{Message: msg})
}

// FailWith 带字段级校验细节的 400
func FailWith(c *gin.Context, status int, msg string, errs any) {
	c.JSON(status, ErrBody{Message: msg, Errors: errs})
}

// Abort 中间件用：终止后续 handler
func Abort(c *gin.Context, status int, msg string) {
	if msg == "" {
		msg = CodeMsgMap[status]
	}
	c.AbortWithStatusJSON(status, ErrBody{Message: msg})
}
