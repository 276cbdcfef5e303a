package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeOK = "0"

	MessageOk = "ok"

	CodeError = "-1"
)

type codeMsg struct {
	Code    string
	Message string
}

func (c *codeMsg) Error() string {
	return fmt.Sprintf("code: %s, message: %s", c.Code, c.Message)
}

// NewError creates a coded error.
func NewError(code string, msg string) error {
	return &codeMsg{Code: code, Message: msg}
}

// WithMessage keeps the code of a coded error and replaces its message. Any
// other error is returned as a CodeError with err's text appended.
func WithMessage(err error, msg string) error {
	var cm *codeMsg
	if errors.As(err, &cm) {
		return &codeMsg{Code: cm.Code, Message: msg}
	}
	return &codeMsg{Code: CodeError, Message: msg}
}

// CodeOf returns the code carried by err, CodeError for uncoded errors.
func CodeOf(err error) string {
	var cm *codeMsg
	if errors.As(err, &cm) {
		return cm.Code
	}
	return CodeError
}

type Response[T any] struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
}

// 响应统一用 PureJSON，条件里的 < > & 不做转义

func Ok(c *gin.Context) {
	c.PureJSON(http.StatusOK, wrapResponse(nil))
}

func Error(c *gin.Context, httpStatusCode int, e error) {
	c.PureJSON(httpStatusCode, wrapResponse(e))
}

func OkJson(c *gin.Context, v any) {
	c.PureJSON(http.StatusOK, wrapResponse(v))
}

func wrapResponse(v any) Response[any] {
	var resp Response[any]
	switch data := v.(type) {
	case nil:
		resp.Code = CodeOK
		resp.Message = MessageOk
		resp.Success = true
	case error:
		var cm *codeMsg
		if errors.As(data, &cm) {
			resp.Code = cm.Code
			resp.Message = cm.Message
		} else {
			resp.Code = CodeError
			resp.Message = data.Error()
		}
	default:
		resp.Code = CodeOK
		resp.Message = MessageOk
		resp.Success = true
		resp.Data = v
	}
	return resp
}
