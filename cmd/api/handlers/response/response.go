package response

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"videotube.com/pkg/errno"
)

// Response 统一响应格式
type Response struct {
	StatusCode int         `json:"statusCode"`
	Code       int64       `json:"code"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// StatusOf 错误类别对应的 HTTP 状态码
func StatusOf(e errno.ErrNo) int {
	switch e.ErrCode {
	case errno.SuccessCode:
		return consts.StatusOK
	case errno.ValidationErrCode, errno.InvalidOperationErrCode:
		return consts.StatusBadRequest
	case errno.TokenInvalidErrCode:
		return consts.StatusUnauthorized
	case errno.ForbiddenErrCode:
		return consts.StatusForbidden
	case errno.NotFoundErrCode:
		return consts.StatusNotFound
	case errno.ConflictErrCode:
		return consts.StatusConflict
	case errno.TooManyRequestsErrCode:
		return consts.StatusTooManyRequests
	case errno.ExternalServiceErrCode:
		return consts.StatusBadGateway
	default:
		return consts.StatusInternalServerError
	}
}

func Build(err error, data interface{}) (int, Response) {
	e := errno.ConvertErr(err)
	status := StatusOf(e)
	return status, Response{
		StatusCode: status,
		Code:       e.ErrCode,
		Data:       data,
		Message:    e.ErrMsg,
		Success:    status < consts.StatusBadRequest,
	}
}

// SendResponse pack response
func SendResponse(ctx context.Context, c *app.RequestContext, err error, data interface{}) {
	status, resp := Build(err, data)
	if status >= consts.StatusInternalServerError {
		hlog.CtxErrorf(ctx, "%s %s failed: %v", c.Method(), c.Path(), err)
	}
	c.JSON(status, resp)
}

// Abort 在中间件中结束请求
func Abort(ctx context.Context, c *app.RequestContext, err error) {
	SendResponse(ctx, c, err, nil)
	c.Abort()
}
