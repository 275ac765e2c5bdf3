package errno

import (
	"errors"
	"fmt"
)

const (
	SuccessCode             = 0
	ServiceErrCode          = 10001
	ValidationErrCode       = 10002
	NotFoundErrCode         = 10003
	ForbiddenErrCode        = 10004
	ConflictErrCode         = 10005
	InvalidOperationErrCode = 10006
	ExternalServiceErrCode  = 10007
	TokenInvalidErrCode     = 10008
	TooManyRequestsErrCode  = 10009
)

// ErrNo 统一的业务错误，ErrCode 稳定不变，调用方根据 ErrCode 映射状态码
type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

// Is 只比较错误码，WithMessage 之后的错误同样能被 errors.Is 识别
func (e ErrNo) Is(target error) bool {
	t, ok := target.(ErrNo)
	if !ok {
		return false
	}
	return e.ErrCode == t.ErrCode
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{ErrCode: code, ErrMsg: msg}
}

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

var (
	Success             = NewErrNo(SuccessCode, "Success")
	ServiceErr          = NewErrNo(ServiceErrCode, "Internal server error")
	ValidationErr       = NewErrNo(ValidationErrCode, "Wrong Parameter has been given")
	NotFoundErr         = NewErrNo(NotFoundErrCode, "The requested resource does not exist")
	ForbiddenErr        = NewErrNo(ForbiddenErrCode, "You are not allowed to operate on this resource")
	ConflictErr         = NewErrNo(ConflictErrCode, "The relation already exists")
	InvalidOperationErr = NewErrNo(InvalidOperationErrCode, "The operation is not allowed")
	ExternalServiceErr  = NewErrNo(ExternalServiceErrCode, "External storage is unavailable")
	TokenInvailedErr    = NewErrNo(TokenInvalidErrCode, "Token is invalid or expired")
	TooManyRequestsErr  = NewErrNo(TooManyRequestsErrCode, "Too many requests, please try again later")
)

// ConvertErr convert error to Errno
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}
	// 未归类的错误只在服务端记录，对外统一返回 ServiceErr
	return ServiceErr
}

// IsKind 判断 err 链上是否存在给定类别的错误
func IsKind(err error, kind ErrNo) bool {
	return errors.Is(err, kind)
}
