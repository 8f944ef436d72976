package errorx

import (
	"errors"
	"fmt"
)

// 错误分类：应答前的错误映射为 HTTP 状态码，应答后的错误只记录日志
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrParse          = errors.New("malformed payload")
	ErrLookup         = errors.New("lookup failed")
	ErrSend           = errors.New("send failed")
	ErrTag            = errors.New("tag update failed")
	ErrRender         = errors.New("render failed")
)

// 签名校验细分错误（均包装 ErrAuthentication）
var (
	ErrMissingSignature  = fmt.Errorf("%w: missing signature header", ErrAuthentication)
	ErrMissingSecret     = fmt.Errorf("%w: webhook secret not configured", ErrAuthentication)
	ErrSignatureMismatch = fmt.Errorf("%w: signature mismatch", ErrAuthentication)
)

// StageError 记录失败发生在处理链路的哪个阶段
type StageError struct {
	Stage string
	Err   error
}

// Error 实现 error 接口
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap 支持 errors.Is / errors.As
func (e *StageError) Unwrap() error {
	return e.Err
}

// Stage 包装阶段错误
func Stage(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}

// Lookup 包装外部查询错误
func Lookup(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrLookup, op, err)
}
