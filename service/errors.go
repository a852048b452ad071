package service

import "errors"

// ErrNotFound 记录不存在或不属于当前用户
// 两种情况统一返回同一个错误，避免向调用方泄露他人数据是否存在
var ErrNotFound = errors.New("记录不存在")

// ErrInvalidCredentials 用户名或密码错误
var ErrInvalidCredentials = errors.New("用户名或密码错误")

// ValidationError 输入校验失败
// Field 标明按校验顺序第一个不合法的字段，调用方可据此渲染精确提示
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError 唯一性冲突，如用户名重复
type ConflictError struct {
	Resource string
	Message  string
}

func (e *ConflictError) Error() string {
	return e.Message
}
