package service

import (
	"fmt"
)

// ValidationError 入参校验失败：非法类别、非正的 top/months 等
// 校验失败的请求不会触达存储层
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("参数 %s 无效: %s", e.Field, e.Reason)
}

// validationErr 构造校验错误
func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
