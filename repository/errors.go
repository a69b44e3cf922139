package repository

import (
	"fmt"
)

// StorageError 存储层失败：数据库不可达、查询超时或聚合结果无法解析
// 上层不在内部重试，直接向调用方透出
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("存储层 %s 失败: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// storageErr 包装底层错误
func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
