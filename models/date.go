package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateLayout 接口层与存储层统一使用的日期格式
const DateLayout = "2006-01-02"

// Date 纯日历日（无时分秒语义），内部统一规范化为 UTC 零点
// 数据库中对应 DATE 列，因此 expense_date <= to 天然包含 to 当天整天
type Date struct {
	time.Time
}

// NewDate 按年月日构造日历日
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf 去掉时分秒与时区信息，只保留日历日
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate 解析 2006-01-02 格式的日期
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("日期格式错误，应为 %s: %w", DateLayout, err)
	}
	return DateOf(t), nil
}

// FirstOfMonth 当月第一天
func (d Date) FirstOfMonth() Date {
	return NewDate(d.Year(), d.Month(), 1)
}

// AddDays 前后平移 n 天
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time.AddDate(0, 0, n))
}

// AddMonths 日历月运算，月底溢出时收缩到目标月的最后一天
// 例：2024-03-31 减 1 个月得 2024-02-29（闰年）而非 3 月 2 日
// 标准库 AddDate 会把溢出的天数滚动进下个月，这里不能直接用
func (d Date) AddMonths(n int) Date {
	year, month, day := d.Year(), d.Month(), d.Day()
	// 先定位到目标月的 1 号，再把日钳制到该月天数内
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return NewDate(first.Year(), first.Month(), day)
}

// String 实现 fmt.Stringer
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON 输出 "2006-01-02" 字符串
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON 接受 "2006-01-02" 字符串
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("日期必须为 %q 格式的字符串", DateLayout)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value 实现 driver.Valuer，写入数据库 DATE 列
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan 实现 sql.Scanner，从 DATE 列读出并重新规范化
func (d *Date) Scan(v interface{}) error {
	switch val := v.(type) {
	case time.Time:
		*d = DateOf(val)
		return nil
	case []byte:
		parsed, err := ParseDate(string(val))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(val)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("无法将 %T 转换为 Date", v)
	}
}

// GormDataType 告诉 GORM 迁移时使用 DATE 列
func (Date) GormDataType() string {
	return "date"
}
