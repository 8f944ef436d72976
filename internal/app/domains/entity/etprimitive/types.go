package etprimitive

import "fmt"

// Lookup 外部查询结果（值对象）
// 查询成功为 Found，失败或不存在为 Unavailable，调用方不再比较魔法字符串
type Lookup[T any] struct {
	value  T
	found  bool
	reason string
}

// Found 查询成功
func Found[T any](value T) Lookup[T] {
	return Lookup[T]{value: value, found: true}
}

// Unavailable 查询失败或无结果
func Unavailable[T any](reason string) Lookup[T] {
	return Lookup[T]{reason: reason}
}

// IsFound 是否查到结果
func (l Lookup[T]) IsFound() bool {
	return l.found
}

// Value 返回查询值，Unavailable 时为零值
func (l Lookup[T]) Value() T {
	return l.value
}

// Get 返回查询值及是否存在
func (l Lookup[T]) Get() (T, bool) {
	return l.value, l.found
}

// OrElse 不存在时返回 fallback
func (l Lookup[T]) OrElse(fallback T) T {
	if l.found {
		return l.value
	}
	return fallback
}

// Reason 不可用原因
func (l Lookup[T]) Reason() string {
	return l.reason
}

// String 用于日志输出
func (l Lookup[T]) String() string {
	if l.found {
		return fmt.Sprintf("%v", l.value)
	}
	return fmt.Sprintf("unavailable(%s)", l.reason)
}
