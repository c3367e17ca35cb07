package xschedconf

import "errors"

var (
	// ErrEmptyPath 表示配置文件路径为空。
	ErrEmptyPath = errors.New("xschedconf: empty path")

	// ErrUnsupportedFormat 表示不支持的配置格式（仅支持 yaml/yml/json）。
	ErrUnsupportedFormat = errors.New("xschedconf: unsupported format")

	// ErrLoadFailed 表示读取配置文件失败。
	ErrLoadFailed = errors.New("xschedconf: load failed")

	// ErrParseFailed 表示配置内容解析失败。
	ErrParseFailed = errors.New("xschedconf: parse failed")

	// ErrUnmarshalFailed 表示配置反序列化到结构体失败。
	ErrUnmarshalFailed = errors.New("xschedconf: unmarshal failed")

	// ErrInvalidConfig 表示配置值校验失败。
	ErrInvalidConfig = errors.New("xschedconf: invalid config")

	// ErrInvalidPlan 表示任务计划校验失败。
	ErrInvalidPlan = errors.New("xschedconf: invalid plan")

	// ErrNilCallback 表示监视回调为 nil。
	ErrNilCallback = errors.New("xschedconf: nil callback")
)
