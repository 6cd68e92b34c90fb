package config

import "errors"

var (
	// ErrConfigNotFound 配置文件不存在
	ErrConfigNotFound = errors.New("config file not found")
	// ErrInvalidFormat 配置文件格式不支持或解析失败
	ErrInvalidFormat = errors.New("invalid config format")
	// ErrInvalidConfig 配置内容非法
	ErrInvalidConfig = errors.New("invalid config")
)
