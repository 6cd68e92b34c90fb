package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadConfig 从指定路径加载配置文件。路径为空时按默认位置查找，
// 找不到文件则返回默认配置（环境变量仍然生效）。
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return getDefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigNotFound, err)
	}

	config := getDefaultConfig()
	ext := filepath.Ext(configPath)

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("%w: JSON parsing failed: %v", ErrInvalidFormat, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("%w: YAML parsing failed: %v", ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config file format: %s", ErrInvalidFormat, ext)
	}

	fillDefaults(config)
	return config, nil
}

// getDefaultConfig 获取默认配置，所有配置项都使用各自的默认值
func getDefaultConfig() *Config {
	return &Config{
		Server:  NewServerConfig(),
		Target:  NewTargetConfig(),
		Browser: NewBrowserConfig(),
		Checker: NewCheckerConfig(),
		Log:     NewLogConfig(),
	}
}

// fillDefaults 补全配置文件中缺失的配置段
func fillDefaults(c *Config) {
	if c.Server == nil {
		c.Server = NewServerConfig()
	}
	if c.Target == nil {
		c.Target = NewTargetConfig()
	}
	if c.Browser == nil {
		c.Browser = NewBrowserConfig()
	}
	if c.Checker == nil {
		c.Checker = NewCheckerConfig()
	}
	if c.Log == nil {
		c.Log = NewLogConfig()
	}
}

// getDefaultConfigPath 获取默认配置文件路径
func getDefaultConfigPath() string {
	paths := []string{
		"./config.yaml",
		"./config.json",
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(homeDir, ".imeicheck", "config.yaml"),
			filepath.Join(homeDir, ".imeicheck", "config.json"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return "./config.yaml"
}
