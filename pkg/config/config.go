// Package config 提供服务配置的加载与默认值管理
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 主配置结构体
type Config struct {
	Server  *ServerConfig  `json:"server" yaml:"server"`
	Target  *TargetConfig  `json:"target" yaml:"target"`
	Browser *BrowserConfig `json:"browser" yaml:"browser"`
	Checker *CheckerConfig `json:"checker" yaml:"checker"`
	Log     *LogConfig     `json:"log" yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address  string `json:"address" yaml:"address"`
	Port     int    `json:"port" yaml:"port"`
	Mode     string `json:"mode" yaml:"mode"` // debug, release, test
	DemoMode bool   `json:"demo_mode" yaml:"demo_mode"`
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:  getEnv("SERVER_ADDRESS", "0.0.0.0"),
		Port:     getEnvInt("SERVER_PORT", 3000),
		Mode:     getEnv("GIN_MODE", "release"),
		DemoMode: getEnvBool("DEMO_MODE", false),
	}
}

// TargetConfig describes the device-management site the checker drives.
type TargetConfig struct {
	BaseURL   string `json:"base_url" yaml:"base_url"`
	LoginPath string `json:"login_path" yaml:"login_path"`
	ToolPath  string `json:"tool_path" yaml:"tool_path"`
	Username  string `json:"username" yaml:"username"`
	Password  string `json:"password" yaml:"password"`
}

func NewTargetConfig() *TargetConfig {
	return &TargetConfig{
		BaseURL:   getEnv("TARGET_BASE_URL", "https://sellin.oway-ke.com"),
		LoginPath: getEnv("TARGET_LOGIN_PATH", "/user/login"),
		ToolPath:  getEnv("TARGET_TOOL_PATH", "/tool/imei"),
		Username:  getEnv("TARGET_USERNAME", "KE007"),
		Password:  getEnv("TARGET_PASSWORD", "KE007"),
	}
}

// LoginURL returns the absolute login page URL.
func (c *TargetConfig) LoginURL() string {
	return strings.TrimRight(c.BaseURL, "/") + c.LoginPath
}

// ToolURL returns the absolute IMEI tool page URL.
func (c *TargetConfig) ToolURL() string {
	return strings.TrimRight(c.BaseURL, "/") + c.ToolPath
}

// BrowserConfig tunes the headless Chrome session. Durations are stored
// in milliseconds so the config file stays plain integers.
type BrowserConfig struct {
	Headless          bool   `json:"headless" yaml:"headless"`
	ChromePath        string `json:"chrome_path" yaml:"chrome_path"`
	NavTimeoutMS      int    `json:"nav_timeout_ms" yaml:"nav_timeout_ms"`
	SelectorTimeoutMS int    `json:"selector_timeout_ms" yaml:"selector_timeout_ms"`
	LoginSettleMS     int    `json:"login_settle_ms" yaml:"login_settle_ms"`
	NavSettleMS       int    `json:"nav_settle_ms" yaml:"nav_settle_ms"`
	ResultSettleMS    int    `json:"result_settle_ms" yaml:"result_settle_ms"`
	TypeSettleMS      int    `json:"type_settle_ms" yaml:"type_settle_ms"`
	ProbeTimeoutMS    int    `json:"probe_timeout_ms" yaml:"probe_timeout_ms"`
}

func NewBrowserConfig() *BrowserConfig {
	return &BrowserConfig{
		Headless:          getEnvBool("BROWSER_HEADLESS", true),
		ChromePath:        getEnv("CHROME_PATH", ""),
		NavTimeoutMS:      getEnvInt("BROWSER_NAV_TIMEOUT_MS", 60000),
		SelectorTimeoutMS: getEnvInt("BROWSER_SELECTOR_TIMEOUT_MS", 10000),
		LoginSettleMS:     getEnvInt("BROWSER_LOGIN_SETTLE_MS", 3000),
		NavSettleMS:       getEnvInt("BROWSER_NAV_SETTLE_MS", 2000),
		ResultSettleMS:    getEnvInt("BROWSER_RESULT_SETTLE_MS", 6000),
		TypeSettleMS:      getEnvInt("BROWSER_TYPE_SETTLE_MS", 500),
		ProbeTimeoutMS:    getEnvInt("BROWSER_PROBE_TIMEOUT_MS", 5000),
	}
}

func (c *BrowserConfig) NavTimeout() time.Duration      { return ms(c.NavTimeoutMS) }
func (c *BrowserConfig) SelectorTimeout() time.Duration { return ms(c.SelectorTimeoutMS) }
func (c *BrowserConfig) LoginSettle() time.Duration     { return ms(c.LoginSettleMS) }
func (c *BrowserConfig) NavSettle() time.Duration       { return ms(c.NavSettleMS) }
func (c *BrowserConfig) ResultSettle() time.Duration    { return ms(c.ResultSettleMS) }
func (c *BrowserConfig) TypeSettle() time.Duration      { return ms(c.TypeSettleMS) }
func (c *BrowserConfig) ProbeTimeout() time.Duration    { return ms(c.ProbeTimeoutMS) }

// CheckerConfig tunes batch chunking and pacing.
type CheckerConfig struct {
	ChunkSize    int `json:"chunk_size" yaml:"chunk_size"`
	ChunkPauseMS int `json:"chunk_pause_ms" yaml:"chunk_pause_ms"`
}

func NewCheckerConfig() *CheckerConfig {
	return &CheckerConfig{
		ChunkSize:    getEnvInt("CHECKER_CHUNK_SIZE", 50),
		ChunkPauseMS: getEnvInt("CHECKER_CHUNK_PAUSE_MS", 2000),
	}
}

func (c *CheckerConfig) ChunkPause() time.Duration { return ms(c.ChunkPauseMS) }

// LogConfig holds logging settings.
type LogConfig struct {
	Level       string `json:"level" yaml:"level"`
	Path        string `json:"path" yaml:"path"`
	Development bool   `json:"development" yaml:"development"`
}

func NewLogConfig() *LogConfig {
	return &LogConfig{
		Level:       getEnv("LOG_LEVEL", "info"),
		Path:        getEnv("LOG_PATH", "./logs/imeicheck.log"),
		Development: getEnvBool("LOG_DEVELOPMENT", false),
	}
}

// Validate 校验配置合法性
func (c *Config) Validate() error {
	if c.Server == nil || c.Target == nil || c.Browser == nil || c.Checker == nil {
		return fmt.Errorf("%w: missing config section", ErrInvalidConfig)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: invalid port %d", ErrInvalidConfig, c.Server.Port)
	}
	if c.Target.BaseURL == "" {
		return fmt.Errorf("%w: target base_url is required", ErrInvalidConfig)
	}
	if c.Checker.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive", ErrInvalidConfig)
	}
	return nil
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
