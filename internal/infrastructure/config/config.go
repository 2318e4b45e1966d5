package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// 环境变量名
const (
	EnvConfigFile        = "MEDIVERSE_CONFIG"
	EnvHTTPPort          = "MEDIVERSE_HTTP_PORT"
	EnvMCPEnabled        = "MEDIVERSE_MCP_ENABLED"
	EnvCORSAllowOrigins  = "CORS_ALLOW_ORIGINS"
	EnvOpenAIAPIKey      = "OPENAI_API_KEY"
	EnvOpenAIBaseURL     = "OPENAI_BASE_URL"
	EnvChatModel         = "OPENAI_MODEL_CHAT"
	EnvTranscribeModel   = "OPENAI_MODEL_TRANSCRIBE"
	EnvLLMRatePerSecond  = "LLM_REQUESTS_PER_SECOND"
	EnvLLMTimeoutSeconds = "LLM_TIMEOUT_SECONDS"
	EnvSummaryInterval   = "SUMMARY_JOB_INTERVAL"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	LLM       LLMConfig       `yaml:"llm"`
	Storage   StorageConfig   `yaml:"storage"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Jobs      JobsConfig      `yaml:"jobs"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTPPort     string   `yaml:"http_port"` // 固定端口，同时用于单例锁
	MCPEnabled   bool     `yaml:"mcp_enabled"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// LLMConfig 大模型配置（OpenAI 兼容接口）
type LLMConfig struct {
	APIKey          string        `yaml:"api_key"`
	BaseURL         string        `yaml:"base_url"`
	ChatModel       string        `yaml:"chat_model"`
	TranscribeModel string        `yaml:"transcribe_model"`
	Temperature     float32       `yaml:"temperature"`
	MaxTokens       int           `yaml:"max_tokens"`
	Timeout         time.Duration `yaml:"timeout"`
	// RequestsPerSecond 外部调用限流，<=0 表示不限流
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	// TranscriptTokenBudget 摘要提示词中对话片段的 token 上限
	TranscriptTokenBudget int `yaml:"transcript_token_budget"`
}

// StorageConfig JSON 文件存储配置
type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

// WebSocketConfig WebSocket 配置
type WebSocketConfig struct {
	ReadBufferSize  int `yaml:"read_buffer_size"`
	WriteBufferSize int `yaml:"write_buffer_size"`
}

// JobsConfig 后台任务配置
type JobsConfig struct {
	// SummaryInterval 预约摘要预生成间隔，0 表示关闭
	SummaryInterval time.Duration `yaml:"summary_interval"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:     ":8000",
			MCPEnabled:   true,
			AllowOrigins: []string{"*"},
		},
		LLM: LLMConfig{
			ChatModel:             "gpt-4o",
			TranscribeModel:       "whisper-1",
			Temperature:           0.7,
			MaxTokens:             800,
			Timeout:               60 * time.Second,
			RequestsPerSecond:     5,
			TranscriptTokenBudget: 1500,
		},
		Storage: StorageConfig{
			DataDir: GetDataDir(),
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		Jobs: JobsConfig{
			SummaryInterval: 5 * time.Minute,
		},
	}
}

// NewConfig 创建配置：默认值 -> YAML 文件 -> 环境变量
// 配置文件不存在不是错误；解析失败时记录警告并继续使用默认值
func NewConfig() *Config {
	cfg := Default()
	path := os.Getenv(EnvConfigFile)
	if path == "" {
		path = filepath.Join(cfg.Storage.DataDir, "config.yaml")
	}
	if err := cfg.LoadFile(path); err != nil {
		slog.Warn("failed to load config file, using defaults",
			"path", path,
			"error", err,
		)
	}
	cfg.ApplyEnv()
	return cfg
}

// LoadFile 将 YAML 文件合并到当前配置
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// ApplyEnv 使用环境变量覆盖配置
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvHTTPPort); v != "" {
		if !strings.HasPrefix(v, ":") {
			v = ":" + v
		}
		c.Server.HTTPPort = v
	}
	if v, ok := envBool(EnvMCPEnabled); ok {
		c.Server.MCPEnabled = v
	}
	if v := os.Getenv(EnvCORSAllowOrigins); v != "" {
		c.Server.AllowOrigins = splitList(v)
	}
	if v := os.Getenv(EnvOpenAIAPIKey); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(EnvOpenAIBaseURL); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv(EnvChatModel); v != "" {
		c.LLM.ChatModel = v
	}
	if v := os.Getenv(EnvTranscribeModel); v != "" {
		c.LLM.TranscribeModel = v
	}
	if v := os.Getenv(EnvLLMRatePerSecond); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.LLM.RequestsPerSecond = f
		}
	}
	if v := os.Getenv(EnvLLMTimeoutSeconds); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.LLM.Timeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv(EnvSummaryInterval); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Jobs.SummaryInterval = d
		}
	}
}

// NewServerConfig 创建服务器配置
func NewServerConfig(cfg *Config) *ServerConfig {
	return &cfg.Server
}

// NewLLMConfig 创建大模型配置
func NewLLMConfig(cfg *Config) *LLMConfig {
	return &cfg.LLM
}

// NewStorageConfig 创建存储配置
func NewStorageConfig(cfg *Config) *StorageConfig {
	return &cfg.Storage
}

// NewWebSocketConfig 创建 WebSocket 配置
func NewWebSocketConfig(cfg *Config) *WebSocketConfig {
	return &cfg.WebSocket
}

// NewJobsConfig 创建后台任务配置
func NewJobsConfig(cfg *Config) *JobsConfig {
	return &cfg.Jobs
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
