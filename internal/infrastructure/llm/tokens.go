package llm

import (
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"

	"github.com/mediverse/backend/internal/infrastructure/log"
)

// 在包初始化时设置离线加载器
func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// charsPerToken 编码不可用时的粗略估算比例
const charsPerToken = 4

// TokenCounter 基于 cl100k_base 的 Token 计数器
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
	mu       sync.RWMutex
}

var (
	counterInstance *TokenCounter
	counterOnce     sync.Once
)

// NewTokenCounter 获取 TokenCounter 单例
// 编码加载失败时退化为按字符估算
func NewTokenCounter() *TokenCounter {
	counterOnce.Do(func() {
		counterInstance = &TokenCounter{}
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			log.NewModuleLogger("llm", "tokens").Warn("tiktoken unavailable, using character estimate",
				slog.String("error", err.Error()),
			)
			return
		}
		counterInstance.encoding = enc
	})
	return counterInstance
}

// Count 计算文本的 Token 数量
func (c *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	if c.encoding == nil {
		n := utf8.RuneCountInString(text) / charsPerToken
		if n == 0 {
			n = 1
		}
		return n
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.encoding.Encode(text, nil, nil))
}

// TailWithinBudget 从末尾保留不超过预算的行，保持原有顺序
// budget<=0 表示不限制
func (c *TokenCounter) TailWithinBudget(lines []string, budget int) []string {
	if budget <= 0 {
		return lines
	}
	used := 0
	start := len(lines)
	for i := len(lines) - 1; i >= 0; i-- {
		n := c.Count(lines[i])
		if used+n > budget {
			break
		}
		used += n
		start = i
	}
	return lines[start:]
}
