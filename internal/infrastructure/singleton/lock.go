// Package singleton 保证同一端口（同一数据目录）只有一个后端进程
// JSON 文件存储依赖单写者，第二个进程发现健康实例后直接退出
package singleton

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"
)

const (
	// HealthPath 健康检查路径
	HealthPath = "/health"
	// HealthCheckTimeout 健康检查超时时间
	HealthCheckTimeout = 2 * time.Second
)

// ErrPortBusy 端口被其他进程占用且不是健康的本服务实例
var ErrPortBusy = errors.New("port occupied by an unhealthy or foreign process")

// Health 健康检查响应
type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// CheckAndLock 占用端口作为进程锁
// 返回 listener 表示获得锁；返回 nil, nil 表示已有同名服务在运行，调用者应退出
func CheckAndLock(port, service string) (net.Listener, error) {
	listener, err := net.Listen("tcp", port)
	if err == nil {
		return listener, nil
	}

	if !isAddrInUse(err) {
		return nil, fmt.Errorf("listen on %s: %w", port, err)
	}
	if isInstanceRunning(port, service) {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrPortBusy, port)
}

// isAddrInUse 检查错误是否是地址已在使用
func isAddrInUse(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.EADDRINUSE) {
		return true
	}
	// Windows 的 WSAEADDRINUSE 不映射到 EADDRINUSE
	msg := err.Error()
	return strings.Contains(msg, "address already in use") ||
		strings.Contains(msg, "Only one usage of each socket address")
}

// isInstanceRunning 端口上是否为健康的同名服务
func isInstanceRunning(port, service string) bool {
	client := &http.Client{
		Timeout: HealthCheckTimeout,
	}

	resp, err := client.Get(fmt.Sprintf("http://localhost%s%s", port, HealthPath))
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}
	var h Health
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return false
	}
	return h.Service == service
}
