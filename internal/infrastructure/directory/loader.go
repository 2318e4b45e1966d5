// Package directory 加载只读的静态数据文件：医生目录与账号文件
package directory

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/mediverse/backend/internal/domain/account"
	"github.com/mediverse/backend/internal/domain/doctor"
	"github.com/mediverse/backend/internal/domain/events"
	"github.com/mediverse/backend/internal/infrastructure/config"
	"github.com/mediverse/backend/internal/infrastructure/log"
	"github.com/mediverse/backend/internal/infrastructure/watcher"
)

const (
	keyDoctors     = "doctors"
	keyCredentials = "credentials"

	// 文件监听失效是主路径，过期时间只是兜底
	cacheTTL     = 10 * time.Minute
	cacheCleanup = 30 * time.Minute
)

// ErrCredentialsUnavailable 账号文件缺失或格式错误
var ErrCredentialsUnavailable = errors.New("credentials file unavailable")

// Loader 带缓存的静态文件加载器
type Loader struct {
	cache       *cache.Cache
	doctorsPath string
	credsPath   string
	publisher   events.Publisher
	logger      *slog.Logger
}

var (
	_ doctor.DirectoryProvider = (*Loader)(nil)
	_ account.CredentialSource = (*Loader)(nil)
)

// NewLoader 创建加载器
// 医生目录：<data>/doctor/doctors.json；账号：<data>/creds.json
func NewLoader(cfg *config.StorageConfig, publisher events.Publisher) *Loader {
	return &Loader{
		cache:       cache.New(cacheTTL, cacheCleanup),
		doctorsPath: filepath.Join(cfg.DataDir, config.DoctorDir, "doctors.json"),
		credsPath:   filepath.Join(cfg.DataDir, "creds.json"),
		publisher:   publisher,
		logger:      log.NewModuleLogger("directory", "loader"),
	}
}

// Directory 返回医生目录快照，调用方不得修改
// 文件缺失或损坏时返回空目录
func (l *Loader) Directory() *doctor.Directory {
	if cached, ok := l.cache.Get(keyDoctors); ok {
		return cached.(*doctor.Directory)
	}

	dir := &doctor.Directory{Doctors: []doctor.Doctor{}}
	if err := readFile(l.doctorsPath, dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("Doctor directory not found, using empty directory", "path", l.doctorsPath)
		} else {
			l.logger.Error("Failed to load doctor directory, using empty directory",
				"path", l.doctorsPath,
				"error", err,
			)
		}
		dir = &doctor.Directory{Doctors: []doctor.Doctor{}}
	}

	l.cache.Set(keyDoctors, dir, cache.DefaultExpiration)
	return dir
}

// Credentials 返回账号列表
func (l *Loader) Credentials() (*account.Credentials, error) {
	if cached, ok := l.cache.Get(keyCredentials); ok {
		return cached.(*account.Credentials), nil
	}

	var creds account.Credentials
	if err := readFile(l.credsPath, &creds); err != nil {
		l.logger.Error("Failed to load credentials", "path", l.credsPath, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCredentialsUnavailable, err)
	}

	l.cache.Set(keyCredentials, &creds, cache.DefaultExpiration)
	return &creds, nil
}

// Reload 清除缓存并重新加载变更的文件
func (l *Loader) Reload(path string) {
	switch filepath.Clean(path) {
	case filepath.Clean(l.doctorsPath):
		l.cache.Delete(keyDoctors)
		dir := l.Directory()
		l.logger.Info("Doctor directory reloaded", "doctors", len(dir.Doctors))
		if l.publisher != nil {
			l.publisher.Publish(&events.DirectoryEvent{
				Path:        path,
				DoctorCount: len(dir.Doctors),
				EventTime:   time.Now(),
			})
		}
	case filepath.Clean(l.credsPath):
		l.cache.Delete(keyCredentials)
		l.logger.Info("Credentials cache invalidated")
	}
}

// Watch 注册文件监听，变更后自动 Reload
func (l *Loader) Watch(fw *watcher.FileWatcher) error {
	for _, path := range []string{l.doctorsPath, l.credsPath} {
		if err := fw.Watch(path, l.Reload); err != nil {
			return err
		}
	}
	return nil
}

func readFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
