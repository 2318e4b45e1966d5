package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mediverse/backend/internal/infrastructure/log"
)

// ChangeFunc 被监听文件变更后的回调
type ChangeFunc func(path string)

// WatchConfig FileWatcher 配置
type WatchConfig struct {
	// DebounceDelay 防抖延迟，编辑器保存通常会连续触发多个事件
	DebounceDelay time.Duration
}

// DefaultWatchConfig 返回默认配置
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		DebounceDelay: 500 * time.Millisecond,
	}
}

// FileWatcher 监听少量数据文件（医生目录、账号文件），变更后回调
// 监听的是文件所在目录，这样原子替换（写临时文件再 rename）也能被捕获
type FileWatcher struct {
	config  WatchConfig
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	mu        sync.Mutex
	callbacks map[string][]ChangeFunc
	dirs      map[string]bool

	// 防抖相关
	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewFileWatcher 创建文件监听器
func NewFileWatcher(config WatchConfig) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if config.DebounceDelay <= 0 {
		config.DebounceDelay = DefaultWatchConfig().DebounceDelay
	}

	return &FileWatcher{
		config:         config,
		watcher:        watcher,
		logger:         log.NewModuleLogger("watcher", "file_watcher"),
		callbacks:      make(map[string][]ChangeFunc),
		dirs:           make(map[string]bool),
		debounceTimers: make(map[string]*time.Timer),
		stopCh:         make(chan struct{}),
	}, nil
}

// Watch 注册文件变更回调，可在 Start 前后调用
func (fw *FileWatcher) Watch(path string, fn ChangeFunc) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if !fw.dirs[dir] {
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		fw.dirs[dir] = true
		fw.logger.Debug("Added directory to watch", "path", dir)
	}
	fw.callbacks[path] = append(fw.callbacks[path], fn)
	return nil
}

// Start 启动事件循环
func (fw *FileWatcher) Start() error {
	fw.logger.Info("Starting file watcher", "dirs", len(fw.dirs))

	fw.wg.Add(1)
	go fw.watchLoop()
	return nil
}

// Stop 停止文件监听
func (fw *FileWatcher) Stop() {
	fw.stopOnce.Do(func() {
		fw.logger.Info("Stopping file watcher")

		close(fw.stopCh)
		fw.watcher.Close()
		fw.wg.Wait()

		fw.debounceMu.Lock()
		for _, timer := range fw.debounceTimers {
			timer.Stop()
		}
		fw.debounceMu.Unlock()

		fw.logger.Info("File watcher stopped")
	})
}

// watchLoop 事件监听循环
func (fw *FileWatcher) watchLoop() {
	defer fw.wg.Done()

	for {
		select {
		case <-fw.stopCh:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleFsEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("Watcher error", "error", err)
		}
	}
}

// handleFsEvent 只关心已注册文件的写入、创建与重命名
func (fw *FileWatcher) handleFsEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	path := filepath.Clean(event.Name)

	fw.mu.Lock()
	callbacks := append([]ChangeFunc(nil), fw.callbacks[path]...)
	fw.mu.Unlock()
	if len(callbacks) == 0 {
		return
	}

	fw.debounce(path, func() {
		fw.logger.Debug("Watched file changed", "path", path)
		for _, fn := range callbacks {
			fn(path)
		}
	})
}

// debounce 同一路径在延迟内的多次事件只触发一次
func (fw *FileWatcher) debounce(path string, fire func()) {
	fw.debounceMu.Lock()
	defer fw.debounceMu.Unlock()

	if timer, exists := fw.debounceTimers[path]; exists {
		timer.Stop()
	}

	fw.debounceTimers[path] = time.AfterFunc(fw.config.DebounceDelay, func() {
		fw.debounceMu.Lock()
		delete(fw.debounceTimers, path)
		fw.debounceMu.Unlock()

		select {
		case <-fw.stopCh:
			return
		default:
		}
		fire()
	})
}
