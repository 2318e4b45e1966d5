package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mediverse/backend/internal/domain/triage"
	"github.com/mediverse/backend/internal/infrastructure/config"
)

// ConversationStore 分诊会话存储，patient/conversations/{session_id}.json
type ConversationStore struct {
	store *JSONStore
	dir   string
}

var _ triage.SessionRepository = (*ConversationStore)(nil)

// NewConversationStore 创建会话存储
func NewConversationStore(store *JSONStore) *ConversationStore {
	return &ConversationStore{
		store: store,
		dir:   config.ConversationsDir(store.Root()),
	}
}

// path 会话文件路径；拒绝包含路径分隔符的 ID
func (c *ConversationStore) path(sessionID string) (string, error) {
	if sessionID == "" || sessionID != filepath.Base(sessionID) || strings.HasPrefix(sessionID, ".") {
		return "", triage.ErrSessionNotFound
	}
	return filepath.Join(c.dir, sessionID+".json"), nil
}

// Create 写入新会话
func (c *ConversationStore) Create(session *triage.Session) error {
	path, err := c.path(session.SessionID)
	if err != nil {
		return fmt.Errorf("%w: invalid session id", ErrStorage)
	}
	unlock := c.store.lock(path)
	defer unlock()
	return writeJSON(path, session)
}

// Get 读取会话
func (c *ConversationStore) Get(sessionID string) (*triage.Session, error) {
	path, err := c.path(sessionID)
	if err != nil {
		return nil, err
	}
	return c.read(path)
}

// read 读取会话文件；损坏或不可读的文件按不存在处理
func (c *ConversationStore) read(path string) (*triage.Session, error) {
	var session triage.Session
	if err := readJSON(path, &session); err != nil {
		if !isNotExist(err) {
			c.store.logger.Warn("Unreadable conversation treated as missing",
				"file", filepath.Base(path),
				"error", err,
			)
		}
		return nil, triage.ErrSessionNotFound
	}
	return &session, nil
}

// Update 在会话锁内读-改-写
func (c *ConversationStore) Update(sessionID string, fn func(*triage.Session) error) (*triage.Session, error) {
	path, err := c.path(sessionID)
	if err != nil {
		return nil, err
	}
	unlock := c.store.lock(path)
	defer unlock()

	session, err := c.read(path)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := writeJSON(path, session); err != nil {
		return nil, err
	}
	return session, nil
}

// List 扫描会话目录，按创建时间倒序
func (c *ConversationStore) List(userID string) []triage.Session {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if !isNotExist(err) {
			c.store.logger.Warn("Failed to read conversations directory", "error", err)
		}
		return []triage.Session{}
	}

	sessions := make([]triage.Session, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		session, err := c.read(filepath.Join(c.dir, entry.Name()))
		if err != nil {
			continue
		}
		if session.BelongsTo(userID) {
			sessions = append(sessions, *session)
		}
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions
}

// Delete 删除会话文件
func (c *ConversationStore) Delete(sessionID string) (bool, error) {
	path, err := c.path(sessionID)
	if err != nil {
		return false, nil
	}
	unlock := c.store.lock(path)
	defer unlock()

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: delete session: %v", ErrStorage, err)
	}
	return true, nil
}
