package storage

import (
	"encoding/json"
	"fmt"
)

// Collection 一个命名空间下的文档列表
type Collection[T any] struct {
	store *JSONStore
	ns    Namespace
}

// NewCollection 创建集合访问器
func NewCollection[T any](store *JSONStore, ns Namespace) *Collection[T] {
	return &Collection[T]{store: store, ns: ns}
}

// Load 读取全部文档；文件不存在或损坏时返回空列表，不报错
func (c *Collection[T]) Load() []T {
	items, err := c.load()
	if err != nil {
		c.store.logger.Warn("Failed to load collection, treating as empty",
			"namespace", c.ns.File,
			"error", err,
		)
		return []T{}
	}
	return items
}

// Save 整体覆盖写入
func (c *Collection[T]) Save(items []T) error {
	unlock := c.store.lock(c.store.Path(c.ns))
	defer unlock()
	return c.save(items)
}

// Mutate 在文件锁内读取、修改并写回
// fn 返回错误时不写入
func (c *Collection[T]) Mutate(fn func(items []T) ([]T, error)) error {
	unlock := c.store.lock(c.store.Path(c.ns))
	defer unlock()

	items, err := c.load()
	if err != nil {
		c.store.logger.Warn("Failed to load collection before update, starting from empty",
			"namespace", c.ns.File,
			"error", err,
		)
		items = []T{}
	}

	next, err := fn(items)
	if err != nil {
		return err
	}
	return c.save(next)
}

func (c *Collection[T]) load() ([]T, error) {
	var doc map[string]json.RawMessage
	if err := readJSON(c.store.Path(c.ns), &doc); err != nil {
		if isNotExist(err) {
			return []T{}, nil
		}
		return nil, err
	}

	raw, ok := doc[c.ns.Key]
	if !ok || string(raw) == "null" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s.%s: %w", c.ns.File, c.ns.Key, err)
	}
	return items, nil
}

func (c *Collection[T]) save(items []T) error {
	if items == nil {
		items = []T{}
	}
	return writeJSON(c.store.Path(c.ns), map[string][]T{c.ns.Key: items})
}
