package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mediverse/backend/internal/infrastructure/config"
	"github.com/mediverse/backend/internal/infrastructure/log"
)

// Namespace 一个 JSON 文档及其列表字段名
// 例如 doctor/appointments.json 中的 {"appointments": [...]}
type Namespace struct {
	// File 相对数据根目录的路径（不含 .json）
	File string
	// Key 文档中列表字段名
	Key string
}

// 已知命名空间
var (
	NamespaceAppointments  = Namespace{File: filepath.Join(config.DoctorDir, "appointments"), Key: "appointments"}
	NamespaceQueue         = Namespace{File: filepath.Join(config.DoctorDir, "patient_queue"), Key: "patients"}
	NamespaceConsultations = Namespace{File: filepath.Join(config.DoctorDir, "consultations"), Key: "consultations"}
	NamespaceRecords       = Namespace{File: filepath.Join(config.PatientDir, "medical_records"), Key: "records"}
)

// JSONStore 基于数据目录的 JSON 文件存储
// 每次写入都是整文件覆盖，先写临时文件再 rename；同一文件的读-改-写由按键锁串行化
type JSONStore struct {
	root   string
	locks  *keyedMutex
	logger *slog.Logger
}

// NewJSONStore 创建存储，确保数据目录结构存在
func NewJSONStore(cfg *config.StorageConfig) (*JSONStore, error) {
	root := cfg.DataDir
	for _, dir := range []string{
		filepath.Join(root, config.PatientDir),
		filepath.Join(root, config.DoctorDir),
		config.ConversationsDir(root),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory %s: %w", dir, err)
		}
	}

	return &JSONStore{
		root:   root,
		locks:  newKeyedMutex(),
		logger: log.NewModuleLogger("storage", "json_store"),
	}, nil
}

// Root 数据根目录
func (s *JSONStore) Root() string {
	return s.root
}

// Path 命名空间对应的文件路径
func (s *JSONStore) Path(ns Namespace) string {
	return filepath.Join(s.root, ns.File+".json")
}

// lock 锁住一个文件路径
func (s *JSONStore) lock(path string) func() {
	return s.locks.Lock(path)
}

// readJSON 读取并解析文件，文件不存在返回 os.ErrNotExist
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSON 原子写入：同目录临时文件 + rename
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrStorage, filepath.Base(path), err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create directory: %v", ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrStorage, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %v", ErrStorage, filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrStorage, filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: replace %s: %v", ErrStorage, filepath.Base(path), err)
	}
	return nil
}

// isNotExist 文件不存在
func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
