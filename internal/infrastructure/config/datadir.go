package config

import (
	"os"
	"path/filepath"
	"sync"
)

const (
	// EnvDataDir 数据目录环境变量名
	EnvDataDir = "MEDIVERSE_DATA_DIR"
	// DefaultDataDirName 默认数据目录（相对工作目录）
	DefaultDataDirName = "data"

	// PatientDir 患者侧数据子目录（会话、病历）
	PatientDir = "patient"
	// DoctorDir 医生侧数据子目录（医生目录、预约、队列、问诊记录）
	DoctorDir = "doctor"
)

var (
	dataDirOnce sync.Once
	dataDirPath string
)

// GetDataDir 获取数据根目录
// 优先读取 MEDIVERSE_DATA_DIR 环境变量，默认 ./data
// 所有 JSON 数据文件路径都应从这里派生
func GetDataDir() string {
	dataDirOnce.Do(func() {
		if dir := os.Getenv(EnvDataDir); dir != "" {
			dataDirPath = dir
			return
		}
		dataDirPath = DefaultDataDirName
	})
	return dataDirPath
}

// ConversationsDir 返回分诊会话目录
func ConversationsDir(dataDir string) string {
	return filepath.Join(dataDir, PatientDir, "conversations")
}

// ResetDataDir 重置数据目录缓存（仅用于测试）
func ResetDataDir() {
	dataDirOnce = sync.Once{}
	dataDirPath = ""
}
