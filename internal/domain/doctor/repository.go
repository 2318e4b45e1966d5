package doctor

// DirectoryProvider 只读医生目录
type DirectoryProvider interface {
	// Directory 返回当前目录快照，文件缺失或损坏时为空目录
	Directory() *Directory
}
